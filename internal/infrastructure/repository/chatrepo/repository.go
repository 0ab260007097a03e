package chatrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"salesdesk/admin-api/internal/domain/chatlist"
	"salesdesk/admin-api/internal/domain/conversation"
	"salesdesk/admin-api/internal/infrastructure/database/entities"
	"salesdesk/admin-api/internal/utils/idgen"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Repository reads conversation threads and records outbound messages.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// ListContacts returns every contact ordered by most recent activity, with
// the display label derived from the stored timestamp.
func (r *Repository) ListContacts(ctx context.Context) ([]chatlist.Contact, error) {
	var rows []entities.Contact
	if err := r.db.WithContext(ctx).Order("last_activity DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "list contacts", err)
	}

	now := r.now()
	contacts := make([]chatlist.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, chatlist.Contact{
			UID:          row.UID,
			Name:         row.Name,
			Phone:        row.Phone,
			LastMessage:  row.LastMessage,
			LastActivity: row.LastActivity,
			Time:         chatlist.FormatRelative(row.LastActivity, now),
			Unread:       row.Unread,
			Online:       row.Online,
		})
	}
	return contacts, nil
}

// GetMessages returns a contact's messages ordered by timestamp.
func (r *Repository) GetMessages(ctx context.Context, contactUID string) ([]conversation.Message, error) {
	var rows []entities.ChatMessage
	err := r.db.WithContext(ctx).
		Where("contact_uid = ?", contactUID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "list chat messages", err)
	}

	messages := make([]conversation.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, conversation.Message{
			ID:         row.PublicID,
			ContactUID: row.ContactUID,
			Role:       conversation.Role(row.Role),
			Body:       row.Body,
			CreatedAt:  row.CreatedAt,
		})
	}
	return messages, nil
}

// RecordOutbound stores an assistant-sent message and bumps the contact's
// last-activity projection in one transaction.
func (r *Repository) RecordOutbound(ctx context.Context, contactUID, body string) (*conversation.Message, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).Where("uid = ?", contactUID).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, fmt.Sprintf("contact %q not found", contactUID), err)
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "lookup contact", err)
	}

	row := entities.ChatMessage{
		PublicID:   idgen.NewMessageID(),
		ContactUID: contactUID,
		Role:       string(conversation.RoleAssistant),
		Body:       body,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Contact{}).
			Where("uid = ?", contactUID).
			Updates(map[string]interface{}{
				"last_message":  body,
				"last_activity": r.now(),
			}).Error
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "record outbound message", err)
	}

	return &conversation.Message{
		ID:         row.PublicID,
		ContactUID: row.ContactUID,
		Role:       conversation.RoleAssistant,
		Body:       row.Body,
		CreatedAt:  row.CreatedAt,
	}, nil
}
