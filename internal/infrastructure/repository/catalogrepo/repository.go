package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salesdesk/admin-api/internal/domain/catalog"
	"salesdesk/admin-api/internal/infrastructure/database/entities"
	"salesdesk/admin-api/internal/utils/functional"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Repository persists products in per-category tables.
type Repository struct {
	db *gorm.DB
}

var _ catalog.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, category catalog.Category) ([]*catalog.Product, error) {
	switch category {
	case catalog.CategoryLaptop:
		var rows []entities.Laptop
		if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, r.dbError(ctx, err, "list laptops")
		}
		return functional.Map(rows, laptopToDomain), nil
	case catalog.CategoryDesktop:
		var rows []entities.Desktop
		if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, r.dbError(ctx, err, "list desktops")
		}
		return functional.Map(rows, desktopToDomain), nil
	case catalog.CategoryAccessory:
		var rows []entities.Accessory
		if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, r.dbError(ctx, err, "list accessories")
		}
		return functional.Map(rows, accessoryToDomain), nil
	default:
		return nil, r.unknownCategory(ctx, category)
	}
}

func (r *Repository) Get(ctx context.Context, category catalog.Category, id uint) (*catalog.Product, error) {
	switch category {
	case catalog.CategoryLaptop:
		var row entities.Laptop
		if err := r.first(ctx, &row, id); err != nil {
			return nil, err
		}
		return laptopToDomain(row), nil
	case catalog.CategoryDesktop:
		var row entities.Desktop
		if err := r.first(ctx, &row, id); err != nil {
			return nil, err
		}
		return desktopToDomain(row), nil
	case catalog.CategoryAccessory:
		var row entities.Accessory
		if err := r.first(ctx, &row, id); err != nil {
			return nil, err
		}
		return accessoryToDomain(row), nil
	default:
		return nil, r.unknownCategory(ctx, category)
	}
}

func (r *Repository) first(ctx context.Context, dest interface{}, id uint) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, fmt.Sprintf("product %d not found", id), err)
		}
		return r.dbError(ctx, err, "get product")
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, product *catalog.Product) error {
	switch product.Category {
	case catalog.CategoryLaptop:
		row := laptopFromDomain(product)
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return r.dbError(ctx, err, "create laptop")
		}
		product.ID, product.CreatedAt, product.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	case catalog.CategoryDesktop:
		row := desktopFromDomain(product)
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return r.dbError(ctx, err, "create desktop")
		}
		product.ID, product.CreatedAt, product.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	case catalog.CategoryAccessory:
		row := accessoryFromDomain(product)
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return r.dbError(ctx, err, "create accessory")
		}
		product.ID, product.CreatedAt, product.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	default:
		return r.unknownCategory(ctx, product.Category)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, product *catalog.Product) error {
	// Edits submit the full record, so every column is written, zero values
	// included. A struct update without Select("*") would skip stock=0 and
	// cleared strings.
	var result *gorm.DB
	switch product.Category {
	case catalog.CategoryLaptop:
		row := laptopFromDomain(product)
		result = r.db.WithContext(ctx).Model(&entities.Laptop{}).Where("id = ?", product.ID).
			Select("*").Omit("id", "created_at").Updates(&row)
	case catalog.CategoryDesktop:
		row := desktopFromDomain(product)
		result = r.db.WithContext(ctx).Model(&entities.Desktop{}).Where("id = ?", product.ID).
			Select("*").Omit("id", "created_at").Updates(&row)
	case catalog.CategoryAccessory:
		row := accessoryFromDomain(product)
		result = r.db.WithContext(ctx).Model(&entities.Accessory{}).Where("id = ?", product.ID).
			Select("*").Omit("id", "created_at").Updates(&row)
	default:
		return r.unknownCategory(ctx, product.Category)
	}
	if result.Error != nil {
		return r.dbError(ctx, result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("product %d not found", product.ID), nil)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, category catalog.Category, id uint) error {
	var result *gorm.DB
	switch category {
	case catalog.CategoryLaptop:
		result = r.db.WithContext(ctx).Delete(&entities.Laptop{}, id)
	case catalog.CategoryDesktop:
		result = r.db.WithContext(ctx).Delete(&entities.Desktop{}, id)
	case catalog.CategoryAccessory:
		result = r.db.WithContext(ctx).Delete(&entities.Accessory{}, id)
	default:
		return r.unknownCategory(ctx, category)
	}
	if result.Error != nil {
		return r.dbError(ctx, result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("product %d not found", id), nil)
	}
	return nil
}

func (r *Repository) ListTables(ctx context.Context) ([]string, error) {
	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, r.dbError(ctx, err, "list tables")
	}
	return tables, nil
}

func (r *Repository) DescribeTable(ctx context.Context, table string) ([]catalog.ColumnInfo, error) {
	if !r.db.WithContext(ctx).Migrator().HasTable(table) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("table %q not found", table), nil)
	}
	columns, err := r.db.WithContext(ctx).Migrator().ColumnTypes(table)
	if err != nil {
		return nil, r.dbError(ctx, err, "describe table")
	}
	info := make([]catalog.ColumnInfo, 0, len(columns))
	for _, col := range columns {
		nullable, _ := col.Nullable()
		info = append(info, catalog.ColumnInfo{
			Name:     col.Name(),
			Type:     col.DatabaseTypeName(),
			Nullable: nullable,
		})
	}
	return info, nil
}

// UpdateStatuses rewrites the stored status of every row from its stock
// quantity and returns the number of rows that changed.
func (r *Repository) UpdateStatuses(ctx context.Context, category catalog.Category, lowStockThreshold int) (int64, error) {
	var table string
	switch category {
	case catalog.CategoryLaptop:
		table = entities.Laptop{}.TableName()
	case catalog.CategoryDesktop:
		table = entities.Desktop{}.TableName()
	case catalog.CategoryAccessory:
		table = entities.Accessory{}.TableName()
	default:
		return 0, r.unknownCategory(ctx, category)
	}

	result := r.db.WithContext(ctx).Exec(fmt.Sprintf(`
		UPDATE %s SET status = CASE
			WHEN stock <= 0 THEN ?
			WHEN stock <= ? THEN ?
			ELSE ?
		END
		WHERE status <> CASE
			WHEN stock <= 0 THEN ?
			WHEN stock <= ? THEN ?
			ELSE ?
		END`, table),
		string(catalog.StatusOutOfStock), lowStockThreshold, string(catalog.StatusLowStock), string(catalog.StatusActive),
		string(catalog.StatusOutOfStock), lowStockThreshold, string(catalog.StatusLowStock), string(catalog.StatusActive),
	)
	if result.Error != nil {
		return 0, r.dbError(ctx, result.Error, "update statuses")
	}
	return result.RowsAffected, nil
}

func (r *Repository) dbError(ctx context.Context, err error, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeDatabaseError, message, err)
}

func (r *Repository) unknownCategory(ctx context.Context, category catalog.Category) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository,
		platformerrors.ErrorTypeValidation, fmt.Sprintf("unknown category %q", category), nil)
}
