package requests

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// ProxyRequest is the action envelope every proxy endpoint accepts: an action
// name plus an action-specific payload that stays opaque until dispatch.
type ProxyRequest struct {
	Action string          `json:"action" binding:"required"`
	Data   json.RawMessage `json:"data"`
}

// LoginRequest carries the admin credential pair.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AgentChatRequest is the agent tester payload: the new turn plus the prior
// conversation, replayed in full on every request.
type AgentChatRequest struct {
	Messages            []openai.ChatCompletionMessage `json:"messages" binding:"required"`
	ConversationHistory []openai.ChatCompletionMessage `json:"conversationHistory"`
}

// SendMessageData is the payload for send-message actions.
type SendMessageData struct {
	ContactUID string `json:"contact_uid" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// RecordData addresses one row by primary key.
type RecordData struct {
	ID uint `json:"id" binding:"required"`
}

// TableData names one catalog table.
type TableData struct {
	Table string `json:"table" binding:"required"`
}

// ChatHistoryData addresses one conversation.
type ChatHistoryData struct {
	ContactUID string `json:"contact_uid" binding:"required"`
}

// ImageUploadData carries a base64-encoded JPEG and its file name.
type ImageUploadData struct {
	FileName string `json:"file_name" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// ImageDeleteData addresses one hosted image.
type ImageDeleteData struct {
	PublicID string `json:"public_id" binding:"required"`
}

// ImageRenameData re-keys a hosted image.
type ImageRenameData struct {
	FromPublicID string `json:"from_public_id" binding:"required"`
	ToName       string `json:"to_name" binding:"required"`
}
