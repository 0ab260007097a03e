package handlers

import (
	"github.com/rs/zerolog"

	"salesdesk/admin-api/internal/config"
	"salesdesk/admin-api/internal/domain/session"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/agenthandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/authhandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/chathandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/databasehandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/imagehandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/messaginghandler"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers/workflowhandler"
)

// Provider bundles every HTTP handler for route registration.
type Provider struct {
	Auth      *authhandler.AuthHandler
	Workflow  *workflowhandler.WorkflowHandler
	Image     *imagehandler.ImageHandler
	Database  *databasehandler.DatabaseHandler
	Messaging *messaginghandler.MessagingHandler
	Agent     *agenthandler.AgentHandler
	Chat      *chathandler.ChatHandler
}

// Dependencies carries the constructed infrastructure the handlers run on.
type Dependencies struct {
	Sessions  *session.Manager
	Workflow  workflowhandler.WorkflowClient
	ImageHost imagehandler.ImageHost
	Catalog   databasehandler.CatalogService
	ChatStore interface {
		databasehandler.ChatStore
		chathandler.ChatStore
	}
	Messenger messaginghandler.Messenger
	Gateway   agenthandler.Gateway
}

func NewProvider(cfg *config.Config, deps Dependencies, log zerolog.Logger) *Provider {
	return &Provider{
		Auth:      authhandler.NewAuthHandler(deps.Sessions, log),
		Workflow:  workflowhandler.NewWorkflowHandler(deps.Workflow, log),
		Image:     imagehandler.NewImageHandler(deps.ImageHost, log),
		Database:  databasehandler.NewDatabaseHandler(deps.Catalog, deps.ChatStore, log),
		Messaging: messaginghandler.NewMessagingHandler(deps.Messenger, log),
		Agent:     agenthandler.NewAgentHandler(deps.Gateway, cfg.AgentModel, log),
		Chat:      chathandler.NewChatHandler(deps.ChatStore, log),
	}
}
