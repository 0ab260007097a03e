package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all environment backed configuration for admin-api.
type Config struct {
	// Service
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"admin-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Observability
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Database
	DatabaseURL    string        `env:"DATABASE_URL,notEmpty"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// Session
	SessionSecret []byte        `env:"SESSION_SECRET,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	AdminUser     string        `env:"ADMIN_USER,notEmpty"`
	AdminPassword string        `env:"ADMIN_PASSWORD,notEmpty"`

	// Workflow engine (n8n webhook)
	WorkflowWebhookURL string        `env:"WORKFLOW_WEBHOOK_URL,notEmpty"`
	WorkflowToken      string        `env:"WORKFLOW_TOKEN"`
	WorkflowTimeout    time.Duration `env:"WORKFLOW_TIMEOUT" envDefault:"30s"`

	// Image host (Cloudinary-style signed API)
	ImageHostBaseURL string `env:"IMAGE_HOST_BASE_URL" envDefault:"https://api.cloudinary.com/v1_1"`
	ImageCloudName   string `env:"IMAGE_CLOUD_NAME,notEmpty"`
	ImageAPIKey      string `env:"IMAGE_API_KEY,notEmpty"`
	ImageAPISecret   string `env:"IMAGE_API_SECRET,notEmpty"`
	ImageFolder      string `env:"IMAGE_FOLDER" envDefault:"products"`

	// WhatsApp vendor API
	WhatsAppBaseURL     string        `env:"WHATSAPP_BASE_URL,notEmpty"`
	WhatsAppBearerToken string        `env:"WHATSAPP_BEARER_TOKEN,notEmpty"`
	WhatsAppQueryToken  string        `env:"WHATSAPP_QUERY_TOKEN"`
	ContactCacheTTL     time.Duration `env:"CONTACT_CACHE_TTL" envDefault:"30s"`

	// LLM gateway (agent tester)
	AgentGatewayURL string        `env:"AGENT_GATEWAY_URL,notEmpty"`
	AgentGatewayKey string        `env:"AGENT_GATEWAY_KEY"`
	AgentModel      string        `env:"AGENT_MODEL" envDefault:"gpt-4o-mini"`
	AgentTimeout    time.Duration `env:"AGENT_TIMEOUT" envDefault:"120s"`

	// Catalog maintenance
	StockReconcileEnabled bool `env:"STOCK_RECONCILE_ENABLED" envDefault:"true"`
	StockReconcileMinutes int  `env:"STOCK_RECONCILE_MINUTES" envDefault:"15"`
	LowStockThreshold     int  `env:"LOW_STOCK_THRESHOLD" envDefault:"5"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for name, value := range map[string]string{
		"WORKFLOW_WEBHOOK_URL": cfg.WorkflowWebhookURL,
		"IMAGE_HOST_BASE_URL":  cfg.ImageHostBaseURL,
		"WHATSAPP_BASE_URL":    cfg.WhatsAppBaseURL,
		"AGENT_GATEWAY_URL":    cfg.AgentGatewayURL,
	} {
		if _, err := url.ParseRequestURI(value); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if cfg.LowStockThreshold < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the metrics listener address.
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}
