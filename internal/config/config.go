package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBMaxConns    int    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int    `mapstructure:"DB_MIN_CONNS"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`

	RequestsTable        string `mapstructure:"REQUESTS_TABLE"`
	PaymentsTable        string `mapstructure:"PAYMENTS_TABLE"`
	PaymentAttemptsTable string `mapstructure:"PAYMENT_ATTEMPTS_TABLE"`
	WebhookEventsTable   string `mapstructure:"WEBHOOK_EVENTS_TABLE"`
	AuditLogsTable       string `mapstructure:"AUDIT_LOGS_TABLE"`
	SavedCardsTable      string `mapstructure:"SAVED_CARDS_TABLE"`
	PricesTable          string `mapstructure:"PRICES_TABLE"`

	S3Endpoint             string `mapstructure:"S3_ENDPOINT"`
	DocumentsBucket        string `mapstructure:"DOCUMENTS_BUCKET"`
	DocumentsPublicBaseURL string `mapstructure:"DOCUMENTS_PUBLIC_BASE_URL"`

	MercadoPagoAccessToken   string        `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	MercadoPagoWebhookSecret string        `mapstructure:"MERCADOPAGO_WEBHOOK_SECRET"`
	PaymentGatewayMock       bool          `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	WebhookClaimTTL          time.Duration `mapstructure:"WEBHOOK_CLAIM_TTL"`

	AIGateURL      string        `mapstructure:"AI_GATE_URL"`
	AIGateAPIKey   string        `mapstructure:"AI_GATE_API_KEY"`
	AIGateTimeout  time.Duration `mapstructure:"AI_GATE_TIMEOUT"`
	AIAnalysisSync bool          `mapstructure:"AI_ANALYSIS_SYNC"`

	PriceTable      string `mapstructure:"PRICE_TABLE"`
	PricesFromStore bool   `mapstructure:"PRICES_FROM_STORE"`

	AutoDeliver      bool   `mapstructure:"AUTO_DELIVER"`
	SigningSecret    string `mapstructure:"SIGNING_SECRET"`
	VerifyBaseURL    string `mapstructure:"VERIFY_BASE_URL"`
	VideoRoomBaseURL string `mapstructure:"VIDEO_ROOM_BASE_URL"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORAGE_DRIVER", StorageDynamoDB)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("REQUESTS_TABLE", "medical_requests")
	v.SetDefault("PAYMENTS_TABLE", "payments")
	v.SetDefault("PAYMENT_ATTEMPTS_TABLE", "payment_attempts")
	v.SetDefault("WEBHOOK_EVENTS_TABLE", "webhook_events")
	v.SetDefault("AUDIT_LOGS_TABLE", "audit_logs")
	v.SetDefault("SAVED_CARDS_TABLE", "saved_cards")
	v.SetDefault("PRICES_TABLE", "prices")
	v.SetDefault("PAYMENT_GATEWAY_MOCK", false)
	v.SetDefault("WEBHOOK_CLAIM_TTL", 2*time.Minute)
	v.SetDefault("AI_GATE_TIMEOUT", 30*time.Second)
	v.SetDefault("AI_ANALYSIS_SYNC", true)
	v.SetDefault("PRICES_FROM_STORE", false)
	v.SetDefault("AUTO_DELIVER", false)
	v.SetDefault("VERIFY_BASE_URL", "http://localhost:8080/v1/verify")

	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"DATABASE_URL", "DYNAMODB_ENDPOINT", "S3_ENDPOINT", "DOCUMENTS_BUCKET", "DOCUMENTS_PUBLIC_BASE_URL",
		"MERCADOPAGO_ACCESS_TOKEN", "MERCADOPAGO_WEBHOOK_SECRET", "AI_GATE_URL", "AI_GATE_API_KEY",
		"PRICE_TABLE", "SIGNING_SECRET", "VIDEO_ROOM_BASE_URL", "JWT_SECRET",
	} {
		_ = v.BindEnv(key)
	}

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	return cfg, nil
}

// IsDev returns true if the environment is development.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the combination of settings can start the service.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.IsProduction() {
		if !c.PaymentGatewayMock && c.MercadoPagoAccessToken == "" {
			return fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is required in production unless PAYMENT_GATEWAY_MOCK is set")
		}
		if c.StorageDriver == StorageMemory {
			return fmt.Errorf("STORAGE_DRIVER=memory is not allowed in production")
		}
	}
	return nil
}
