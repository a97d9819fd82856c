package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSRegion      string

	// AccessTokenSecret signs and verifies every bearer token. Issuance and
	// verification share this single value.
	AccessTokenSecret string
	AccessTokenTTL    time.Duration

	StripeSecretKey string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// RequireOrderAuth gates POST /order and GET /order/{id} behind a valid
	// credential. Off by default for compatibility with existing clients.
	RequireOrderAuth bool

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users    string
	Parts    string
	Orders   string
	Reviews  string
	Payments string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "5000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			Parts:    getEnv("DYNAMO_TABLE_PARTS", "parts"),
			Orders:   getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Reviews:  getEnv("DYNAMO_TABLE_REVIEWS", "reviews"),
			Payments: getEnv("DYNAMO_TABLE_PAYMENTS", "payments"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "car-parts-images"),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),
		AccessTokenSecret: getEnv("ACCESS_TOKEN_SECRET", ""),
		AccessTokenTTL:    getEnvDuration("ACCESS_TOKEN_TTL", time.Hour),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		RequireOrderAuth: getEnvBool("REQUIRE_ORDER_AUTH", false),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
