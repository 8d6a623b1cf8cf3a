package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DATE_FORMAT = "2006-01-02"
	CURRENCY    = "usd"
)

type Config struct {
	ApiEnv          string
	Port            string
	CorsOrigins     []string
	StoreDriver     string
	SqlitePath      string
	MongoURL        string
	DBName          string
	RedisHost       string
	StripeSecretKey string
	WebhookSecret   string
	ProviderTimeout time.Duration
	SweepInterval   time.Duration
	SweepMinAge     time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SESRegion       string
	ContactEmail    string
}

// const dsn = "host=localhost user=postgres password=password dbname=villasdb port=5432 sslmode=disable TimeZone=UTC"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// Load reads the process environment. Missing values fall back to local defaults.
func Load() *Config {
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		stripeKey = os.Getenv("STRIPE_API_KEY")
	}
	return &Config{
		ApiEnv:          getEnv("API_ENV", "local"),
		Port:            getEnv("PORT", "8001"),
		CorsOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		StoreDriver:     getEnv("STORE_DRIVER", "postgres"),
		SqlitePath:      getEnv("SQLITE_PATH", "villas.db"),
		MongoURL:        os.Getenv("MONGO_URL"),
		DBName:          getEnv("DB_NAME", "villas"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		StripeSecretKey: stripeKey,
		WebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 10*time.Second),
		SweepInterval:   getDuration("SWEEP_INTERVAL", 5*time.Minute),
		SweepMinAge:     getDuration("SWEEP_MIN_AGE", 10*time.Minute),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getInt("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        getEnv("SMTP_FROM", "reservations@apolloshideaway.com"),
		SESRegion:       os.Getenv("AWS_SES_REGION"),
		ContactEmail:    getEnv("CONTACT_RECIPIENT", "hello@apolloshideaway.com"),
	}
}

func (c *Config) IsLocal() bool {
	return c.ApiEnv == "local"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
