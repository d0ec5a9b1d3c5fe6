package config

import (
	"os"
)

type Config struct {
	Environment string
	ServerPort  string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string

	// Server-to-server secrets. Opaque strings, never logged.
	CronSecret        string
	InternalPushToken string

	// Report job wiring
	ReportJobURL string
	AdminEmail   string

	// Web Push (VAPID)
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushSubscriber  string

	// Email
	ResendAPIKey string
	MailFrom     string

	// Service worker cache generation. Bumping it invalidates every
	// previously cached entry on the next activation.
	CacheVersionTag string
}

func Load() (*Config, error) {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      5432,
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "fitcoach"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		CronSecret:        getEnv("CRON_SECRET", ""),
		InternalPushToken: getEnv("INTERNAL_PUSH_TOKEN", ""),

		ReportJobURL: getEnv("REPORT_JOB_URL", "http://localhost:8080/jobs/weekly-report"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		PushSubscriber:  getEnv("PUSH_SUBSCRIBER", "mailto:coach@fitcoach.app"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "FitCoach <reports@fitcoach.app>"),

		CacheVersionTag: getEnv("CACHE_VERSION_TAG", "fitcoach-v1"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
