// config/config.go
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and passed by value into every component.
type Config struct {
	Port          string
	DatabaseURL   string
	AdminPassword string

	Backup BackupConfig
}

// BackupConfig controls the periodic player snapshot upload (R2 / any S3-compatible store).
type BackupConfig struct {
	Interval        time.Duration
	Bucket          string
	Prefix          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether the scheduled backup job should run.
func (b BackupConfig) Enabled() bool {
	return b.Interval > 0 && b.Bucket != ""
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Backup: BackupConfig{
			Interval:        getEnvDuration("BACKUP_INTERVAL", 0),
			Bucket:          os.Getenv("BACKUP_BUCKET"),
			Prefix:          getEnv("BACKUP_PREFIX", "player snapshots"),
			Endpoint:        os.Getenv("BACKUP_ENDPOINT"),
			Region:          getEnv("BACKUP_REGION", "auto"),
			AccessKeyID:     os.Getenv("BACKUP_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("BACKUP_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DatabaseURL == "" {
		log.Println("⚠️  DATABASE_URL not set, every store request will fail with 500")
	}
	if cfg.AdminPassword == "" {
		log.Println("⚠️  ADMIN_PASSWORD not set, the admin surface will reject every request")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  invalid %s=%q, using %s: %v", key, raw, fallback, err)
		return fallback
	}
	return d
}
