package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Admin
		Seed
		Audit
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Admin struct {
		Username string
		Password string
	}
	Seed struct {
		DemoData bool
	}
	Audit struct {
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("seed_demo_data", true)
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("port"),
			Host: v.GetString("host"),
		},
		Database: Database{
			Path: v.GetString("database_path"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("jwt_secret"),
			TokenTTL:   v.GetDuration("token_ttl"),
			BcryptCost: v.GetInt("bcrypt_cost"),
		},
		Admin: Admin{
			Username: v.GetString("admin_username"),
			Password: v.GetString("admin_password"),
		},
		Seed: Seed{
			DemoData: v.GetBool("seed_demo_data"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("audit_retention_days"),
			CleanupSchedule: v.GetString("audit_cleanup_schedule"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("shutdown_timeout_in_seconds"),
		},
	}
}
