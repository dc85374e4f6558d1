package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config groups the application configuration, read via Viper from the
// environment (optionally seeded by a .env file loaded in main).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	JWT  JWTConfig
	Mail MailConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig settings for the HTTP server.
type HTTPConfig struct {
	Port           int
	AllowedOrigins []string
}

// DBConfig PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the connection string for gorm's postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret   string
	ExpHours int
}

// MailConfig transactional email provider settings.
type MailConfig struct {
	ProviderURL string
	APIKey      string
	From        string
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "api-portal")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("JWT_EXP_HOURS", 24)
	v.SetDefault("MAIL_FROM", "no-reply@meridianadvisory.com")

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			ExpHours: v.GetInt("JWT_EXP_HOURS"),
		},
		Mail: MailConfig{
			ProviderURL: v.GetString("MAIL_PROVIDER_URL"),
			APIKey:      v.GetString("MAIL_API_KEY"),
			From:        v.GetString("MAIL_FROM"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}
