package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Email      EmailConfig
	Scheduling SchedulingConfig
	Notify     NotifyConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	MeetingLink string
}

// SchedulingConfig dipakai slot resolver dan renderer email.
type SchedulingConfig struct {
	DefaultTimezone string
	OverlapPolicy   string
}

type NotifyConfig struct {
	Workers   int
	QueueSize int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration

	// Proxies allowed to set X-Forwarded-For; empty means RemoteAddr is used as-is.
	TrustedProxies []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "meeting-scheduler")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("SLOT_OVERLAP_POLICY", "interval")
	viper.SetDefault("NOTIFY_WORKERS", 2)
	viper.SetDefault("NOTIFY_QUEUE_SIZE", 100)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// .env optional, environment variables tetap dibaca
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:        viper.GetString("SMTP_HOST"),
			Port:        viper.GetInt("SMTP_PORT"),
			User:        viper.GetString("SMTP_USER"),
			Password:    viper.GetString("SMTP_PASS"),
			From:        viper.GetString("EMAIL_FROM"),
			MeetingLink: viper.GetString("MEETING_LINK"),
		},
		Scheduling: SchedulingConfig{
			DefaultTimezone: viper.GetString("DEFAULT_TIMEZONE"),
			OverlapPolicy:   viper.GetString("SLOT_OVERLAP_POLICY"),
		},
		Notify: NotifyConfig{
			Workers:   viper.GetInt("NOTIFY_WORKERS"),
			QueueSize: viper.GetInt("NOTIFY_QUEUE_SIZE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Limit:          viper.GetInt("RATE_LIMIT"),
			Window:         time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
			TrustedProxies: splitCSV(viper.GetString("TRUSTED_PROXIES")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
