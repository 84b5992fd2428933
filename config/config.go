package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is the one fatal startup condition.
var ErrMissingDatabaseURL = errors.New("database.url is required (STORE_DATABASE_URL)")

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Local    LocalConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Admin    AdminConfig
	Orders   OrdersConfig
	WhatsApp WhatsAppConfig
	Log      LogConfig
}

type AppConfig struct {
	Env        string
	ListenAddr string
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// LocalConfig selects the device-local key/value store.
type LocalConfig struct {
	Driver     string // sqlite, redis, memory
	SQLitePath string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
	Timeout  time.Duration
}

type AdminConfig struct {
	// bcrypt hash of the shared admin secret; empty uses the built-in secret
	PasswordHash string
}

type OrdersConfig struct {
	PollInterval time.Duration
}

type WhatsAppConfig struct {
	Number string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads config.yaml (optional) and STORE_* environment variables.
// Environment wins over the file, the file over built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:        v.GetString("app.env"),
			ListenAddr: v.GetString("app.listen_addr"),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("database.url"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
		},
		Local: LocalConfig{
			Driver:     v.GetString("local.driver"),
			SQLitePath: v.GetString("local.sqlite_path"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram.bot_token"),
			ChatID:   v.GetString("telegram.chat_id"),
			APIBase:  v.GetString("telegram.api_base"),
			Timeout:  v.GetDuration("telegram.timeout"),
		},
		Admin: AdminConfig{
			PasswordHash: v.GetString("admin.password_hash"),
		},
		Orders: OrdersConfig{
			PollInterval: v.GetDuration("orders.poll_interval"),
		},
		WhatsApp: WhatsAppConfig{
			Number: v.GetString("whatsapp.number"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.ListenAddr == "" {
		cfg.App.ListenAddr = "127.0.0.1:8080"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Local.Driver == "" {
		cfg.Local.Driver = "sqlite"
	}
	if cfg.Local.SQLitePath == "" {
		cfg.Local.SQLitePath = "./storefront.db"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "storefront:"
	}
	if cfg.Telegram.APIBase == "" {
		cfg.Telegram.APIBase = "https://api.telegram.org"
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 10 * time.Second
	}
	if cfg.Orders.PollInterval == 0 {
		cfg.Orders.PollInterval = 15 * time.Second
	}
	if cfg.WhatsApp.Number == "" {
		cfg.WhatsApp.Number = "77004170411"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	switch c.Local.Driver {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("local.driver must be one of sqlite, redis, memory; got %q", c.Local.Driver)
	}
	if c.Orders.PollInterval < 0 {
		return fmt.Errorf("orders.poll_interval cannot be negative")
	}
	return nil
}

// TelegramEnabled reports whether both bot token and chat id are present.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
