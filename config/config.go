package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	defaultAccessSecret = "your-very-strong-access-secret"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV"      envDefault:"development"`
		Port        string `env:"PORT"         envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
		LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
		Store       string `env:"STORE"        envDefault:"postgres"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"livescore_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"         envDefault:"your-very-strong-access-secret"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"15"`
	}
	Realtime struct {
		ClientBuffer     int `env:"REALTIME_CLIENT_BUFFER"     envDefault:"16"`
		HeartbeatSeconds int `env:"REALTIME_HEARTBEAT_SECONDS" envDefault:"15"`
	}
}

// Global DB instance, set by ConnectDB. Nil when the memory store is used.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig reads .env (if present) and the process environment into a
// Config.
func LoadConfig() (*Config, error) {
	// It's okay if .env doesn't exist, production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, relying on system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.App.Store = strings.ToLower(cfg.App.Store)
	if cfg.App.Store != StorePostgres && cfg.App.Store != StoreMemory {
		return nil, fmt.Errorf("invalid STORE %q: want %q or %q", cfg.App.Store, StorePostgres, StoreMemory)
	}
	if cfg.JWT.AccessTokenExpiryMinutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %d", cfg.JWT.AccessTokenExpiryMinutes)
	}

	if cfg.JWT.AccessTokenSecret == defaultAccessSecret {
		slog.Warn("using the default JWT secret; set JWT_ACCESS_TOKEN_SECRET for production")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" && cfg.App.Store == StorePostgres {
		slog.Warn("using the default DB password in production; set DB_PASSWORD")
	}

	appConfig = cfg
	return cfg, nil
}

// NewLogger builds the process logger: readable text in development, JSON
// everywhere else.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.App.Env == "development" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// DSN is the postgres connection string for cfg.
func (cfg *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)
}

// ConnectDB opens the postgres connection and sets the global DB.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dbCfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	slog.Info("connected to database", "host", dbCfg.DB.Host, "name", dbCfg.DB.Name)
	return gormDB, nil
}

// Initialize loads the configuration and, for the postgres store, connects
// to the database. Only the first call does any work.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		slog.SetDefault(NewLogger(loadedCfg, os.Stderr))

		if loadedCfg.App.Store != StorePostgres {
			return
		}
		if _, err = ConnectDB(*loadedCfg); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration. It panics if
// Initialize has not run.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config: configuration not loaded, call config.Initialize() first")
	}
	return appConfig
}
