package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds all application configuration.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	Database DatabaseConfig
	Redis    RedisConfig
	Quote    QuoteConfig
	Session  SessionConfig

	StartingCash decimal.Decimal
	BcryptCost   int
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the libpq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QuoteConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "finance")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_timezone", "UTC")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("quote_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("quote_timeout", 10*time.Second)
	v.SetDefault("quote_cache_ttl", time.Minute)

	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("session_secure_cookie", false)

	v.SetDefault("starting_cash", "10000.00")
	v.SetDefault("bcrypt_cost", 10)

	// API_KEY takes precedence over ALPHA_VANTAGE_API_KEY.
	v.BindEnv("quote_api_key", "API_KEY", "ALPHA_VANTAGE_API_KEY")
	v.BindEnv("session_secret", "SESSION_SECRET", "JWT_SECRET")

	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cash, err := decimal.NewFromString(v.GetString("starting_cash"))
	if err != nil {
		return nil, fmt.Errorf("STARTING_CASH: %w", err)
	}
	if cash.IsNegative() {
		return nil, fmt.Errorf("STARTING_CASH must not be negative")
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		GinMode:  v.GetString("gin_mode"),
		LogLevel: v.GetString("log_level"),
		Database: DatabaseConfig{
			Host:            v.GetString("db_host"),
			Port:            v.GetString("db_port"),
			User:            v.GetString("db_user"),
			Password:        v.GetString("db_password"),
			Name:            v.GetString("db_name"),
			SSLMode:         v.GetString("db_sslmode"),
			TimeZone:        v.GetString("db_timezone"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Quote: QuoteConfig{
			APIKey:   strings.TrimSpace(v.GetString("quote_api_key")),
			BaseURL:  v.GetString("quote_base_url"),
			Timeout:  v.GetDuration("quote_timeout"),
			CacheTTL: v.GetDuration("quote_cache_ttl"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("session_secret"),
			TTL:          v.GetDuration("session_ttl"),
			SecureCookie: v.GetBool("session_secure_cookie"),
		},
		StartingCash: cash,
		BcryptCost:   v.GetInt("bcrypt_cost"),
	}

	if cfg.Quote.APIKey == "" {
		return nil, fmt.Errorf("API_KEY not set")
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET not set")
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// OpenDB connects to PostgreSQL and configures the pool. SQL logging goes
// through the application logger.
func OpenDB(cfg DatabaseConfig, l *log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(l, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return rdb, nil
}
