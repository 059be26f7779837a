package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	HTTPAddr string
	MySQL    MySQLConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds session cookie and store configuration
type SessionConfig struct {
	Secret   string
	Lifetime time.Duration
}

// CORSConfig holds the allowed browser origins
type CORSConfig struct {
	Origins []string
}

// Local development frontends. Credentialed requests are only accepted from
// these origins.
var defaultOrigins = []string{
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
	"http://localhost:5173",
	"http://localhost:5174",
}

// Load loads configuration with precedence env > INI file > default. The INI
// file path is taken from DASHBOARD_CONFIG and is optional. A .env file in
// the working directory is applied first if present.
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	var cfgFile *ini.File
	if path := os.Getenv("DASHBOARD_CONFIG"); path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return nil, err
		}
		cfgFile = f
	}

	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if cfgFile != nil {
			if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
				return value
			}
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile != nil && cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	cfg := &Config{
		HTTPAddr: getValue("HTTP_ADDR", "http", "addr", ":8080"),
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn",
				"root@tcp(127.0.0.1:3306)/server_dashboard?charset=utf8mb4&parseTime=True&loc=Local"),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "pass", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		Session: SessionConfig{
			Secret:   getValue("SECRET_KEY", "session", "secret", "dev-secret-key-change-in-production"),
			Lifetime: time.Duration(getValueInt("SESSION_LIFETIME_HOURS", "session", "lifetime_hours", 24)) * time.Hour,
		},
		CORS: CORSConfig{
			Origins: defaultOrigins,
		},
	}

	return cfg, nil
}
