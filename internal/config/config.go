package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
	JWT      JWTConfig
	Scoring  ScoringConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// DatabaseConfig points at the hosted primary backend. URL may be empty,
// in which case the process runs against the local file fallback only.
type DatabaseConfig struct {
	URL string
}

// StorageConfig locates the local fallback files.
type StorageConfig struct {
	DataDir string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type ScoringConfig struct {
	// MaxConcurrent caps in-flight external model calls for async scoring.
	MaxConcurrent int64
	CallTimeout   time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml (if present) and environment variables.
// A .env file is honored the same way the original deployment expected.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 10)
	viper.SetDefault("storage.data_dir", ".")
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("jwt.access_token_ttl_minutes", 60*24*7)
	viper.SetDefault("scoring.max_concurrent", 4)
	viper.SetDefault("scoring.call_timeout", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Database: DatabaseConfig{URL: viper.GetString("database.url")},
		Storage:  StorageConfig{DataDir: viper.GetString("storage.data_dir")},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("gemini.api_key"),
			Model:  viper.GetString("gemini.model"),
		},
		JWT: JWTConfig{
			SecretKey:      viper.GetString("jwt.secret_key"),
			AccessTokenTTL: time.Duration(viper.GetInt("jwt.access_token_ttl_minutes")) * time.Minute,
		},
		Scoring: ScoringConfig{
			MaxConcurrent: viper.GetInt64("scoring.max_concurrent"),
			CallTimeout:   time.Duration(viper.GetInt("scoring.call_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment variables win over file values.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		cfg.JWT.SecretKey = secret
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Logger.Env = env
	}

	// Without a fixed secret every restart invalidates outstanding tokens.
	if cfg.JWT.SecretKey == "" {
		secret, err := randomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		cfg.JWT.SecretKey = secret
	}

	if cfg.Scoring.MaxConcurrent <= 0 {
		cfg.Scoring.MaxConcurrent = 4
	}

	return cfg, nil
}

func randomSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
