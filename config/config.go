package config

import (
	"errors"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	MaxFileSize       int64
	DatabasePath      string
	LogLevel          string
	LogFormat         string
}

// envBindings maps viper keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":          "SERVER_PORT",
	"tesseract.data_path":  "TESSDATA_PREFIX",
	"upload.max_file_size": "MAX_FILE_SIZE",
	"database.path":        "DATABASE_PATH",
	"logging.level":        "LOG_LEVEL",
	"logging.format":       "LOG_FORMAT",
}

// SetDefaults registers defaults and env bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("tesseract.data_path", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("upload.max_file_size", 10*1024*1024) // 10 MB
	v.SetDefault("database.path", "./data/bills.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

// LoadConfig reads .env, an optional config.yaml in the working directory, and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("failed to read config file, using defaults", "error", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		ServerPort:        v.GetString("server.port"),
		TesseractDataPath: v.GetString("tesseract.data_path"),
		MaxFileSize:       v.GetInt64("upload.max_file_size"),
		DatabasePath:      v.GetString("database.path"),
		LogLevel:          v.GetString("logging.level"),
		LogFormat:         v.GetString("logging.format"),
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	return cfg
}
