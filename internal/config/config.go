package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageFile  = "file"
	StorageMySQL = "mysql"
	StorageRedis = "redis"
)

type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Templates TemplatesConfig `mapstructure:"templates"`
	OpenTDB   OpenTDBConfig   `mapstructure:"opentdb"`
}

type DataConfig struct {
	QuestionsDirectory string `mapstructure:"questions_directory" validate:"required"`
	LeaderboardPath    string `mapstructure:"leaderboard_path" validate:"required"`
}

type QuizConfig struct {
	DefaultCategory string `mapstructure:"default_category" validate:"required"`
	DefaultLimit    int    `mapstructure:"default_limit" validate:"gte=1"`
	PauseMs         int    `mapstructure:"pause_ms" validate:"gte=0"`
}

// Pause is the delay between two questions.
func (c QuizConfig) Pause() time.Duration {
	return time.Duration(c.PauseMs) * time.Millisecond
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file mysql redis"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
	RetryAttempts   uint              `mapstructure:"retry_attempts" validate:"gte=1"`
	RetryDelayMs    int               `mapstructure:"retry_delay_ms" validate:"gte=0"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Key      string `mapstructure:"key"`
}

type TemplatesConfig struct {
	// Optional. The embedded template is used when empty.
	LeaderboardTemplate string `mapstructure:"leaderboard_template" validate:"omitempty,file"`
}

type OpenTDBConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/trivia")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("data.questions_directory", "data")
	v.SetDefault("data.leaderboard_path", "leaderboard.jsonl")
	v.SetDefault("quiz.default_category", "general")
	v.SetDefault("quiz.default_limit", 10)
	v.SetDefault("quiz.pause_ms", 500)
	v.SetDefault("storage.backend", StorageFile)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "trivia")
	v.SetDefault("database.username", "trivia")
	v.SetDefault("database.retry_attempts", 3)
	v.SetDefault("database.retry_delay_ms", 200)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key", "trivia:leaderboard")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.leaderboard_template", "")
	v.SetDefault("opentdb.base_url", "https://opentdb.com")
	v.SetDefault("opentdb.cache_directory", filepath.Join("cache", "opentdb"))
	v.SetDefault("opentdb.retry_attempts", 3)

	// Secrets are read from environment variables only
	if err := v.BindEnv("database.password", "TRIVIA_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIVIA_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("redis.password", "TRIVIA_REDIS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIVIA_REDIS_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("storage.backend", "TRIVIA_STORAGE_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIVIA_STORAGE_BACKEND environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
