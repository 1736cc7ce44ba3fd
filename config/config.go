package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorageMemory  = "memory"
	StorageMySQL   = "mysql"
	StorageMongoDB = "mongodb"
)

// Config Application Configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Uniqueness UniquenessConfig `mapstructure:"uniqueness"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig Application Configuration
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// StorageConfig selects and configures the user repository backend
type StorageConfig struct {
	Type    string        `mapstructure:"type"` // memory, mysql, mongodb
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Retry   RetryConfig   `mapstructure:"retry"`
}

// MySQLConfig MySQL connection configuration
type MySQLConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"` // silent, error, warn, info
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
	LogParams       bool          `mapstructure:"log_params"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// MongoDBConfig MongoDB connection configuration
type MongoDBConfig struct {
	URI           string        `mapstructure:"uri"`
	Database      string        `mapstructure:"database"`
	Collection    string        `mapstructure:"collection"`
	Timeout       time.Duration `mapstructure:"timeout"`
	EnsureIndexes bool          `mapstructure:"ensure_indexes"`
}

// RetryConfig Retry configuration for transient storage failures
type RetryConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	InitialDelay       time.Duration `mapstructure:"initial_delay"`
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	BackoffFactor      float64       `mapstructure:"backoff_factor"`
	JitterEnabled      bool          `mapstructure:"jitter_enabled"`
	RetryOnDeadlock    bool          `mapstructure:"retry_on_deadlock"`
	RetryOnLockTimeout bool          `mapstructure:"retry_on_lock_timeout"`
	RetryOnNetwork     bool          `mapstructure:"retry_on_network"`
}

// LogConfig Log Configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, stderr, file
	FilePath string `mapstructure:"file_path"`

	// Rotation of file output
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// FilterConfig Filter evaluation configuration
type FilterConfig struct {
	RegexTimeout time.Duration `mapstructure:"regex_timeout"`
}

// UniquenessConfig controls how a unique-field lookup that matches more
// than one user is treated
type UniquenessConfig struct {
	Strict bool `mapstructure:"strict"`
}

// CacheConfig Redis cache for lookups by id
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MetricsConfig Prometheus collectors for storage operations
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// IsDevelopment Whether it's development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction Whether it's production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate rejects settings the builder cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageMySQL, StorageMongoDB:
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.Storage.Type == StorageMongoDB && c.Storage.MongoDB.URI == "" {
		return errors.New("storage.mongodb.uri is required")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return errors.New("cache.addr is required when the cache is enabled")
	}
	switch c.Log.Output {
	case "", "stdout", "stderr":
	case "file":
		if c.Log.FilePath == "" {
			return errors.New("log.file_path is required for file output")
		}
	default:
		return fmt.Errorf("unsupported log output %q", c.Log.Output)
	}
	if c.Filter.RegexTimeout <= 0 {
		return errors.New("filter.regex_timeout must be positive")
	}
	return nil
}

// Load Load Configuration
func Load(configPath string) (*Config, error) {
	// .env in the working directory, if present; never overrides variables
	// that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configuration file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read environment variables
	v.SetEnvPrefix("FP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Use default values when config file doesn't exist
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults Set default configuration
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "flexible-project")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// Storage
	v.SetDefault("storage.type", StorageMemory)

	v.SetDefault("storage.mysql.host", "localhost")
	v.SetDefault("storage.mysql.port", "3306")
	v.SetDefault("storage.mysql.username", "root")
	v.SetDefault("storage.mysql.password", "")
	v.SetDefault("storage.mysql.database", "flexible_project")
	v.SetDefault("storage.mysql.max_open_conns", 25)
	v.SetDefault("storage.mysql.max_idle_conns", 5)
	v.SetDefault("storage.mysql.conn_max_lifetime", "5m")
	v.SetDefault("storage.mysql.log_level", "warn")
	v.SetDefault("storage.mysql.slow_threshold", "200ms")
	v.SetDefault("storage.mysql.log_params", false)
	v.SetDefault("storage.mysql.auto_migrate", true)

	v.SetDefault("storage.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongodb.database", "flexible_project")
	v.SetDefault("storage.mongodb.collection", "users")
	v.SetDefault("storage.mongodb.timeout", "10s")
	v.SetDefault("storage.mongodb.ensure_indexes", true)

	// Retry configuration defaults
	v.SetDefault("storage.retry.enabled", true)
	v.SetDefault("storage.retry.max_attempts", 3)
	v.SetDefault("storage.retry.initial_delay", "100ms")
	v.SetDefault("storage.retry.max_delay", "2s")
	v.SetDefault("storage.retry.backoff_factor", 2.0)
	v.SetDefault("storage.retry.jitter_enabled", true)
	v.SetDefault("storage.retry.retry_on_deadlock", true)
	v.SetDefault("storage.retry.retry_on_lock_timeout", true)
	v.SetDefault("storage.retry.retry_on_network", true)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/app.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)

	// Filter
	v.SetDefault("filter.regex_timeout", "500ms")

	// Uniqueness
	v.SetDefault("uniqueness.strict", false)

	// Cache
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.ttl", "5m")

	// Metrics
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "flexible_project")
}
