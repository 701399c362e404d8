// Package config defines all configuration structures for the
// listing-intelligence service.  No I/O or parsing logic lives here — only
// plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds Kafka producer/consumer parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	AutoOffsetReset string        `mapstructure:"auto_offset_reset"` // "earliest" | "latest"
	SessionTimeout  time.Duration `mapstructure:"session_timeout"`
	CommitInterval  time.Duration `mapstructure:"commit_interval"`
	ProducerRetries int           `mapstructure:"producer_retries"`
	BatchSize       int           `mapstructure:"batch_size"`
}

// IntelligenceConfig holds the tunables of the scoring pipeline that are
// deployment-specific rather than algorithmic constants.
type IntelligenceConfig struct {
	// ComparableSampleLimit caps the number of same-city listings fed into
	// the market price estimator.
	ComparableSampleLimit int `mapstructure:"comparable_sample_limit"`

	// ProfileCacheTTL bounds how long a cached profile is served from Redis
	// before falling through to the store.
	ProfileCacheTTL time.Duration `mapstructure:"profile_cache_ttl"`
}

// WorkerConfig holds async-worker tunables.
type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	HealthPort  int           `mapstructure:"health_port"`
	DrainGrace  time.Duration `mapstructure:"drain_grace"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration object.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Intelligence IntelligenceConfig `mapstructure:"intelligence"`
	Worker       WorkerConfig       `mapstructure:"worker"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Logging      logging.LogConfig  `mapstructure:"logging"`
}

// Validate checks the configuration for values that would prevent the
// service from operating.  Defaults are assumed to have been applied first.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.db_name is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("kafka.group_id is required")
	}
	if c.Intelligence.ComparableSampleLimit <= 0 {
		return fmt.Errorf("intelligence.comparable_sample_limit must be positive")
	}
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker.concurrency must be positive")
	}
	return nil
}
