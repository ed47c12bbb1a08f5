package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig holds settings of the operational HTTP server (health probes).
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WorkflowConfig holds approval workflow rules.
type WorkflowConfig struct {
	// ClaimTimeout is how long a claim may sit untouched before the sweep
	// returns the budget to its pending queue.
	ClaimTimeout       time.Duration `yaml:"claim_timeout"        env:"WORKFLOW_CLAIM_TIMEOUT"        env-default:"30m"`
	ReleaseInterval    time.Duration `yaml:"release_interval"     env:"WORKFLOW_RELEASE_INTERVAL"     env-default:"5m"`
	MinCommentLength   int           `yaml:"min_comment_length"   env:"WORKFLOW_MIN_COMMENT_LENGTH"   env-default:"10"`
	MinReferenceLength int           `yaml:"min_reference_length" env:"WORKFLOW_MIN_REFERENCE_LENGTH" env-default:"3"`
}

// CacheConfig holds read-model cache settings.
type CacheConfig struct {
	DashboardTTL  time.Duration `yaml:"dashboard_ttl"  env:"CACHE_DASHBOARD_TTL"  env-default:"1m"`
	DashboardSize int           `yaml:"dashboard_size" env:"CACHE_DASHBOARD_SIZE" env-default:"64"`
}
