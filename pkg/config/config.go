package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database  DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	LLM       LLMConfig       `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for digest generation"`
	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embedding configuration for topic narrowing"`
	Summary   SummaryConfig   `yaml:"summary" json:"summary" jsonschema:"description=Digest generation settings"`
	Schedule  ScheduleConfig  `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds sqlite connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:curator.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// LLMConfig holds LLM configuration for digest generation
type LLMConfig struct {
	Endpoint          string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey            string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model             string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature       float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation, 0 is deterministic"`
	MaxTokens         int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2m,description=Request timeout"`
	Retries           int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts for transient LLM failures"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute" jsonschema:"default=60,description=Rate limit for LLM requests, 0 disables"`
}

// EmbeddingConfig holds settings of the embedding model used by vector search
type EmbeddingConfig struct {
	Model     string `yaml:"model" json:"model" jsonschema:"default=text-embedding-3-small,description=Embedding model name"`
	CacheSize int    `yaml:"cache_size" json:"cache_size" jsonschema:"default=1000,description=Number of cached query embeddings"`
	MaxChars  int    `yaml:"max_chars" json:"max_chars" jsonschema:"default=4000,description=Maximum characters of article text embedded"`
	BatchSize int    `yaml:"batch_size" json:"batch_size" jsonschema:"default=20,description=Articles embedded per indexing run"`
}

// SummaryConfig holds digest generation settings
type SummaryConfig struct {
	PoolSize        int           `yaml:"pool_size" json:"pool_size" jsonschema:"default=50,minimum=1,description=Candidate pool size before topic narrowing"`
	DefaultMaxItems int           `yaml:"default_max_items" json:"default_max_items" jsonschema:"default=10,minimum=1,description=Articles per digest when user has no preference"`
	ExcerptChars    int           `yaml:"excerpt_chars" json:"excerpt_chars" jsonschema:"default=1000,minimum=100,description=Article excerpt size in the prompt"`
	KeyPhrases      int           `yaml:"key_phrases" json:"key_phrases" jsonschema:"default=3,description=Key phrases extracted for the title"`
	RecentWindow    time.Duration `yaml:"recent_window" json:"recent_window" jsonschema:"default=6h,description=Skip generation if a digest was created within this window, 0 disables"`
	LockPerUser     bool          `yaml:"lock_per_user" json:"lock_per_user" jsonschema:"default=true,description=Reject concurrent generation for the same user and digest type"`
}

// ScheduleConfig holds scheduler configuration
type ScheduleConfig struct {
	Cron           string        `yaml:"cron" json:"cron" jsonschema:"default=0 6 * * *,description=Cron expression for the digest batch"`
	WeeklyDay      string        `yaml:"weekly_day" json:"weekly_day" jsonschema:"default=monday,description=Weekday for weekly digests"`
	MonthlyDay     int           `yaml:"monthly_day" json:"monthly_day" jsonschema:"default=1,minimum=1,maximum=28,description=Day of month for monthly digests"`
	MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent digest generations"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout" jsonschema:"default=5m,description=Timeout for a single user digest"`
	IndexInterval  time.Duration `yaml:"index_interval" json:"index_interval" jsonschema:"default=10m,description=How often new articles are embedded"`
	RetentionDays  int           `yaml:"retention_days" json:"retention_days" jsonschema:"default=30,description=Days to keep digests"`
	CleanupCron    string        `yaml:"cleanup_cron" json:"cleanup_cron" jsonschema:"default=30 3 * * 0,description=Cron expression for digest retention cleanup"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := baseConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// baseConfig holds defaults for fields where zero is a meaningful value.
// yaml keeps them unless the key is present in the file.
func baseConfig() Config {
	return Config{
		LLM:     LLMConfig{Temperature: 0.7},
		Summary: SummaryConfig{RecentWindow: 6 * time.Hour, LockPerUser: true},
	}
}

func setDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:curator.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for LLM
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 2 * time.Minute
	}
	if cfg.LLM.Retries == 0 {
		cfg.LLM.Retries = 3
	}

	// set defaults for embeddings
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}
	if cfg.Embedding.MaxChars == 0 {
		cfg.Embedding.MaxChars = 4000
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = 20
	}

	// set defaults for summary generation
	if cfg.Summary.PoolSize == 0 {
		cfg.Summary.PoolSize = 50
	}
	if cfg.Summary.DefaultMaxItems == 0 {
		cfg.Summary.DefaultMaxItems = 10
	}
	if cfg.Summary.ExcerptChars == 0 {
		cfg.Summary.ExcerptChars = 1000
	}
	if cfg.Summary.KeyPhrases == 0 {
		cfg.Summary.KeyPhrases = 3
	}

	// set defaults for schedule
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 6 * * *"
	}
	if cfg.Schedule.WeeklyDay == "" {
		cfg.Schedule.WeeklyDay = "monday"
	}
	if cfg.Schedule.MonthlyDay == 0 {
		cfg.Schedule.MonthlyDay = 1
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}
	if cfg.Schedule.RequestTimeout == 0 {
		cfg.Schedule.RequestTimeout = 5 * time.Minute
	}
	if cfg.Schedule.IndexInterval == 0 {
		cfg.Schedule.IndexInterval = 10 * time.Minute
	}
	if cfg.Schedule.RetentionDays == 0 {
		cfg.Schedule.RetentionDays = 30
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "30 3 * * 0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must be non-negative")
	}

	// validate summary config
	if cfg.Summary.PoolSize < 1 {
		return fmt.Errorf("summary.pool_size must be at least 1")
	}
	if cfg.Summary.DefaultMaxItems < 1 {
		return fmt.Errorf("summary.default_max_items must be at least 1")
	}
	if cfg.Summary.ExcerptChars < 100 {
		return fmt.Errorf("summary.excerpt_chars must be at least 100")
	}
	if cfg.Summary.RecentWindow < 0 {
		return fmt.Errorf("summary.recent_window must be non-negative")
	}

	// validate schedule config
	if _, err := cfg.Schedule.Weekday(); err != nil {
		return err
	}
	if cfg.Schedule.MonthlyDay < 1 || cfg.Schedule.MonthlyDay > 28 {
		return fmt.Errorf("schedule.monthly_day must be between 1 and 28")
	}
	if cfg.Schedule.RequestTimeout < time.Second {
		return fmt.Errorf("schedule.request_timeout must be at least 1 second")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Weekday parses the configured weekly delivery day
func (s ScheduleConfig) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s.WeeklyDay)) {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("schedule.weekly_day %q is not a weekday", s.WeeklyDay)
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
