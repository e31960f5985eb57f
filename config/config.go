// Package config loads and validates the engine configuration from YAML files
// with IRE_* environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxRequestBytes int64         `yaml:"maxRequestBytes"`
	RateLimit       float64       `yaml:"rateLimit"` // requests per second, 0 disables limiting
	RateBurst       int           `yaml:"rateBurst"`
}

// CorpusConfig locates the raw document collection.
type CorpusConfig struct {
	DataDir       string `yaml:"dataDir"`
	StopwordsFile string `yaml:"stopwordsFile"`
	Workers       int    `yaml:"workers"` // concurrent file reads
}

// SnapshotConfig controls where the indexed corpus is persisted.
type SnapshotConfig struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"` // none, lz4 or zstd
}

// SearchConfig selects the retrieval models and result paging.
type SearchConfig struct {
	Engines         []string `yaml:"engines"`
	DefaultEngine   string   `yaml:"defaultEngine"`
	DefaultPageSize int      `yaml:"defaultPageSize"`
	MaxPageSize     int      `yaml:"maxPageSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// JobsConfig bounds background job concurrency.
type JobsConfig struct {
	MaxWorkers int `yaml:"maxWorkers"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied flag
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()
	return cfg, nil
}

// Default returns a Config with defaults suitable for local use.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxRequestBytes: 1 << 20,
			RateLimit:       0,
			RateBurst:       20,
		},
		Corpus: CorpusConfig{
			DataDir:       "./data/corpus",
			StopwordsFile: "./data/stopwords.txt",
			Workers:       4,
		},
		Snapshot: SnapshotConfig{
			Path:        "./data/snapshot.gob",
			Compression: "zstd",
		},
		Search: SearchConfig{
			Engines:         []string{"boolean", "vector", "probabilistic"},
			DefaultEngine:   "vector",
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Jobs: JobsConfig{
			MaxWorkers: 2,
		},
	}
}

// ApplyDefaults fills zero values that would otherwise make the engine unusable.
func (cfg *Config) ApplyDefaults() {
	def := Default()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Server.MaxRequestBytes == 0 {
		cfg.Server.MaxRequestBytes = def.Server.MaxRequestBytes
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = def.Server.RateBurst
	}
	if cfg.Corpus.Workers == 0 {
		cfg.Corpus.Workers = def.Corpus.Workers
	}
	if len(cfg.Search.Engines) == 0 {
		cfg.Search.Engines = def.Search.Engines
	}
	if cfg.Search.DefaultEngine == "" {
		cfg.Search.DefaultEngine = cfg.Search.Engines[0]
	}
	if cfg.Search.DefaultPageSize == 0 {
		cfg.Search.DefaultPageSize = def.Search.DefaultPageSize
	}
	if cfg.Search.MaxPageSize == 0 {
		cfg.Search.MaxPageSize = def.Search.MaxPageSize
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Jobs.MaxWorkers == 0 {
		cfg.Jobs.MaxWorkers = def.Jobs.MaxWorkers
	}
}

var engineNames = map[string]string{
	"boolean":       "boolean",
	"1":             "boolean",
	"vector":        "vector",
	"2":             "vector",
	"probabilistic": "probabilistic",
	"3":             "probabilistic",
}

// Validate returns one message per configuration problem; an empty result
// means the configuration is usable.
func (cfg *Config) Validate() []string {
	var problems []string

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", cfg.Server.Port))
	}
	if cfg.Server.RateLimit < 0 {
		problems = append(problems, "server.rateLimit cannot be negative")
	}
	if strings.TrimSpace(cfg.Corpus.DataDir) == "" {
		problems = append(problems, "corpus.dataDir cannot be empty")
	}
	if cfg.Corpus.Workers < 0 {
		problems = append(problems, "corpus.workers cannot be negative")
	}

	switch strings.ToLower(cfg.Snapshot.Compression) {
	case "", "none", "lz4", "zstd":
	default:
		problems = append(problems, "Invalid snapshot.compression '"+cfg.Snapshot.Compression+"' (must be 'none', 'lz4' or 'zstd')")
	}

	enabled := make(map[string]bool)
	for _, name := range cfg.Search.Engines {
		canonical, ok := engineNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			problems = append(problems, "Unknown engine '"+name+"' in search.engines")
			continue
		}
		enabled[canonical] = true
	}
	problems = append(problems, checkDuplicates("search.engines", cfg.Search.Engines)...)

	if canonical, ok := engineNames[strings.ToLower(strings.TrimSpace(cfg.Search.DefaultEngine))]; !ok {
		problems = append(problems, "Unknown search.defaultEngine '"+cfg.Search.DefaultEngine+"'")
	} else if !enabled[canonical] {
		problems = append(problems, "search.defaultEngine '"+cfg.Search.DefaultEngine+"' is not in search.engines")
	}
	if cfg.Search.DefaultPageSize < 0 || cfg.Search.MaxPageSize < 0 {
		problems = append(problems, "search page sizes cannot be negative")
	}
	if cfg.Search.MaxPageSize > 0 && cfg.Search.DefaultPageSize > cfg.Search.MaxPageSize {
		problems = append(problems, "search.defaultPageSize cannot exceed search.maxPageSize")
	}
	if cfg.Jobs.MaxWorkers < 0 {
		problems = append(problems, "jobs.maxWorkers cannot be negative")
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if canonical, ok := engineNames[key]; ok {
			key = canonical
		}
		if seen[key] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[key] = true
	}

	return errors
}

// applyEnvOverrides reads IRE_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IRE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("IRE_SERVER_RATE_LIMIT"); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimit = limit
		}
	}
	if v := os.Getenv("IRE_CORPUS_DATA_DIR"); v != "" {
		cfg.Corpus.DataDir = v
	}
	if v := os.Getenv("IRE_CORPUS_STOPWORDS_FILE"); v != "" {
		cfg.Corpus.StopwordsFile = v
	}
	if v := os.Getenv("IRE_CORPUS_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Corpus.Workers = workers
		}
	}
	if v := os.Getenv("IRE_SNAPSHOT_PATH"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("IRE_SNAPSHOT_COMPRESSION"); v != "" {
		cfg.Snapshot.Compression = v
	}
	if v := os.Getenv("IRE_SEARCH_ENGINES"); v != "" {
		cfg.Search.Engines = strings.Split(v, ",")
	}
	if v := os.Getenv("IRE_SEARCH_DEFAULT_ENGINE"); v != "" {
		cfg.Search.DefaultEngine = v
	}
	if v := os.Getenv("IRE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("IRE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("IRE_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}
