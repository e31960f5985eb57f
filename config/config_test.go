package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"boolean", "vector", "probabilistic"}, cfg.Search.Engines)
	assert.Equal(t, "vector", cfg.Search.DefaultEngine)
	assert.Equal(t, "zstd", cfg.Snapshot.Compression)
	assert.Empty(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  shutdownTimeout: 5s
corpus:
  dataDir: /srv/corpus
  workers: 8
snapshot:
  path: /srv/snap.gob
  compression: lz4
search:
  engines: [boolean, "3"]
  defaultPageSize: 20
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/srv/corpus", cfg.Corpus.DataDir)
	assert.Equal(t, 8, cfg.Corpus.Workers)
	assert.Equal(t, "lz4", cfg.Snapshot.Compression)
	assert.Equal(t, []string{"boolean", "3"}, cfg.Search.Engines)
	assert.Equal(t, "vector", cfg.Search.DefaultEngine, "file keeps the default when unset")
	assert.Equal(t, 20, cfg.Search.DefaultPageSize)
	assert.Equal(t, "json", cfg.Logging.Format)

	problems := cfg.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "is not in search.engines")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		assert.Error(t, err)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IRE_SERVER_PORT", "7070")
	t.Setenv("IRE_CORPUS_DATA_DIR", "/env/corpus")
	t.Setenv("IRE_SNAPSHOT_COMPRESSION", "none")
	t.Setenv("IRE_SEARCH_ENGINES", "boolean,vector")
	t.Setenv("IRE_SEARCH_DEFAULT_ENGINE", "boolean")
	t.Setenv("IRE_METRICS_ENABLED", "false")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/env/corpus", cfg.Corpus.DataDir)
	assert.Equal(t, "none", cfg.Snapshot.Compression)
	assert.Equal(t, []string{"boolean", "vector"}, cfg.Search.Engines)
	assert.Equal(t, "boolean", cfg.Search.DefaultEngine)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Search: SearchConfig{Engines: []string{"probabilistic"}}}
	cfg.ApplyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "probabilistic", cfg.Search.DefaultEngine, "default engine falls back to the first enabled one")
	assert.Equal(t, 10, cfg.Search.DefaultPageSize)
	assert.Equal(t, 4, cfg.Corpus.Workers)
	assert.Equal(t, 2, cfg.Jobs.MaxWorkers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(cfg *Config)
		expectedErrors int
	}{
		{"valid defaults", func(cfg *Config) {}, 0},
		{"numeric engine codes", func(cfg *Config) {
			cfg.Search.Engines = []string{"1", "2"}
			cfg.Search.DefaultEngine = "vector"
		}, 0},
		{"unknown engine", func(cfg *Config) {
			cfg.Search.Engines = []string{"boolean", "bm25"}
			cfg.Search.DefaultEngine = "boolean"
		}, 1},
		{"duplicate engine by alias", func(cfg *Config) {
			cfg.Search.Engines = []string{"boolean", "1"}
			cfg.Search.DefaultEngine = "boolean"
		}, 1},
		{"default engine disabled", func(cfg *Config) {
			cfg.Search.Engines = []string{"boolean"}
			cfg.Search.DefaultEngine = "vector"
		}, 1},
		{"bad compression", func(cfg *Config) { cfg.Snapshot.Compression = "gzip" }, 1},
		{"empty data dir", func(cfg *Config) { cfg.Corpus.DataDir = " " }, 1},
		{"port out of range", func(cfg *Config) { cfg.Server.Port = 70000 }, 1},
		{"page size above max", func(cfg *Config) {
			cfg.Search.DefaultPageSize = 50
			cfg.Search.MaxPageSize = 10
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			problems := cfg.Validate()
			assert.Len(t, problems, tt.expectedErrors, "problems: %v", problems)
		})
	}
}
