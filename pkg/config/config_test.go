package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "->", cfg.CLI.Separator)
	assert.Len(t, cfg.DictOptions(), 2)
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordchain", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[chain]
precompute = true
workers = 4

[cli]
separator = " => "
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Chain.Precompute)
	assert.Equal(t, 4, cfg.Chain.Workers)
	assert.Equal(t, " => ", cfg.CLI.Separator)
	assert.Equal(t, DefaultConfig().Dict, cfg.Dict)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

// A value of the wrong type breaks strict decoding; the rest of the file
// is still recovered.
func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[dict]
max_words = 10
skip_blank_lines = true

[chain]
workers = "four"
max_chains = 5

[server]
cache_size = 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Dict.MaxWords)
	assert.True(t, cfg.Dict.SkipBlankLines)
	assert.Equal(t, 0, cfg.Chain.Workers)
	assert.Equal(t, 5, cfg.Chain.MaxChains)
	assert.Equal(t, 8, cfg.Server.CacheSize)
}

func TestLoadConfigBrokenSyntax(t *testing.T) {
	path := writeConfig(t, "[dict\nmax_words = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative words", func(c *Config) { c.Dict.MaxWords = -1 }},
		{"negative workers", func(c *Config) { c.Chain.Workers = -2 }},
		{"negative chains", func(c *Config) { c.Server.MaxChains = -1 }},
		{"negative cache", func(c *Config) { c.Server.CacheSize = -1 }},
		{"bad level", func(c *Config) { c.CLI.LogLevel = "loud" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[chain]\nworkers = -3\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_chains = 7\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, cfg.Server.MaxChains)
}

func TestGetActiveConfigPath(t *testing.T) {
	assert.Equal(t, "builtin defaults", GetActiveConfigPath(""))
	assert.True(t, filepath.IsAbs(GetActiveConfigPath("config.toml")))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
