/*
Package config manages TOML config for wordchain.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Chain  ChainConfig  `toml:"chain"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// DictConfig holds dictionary loading options.
type DictConfig struct {
	MaxWords       int  `toml:"max_words"`
	SkipBlankLines bool `toml:"skip_blank_lines"`
}

// ChainConfig holds solver options.
type ChainConfig struct {
	Precompute bool `toml:"precompute"`
	Workers    int  `toml:"workers"`
	MaxChains  int  `toml:"max_chains"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxChains    int `toml:"max_chains"`
	CacheSize    int `toml:"cache_size"`
	SuggestLimit int `toml:"suggest_limit"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Separator string `toml:"separator"`
	LogLevel  string `toml:"log_level"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordchain
// 2. ~/Library/Application Support/wordchain (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordchain")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordchain")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordchain/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			MaxWords:       2000000,
			SkipBlankLines: false,
		},
		Chain: ChainConfig{
			Precompute: false,
			Workers:    0,
			MaxChains:  0,
		},
		Server: ServerConfig{
			MaxChains:    1000,
			CacheSize:    256,
			SuggestLimit: 10,
		},
		CLI: CliConfig{
			Separator: "->",
			LogLevel:  "warn",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file that does not decode cleanly is recovered section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "chain"); ok {
		extractChainConfig(section, &config.Chain)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Recovered config from %s is invalid: %v. Using all defaults.", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractBool(data, "skip_blank_lines"); ok {
		dict.SkipBlankLines = val
	}
}

// extractChainConfig extracts solver configuration from a map
func extractChainConfig(data map[string]any, chain *ChainConfig) {
	if val, ok := utils.ExtractBool(data, "precompute"); ok {
		chain.Precompute = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		chain.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "max_chains"); ok {
		chain.MaxChains = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_chains"); ok {
		server.MaxChains = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		server.SuggestLimit = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "separator"); ok {
		cli.Separator = val
	}
	if val, ok := utils.ExtractString(data, "log_level"); ok {
		cli.LogLevel = val
	}
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Dict.MaxWords < 0 {
		return fmt.Errorf("dict.max_words must not be negative, got %d", c.Dict.MaxWords)
	}
	if c.Chain.Workers < 0 {
		return fmt.Errorf("chain.workers must not be negative, got %d", c.Chain.Workers)
	}
	if c.Chain.MaxChains < 0 || c.Server.MaxChains < 0 {
		return fmt.Errorf("max_chains must not be negative")
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must not be negative, got %d", c.Server.CacheSize)
	}
	if _, err := log.ParseLevel(c.CLI.LogLevel); err != nil {
		return fmt.Errorf("cli.log_level: %w", err)
	}
	return nil
}

// DictOptions translates the [dict] section into build options.
func (c *Config) DictOptions() []dictionary.Option {
	return []dictionary.Option{
		dictionary.WithMaxWords(c.Dict.MaxWords),
		dictionary.WithSkipBlank(c.Dict.SkipBlankLines),
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
