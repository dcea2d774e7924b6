/*
Package config manages the TOML config for unscramble.

A missing file is created with defaults. A file that fails to decode is
recovered section by section, so one bad value does not discard the rest.

	[dict]
	path = "words.txt"
	expected_words = 172820

	[search]
	lowercase = false
	max_letters = 0
	timeout_ms = 0

	[display]
	words_per_line = 5

	[server]
	max_letters = 10
	timeout_ms = 30000
	lookup_limit = 50
*/
package config

import (
	"path/filepath"
	"time"

	"github.com/bastiangx/unscramble/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name inside the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Dict    DictConfig    `toml:"dict"`
	Search  SearchConfig  `toml:"search"`
	Display DisplayConfig `toml:"display"`
	Server  ServerConfig  `toml:"server"`
}

// DictConfig holds word list options.
type DictConfig struct {
	Path          string `toml:"path"`
	ExpectedWords int    `toml:"expected_words"`
}

// SearchConfig holds options for CLI searches.
type SearchConfig struct {
	Lowercase  bool `toml:"lowercase"`
	MaxLetters int  `toml:"max_letters"`
	TimeoutMs  int  `toml:"timeout_ms"`
}

// DisplayConfig holds terminal output options.
type DisplayConfig struct {
	WordsPerLine int `toml:"words_per_line"`
}

// ServerConfig has IPC server options. Searches arriving over IPC are
// bounded more tightly than interactive ones.
type ServerConfig struct {
	MaxLetters  int `toml:"max_letters"`
	TimeoutMs   int `toml:"timeout_ms"`
	LookupLimit int `toml:"lookup_limit"`
}

// Timeout converts TimeoutMs; zero means no timeout.
func (s SearchConfig) Timeout() time.Duration {
	return msToDuration(s.TimeoutMs)
}

// Timeout converts TimeoutMs; zero means no timeout.
func (s ServerConfig) Timeout() time.Duration {
	return msToDuration(s.TimeoutMs)
}

func msToDuration(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Path:          "words.txt",
			ExpectedWords: 172820,
		},
		Search: SearchConfig{
			Lowercase:  false,
			MaxLetters: 0,
			TimeoutMs:  0,
		},
		Display: DisplayConfig{
			WordsPerLine: 5,
		},
		Server: ServerConfig{
			MaxLetters:  10,
			TimeoutMs:   30000,
			LookupLimit: 50,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [UserConfigDir]/unscramble/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	if resolver == nil {
		return DefaultConfig(), "", nil
	}
	defaultPath, err := resolver.GetConfigPath(FileName)
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value that still decodes with the right type
// and falls back to defaults for the rest.
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
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "display"); ok {
		if val, ok := utils.ExtractInt64(section, "words_per_line"); ok {
			config.Display.WordsPerLine = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	return config, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "expected_words"); ok {
		dict.ExpectedWords = val
	}
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractBool(data, "lowercase"); ok {
		search.Lowercase = val
	}
	if val, ok := utils.ExtractInt64(data, "max_letters"); ok {
		search.MaxLetters = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		search.TimeoutMs = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_letters"); ok {
		server.MaxLetters = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		server.TimeoutMs = val
	}
	if val, ok := utils.ExtractInt64(data, "lookup_limit"); ok {
		server.LookupLimit = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
