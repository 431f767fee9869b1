// Package config manages YAML-based configuration and CLI flags for the dirhub server.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/init-helpful/dirhub/index"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for dirhub.
type Config struct {
	// Path is the root of the subtree to index. Empty means the current
	// working directory.
	Path string `yaml:"path"`

	Port  int  `yaml:"port"`
	Watch bool `yaml:"watch"`

	// Filter configures which entries the index records.
	Filter index.FilterOptions `yaml:"filter"`

	// Internal: path to config file for saving
	configPath string
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Path:  ".",
		Port:  8080,
		Watch: true,
		Filter: index.FilterOptions{
			IgnoreComponents: []string{".git", ".svn", "node_modules"},
		},
	}
}

// GetConfigDir returns the config directory path.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/dirhub"
	}
	return filepath.Join(home, ".config", "dirhub")
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads configuration from file and command line flags.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := flag.String("path", "", "Root directory to index")
	port := flag.Int("port", 0, "HTTP server port")
	watch := flag.Bool("watch", true, "Refresh the index on filesystem changes")
	configFile := flag.String("config", "", "Configuration file path")

	extensions := flag.String("extensions", "", "Comma-separated target extensions (e.g. md,txt)")
	filenames := flag.String("filenames", "", "Comma-separated exact target filenames")
	ignore := flag.String("ignore", "", "Comma-separated path components to ignore")
	whitelist := flag.String("whitelist", "", "Comma-separated required filename substrings")
	blacklist := flag.String("blacklist", "", "Comma-separated forbidden filename substrings")

	flag.StringVar(path, "p", "", "Root directory to index (shorthand)")

	flag.Parse()

	// Determine config file path: explicit flag, then the global config,
	// then a local dirhub.yaml.
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else {
		globalConfig := GetConfigPath()
		if _, err := os.Stat(globalConfig); err == nil {
			cfgPath = globalConfig
		} else if _, err := os.Stat("dirhub.yaml"); err == nil {
			cfgPath = "dirhub.yaml"
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil && *configFile != "" {
			// Only return the error if the user explicitly specified
			// the config file.
			return nil, err
		}
		cfg.configPath = cfgPath
	} else {
		cfg.configPath = GetConfigPath()
	}

	// Command line flags override the config file (only if explicitly set)
	if *path != "" {
		cfg.Path = *path
	}
	if *port != 0 {
		cfg.Port = *port
	}
	cfg.Watch = *watch

	if *extensions != "" {
		cfg.Filter.TargetExtensions = splitList(*extensions)
	}
	if *filenames != "" {
		cfg.Filter.TargetFilenames = splitList(*filenames)
	}
	if *ignore != "" {
		cfg.Filter.IgnoreComponents = splitList(*ignore)
	}
	if *whitelist != "" {
		cfg.Filter.WhitelistSubstrings = splitList(*whitelist)
	}
	if *blacklist != "" {
		cfg.Filter.BlacklistSubstrings = splitList(*blacklist)
	}

	cfg.resolvePath()
	return cfg, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// resolvePath makes the root path absolute.
func (c *Config) resolvePath() {
	if c.Path == "" {
		c.Path = "."
	}
	if absPath, err := filepath.Abs(c.Path); err == nil {
		c.Path = absPath
	}
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file.
func (c *Config) Save() error {
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Create a copy without internal fields for saving
	saveConfig := struct {
		Path   string              `yaml:"path"`
		Port   int                 `yaml:"port"`
		Watch  bool                `yaml:"watch"`
		Filter index.FilterOptions `yaml:"filter"`
	}{
		Path:   c.Path,
		Port:   c.Port,
		Watch:  c.Watch,
		Filter: c.Filter,
	}

	data, err := yaml.Marshal(saveConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// GetConfigFilePath returns the path to the config file.
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}
