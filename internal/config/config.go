package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigFile is looked up in the working directory when no config path is given.
const DefaultConfigFile = "config.yml"

// ConfigPathEnv overrides the config file location when the --config flag is not set.
const ConfigPathEnv = "RULESPROC_CONFIG"

// Config is the global configuration of the tool.
type Config struct {
	Logger Logger `yaml:"logger"`
	Report Report `yaml:"report"`
}

// Logger holds logging settings. Unset booleans fall back to defaults in the logger package.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Report holds defaults of the report command. Command line flags take precedence.
type Report struct {
	Format      string `yaml:"format"`
	Limit       int    `yaml:"limit"`
	RuffVersion string `yaml:"ruff_version"`
}

// ValidateConfigPath checks that path points to an existing file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// ResolveConfigPath picks the config file to load.
// An explicit path or the environment variable makes the file mandatory; the default file is optional.
func ResolveConfigPath(flagPath string) (path string, required bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return envPath, true
	}
	return DefaultConfigFile, false
}

// LoadConfig loads the configuration referenced by flagPath.
// A missing optional default file yields an empty configuration.
func LoadConfig(flagPath string) (*Config, error) {
	path, required := ResolveConfigPath(flagPath)
	cfg := &Config{}

	if !required {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if err := LoadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return cfg, nil
}
