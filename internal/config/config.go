package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// Config holds the presentation settings of the alarm scheduler binary.
// The coordination core has no tunables: pause durations and the message
// length limit are fixed for behavioral parity with the scheduling protocol.
type Config struct {
	// LogLevel is the minimum level for log output (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// Prompt is the string printed before each request line is read.
	Prompt string `yaml:"prompt"`
}

const (
	// DefaultConfigFilename is the default filename for scheduler settings.
	DefaultConfigFilename = "alarm-scheduler-settings.yaml"

	// DefaultLogLevel is used when the settings file does not specify one.
	DefaultLogLevel = "info"

	// DefaultPrompt is printed before each request line is read.
	DefaultPrompt = "alarm> "

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Prompt:   DefaultPrompt,
	}
}

// Load reads configuration from the provided path and validates it.
// An empty path returns the defaults without touching the filesystem,
// so the binary runs without any settings file present.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults for omitted fields and rejects unknown log levels.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}

	return nil
}
