package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrIncomplete is returned by Validate when required settings are missing.
var ErrIncomplete = errors.New("incomplete configuration")

// Config holds application configuration.
type Config struct {
	Source       string    `mapstructure:"source" yaml:"source"`
	Output       string    `mapstructure:"output" yaml:"output"`
	Categories   []string  `mapstructure:"categories" yaml:"categories"`
	StartIndex   int       `mapstructure:"start_index" yaml:"start_index"`
	Resume       bool      `mapstructure:"resume" yaml:"resume"`
	CreateOutput bool      `mapstructure:"create_output" yaml:"create_output"`
	AutoAdvance  bool      `mapstructure:"auto_advance" yaml:"auto_advance"`
	Journal      string    `mapstructure:"journal" yaml:"journal"` // "" disables the journal
	Log          LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig selects the log sink.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // "", "stderr", "stdout" or a file path
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	journal := ""
	if dir, err := Dir(); err == nil {
		journal = filepath.Join(dir, "journal.db")
	}
	return Config{
		Categories:  []string{},
		AutoAdvance: true,
		Journal:     journal,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the config directory: ~/.config/lbl
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lbl"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/lbl/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// NewViper creates a viper instance with defaults and LBL_* environment binding.
// Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()

	v.SetDefault("source", defaults.Source)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("categories", defaults.Categories)
	v.SetDefault("start_index", defaults.StartIndex)
	v.SetDefault("resume", defaults.Resume)
	v.SetDefault("create_output", defaults.CreateOutput)
	v.SetDefault("auto_advance", defaults.AutoAdvance)
	v.SetDefault("journal", defaults.Journal)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetEnvPrefix("LBL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path into v and decodes the result.
// A missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Categories = splitCategories(cfg.Categories)

	return &cfg, nil
}

// Validate checks that a session can be started from cfg.
func (c *Config) Validate() error {
	var missing []string
	if c.Source == "" {
		missing = append(missing, "source")
	}
	if c.Output == "" {
		missing = append(missing, "output")
	}
	if len(c.Categories) == 0 {
		missing = append(missing, "categories")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// ResolvePaths expands ~ and makes source, output and journal paths absolute.
func (c *Config) ResolvePaths() error {
	for _, p := range []*string{&c.Source, &c.Output, &c.Journal} {
		if *p == "" {
			continue
		}
		expanded, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// WriteDefault writes cfg as YAML to path.
// Creates the directory if it doesn't exist.
func WriteDefault(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ParseCategories splits a space or comma separated category list.
func ParseCategories(s string) []string {
	return splitCategories([]string{s})
}

// splitCategories accepts "red black other" (the setup form format) as well as
// comma separated lists, and drops empty entries.
func splitCategories(in []string) []string {
	out := []string{}
	for _, item := range in {
		fields := strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		out = append(out, fields...)
	}
	return out
}
