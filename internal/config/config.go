// Package config loads scribe's settings from a YAML file and SCRIBE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iw2rmb/scribe/buffer"
)

type Config struct {
	Wrap    WrapConfig    `mapstructure:"wrap"`
	History HistoryConfig `mapstructure:"history"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Log     LogConfig     `mapstructure:"log"`
}

type WrapConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Width is the wrap width in cells. Zero wraps at the window width.
	Width int `mapstructure:"width"`
}

type HistoryConfig struct {
	MaxTransactions int           `mapstructure:"max_transactions"`
	MaxMemoryBytes  int           `mapstructure:"max_memory_bytes"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type EditorConfig struct {
	TabWidth    int  `mapstructure:"tab_width"`
	PageSize    int  `mapstructure:"page_size"`
	LineNumbers bool `mapstructure:"line_numbers"`
	// Markup renders markdown styling, showing source around the cursor.
	Markup bool `mapstructure:"markup"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Path is the log file. Empty uses ~/.config/scribe/scribe.log.
	Path string `mapstructure:"path"`
	// Diagnostics enables the buffer's internal consistency checks.
	Diagnostics bool `mapstructure:"diagnostics"`
}

// Load reads configuration. With an explicit path that file must exist;
// otherwise config.yaml is looked up in ~/.config/scribe and the working
// directory, and a missing file means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/scribe")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("wrap.enabled", true)
	v.SetDefault("wrap.width", 0)

	v.SetDefault("history.max_transactions", buffer.DefaultMaxTransactions)
	v.SetDefault("history.max_memory_bytes", buffer.DefaultMaxMemoryBytes)
	v.SetDefault("history.timeout", buffer.DefaultTransactionTimeout)

	v.SetDefault("editor.tab_width", 4)
	v.SetDefault("editor.page_size", 20)
	v.SetDefault("editor.line_numbers", true)
	v.SetDefault("editor.markup", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.diagnostics", false)
}

func Validate(cfg *Config) error {
	if cfg.Wrap.Width < 0 {
		return fmt.Errorf("wrap.width cannot be negative, got %d", cfg.Wrap.Width)
	}
	if cfg.History.MaxTransactions < 1 {
		return fmt.Errorf("history.max_transactions must be at least 1, got %d", cfg.History.MaxTransactions)
	}
	if cfg.History.MaxMemoryBytes < 1 {
		return fmt.Errorf("history.max_memory_bytes must be at least 1, got %d", cfg.History.MaxMemoryBytes)
	}
	if cfg.History.Timeout <= 0 {
		return fmt.Errorf("history.timeout must be positive, got %s", cfg.History.Timeout)
	}
	if cfg.Editor.TabWidth < 1 || cfg.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", cfg.Editor.TabWidth)
	}
	if cfg.Editor.PageSize < 1 {
		return fmt.Errorf("editor.page_size must be at least 1, got %d", cfg.Editor.PageSize)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(cfg.Log.Level)
	for _, l := range validLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("log.level must be one of: %v, got %s", validLevels, cfg.Log.Level)
}

// HistoryOptions converts the history section for buffer.Options.
func (c *Config) HistoryOptions() buffer.HistoryOptions {
	return buffer.HistoryOptions{
		MaxTransactions: c.History.MaxTransactions,
		MaxMemoryBytes:  c.History.MaxMemoryBytes,
		Timeout:         c.History.Timeout,
	}
}
