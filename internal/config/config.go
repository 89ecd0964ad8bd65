// Package config provides configuration types and defaults for rungrid.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rungrid/rungrid/internal/log"
)

// Config holds all configuration options for rungrid.
type Config struct {
	UI           UIConfig        `mapstructure:"ui"`
	Settings     SettingsConfig  `mapstructure:"settings"`
	IconCacheDir string          `mapstructure:"icon_cache_dir"`
	Tracing      TracingConfig   `mapstructure:"tracing"`
	Flags        map[string]bool `mapstructure:"flags"`
}

// UIConfig holds overlay presentation options.
type UIConfig struct {
	MinThumbSize  int                  `mapstructure:"min_thumb_size"` // scrollbar thumb floor, in cells
	MenuPadding   int                  `mapstructure:"menu_padding"`   // context menu edge padding, in cells
	MarkdownStyle string               `mapstructure:"markdown_style"` // "dark" (default) or "light"
	Labels        LabelsConfig         `mapstructure:"labels"`
	Toasts        ToastDurationsConfig `mapstructure:"toasts"`
}

// LabelsConfig holds the default modal button labels.
type LabelsConfig struct {
	OK      string `mapstructure:"ok"`
	Cancel  string `mapstructure:"cancel"`
	GotIt   string `mapstructure:"got_it"`
	Loading string `mapstructure:"loading"`
}

// ToastDurationsConfig holds the default toast lifetime per tone.
// Zero or negative keeps a toast until it is dismissed.
type ToastDurationsConfig struct {
	Success time.Duration `mapstructure:"success"`
	Info    time.Duration `mapstructure:"info"`
	Warning time.Duration `mapstructure:"warning"`
	Error   time.Duration `mapstructure:"error"`
}

// SettingsConfig holds local settings store options.
type SettingsConfig struct {
	// DBPath is the SQLite file used when the settings-persistence flag is on.
	// Default: ~/.config/rungrid/settings.db
	DBPath string `mapstructure:"db_path"`
}

// TracingConfig holds distributed tracing configuration for backend commands.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultConfigDir returns ~/.config/rungrid, or "" if the home dir is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rungrid")
}

func inConfigDir(parts ...string) string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(append([]string{dir}, parts...)...)
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string { return inConfigDir("traces", "traces.jsonl") }

// DefaultSettingsDBPath returns the default SQLite settings path.
func DefaultSettingsDBPath() string { return inConfigDir("settings.db") }

// DefaultIconCacheDir returns the directory the icon watcher observes.
func DefaultIconCacheDir() string { return inConfigDir("icons") }

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			MinThumbSize:  1,
			MenuPadding:   1,
			MarkdownStyle: "dark",
			Labels: LabelsConfig{
				OK:      "OK",
				Cancel:  "Cancel",
				GotIt:   "Got it",
				Loading: "Scanning...",
			},
			Toasts: ToastDurationsConfig{
				Success: 2400 * time.Millisecond,
				Info:    2600 * time.Millisecond,
				Warning: 3200 * time.Millisecond,
				Error:   4200 * time.Millisecond,
			},
		},
		Settings: SettingsConfig{
			DBPath: DefaultSettingsDBPath(),
		},
		IconCacheDir: DefaultIconCacheDir(),
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived from the config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if c.Settings.DBPath != "" && !filepath.IsAbs(c.Settings.DBPath) {
		return fmt.Errorf("settings.db_path must be an absolute path, got %q", c.Settings.DBPath)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateUI checks presentation options. Zero values mean "use default".
func ValidateUI(ui UIConfig) error {
	if ui.MinThumbSize < 0 {
		return fmt.Errorf("ui.min_thumb_size must not be negative, got %d", ui.MinThumbSize)
	}
	if ui.MenuPadding < 0 {
		return fmt.Errorf("ui.menu_padding must not be negative, got %d", ui.MenuPadding)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# rungrid configuration

# Overlay presentation
ui:
  min_thumb_size: 1      # Smallest scrollbar thumb, in cells
  menu_padding: 1        # Gap kept between a context menu and the window edge
  # markdown_style: dark # Help rendering style: "dark" (default) or "light"

  # Default modal button labels
  labels:
    ok: OK
    cancel: Cancel
    got_it: Got it
    loading: Scanning...

  # Toast lifetimes per tone. 0 keeps the toast until dismissed.
  toasts:
    success: 2.4s
    info: 2.6s
    warning: 3.2s
    error: 4.2s

# Local settings store (hotkeys, preferences, scan roots)
# settings:
#   db_path: ~/.config/rungrid/settings.db

# Directory watched for refreshed icons
# icon_cache_dir: ~/.config/rungrid/icons

# Distributed tracing of backend commands
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/rungrid/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   settings-persistence: true  # Store settings in SQLite instead of memory
#   icon-watcher: true          # Reload items when the icon cache changes
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
