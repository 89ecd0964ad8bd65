package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/backend/memory"
	"github.com/rungrid/rungrid/internal/config"
	"github.com/rungrid/rungrid/internal/flags"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/settings"
	"github.com/rungrid/rungrid/internal/shell"
	"github.com/rungrid/rungrid/internal/tracing"
	"github.com/rungrid/rungrid/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot leak into text inputs.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	scanDelay time.Duration
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "rungrid",
	Short:   "A keyboard and mouse driven application launcher",
	Long:    `A terminal launcher for apps, folders and links with context menus, dialogs and notifications.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/rungrid/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by RUNGRID_DEBUG)")
	rootCmd.Flags().DurationVar(&scanDelay, "scan-delay", 400*time.Millisecond,
		"pause between scan roots in the demo backend")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.min_thumb_size", defaults.UI.MinThumbSize)
	viper.SetDefault("ui.menu_padding", defaults.UI.MenuPadding)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.labels.ok", defaults.UI.Labels.OK)
	viper.SetDefault("ui.labels.cancel", defaults.UI.Labels.Cancel)
	viper.SetDefault("ui.labels.got_it", defaults.UI.Labels.GotIt)
	viper.SetDefault("ui.labels.loading", defaults.UI.Labels.Loading)
	viper.SetDefault("ui.toasts.success", defaults.UI.Toasts.Success)
	viper.SetDefault("ui.toasts.info", defaults.UI.Toasts.Info)
	viper.SetDefault("ui.toasts.warning", defaults.UI.Toasts.Warning)
	viper.SetDefault("ui.toasts.error", defaults.UI.Toasts.Error)
	viper.SetDefault("settings.db_path", defaults.Settings.DBPath)
	viper.SetDefault("icon_cache_dir", defaults.IconCacheDir)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	viper.SetEnvPrefix("RUNGRID")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir := config.DefaultConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented defaults so there is something to edit.
			if dir := config.DefaultConfigDir(); dir != "" {
				defaultPath := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
	cfg.Flags = flags.WithDefaults(cfg.Flags)
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

// configPath is the file flag changes are written back to.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return filepath.Join(config.DefaultConfigDir(), "config.yaml")
}

// initLogging enables the debug log when --debug or RUNGRID_DEBUG is set.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("RUNGRID_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("RUNGRID_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "rungrid starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

// openStore returns the settings store: SQLite when persistence is enabled,
// memory otherwise. The closer is never nil.
func openStore(reg *flags.Registry) (*settings.Store, func() error, error) {
	if !reg.Enabled(flags.FlagSettingsPersistence) || cfg.Settings.DBPath == "" {
		return settings.NewStore(settings.NewMemoryKV()), func() error { return nil }, nil
	}
	kv, err := settings.OpenSQLite(cfg.Settings.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening settings store: %w", err)
	}
	return settings.NewStore(kv), kv.Close, nil
}

// watchIcons announces icons:updated whenever the icon cache changes.
func watchIcons(bus *backend.Bus) (func(), error) {
	w, err := watcher.New(watcher.DefaultConfig(cfg.IconCacheDir))
	if err != nil {
		return nil, err
	}
	changes, err := w.Start()
	if err != nil {
		return nil, err
	}
	go func() {
		for range changes {
			bus.Emit(backend.EventIconsUpdated, nil)
		}
	}()
	return func() { _ = w.Stop() }, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanupLog, err := initLogging("rungrid")
	if err != nil {
		return err
	}
	defer cleanupLog()

	reg := flags.New(cfg.Flags)

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	store, closeStore, err := openStore(reg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.ErrorErr(log.CatSettings, "Closing settings store failed", err)
		}
	}()

	bus := backend.NewBus()
	defer bus.Close()

	var commands backend.Commands = memory.Demo(bus, memory.WithScanDelay(scanDelay))
	if provider.Enabled() {
		commands = backend.WithTracing(commands, provider.Tracer())
	}

	if reg.Enabled(flags.FlagIconWatcher) && cfg.IconCacheDir != "" {
		stop, err := watchIcons(bus)
		if err != nil {
			log.Warn(log.CatWatcher, "Icon watcher unavailable", "dir", cfg.IconCacheDir, "error", err)
		} else {
			defer stop()
		}
	}

	zone.NewGlobal()
	model := shell.New(shell.Config{
		Backend:  commands,
		Bus:      bus,
		Settings: store,
		UI:       cfg.UI,
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
