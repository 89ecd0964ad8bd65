package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/rungrid/rungrid/internal/config"
	"github.com/rungrid/rungrid/internal/flags"
)

// useConfig installs a config for one test and restores the globals after.
func useConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() {
		cfg = prev
		viper.Reset()
	})
}

func testConfig(t *testing.T, persist bool) config.Config {
	c := config.Defaults()
	c.Settings.DBPath = filepath.Join(t.TempDir(), "settings.db")
	c.Flags = flags.WithDefaults(map[string]bool{flags.FlagSettingsPersistence: persist})
	return c
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	t.Cleanup(func() { c.SetOut(nil) })
	err := c.RunE(c, args)
	return out.String(), err
}

func TestOpenStore_MemoryWhenPersistenceOff(t *testing.T) {
	useConfig(t, testConfig(t, false))

	store, closeStore, err := openStore(flags.New(cfg.Flags))
	require.NoError(t, err)
	require.NoError(t, store.SaveScanRoots(context.Background(), []string{"/a"}))
	require.NoError(t, closeStore())

	_, err = os.Stat(cfg.Settings.DBPath)
	require.True(t, os.IsNotExist(err), "no database file without persistence")
}

func TestOpenStore_SQLiteSurvivesReopen(t *testing.T) {
	useConfig(t, testConfig(t, true))
	ctx := context.Background()

	store, closeStore, err := openStore(flags.New(cfg.Flags))
	require.NoError(t, err)
	require.NoError(t, store.SaveScanRoots(ctx, []string{"/a", "/b"}))
	require.NoError(t, closeStore())

	store, closeStore, err = openStore(flags.New(cfg.Flags))
	require.NoError(t, err)
	defer func() { _ = closeStore() }()
	roots, ok := store.ScanRoots(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"/a", "/b"}, roots)
}

func TestRootsCommand_DefaultsThenSaved(t *testing.T) {
	useConfig(t, testConfig(t, true))

	out, err := run(t, rootsCmd)
	require.NoError(t, err)
	require.JSONEq(t, `{"roots":["/Applications","~/Desktop"],"source":"default"}`, out)

	out, err = run(t, rootsSetCmd, " /b ", "/B", "/c")
	require.NoError(t, err)
	require.JSONEq(t, `{"roots":["/b","/c"],"source":"saved"}`, out)

	out, err = run(t, rootsCmd)
	require.NoError(t, err)
	require.JSONEq(t, `{"roots":["/b","/c"],"source":"saved"}`, out)
}

func TestRootsSet_RejectsBlank(t *testing.T) {
	useConfig(t, testConfig(t, false))

	_, err := run(t, rootsSetCmd, " ", "")
	require.Error(t, err)
}

func TestFlagsCommand_ListsDefaults(t *testing.T) {
	useConfig(t, testConfig(t, false))

	out, err := run(t, flagsCmd)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"name":"icon-watcher","enabled":true,"default":true},
		{"name":"settings-persistence","enabled":false,"default":true}
	]`, out)
}

func TestFlagsSet_RewritesConfigFile(t *testing.T) {
	useConfig(t, testConfig(t, true))
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	viper.SetConfigFile(path)

	out, err := run(t, flagsSetCmd, flags.FlagIconWatcher, "false")
	require.NoError(t, err)
	require.Contains(t, out, `"name": "icon-watcher"`)
	require.False(t, cfg.Flags[flags.FlagIconWatcher])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "icon-watcher: false")
	require.Contains(t, string(data), "min_thumb_size: 1", "other sections are kept")
}

func TestFlagsSet_Validation(t *testing.T) {
	useConfig(t, testConfig(t, true))
	viper.SetConfigFile(filepath.Join(t.TempDir(), "config.yaml"))

	_, err := run(t, flagsSetCmd, "time-travel", "true")
	require.ErrorContains(t, err, "unknown flag")

	_, err = run(t, flagsSetCmd, flags.FlagIconWatcher, "maybe")
	require.ErrorContains(t, err, "true or false")
}

func TestConfigPath_PrefersLoadedFile(t *testing.T) {
	useConfig(t, config.Defaults())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	viper.SetConfigFile(path)

	require.Equal(t, path, configPath())
}
