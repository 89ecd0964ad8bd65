package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{"enabled flag", New(map[string]bool{FlagIconWatcher: true}), FlagIconWatcher, true},
		{"disabled flag", New(map[string]bool{FlagIconWatcher: false}), FlagIconWatcher, false},
		{"unknown flag", New(map[string]bool{FlagIconWatcher: true}), "nope", false},
		{"nil registry", nil, FlagSettingsPersistence, false},
		{"nil map", New(nil), FlagSettingsPersistence, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_AllIsCopy(t *testing.T) {
	r := New(map[string]bool{FlagIconWatcher: true})

	all := r.All()
	all[FlagIconWatcher] = false
	all["extra"] = true

	require.True(t, r.Enabled(FlagIconWatcher))
	require.False(t, r.Enabled("extra"))
	require.Equal(t, map[string]bool{}, (*Registry)(nil).All())
}

func TestWithDefaults(t *testing.T) {
	merged := WithDefaults(map[string]bool{FlagIconWatcher: false, "experimental": true})

	require.Equal(t, map[string]bool{
		FlagSettingsPersistence: true,
		FlagIconWatcher:         false,
		"experimental":          true,
	}, merged)

	require.Equal(t, Defaults(), WithDefaults(nil))
}
