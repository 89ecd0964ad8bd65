package pointer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapture_ZeroValueIdle(t *testing.T) {
	var c Capture

	require.False(t, c.Active())
	require.Empty(t, c.Owner())
	require.Zero(t, c.Registrations())
}

func TestCapture_AcquireRelease(t *testing.T) {
	var c Capture

	require.True(t, c.Acquire("list"))
	require.True(t, c.Active())
	require.True(t, c.Held("list"))
	require.Equal(t, "list", c.Owner())

	c.Release("list")
	require.False(t, c.Active())
	require.False(t, c.Held("list"))
}

func TestCapture_SecondAcquireIsNoop(t *testing.T) {
	var c Capture

	require.True(t, c.Acquire("list"))
	require.False(t, c.Acquire("list"))
	require.Equal(t, 1, c.Registrations())
}

func TestCapture_OtherOwnerRefused(t *testing.T) {
	var c Capture
	c.Acquire("list")

	require.False(t, c.Acquire("menu"))
	require.Equal(t, "list", c.Owner())

	c.Release("menu")
	require.Equal(t, "list", c.Owner())
}

func TestCapture_RegistrationsCountCycles(t *testing.T) {
	var c Capture
	for range 3 {
		require.True(t, c.Acquire("list"))
		c.Release("list")
	}

	require.Equal(t, 3, c.Registrations())
	require.False(t, c.Active())
}
