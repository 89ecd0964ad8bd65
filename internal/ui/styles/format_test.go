package styles

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", TruncateString("short", 10))
	require.Equal(t, "", TruncateString("anything", 0))
	require.Equal(t, "abcd…", TruncateString("abcdefghij", 5))
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "C:/Users", 20, "C:/Users"},
		{"odd budget", "abcdefghij", 7, "abc…hij"},
		{"even budget", "abcdefghij", 6, "abc…ij"},
		{"single cell", "abcdefghij", 1, "…"},
		{"zero", "abcdefghij", 0, ""},
		{"wide runes", "日本語のパス名", 7, "日…名"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TruncateMiddle(tt.in, tt.width))
		})
	}
}

func TestTruncateMiddle_NeverExceedsWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z0-9/:_ 日本é]{0,60}`).Draw(t, "s")
		width := rapid.IntRange(1, 40).Draw(t, "width")

		got := TruncateMiddle(s, width)
		if uniseg.StringWidth(got) > width {
			t.Fatalf("TruncateMiddle(%q, %d) = %q is %d cells wide", s, width, got, uniseg.StringWidth(got))
		}
	})
}

func TestPadRight(t *testing.T) {
	require.Equal(t, "open      ", PadRight("open", 10))
	require.Equal(t, "remov…", PadRight("remove item", 6))
	require.Equal(t, "", PadRight("x", 0))
}

func TestFitWidth(t *testing.T) {
	require.Equal(t, "ab  ", FitWidth("ab", 4))
	require.Equal(t, "abc", FitWidth("abcdef", 3))
	require.Equal(t, 4, ansi.StringWidth(FitWidth("\x1b[31mab\x1b[0m", 4)))
}
