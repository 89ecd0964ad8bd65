package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender_PlainContent(t *testing.T) {
	r, err := New(40, "dark")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("# Keys\n\nPress **enter** to launch.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Keys")
	require.Contains(t, plain, "Press enter to launch.")
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestRender_Wraps(t *testing.T) {
	r, err := New(20, "light")
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 20))
	require.NoError(t, err)

	for _, line := range strings.Split(ansi.Strip(out), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
	}
}

func TestRenderOr_NilRenderer(t *testing.T) {
	var r *Renderer
	require.Equal(t, "# raw", r.RenderOr("# raw"))
}
