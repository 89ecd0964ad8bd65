package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/rungrid/rungrid/internal/geom"
	"github.com/rungrid/rungrid/internal/ui/styles"
)

// CloseMarker is drawn in the top border of closable modals.
const CloseMarker = "✕"

// Labels are the default button and status texts.
type Labels struct {
	OK      string
	Cancel  string
	GotIt   string
	Loading string
}

// DefaultLabels returns the built-in English labels.
func DefaultLabels() Labels {
	return Labels{OK: "OK", Cancel: "Cancel", GotIt: "Got it", Loading: "Scanning..."}
}

// withDefaults fills empty labels from DefaultLabels.
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.OK == "" {
		l.OK = d.OK
	}
	if l.Cancel == "" {
		l.Cancel = d.Cancel
	}
	if l.GotIt == "" {
		l.GotIt = d.GotIt
	}
	if l.Loading == "" {
		l.Loading = d.Loading
	}
	return l
}

// ActionLabels resolves which buttons an entry shows and their text.
// Progress modals never show buttons. Other kinds show them when a label is
// given explicitly or when the kind is Confirm or Error.
func ActionLabels(e Entry, labels Labels) (primary, secondary string, show bool) {
	labels = labels.withDefaults()

	switch e.Kind {
	case KindProgress:
		return "", "", false
	case KindConfirm, KindError, KindForm, KindCustom:
	}

	explicit := e.PrimaryLabel != "" || e.SecondaryLabel != ""
	show = explicit || e.Kind == KindConfirm || e.Kind == KindError
	if !show {
		return "", "", false
	}

	primary = e.PrimaryLabel
	if primary == "" {
		if e.Kind == KindError {
			primary = labels.GotIt
		} else {
			primary = labels.OK
		}
	}
	secondary = e.SecondaryLabel
	if secondary == "" && e.Kind == KindConfirm {
		secondary = labels.Cancel
	}
	return primary, secondary, true
}

// descriptionInHeader reports whether the description sits under the title.
// Progress and Error modals render it in the body instead.
func descriptionInHeader(k Kind) bool {
	switch k {
	case KindProgress, KindError:
		return false
	case KindConfirm, KindForm, KindCustom:
		return true
	}
	return true
}

// ClampPercent clamps a progress value into [0, 100].
func ClampPercent(v float64) float64 {
	return geom.ClampFloat(v, 0, 100)
}

func zoneID(id, part string) string {
	return "modal:" + id + ":" + part
}

// renderOptions carries host state needed to draw one card.
type renderOptions struct {
	labels  Labels
	width   int
	focus   Button
	spinner string
	bar     progress.Model
}

// card is one rendered modal. body is where the content block landed,
// relative to the card's top-left corner; it is empty without content.
type card struct {
	view string
	body geom.Rect
}

// render draws one modal card.
func render(e Entry, o renderOptions) card {
	width := o.width
	if width <= 0 {
		width = e.Size.Width()
	}
	inner := max(width-4, 1) // borders plus one cell of padding per side

	var lines []string
	add := func(block string) {
		if block == "" {
			return
		}
		lines = append(lines, strings.Split(block, "\n")...)
	}
	blank := func() {
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
	}

	if e.Description != "" && descriptionInHeader(e.Kind) {
		add(styles.DescriptionStyle.Render(wrapText(e.Description, inner)))
		blank()
	}

	var body geom.Rect
	if e.Content != nil {
		start := len(lines)
		add(e.Content.View(inner))
		// One border row on top, one border column plus padding on the left.
		body = geom.Rect{X: 2, Y: start + 1, W: inner, H: len(lines) - start}
	} else {
		switch e.Kind {
		case KindProgress:
			if e.Description != "" {
				add(styles.DescriptionStyle.Render(wrapText(e.Description, inner)))
				blank()
			}
			if e.Progress != nil {
				bar := o.bar
				bar.Width = inner
				add(bar.ViewAs(ClampPercent(*e.Progress) / 100))
			} else {
				add(o.spinner + " " + o.labels.withDefaults().Loading)
			}
			if e.Path != "" {
				add(styles.MutedStyle.Render(styles.TruncateMiddle(e.Path, inner)))
			}
		case KindError:
			if e.Description != "" {
				add(wrapText(e.Description, inner))
			}
			if e.Details != "" {
				blank()
				add(styles.DetailsStyle.Render(wrapText(e.Details, inner-2)))
			}
		case KindConfirm, KindForm, KindCustom:
		}
	}

	if buttons := renderButtons(e, o); buttons != "" {
		blank()
		pad := max(inner-lipgloss.Width(buttons), 0)
		add(strings.Repeat(" ", pad) + buttons)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	for i, line := range lines {
		lines[i] = " " + styles.FitWidth(line, inner) + " "
	}

	trailer := ""
	if e.Closable {
		trailer = zone.Mark(zoneID(e.ID, "close"), CloseMarker)
	}
	borderColor := styles.OverlayBorderColor
	if e.Tone == ToneDanger {
		borderColor = styles.StatusErrorColor
	}
	view := styles.RenderTitledBox(lines, styles.BoxOptions{
		Title:       e.Title,
		Trailer:     trailer,
		Width:       width,
		BorderColor: borderColor,
	})
	return card{view: view, body: body}
}

// renderButtons draws the action row, secondary first.
func renderButtons(e Entry, o renderOptions) string {
	primary, secondary, show := ActionLabels(e, o.labels)
	if !show {
		return ""
	}

	danger := e.Tone == ToneDanger
	style := func(which Button) lipgloss.Style {
		if e.Pending {
			return styles.DisabledButtonStyle
		}
		return styles.ButtonStyle(which == ButtonPrimary, danger, o.focus == which)
	}

	primaryBtn := zone.Mark(zoneID(e.ID, "primary"), style(ButtonPrimary).Render(primary))
	if secondary == "" {
		return primaryBtn
	}
	secondaryBtn := zone.Mark(zoneID(e.ID, "secondary"), style(ButtonSecondary).Render(secondary))
	return secondaryBtn + "  " + primaryBtn
}

// wrapText word-wraps s to width, hard-wrapping words that do not fit.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}
