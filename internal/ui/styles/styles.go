// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"} // hints, help text
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E1A100", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}
	SelectionBgColor        = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#264F78"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDangerBgColor         = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDangerFocusBgColor    = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}
	ButtonDisabledBgColor       = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#8C8C8C"}
	BackdropColor      = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#3A3A3A"}

	// Toast borders, one per tone
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderInfoColor    = StatusInfoColor
	ToastBorderWarnColor    = StatusWarningColor
	ToastBorderErrorColor   = StatusErrorColor

	// Scrollbar
	ScrollTrackColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#3A3A3A"}
	ScrollThumbColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#8C8C8C"}

	ProgressGradientStart = "#1A5276"
	ProgressGradientEnd   = "#3498DB"

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonSecondaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DangerButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonDangerBgColor)

	DangerButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonDangerFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(TextMutedColor).
				Background(ButtonDisabledBgColor)

	// Context menu rows
	MenuItemStyle         = lipgloss.NewStyle().Foreground(TextPrimaryColor).Padding(0, 1)
	MenuItemSelectedStyle = MenuItemStyle.Background(SelectionBgColor).Bold(true)
	MenuItemDisabledStyle = MenuItemStyle.Foreground(TextMutedColor)
	MenuItemDangerStyle   = MenuItemStyle.Foreground(StatusErrorColor)

	DescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	MutedStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Preformatted error details
	DetailsStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(StatusErrorColor).
			PaddingLeft(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)
)

// ButtonStyle picks the style for a button by role and focus.
func ButtonStyle(primary, danger, focused bool) lipgloss.Style {
	switch {
	case primary && danger && focused:
		return DangerButtonFocusedStyle
	case primary && danger:
		return DangerButtonStyle
	case primary && focused:
		return PrimaryButtonFocusedStyle
	case primary:
		return PrimaryButtonStyle
	case focused:
		return SecondaryButtonFocusedStyle
	default:
		return SecondaryButtonStyle
	}
}
