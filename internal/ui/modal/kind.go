package modal

// Kind selects how a modal's body and actions are rendered.
type Kind int

const (
	KindConfirm Kind = iota + 1
	KindForm
	KindProgress
	KindError
	KindCustom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfirm:
		return "confirm"
	case KindForm:
		return "form"
	case KindProgress:
		return "progress"
	case KindError:
		return "error"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindConfirm && k <= KindCustom
}

// Size controls the card width.
type Size int

const (
	SizeMedium Size = iota // zero value, the default
	SizeSmall
	SizeLarge
)

// Width returns the card width in cells.
func (s Size) Width() int {
	switch s {
	case SizeSmall:
		return 40
	case SizeLarge:
		return 76
	default:
		return 56
	}
}

// String returns the size name.
func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeLarge:
		return "large"
	default:
		return "medium"
	}
}

// Tone colours the primary action.
type Tone int

const (
	ToneDefault Tone = iota
	ToneDanger
)

// String returns the tone name.
func (t Tone) String() string {
	if t == ToneDanger {
		return "danger"
	}
	return "default"
}

// Button identifies one of a modal's two actions.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// String returns the button name.
func (b Button) String() string {
	if b == ButtonSecondary {
		return "secondary"
	}
	return "primary"
}
