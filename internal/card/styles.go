package card

import (
	"github.com/charmbracelet/lipgloss"

	"todocard/internal/task"
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")

	bgAlert   = lipgloss.AdaptiveColor{Light: "224", Dark: "52"}
	bgSuccess = lipgloss.AdaptiveColor{Light: "194", Dark: "22"}
	// The overlay's neutral surface differs from the card's so the dialog
	// stands out on dark terminals.
	bgOverlay = lipgloss.AdaptiveColor{Light: "255", Dark: "236"}
	badgeBg   = lipgloss.AdaptiveColor{Light: "229", Dark: "136"}
	badgeFg   = lipgloss.AdaptiveColor{Light: "136", Dark: "231"}
	borderDim = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
)

type Styles struct {
	CardNeutral lipgloss.Style
	CardAlert   lipgloss.Style
	CardSuccess lipgloss.Style
	CardFocused lipgloss.TerminalColor

	OverlayNeutral lipgloss.Style
	OverlayAlert   lipgloss.Style
	OverlaySuccess lipgloss.Style

	Title       lipgloss.Style
	Description lipgloss.Style
	Badge       lipgloss.Style
	Label       lipgloss.Style
	Option      lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	Notice      lipgloss.Style
	NoticeError lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderDim).
		Padding(0, 1)
	overlay := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)

	return Styles{
		CardNeutral: card,
		CardAlert:   card.Background(bgAlert),
		CardSuccess: card.Background(bgSuccess),
		CardFocused: colorAccent,

		OverlayNeutral: overlay.Background(bgOverlay),
		OverlayAlert:   overlay.Background(bgAlert),
		OverlaySuccess: overlay.Background(bgSuccess),

		Title:       lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "250"}),
		Badge:       lipgloss.NewStyle().Background(badgeBg).Foreground(badgeFg).Padding(0, 1),
		Label:       lipgloss.NewStyle().Foreground(colorMuted),
		Option:      lipgloss.NewStyle().Padding(0, 1),
		Selected:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccent).Underline(true),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3).
			Bold(true),
		NoticeError: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3).
			Bold(true),
	}
}

// Card returns the card surface for a tone.
func (s Styles) Card(t task.Tone) lipgloss.Style {
	switch t {
	case task.ToneAlert:
		return s.CardAlert
	case task.ToneSuccess:
		return s.CardSuccess
	default:
		return s.CardNeutral
	}
}

// Overlay returns the edit dialog surface for a tone.
func (s Styles) Overlay(t task.Tone) lipgloss.Style {
	switch t {
	case task.ToneAlert:
		return s.OverlayAlert
	case task.ToneSuccess:
		return s.OverlaySuccess
	default:
		return s.OverlayNeutral
	}
}
