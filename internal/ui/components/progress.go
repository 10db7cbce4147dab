package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fincert/internal/ui/theme"
)

// ProgressBar is a horizontal bar for session progress or accuracy.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Threshold, when positive, colors the fill as a pass/fail mark:
	// success at or above it, error below.
	Threshold float64
}

// NewProgressBar creates a progress bar without a threshold.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// NewAccuracyBar creates a bar colored against a pass mark.
func NewAccuracyBar(label string, accuracy, passMark float64, width int) ProgressBar {
	bar := NewProgressBar(label, accuracy, true, width)
	bar.Threshold = passMark
	return bar
}

func (p ProgressBar) fillColor() lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Secondary)
	switch {
	case p.Threshold <= 0:
	case p.Percent >= p.Threshold:
		style = style.Foreground(theme.Success)
	default:
		style = style.Foreground(theme.Error)
	}
	return style
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	b.WriteString(p.fillColor().Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
