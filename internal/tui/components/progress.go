package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/resolution/internal/pacing"
	"github.com/theirongolddev/resolution/internal/tui/theme"
)

// ProgressBar renders a block progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp(pct)
	filled := min(int(pct*float64(width)), width)

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// PaceColor picks the bar color for a reading status: green when on or
// ahead of schedule, yellow for a small gap, red past a week's reading.
func PaceColor(s pacing.ReadingStatus) lipgloss.Color {
	t := theme.Active
	switch {
	case s.BehindBy == 0:
		return t.Green
	case s.BehindBy <= 7*max(s.ChaptersToday, 3):
		return t.Yellow
	default:
		return t.Red
	}
}

// ReadingBar renders a labeled plan progress bar, e.g.
// "Bible  ████░░░░  12.3%  146/1,189".
func ReadingBar(label string, s pacing.ReadingStatus, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if s.Total > 0 {
		pct = clamp(float64(s.ChaptersRead) / float64(s.Total))
	}
	color := PaceColor(s)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(pct) +
		" " +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", s.PercentComplete)) +
		"  " +
		countStyle.Render(fmt.Sprintf("%d/%d", s.ChaptersRead, s.Total))
}

func clamp(pct float64) float64 {
	return max(0, min(pct, 1))
}
