package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)

	if len(m.Lines) > 0 {
		renderLog(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("pvelamp: %s", m.Hostname)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Ready")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + dimStyle.Render("provisioning")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 20
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n", bar, int(progress*100))
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, row := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case row.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case row.Done:
			icon = checkMark
			style = sf(readyStyle)
		case row.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		detail := ""
		if row.Err != nil {
			detail = failedStyle.Render(row.Err.Error())
		} else if row.Detail != "" && (row.Active || row.Done) {
			detail = dimStyle.Render(row.Detail)
		}
		fmt.Fprintf(b, "    %s %-22s %s\n", style(icon), style(row.Label), detail)
	}
}

func renderLog(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Log"))
	b.WriteString("\n")
	for _, line := range m.Lines {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " working"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

// Helper functions

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	done := 0
	for _, row := range m.Phases {
		if row.Done {
			done++
		}
	}
	return float64(done) / float64(len(m.Phases))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
