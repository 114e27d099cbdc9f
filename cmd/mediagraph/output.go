package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mediagraph/mediagraph/internal/executor"
	"github.com/mediagraph/mediagraph/internal/model"
)

var (
	styleRunning   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleConfirmed = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleSkipped   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDim       = lipgloss.NewStyle().Faint(true)
)

// statusPrinter streams run events as styled lines. Styling is disabled
// when stdout is not a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &statusPrinter{out: out, color: color}
}

func (p *statusPrinter) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

func (p *statusPrinter) status(nodeID, status, message string) {
	var line string
	switch status {
	case model.StatusRunning:
		line = p.render(styleRunning, "▶ "+nodeID)
	case model.StatusConfirmed:
		line = p.render(styleConfirmed, "✔ "+nodeID)
	case model.StatusError:
		line = p.render(styleError, "✘ "+nodeID+": "+message)
	case model.StatusSkipped:
		line = p.render(styleSkipped, "- "+nodeID+" ("+message+")")
	default:
		line = nodeID + " " + status
	}
	fmt.Fprintln(p.out, line)
}

func (p *statusPrinter) progress(nodeID string, percent float64, message string) {
	line := fmt.Sprintf("  %s %.0f%%", nodeID, percent)
	if message != "" {
		line += " " + message
	}
	fmt.Fprintln(p.out, p.render(styleDim, line))
}

func (p *statusPrinter) complete(nodeID string, completion model.Completion) {
	if value, ok := completion.Values[model.PrimaryOutput]; ok && value != nil {
		fmt.Fprintln(p.out, p.render(styleDim, fmt.Sprintf("  %s → %v (%.0fms)", nodeID, value, float64(completion.Duration.Milliseconds()))))
	}
}

func (p *statusPrinter) cancelled() {
	fmt.Fprintln(p.out, p.render(styleError, "run cancelled"))
}

func (p *statusPrinter) summary(s *executor.Summary) {
	line := fmt.Sprintf("%d confirmed, %d failed, %d skipped", s.Confirmed, s.Failed, s.Skipped)
	if s.Reused > 0 {
		line += fmt.Sprintf(", %d reused", s.Reused)
	}
	if s.TotalCost > 0 {
		line += fmt.Sprintf(" ($%.3f)", s.TotalCost)
	}
	line += fmt.Sprintf(" in %s", s.Duration.Round(time.Millisecond))
	fmt.Fprintln(p.out, line)
}
