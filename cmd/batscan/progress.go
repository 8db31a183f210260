package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lightsout-hb/batscan/internal/models"
)

var (
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	batterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// progressDisplay renders an in-place progress line driven by the scan
// callbacks. Callbacks fire synchronously from the scan loop, so rendering
// here needs no locking.
type progressDisplay struct {
	out        io.Writer
	quiet      bool
	count      int
	lastBatter string
	active     bool
}

func newProgressDisplay(out io.Writer, quiet bool) *progressDisplay {
	return &progressDisplay{out: out, quiet: quiet}
}

// BatterFound handles the new-event callback.
func (p *progressDisplay) BatterFound(e models.EventFrame) {
	p.count++
	p.lastBatter = lastName(e)
}

// Tick handles the per-frame progress callback.
func (p *progressDisplay) Tick(processed, total int) {
	if p.quiet {
		return
	}
	p.active = true

	line := "Scanning..."
	if total > 0 {
		percent := float64(processed) / float64(total) * 100
		line = fmt.Sprintf("Scanning... %s", percentStyle.Render(fmt.Sprintf("%.1f%%", percent)))
	}
	line += fmt.Sprintf(" | Found %s batters", countStyle.Render(fmt.Sprintf("%d", p.count)))
	if p.lastBatter != "" {
		line += fmt.Sprintf(" | Last: %s", batterStyle.Render(p.lastBatter))
	}
	fmt.Fprintf(p.out, "\r\033[K%s", line)
}

// Done terminates the in-place progress line.
func (p *progressDisplay) Done() {
	if p.active {
		fmt.Fprintln(p.out)
		p.active = false
	}
}

// Summary prints the post-scan header for the chapter list.
func (p *progressDisplay) Summary(count int) {
	plural := "s"
	if count == 1 {
		plural = ""
	}
	fmt.Fprintf(p.out, "%s Found %d batter%s\n\n%s\n",
		titleStyle.Render("Scan complete!"), count, plural, titleStyle.Render("YouTube Chapters:"))
}
