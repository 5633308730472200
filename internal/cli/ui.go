package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by the status output and the frame browser.
var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleValue = lipgloss.NewStyle().Foreground(colorValue)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
)

// status marks carry their own colour.
var (
	markOK   = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	markFail = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	markWarn = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	markInfo = lipgloss.NewStyle().Foreground(colorMuted).Render("›")
)

// console writes human-oriented status lines to a command's output.
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) console { return console{w: w} }

func (c console) mark(mark, format string, args ...any) {
	fmt.Fprintln(c.w, mark+" "+fmt.Sprintf(format, args...))
}

func (c console) success(format string, args ...any) { c.mark(markOK, format, args...) }
func (c console) fail(format string, args ...any)    { c.mark(markFail, format, args...) }
func (c console) info(format string, args ...any)    { c.mark(markInfo, format, args...) }

func (c console) warn(format string, args ...any) {
	c.mark(markWarn, "%s", lipgloss.NewStyle().Foreground(colorWarn).Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, muted line under the previous status.
func (c console) detail(format string, args ...any) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file lists an output file.
func (c console) file(path string) {
	fmt.Fprintln(c.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// stats prints "N sprites · WxH · E% used · cached|fresh". The cache
// marker refers to the layout, the only stage whose reuse is visible.
func (c console) stats(sprites int, canvas atlas.Size, efficiency float64, cached bool) {
	parts := []string{fmt.Sprintf("%d sprites", sprites)}
	if canvas.Width > 0 && canvas.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", canvas.Width, canvas.Height))
	}
	if efficiency > 0 {
		parts = append(parts, fmt.Sprintf("%.1f%% used", efficiency*100))
	}
	line := StyleDim.Render(strings.Join(parts, " · ") + " · ")
	if cached {
		line += lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	} else {
		line += lipgloss.NewStyle().Foreground(colorMuted).Render("fresh")
	}
	fmt.Fprintln(c.w, "  "+line)
}

// hint suggests a follow-up command.
func (c console) hint(label, command string) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, StyleDim.Render(label+":")+" "+lipgloss.NewStyle().Foreground(colorCmd).Render(command))
}
