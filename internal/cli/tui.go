package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var frameHeaders = []string{"Frame", "Position", "Size", "Source", "Margin"}

// =============================================================================
// FrameListModel - Interactive frame browser
// =============================================================================

// FrameListModel is the bubbletea model for browsing the frames of a sheet.
type FrameListModel struct {
	Sheet  sheet.Sheet
	Cursor int
	Height int
	Offset int
}

// NewFrameListModel creates a new frame list model.
func NewFrameListModel(s sheet.Sheet) FrameListModel {
	return FrameListModel{
		Sheet:  s,
		Height: 15,
	}
}

func (m FrameListModel) Init() tea.Cmd {
	return nil
}

func (m FrameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Sheet.Frames)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			if n > 0 {
				m.Cursor = n - 1
			}
		}
	case tea.WindowSizeMsg:
		// title, help, detail panel and table borders
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *FrameListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m FrameListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s  %dx%d", m.Sheet.Texture, m.Sheet.Width, m.Sheet.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Sheet.Frames) == 0 {
		b.WriteString(listDimStyle.Render("  no frames"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Sheet.Frames))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, frameRow(m.Sheet.Frames[i]))
	}

	t := frameTable(rows).StyleFunc(func(row, col int) lipgloss.Style {
		if row == -1 {
			return tableHeaderStyle
		}
		if m.Offset+row == m.Cursor {
			return listSelectedStyle
		}
		if col > 0 {
			return listDimStyle
		}
		return lipgloss.NewStyle()
	})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(frameDetail(m.Sheet.Frames[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sheet.Frames))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

func frameTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(frameHeaders...).
		Rows(rows...)
}

func frameRow(f sheet.Frame) []string {
	return []string{
		f.Name,
		fmt.Sprintf("%d,%d", f.X, f.Y),
		fmt.Sprintf("%dx%d", f.Width, f.Height),
		fmt.Sprintf("%dx%d", f.SourceWidth, f.SourceHeight),
		formatSides(f.Margin),
	}
}

func frameDetail(f sheet.Frame) string {
	var b strings.Builder
	b.WriteString("  " + StyleValue.Render(f.Name))
	if f.Pattern != "" {
		b.WriteString(listDimStyle.Render("  from " + f.Pattern))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  padding %s", formatSides(f.Padding))))
	return b.String()
}

// formatSides renders sides in CSS order: up right down left.
func formatSides(s atlas.Sides) string {
	if s == (atlas.Sides{}) {
		return "—"
	}
	return fmt.Sprintf("%d %d %d %d", s.Up, s.Right, s.Down, s.Left)
}
