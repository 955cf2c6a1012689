package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/justify"
)

// A terminal cell stands in for cellWidth × cellHeight CSS pixels, so
// boxes keep roughly their on-screen proportions.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// chromeLines is the header and footer height around the grid.
const chromeLines = 3

var (
	previewBoxStyle   = lipgloss.NewStyle().Foreground(colorGray)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorWhite)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PreviewModel - responsive grid preview
// =============================================================================

// PreviewModel draws the home grid in the terminal. Every WindowSizeMsg
// lays the projects out again for the new width, the way the browser does
// on resize.
type PreviewModel struct {
	Projects []content.Project
	Policy   content.GridPolicy

	Grid   content.Grid
	Err    error
	Width  int
	Height int
	Offset int
}

// NewPreviewModel creates a preview of projects under policy.
func NewPreviewModel(projects []content.Project, policy content.GridPolicy) PreviewModel {
	return PreviewModel{Projects: projects, Policy: policy}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.relayout()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset = max(m.Offset-1, 0)
		case "down", "j":
			m.Offset = min(m.Offset+1, m.maxOffset())
		case "l":
			if m.Policy.LastRow == justify.LastRowNatural {
				m.Policy.LastRow = justify.LastRowFill
			} else {
				m.Policy.LastRow = justify.LastRowNatural
			}
			m.relayout()
		case "+", "=":
			m.Policy.TargetRowHeight += cellHeight * 2
			m.relayout()
		case "-", "_":
			m.Policy.TargetRowHeight = math.Max(m.Policy.TargetRowHeight-cellHeight*2, cellHeight*2)
			m.relayout()
		}
	}
	return m, nil
}

// relayout rebuilds the grid for the current terminal width.
func (m *PreviewModel) relayout() {
	if m.Width <= 0 {
		return
	}
	m.Grid, m.Err = m.Policy.BuildGrid(m.Projects, float64(m.Width)*cellWidth)
	m.Offset = min(m.Offset, m.maxOffset())
}

func (m PreviewModel) lines() int {
	return int(math.Ceil(m.Grid.Height / cellHeight))
}

func (m PreviewModel) maxOffset() int {
	return max(m.lines()-(m.Height-chromeLines), 0)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("folio preview"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d projects · %.0fpx wide · row %.0fpx · last row %s",
		len(m.Projects), m.Grid.Width, m.Policy.TargetRowHeight, m.Policy.LastRow)))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	} else if m.Width > 0 {
		canvas := m.draw()
		end := len(canvas)
		if m.Height > chromeLines {
			end = min(m.Offset+m.Height-chromeLines, end)
		}
		for _, line := range canvas[min(m.Offset, end):end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(previewHelpStyle.Render("↑/↓ scroll  +/- row height  l last row  q quit"))
	return b.String()
}

// draw rasterises the grid into styled terminal lines.
func (m PreviewModel) draw() []string {
	rows, cols := m.lines(), m.Width
	if rows == 0 || cols == 0 {
		return nil
	}
	canvas := make([][]rune, rows)
	labels := make([][]bool, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
		labels[i] = make([]bool, cols)
	}

	for _, cell := range m.Grid.Cells {
		drawBox(canvas, labels, cell.Box, cell.Project.Title)
	}

	out := make([]string, rows)
	for y := range canvas {
		var line strings.Builder
		for x, r := range canvas[y] {
			if labels[y][x] {
				line.WriteString(previewLabelStyle.Render(string(r)))
			} else {
				line.WriteString(previewBoxStyle.Render(string(r)))
			}
		}
		out[y] = line.String()
	}
	return out
}

// drawBox outlines box on the canvas and centres label inside it. Boxes
// are clipped to the canvas.
func drawBox(canvas [][]rune, labels [][]bool, box justify.Box, label string) {
	x0 := int(math.Round(box.Left / cellWidth))
	x1 := int(math.Round(box.Right()/cellWidth)) - 1
	y0 := int(math.Round(box.Top / cellHeight))
	y1 := int(math.Round(box.Bottom()/cellHeight)) - 1
	if x1 <= x0 || y1 <= y0 {
		return
	}

	set := func(x, y int, r rune) {
		if y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y]) {
			canvas[y][x] = r
		}
	}
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')

	inner := x1 - x0 - 1
	runes := []rune(label)
	if inner <= 0 || len(runes) == 0 || y1-y0 < 2 {
		return
	}
	if len(runes) > inner {
		runes = append(runes[:max(inner-1, 0)], '…')
	}
	y := (y0 + y1) / 2
	start := x0 + 1 + (inner-len(runes))/2
	for i, r := range runes {
		set(start+i, y, r)
		if y >= 0 && y < len(labels) && start+i < len(labels[y]) {
			labels[y][start+i] = true
		}
	}
}
