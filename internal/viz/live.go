// Package viz plays back a recorded scenario run in the terminal with a
// top-down canvas, a stats sidebar and a value sparkline.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/nkotova/spatialui/internal/scenario"
)

const (
	canvasW = 56
	canvasH = 18

	worldMinX = -1.0
	worldMaxX = 1.0
	worldMinZ = -1.3
	worldMaxZ = 0.3
)

type TickMsg time.Time

// Model steps through a finished run's records at the run's own frame
// delta (capped so very long runs remain watchable).
type Model struct {
	result   *scenario.Result
	knobs    []string
	playHead int
	running  bool
	selected int // knob shown on the sparkline
	stride   int // records advanced per tick
}

func NewModel(result *scenario.Result, knobs []string) Model {
	stride := 1
	// Keep playback under roughly a minute regardless of run length.
	if limit := 60.0; float64(result.Frames)*result.DT > limit {
		stride = int(float64(result.Frames) * result.DT / limit)
	}
	return Model{
		result:  result,
		knobs:   knobs,
		running: true,
		stride:  stride,
	}
}

func (m Model) tick() tea.Cmd {
	dt := m.result.DT
	if dt <= 0 {
		dt = 1.0 / 60
	}
	return tea.Tick(time.Duration(dt*float64(time.Second)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
		case "tab":
			if len(m.knobs) > 0 {
				m.selected = (m.selected + 1) % len(m.knobs)
			}
		}
		return m, nil
	case TickMsg:
		if m.running && m.playHead < len(m.result.Records)-1 {
			m.playHead += m.stride
			if m.playHead >= len(m.result.Records) {
				m.playHead = len(m.result.Records) - 1
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.result.Records) == 0 {
		return "no records"
	}
	rec := m.result.Records[m.playHead]

	header := headerStyle.Render(fmt.Sprintf("spatialui · %s", m.result.Scenario))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.renderCanvas(rec)),
		statsStyle.Render(m.renderStats(rec)),
	)
	help := helpStyle.Render("space pause · r restart · tab knob · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func (m Model) renderCanvas(rec scenario.Record) string {
	grid := make([][]rune, canvasH)
	for i := range grid {
		grid[i] = make([]rune, canvasW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	set := func(x, y int, c rune) {
		if x >= 0 && x < canvasW && y >= 0 && y < canvasH {
			grid[y][x] = c
		}
	}
	project := func(wx, wz float64) (int, int) {
		x := int((wx - worldMinX) / (worldMaxX - worldMinX) * float64(canvasW-1))
		y := int((wz - worldMinZ) / (worldMaxZ - worldMinZ) * float64(canvasH-1))
		return x, canvasH - 1 - y
	}

	// Breadcrumbs up to the playhead.
	step := m.result.Frames/200 + 1
	for i := 0; i <= m.playHead; i += step {
		p := m.result.Records[i].WindowPos
		x, y := project(p.X, p.Z)
		set(x, y, '.')
	}

	wx, wy := project(rec.WindowPos.X, rec.WindowPos.Z)
	for dx := -3; dx <= 3; dx++ {
		set(wx+dx, wy, '=')
	}
	marker := '#'
	switch rec.State.String() {
	case "grabbed":
		marker = '@'
	case "resetting":
		marker = '~'
	}
	set(wx, wy, marker)

	// Viewer origin.
	vx, vy := project(0, 0)
	set(vx, vy, 'V')

	rows := make([]string, canvasH)
	for i, row := range grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStats(rec scenario.Record) string {
	var sb strings.Builder

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}

	stateStyle, ok := stateStyles[rec.State.String()]
	if !ok {
		stateStyle = valueStyle
	}
	sb.WriteString(labelStyle.Render("state"))
	sb.WriteString(stateStyle.Render(rec.State.String()))
	sb.WriteByte('\n')

	line("t", fmt.Sprintf("%.2fs", rec.T))
	line("frame", fmt.Sprintf("%d / %d", rec.Frame, m.result.Frames))
	line("window", fmt.Sprintf("(%.2f, %.2f, %.2f)", rec.WindowPos.X, rec.WindowPos.Y, rec.WindowPos.Z))
	line("idle", fmt.Sprintf("%.1fs", rec.IdleFor))
	if rec.TargetDist > 0 {
		line("to target", fmt.Sprintf("%.3fm", rec.TargetDist))
	}

	for i, name := range m.knobs {
		if i >= len(rec.Values) {
			break
		}
		cursor := " "
		if i == m.selected {
			cursor = ">"
		}
		line(cursor+" "+name, fmt.Sprintf("%.3f (%.0f°)", rec.Values[i], rec.Angles[i]*180/math.Pi))
	}

	if graph := m.sparkline(); graph != "" {
		sb.WriteString(graphStyle.Render(graph))
	}

	return sb.String()
}

// sparkline plots the selected knob's value up to the playhead.
func (m Model) sparkline() string {
	if len(m.knobs) == 0 || m.playHead < 2 {
		return ""
	}
	data := make([]float64, 0, m.playHead)
	step := m.playHead/120 + 1
	for i := 0; i <= m.playHead; i += step {
		rec := m.result.Records[i]
		if m.selected < len(rec.Values) {
			data = append(data, rec.Values[m.selected])
		}
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(34))
}
