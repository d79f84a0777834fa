// Package tui renders a scenario run as a plain-ANSI animation: a
// top-down view of the panel, the hands, and the viewer.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/scenario"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"

	// World window mapped onto the canvas, top-down (X right, Z up the
	// screen toward the viewer's -Z).
	worldMinX = -1.0
	worldMaxX = 1.0
	worldMinZ = -1.3
	worldMaxZ = 0.3
)

type LiveRenderer struct {
	knobs     []string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
}

func NewLiveRenderer(knobs []string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		knobs:     knobs,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, 50),
	}
}

func (r *LiveRenderer) OnFrame(rec scenario.Record, f *input.Frame) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawScene(rec, f)
	r.render(rec)
}

// Done restores the cursor after the final frame.
func (r *LiveRenderer) Done() {
	fmt.Print(showCursor)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) project(wx, wz float64) (int, int) {
	x := int((wx - worldMinX) / (worldMaxX - worldMinX) * float64(width-1))
	y := int((wz - worldMinZ) / (worldMaxZ - worldMinZ) * float64(height-1))
	return x, height - 1 - y
}

func (r *LiveRenderer) drawScene(rec scenario.Record, f *input.Frame) {
	// Window footprint with a breadcrumb trail.
	wx, wy := r.project(rec.WindowPos.X, rec.WindowPos.Z)
	r.trail = append(r.trail, struct{ x, y int }{wx, wy})
	if len(r.trail) > 40 {
		r.trail = r.trail[1:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}
	for dx := -3; dx <= 3; dx++ {
		r.set(wx+dx, wy, '=')
	}
	marker := '#'
	switch rec.State.String() {
	case "grabbed":
		marker = '@'
	case "resetting":
		marker = '~'
	}
	r.set(wx, wy, marker)

	// Viewer with gaze direction.
	hx, hy := r.project(f.Head.Position.X, f.Head.Position.Z)
	r.set(hx, hy, 'V')
	gx, gy := r.project(
		f.Head.Position.X+0.2*f.Head.Forward.X,
		f.Head.Position.Z+0.2*f.Head.Forward.Z)
	r.set(gx, gy, '^')

	// Hands: uppercase while pinching.
	for _, hd := range []input.Handedness{input.Right, input.Left} {
		h := f.Hand(hd)
		if !h.Tracked {
			continue
		}
		px, py := r.project(h.PalmPosition.X, h.PalmPosition.Z)
		c := 'r'
		if hd == input.Left {
			c = 'l'
		}
		if h.PinchActive {
			c = rune(strings.ToUpper(string(c))[0])
		}
		r.set(px, py, c)
	}
}

func (r *LiveRenderer) render(rec scenario.Record) {
	var sb strings.Builder
	sb.WriteString(clearScreen)
	sb.WriteString(hideCursor)

	for _, row := range r.canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat("-", width))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "t=%7.2fs  state=%-9s  idle=%6.1fs", rec.T, rec.State, rec.IdleFor)
	if rec.TargetDist > 0 {
		fmt.Fprintf(&sb, "  home in %.2fm", rec.TargetDist)
	}
	sb.WriteByte('\n')

	for i, name := range r.knobs {
		if i >= len(rec.Values) {
			break
		}
		fmt.Fprintf(&sb, "%-8s %8.3f  (%5.1f deg)  %s\n",
			name, rec.Values[i], rec.Angles[i]*180/math.Pi, dialBar(rec.Angles[i]))
	}

	fmt.Print(sb.String())
}

// dialBar sketches the pointer direction as one of eight compass runes.
func dialBar(angle float64) string {
	glyphs := []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return string(glyphs[sector])
}
