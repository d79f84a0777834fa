// Package export renders a recorded run as a standalone SVG: the
// window's top-down trajectory plus a value strip per knob.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/nkotova/spatialui/internal/scenario"
)

const (
	svgWidth   = 640
	plotHeight = 360
	stripTop   = 380
	stripStep  = 70
	margin     = 24
)

// RunToSVG draws the window XZ path and one polyline per knob value.
func RunToSVG(result *scenario.Result, knobs []string) string {
	if result == nil || len(result.Records) < 2 {
		return ""
	}

	height := stripTop + stripStep*len(knobs) + margin
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, height, svgWidth, height)

	sb.WriteString(trajectoryPolyline(result.Records))

	for i, name := range knobs {
		sb.WriteString(valueStrip(result.Records, i, name, stripTop+stripStep*i))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func trajectoryPolyline(records []scenario.Record) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		minX = math.Min(minX, r.WindowPos.X)
		maxX = math.Max(maxX, r.WindowPos.X)
		minZ = math.Min(minZ, r.WindowPos.Z)
		maxZ = math.Max(maxZ, r.WindowPos.Z)
	}
	spanX := maxX - minX
	spanZ := maxZ - minZ
	if spanX < 1e-6 {
		spanX = 1
	}
	if spanZ < 1e-6 {
		spanZ = 1
	}

	var pts strings.Builder
	for _, r := range records {
		x := margin + (r.WindowPos.X-minX)/spanX*(svgWidth-2*margin)
		y := margin + (r.WindowPos.Z-minZ)/spanZ*(plotHeight-2*margin)
		fmt.Fprintf(&pts, "%.1f,%.1f ", x, y)
	}

	return fmt.Sprintf(`<polyline points="%s" fill="none" stroke="#00ff88" stroke-width="1.5"/>
<text x="%d" y="18" fill="#888888" font-size="12">window path (top-down)</text>
`, strings.TrimSpace(pts.String()), margin)
}

func valueStrip(records []scenario.Record, knob int, name string, top int) string {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		if knob >= len(r.Values) {
			return ""
		}
		minV = math.Min(minV, r.Values[knob])
		maxV = math.Max(maxV, r.Values[knob])
	}
	span := maxV - minV
	if span < 1e-9 {
		span = 1
	}

	var pts strings.Builder
	n := float64(len(records) - 1)
	for i, r := range records {
		x := margin + float64(i)/n*(svgWidth-2*margin)
		y := float64(top+stripStep-10) - (r.Values[knob]-minV)/span*float64(stripStep-20)
		fmt.Fprintf(&pts, "%.1f,%.1f ", x, y)
	}

	return fmt.Sprintf(`<polyline points="%s" fill="none" stroke="#00ccff" stroke-width="1"/>
<text x="%d" y="%d" fill="#888888" font-size="12">%s</text>
`, strings.TrimSpace(pts.String()), margin, top+12, name)
}
