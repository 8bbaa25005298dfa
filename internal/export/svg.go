package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/viz"
)

const (
	svgBackground = "#0a0a0a"
	svgRod        = "#00ccff"
	svgJoint      = "#ffffff"
	svgGround     = "#888899"
	svgMargin     = 24
	jointRadius   = 5.0
	sliderHalfLen = 9.0
	sliderHalfWid = 4.0
)

func svgHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w := int(math.Round(float64(canvas.PixelWidth()) * scale))
	h := int(math.Round(float64(canvas.PixelHeight()) * scale))

	var sb strings.Builder
	svgHeader(&sb, w, h)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// MechanismSVG draws m fitted into a width x height picture. Rods are lines,
// ground ends are hatched and every joint kind has its own glyph.
func MechanismSVG(m *kin.Mechanism, width, height int) string {
	lo, hi := m.Bounds()
	vp := viz.FitViewport(lo, hi, width, height, svgMargin)
	screen := func(p geom.Point) (float64, float64) {
		return float64(width)/2 + (p.X-vp.Center.X)*vp.Scale,
			float64(height)/2 - (p.Y-vp.Center.Y)*vp.Scale
	}

	var sb strings.Builder
	svgHeader(&sb, width, height)

	sb.WriteString(fmt.Sprintf(`<g id="rods" stroke="%s" stroke-width="2.5" stroke-linecap="round">`+"\n", svgRod))
	for i := range m.Rods {
		r := &m.Rods[i]
		ax, ay := screen(r.A)
		bx, by := screen(r.B)
		sb.WriteString(fmt.Sprintf(`<line id="rod%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", i, ax, ay, bx, by))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g id="ground" stroke="%s" stroke-width="1.5">`+"\n", svgGround))
	for i := range m.Rods {
		r := &m.Rods[i]
		if r.GroundA {
			x, y := screen(r.A)
			writeGround(&sb, x, y)
		}
		if r.GroundB {
			x, y := screen(r.B)
			writeGround(&sb, x, y)
		}
	}
	for i := range m.Joints {
		if m.Joints[i].Ground {
			x, y := screen(m.Joints[i].Pos)
			writeGround(&sb, x, y)
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g id="joints" stroke="%s" stroke-width="1.5" fill="%s">`+"\n", svgJoint, svgBackground))
	for i := range m.Joints {
		j := &m.Joints[i]
		x, y := screen(j.Pos)
		writeJoint(&sb, j, x, y)
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func writeJoint(sb *strings.Builder, j *kin.Joint, x, y float64) {
	switch j.Kind {
	case kin.Pivot:
		sb.WriteString(fmt.Sprintf(`<circle class="pivot" cx="%.2f" cy="%.2f" r="%.1f"/>`+"\n", x, y, jointRadius))
	case kin.Fixation:
		sb.WriteString(fmt.Sprintf(`<rect class="fixation" x="%.2f" y="%.2f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x-jointRadius, y-jointRadius, 2*jointRadius, 2*jointRadius, svgJoint))
	case kin.Slider, kin.Slidep:
		// SVG rotation is clockwise because y points down.
		angle := -j.Dir.AngleDeg()
		sb.WriteString(fmt.Sprintf(`<rect class="%s" x="%.2f" y="%.2f" width="%.1f" height="%.1f" transform="rotate(%.2f %.2f %.2f)"/>`+"\n",
			j.Kind, x-sliderHalfLen, y-sliderHalfWid, 2*sliderHalfLen, 2*sliderHalfWid, angle, x, y))
		if j.Kind == kin.Slidep {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f"/>`+"\n", x, y, jointRadius/2))
		}
	}
}

// writeGround draws a bar under (x, y) with three hatch strokes.
func writeGround(sb *strings.Builder, x, y float64) {
	base := y + jointRadius + 3
	sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x-8, base, x+8, base))
	for dx := -8.0; dx < 8; dx += 6 {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x+dx+4, base, x+dx, base+5))
	}
}

// TraceSVG plots the residual error per sweep on a log10 scale.
func TraceSVG(trace []float64, width, height int, strokeColor string) string {
	if len(trace) < 2 {
		return ""
	}

	logs := make([]float64, len(trace))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, v := range trace {
		logs[i] = math.Log10(math.Max(v, 1e-12))
		minY = math.Min(minY, logs[i])
		maxY = math.Max(maxY, logs[i])
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(trace) - 1)

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, ly := range logs {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (ly-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
