package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/liquid/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Plane selects the two coordinates a snapshot is projected onto.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

func (p Plane) axes() (int, int, int, error) {
	switch p {
	case PlaneXY, "":
		return 0, 1, 2, nil
	case PlaneXZ:
		return 0, 2, 1, nil
	case PlaneYZ:
		return 1, 2, 0, nil
	}
	return 0, 0, 0, fmt.Errorf("%w: plane %q", dynamo.ErrUnknownMode, string(p))
}

// SnapshotToSVG projects a configuration onto plane, drawing each particle as
// a unit-diameter disc inside the box outline. Depth sets the opacity.
func SnapshotToSVG(config dynamo.Configuration, boxLength float64, plane Plane, size int) (string, error) {
	a, b, depth, err := plane.axes()
	if err != nil {
		return "", err
	}
	if boxLength <= 0 {
		return "", dynamo.Bounds("box_length", boxLength, "> 0")
	}

	scale := float64(size) / boxLength
	radius := 0.5 * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0" y="0" width="%d" height="%d" fill="none" stroke="#444444" stroke-width="1"/>
<g fill="#00bfff">
`, size, size, size, size, size, size))

	for _, p := range config {
		x := p[a] * scale
		y := float64(size) - p[b]*scale
		opacity := 0.35 + 0.65*(p[depth]/boxLength)
		if opacity > 1 {
			opacity = 1
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, x, y, radius, opacity))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}

// LineToSVG draws points as a polyline fitted to the canvas with 10% padding.
func LineToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

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

// TracePoints plots energy against step.
func TracePoints(trace []dynamo.Record) []Point {
	pts := make([]Point, len(trace))
	for i, r := range trace {
		pts[i] = Point{X: float64(r.Step), Y: r.Energy}
	}
	return pts
}

func SeriesPoints(x, y []float64) []Point {
	n := min(len(x), len(y))
	pts := make([]Point, n)
	for i := range n {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	return pts
}
