package viz

import (
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
)

// Camera rotates and projects box coordinates onto the canvas.
// Points are expected in [-1, 1]³.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 6, RotX: -0.35, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p dynamo.Vec3) dynamo.Vec3 {
	x, y, z := p[0], p[1], p[2]
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	y, z = y*cx-z*sx, y*sx+z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	x, z = x*cy+z*sy, -x*sy+z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	x, y = x*cz-y*sz, x*sz+y*cz
	return dynamo.Vec3{x, y, z}
}

// Project returns the dot coordinates of p on a sw x sh canvas and whether
// it lands on it.
func (c *Camera) Project(p dynamo.Vec3, sw, sh int) (int, int, bool) {
	rot := c.rotate(p)
	if rot[2] >= c.Distance {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot[2]) * c.Zoom
	half := float64(min(sw, sh)) / 2.6
	sx := int(rot[0]*persp*half) + sw/2
	sy := int(-rot[1]*persp*half) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

var cubeEdges = [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}

// RenderBox draws the periodic box outline and every particle, with
// coordinates mapped from [0, boxLength) to [-1, 1).
func RenderBox(c *Canvas, config dynamo.Configuration, boxLength float64, cam *Camera) {
	if c == nil || cam == nil || boxLength <= 0 {
		return
	}
	w, h := c.DotsWide(), c.DotsHigh()

	corners := [8]dynamo.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}
	for _, e := range cubeEdges {
		x0, y0, v0 := cam.Project(corners[e[0]], w, h)
		x1, y1, v1 := cam.Project(corners[e[1]], w, h)
		if v0 || v1 {
			c.DrawLine(x0, y0, x1, y1)
		}
	}

	for _, p := range config {
		var q dynamo.Vec3
		for k := range q {
			q[k] = 2*p[k]/boxLength - 1
		}
		if x, y, ok := cam.Project(q, w, h); ok {
			c.Set(x, y)
		}
	}
}
