package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera projects world points onto the canvas. With no rotation it looks
// straight down the Y axis: world X runs right and world Z runs down, so
// orbits in the reference plane appear face-on.
type Camera struct {
	Center     r3.Vec
	RotX, RotY float64
	Zoom       float64
	// Extent is the world distance from Center that fills half the
	// shorter canvas side at Zoom 1.
	Extent float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Extent: 100}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(20, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

func (c *Camera) ResetView() {
	c.RotX, c.RotY, c.Zoom = 0, 0, 1
}

// Fit centres the camera on the given points and sizes Extent so they
// all stay on screen.
func (c *Camera) Fit(points []r3.Vec) {
	if len(points) == 0 {
		return
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	c.Center = r3.Scale(0.5, r3.Add(lo, hi))

	ext := 0.0
	for _, p := range points {
		ext = math.Max(ext, r3.Norm(r3.Sub(p, c.Center)))
	}
	if ext > 0 {
		c.Extent = ext * 1.05
	}
}

func (c *Camera) rotate(p r3.Vec) r3.Vec {
	p = r3.Sub(p, c.Center)
	if c.RotX != 0 {
		p = r3.NewRotation(c.RotX, r3.Vec{X: 1}).Rotate(p)
	}
	if c.RotY != 0 {
		p = r3.NewRotation(c.RotY, r3.Vec{Y: 1}).Rotate(p)
	}
	return p
}

// Project maps p to sub-pixel coordinates on a sw x sh canvas. Terminal
// cells are twice as tall as wide and braille halves that again, so one
// sub-pixel is square. depth grows toward the viewer.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, ok bool) {
	rot := c.rotate(p)
	half := float64(min(sw, sh)) / 2
	extent := c.Extent
	if extent <= 0 {
		extent = 1
	}
	scale := half * c.Zoom / extent

	x = int(math.Round(rot.X*scale)) + sw/2
	y = int(math.Round(rot.Z*scale)) + sh/2
	return x, y, rot.Y, x >= 0 && x < sw && y >= 0 && y < sh
}

// DrawPolyline projects pts and joins consecutive points, closing the loop
// when closed is set. Segments with an end far off screen are skipped.
func DrawPolyline(cv *Canvas, cam *Camera, pts []r3.Vec, closed bool, ink lipgloss.Color) {
	if len(pts) < 2 {
		return
	}
	sw, sh := cv.SubWidth(), cv.SubHeight()
	near := func(x, y int) bool {
		return x > -sw && x < 2*sw && y > -sh && y < 2*sh
	}

	px, py, _, _ := cam.Project(pts[0], sw, sh)
	fx, fy := px, py
	for _, p := range pts[1:] {
		x, y, _, _ := cam.Project(p, sw, sh)
		if near(px, py) && near(x, y) {
			cv.DrawLine(px, py, x, y, ink)
		}
		px, py = x, y
	}
	if closed && near(px, py) && near(fx, fy) {
		cv.DrawLine(px, py, fx, fy, ink)
	}
}
