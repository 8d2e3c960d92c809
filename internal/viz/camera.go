package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const viewDistance = 3.0

// Camera projects world points onto a dot grid. Center and Extent map the
// scene into the unit cube before rotation and perspective are applied.
type Camera struct {
	Center     r3.Vec
	Extent     float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Extent: 1, Zoom: 1}
}

// Fit centres the camera on the mean of points and scales it so the
// farthest point lands on the unit sphere.
func (c *Camera) Fit(points []r3.Vec) {
	if len(points) == 0 {
		return
	}
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	c.Center = r3.Scale(1/float64(len(points)), sum)
	c.Extent = 0
	for _, p := range points {
		c.Extent = math.Max(c.Extent, r3.Norm(r3.Sub(p, c.Center)))
	}
	if c.Extent == 0 {
		c.Extent = 1
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project returns the dot coordinates of p on a sw x sh grid, its depth
// after rotation and whether it falls on the grid.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, ok bool) {
	rot := r3.Scale(c.Zoom/c.Extent, c.rotate(r3.Sub(p, c.Center)))
	if rot.Z >= viewDistance-0.1 {
		return 0, 0, 0, false
	}
	scale := viewDistance / (viewDistance - rot.Z)
	half := 0.45 * float64(min(sw, sh))
	x = int(math.Round(rot.X*scale*half)) + sw/2
	y = int(math.Round(-rot.Y*scale*half)) + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}
