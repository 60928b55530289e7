package render

import (
	"math"

	"github.com/echoflaresat/prismcam/vectors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/soniakeys/unit"
)

const (
	// DefaultElevation looks at the scene from the horizontal plane.
	DefaultElevation = 90.0

	maxElevation = 180.0
)

// Camera is an orthographic camera orbiting on a sphere. Azimuth and
// elevation are kept in degrees; Forward, Axis1 and Axis2 are derived from
// them and only valid after the last change went through a setter.
type Camera struct {
	azimuth   float64
	elevation float64

	Position vectors.Vec3
	Forward  vectors.Vec3
	Axis1    vectors.Vec3 // horizontal screen axis
	Axis2    vectors.Vec3 // vertical screen axis
}

// NewCamera returns a camera at the world origin with azimuth 0 and
// elevation 90.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Azimuth returns the horizontal angle in degrees, in [0,360).
func (c *Camera) Azimuth() float64 { return c.azimuth }

// Elevation returns the polar angle from the vertical axis in degrees.
func (c *Camera) Elevation() float64 { return c.elevation }

// SetAzimuth sets the azimuth to angle mod 360.
func (c *Camera) SetAzimuth(angle float64) {
	c.azimuth = wrap360(angle)
	c.updateFrame()
}

// AddToAzimuth rotates the camera horizontally by delta degrees.
func (c *Camera) AddToAzimuth(delta float64) {
	c.SetAzimuth(c.azimuth + delta)
}

// SetElevation sets the elevation if angle lies in [0,180]. Requests outside
// that range are dropped and reported as false; they are not errors.
func (c *Camera) SetElevation(angle float64) bool {
	if !(angle >= 0 && angle <= maxElevation) {
		return false
	}
	c.elevation = angle
	c.updateFrame()
	return true
}

// ModifyElevation adds delta to the elevation under the same rule as
// SetElevation.
func (c *Camera) ModifyElevation(delta float64) bool {
	return c.SetElevation(c.elevation + delta)
}

// ModifyOrigin moves the camera by delta.
func (c *Camera) ModifyOrigin(delta vectors.Vec3) {
	c.Position = c.Position.Add(delta)
}

// Reset restores azimuth 0, elevation 90 and the zero position.
func (c *Camera) Reset() {
	c.Position = vectors.Zero()
	c.azimuth = 0
	c.elevation = DefaultElevation
	c.updateFrame()
}

// updateFrame derives the spherical basis: Forward is the radial direction,
// Axis1 the azimuthal tangent and Axis2 the elevation tangent.
func (c *Camera) updateFrame() {
	theta := unit.AngleFromDeg(c.azimuth)
	phi := unit.AngleFromDeg(c.elevation)
	sinT, cosT := theta.Sin(), theta.Cos()
	sinP, cosP := phi.Sin(), phi.Cos()

	c.Forward = vectors.Vec3{X: cosT * sinP, Y: sinT * sinP, Z: cosP}.Normalize()
	c.Axis1 = vectors.Vec3{X: -sinT, Y: cosT, Z: 0}.Normalize()
	c.Axis2 = vectors.Vec3{X: cosP * cosT, Y: cosP * sinT, Z: -sinP}.Normalize()
}

// ProjectPoint maps p onto the view plane. The Forward component is dropped.
func (c *Camera) ProjectPoint(p vectors.Vec3) vectors.Vec2 {
	rel := p.Sub(c.Position)
	return vectors.Vec2{X: c.Axis1.Dot(rel), Y: c.Axis2.Dot(rel)}
}

// Depth returns the Forward component of p relative to the camera position.
func (c *Camera) Depth(p vectors.Vec3) float64 {
	return c.Forward.Dot(p.Sub(c.Position))
}

// ViewMatrix returns the rows Axis1, Axis2, Forward as a matrix, so that
// multiplying a camera-relative point yields (x, y, depth).
func (c *Camera) ViewMatrix() mgl64.Mat3 {
	return mgl64.Mat3FromRows(c.Axis1.Mgl(), c.Axis2.Mgl(), c.Forward.Mgl())
}

// ProjectBatch projects every point and subtracts offset. The result has the
// same length and order as points.
func (c *Camera) ProjectBatch(points []vectors.Vec3, offset vectors.Vec2) []vectors.Vec2 {
	view := c.ViewMatrix()
	out := make([]vectors.Vec2, len(points))
	for i, p := range points {
		q := vectors.FromMgl(view.Mul3x1(p.Sub(c.Position).Mgl()))
		out[i] = vectors.Vec2{X: q.X, Y: q.Y}.Sub(offset)
	}
	return out
}

// wrap360 reduces a to [0,360), mapping negative angles forward.
func wrap360(a float64) float64 {
	a = unit.PMod(a, 360)
	if a >= 360 || math.IsNaN(a) {
		return 0
	}
	return a
}
