package solid

import (
	"errors"
	"fmt"

	"github.com/echoflaresat/prismcam/vectors"
)

// ErrInvalidArity is returned when a polygon is built from anything other
// than three vertices.
var ErrInvalidArity = errors.New("invalid number of vertices (must be equal to 3)")

// Polygon is a triangular face with an outward unit normal.
type Polygon struct {
	Vertices [3]vectors.Vec3
	Normal   vectors.Vec3
}

// NewPolygon builds a face from exactly three vertices. ref must lie inside
// the solid; the normal is flipped so that it points away from it, whatever
// the winding of the input.
func NewPolygon(vertices []vectors.Vec3, ref vectors.Vec3) (Polygon, error) {
	if len(vertices) != 3 {
		return Polygon{}, fmt.Errorf("%w: got %d", ErrInvalidArity, len(vertices))
	}

	p := Polygon{Vertices: [3]vectors.Vec3{vertices[0], vertices[1], vertices[2]}}
	v0 := p.Vertices[0]
	n := p.Vertices[1].Sub(v0).Cross(p.Vertices[2].Sub(v0)).Normalize()
	if n.Dot(v0.Sub(ref)) < 0 {
		n = n.Scale(-1)
	}
	p.Normal = n
	return p, nil
}
