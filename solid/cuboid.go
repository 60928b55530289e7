// Package solid generates the animated prism and its triangular faces.
package solid

import (
	"math"

	"github.com/echoflaresat/prismcam/vectors"
	"github.com/soniakeys/unit"
)

const (
	// VertexCount is the number of vertices in the solid, keyed 1..VertexCount.
	VertexCount = 8
	// FaceCount is the number of triangles emitted by BuildFaces.
	FaceCount = 2 * len(Topology)

	maxPhase = 360.0
)

// Topology lists the vertex keys of each rectangular wall. Every wall is
// split into the triangles (g0,g1,g2) and (g1,g2,g3).
var Topology = [6][4]int{
	{2, 3, 1, 4},
	{2, 3, 6, 7},
	{2, 1, 6, 5},
	{3, 4, 7, 8},
	{1, 4, 5, 8},
	{6, 7, 5, 8},
}

var (
	upper = math.Cos(math.Pi / 4)
	lower = math.Cos(3 * math.Pi / 4)
)

// Cuboid is a square prism inscribed in a sphere of Radius around Origin,
// spinning about the vertical axis as Phase advances.
//
// Faces are not kept in sync with Vertices; call BuildFaces after
// RegenerateVertices when the faces are needed.
type Cuboid struct {
	Origin vectors.Vec3
	Radius float64
	Phase  float64

	// Vertices is indexed by key-1; keys 1..4 form the upper ring and
	// key k+4 sits directly below key k.
	Vertices [VertexCount]vectors.Vec3
	Faces    []Polygon
}

// NewCuboid creates the solid at phase 0 with vertices and faces built.
func NewCuboid(origin vectors.Vec3, radius float64) (*Cuboid, error) {
	c := &Cuboid{Origin: origin, Radius: radius}
	c.RegenerateVertices(0)
	if err := c.BuildFaces(); err != nil {
		return nil, err
	}
	return c, nil
}

// Vertex returns the vertex with the given key in 1..8.
func (c *Cuboid) Vertex(key int) vectors.Vec3 {
	return c.Vertices[key-1]
}

// RegenerateVertices advances the phase by increment degrees and places all
// eight vertices for the new phase.
func (c *Cuboid) RegenerateVertices(increment float64) {
	c.Phase = wrapPhase(c.Phase + increment)
	shift := c.Phase / maxPhase * 2 * math.Pi

	for k := 0; k < 4; k++ {
		a := unit.Angle(math.Pi/4 + float64(k)*math.Pi/2 + shift)
		x := c.Origin.X + c.Radius*a.Sin()
		y := c.Origin.Y + c.Radius*a.Cos()

		c.Vertices[k] = vectors.Vec3{X: x, Y: y, Z: c.Origin.Z + c.Radius*upper}
		c.Vertices[k+4] = vectors.Vec3{X: x, Y: y, Z: c.Origin.Z + c.Radius*lower}
	}
}

// BuildFaces replaces Faces with the twelve triangles of the current
// vertices, using Origin as the inside reference for the normals.
func (c *Cuboid) BuildFaces() error {
	faces := make([]Polygon, 0, FaceCount)
	for _, group := range Topology {
		for i := 0; i < 2; i++ {
			p, err := NewPolygon([]vectors.Vec3{
				c.Vertex(group[i]),
				c.Vertex(group[i+1]),
				c.Vertex(group[i+2]),
			}, c.Origin)
			if err != nil {
				return err
			}
			faces = append(faces, p)
		}
	}
	c.Faces = faces
	return nil
}

// Snapshot returns a copy that shares no mutable state with c.
func (c *Cuboid) Snapshot() Cuboid {
	s := *c
	s.Faces = append([]Polygon(nil), c.Faces...)
	return s
}

func wrapPhase(p float64) float64 {
	p = unit.PMod(p, maxPhase)
	if p >= maxPhase || math.IsNaN(p) {
		return 0
	}
	return p
}
