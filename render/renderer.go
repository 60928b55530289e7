package render

import (
	"image"
	"image/draw"
	"math"
	"sort"

	"github.com/echoflaresat/prismcam/colors"
	"github.com/echoflaresat/prismcam/solid"
	"github.com/echoflaresat/prismcam/vectors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const (
	// DefaultPhaseStep is the phase advance per tick, in degrees.
	DefaultPhaseStep = 1.0

	markerRadius   = 5.0
	markerSegments = 16
)

// Theme holds the colors of a frame.
type Theme struct {
	Background colors.Color4
	Fill       colors.Color4 // face color at full brightness
	Outline    colors.Color4 // vertex markers
}

// DefaultTheme draws white faces on black with magenta markers.
func DefaultTheme() Theme {
	return Theme{
		Background: colors.Black(),
		Fill:       colors.White(),
		Outline:    colors.DarkMagenta(),
	}
}

// Options configures how frames are produced.
type Options struct {
	Width, Height int
	PhaseStep     float64
	// RebuildFaces rebuilds the faces after every vertex regeneration.
	// When false the faces stay at whatever the last BuildFaces produced.
	RebuildFaces bool
	Outline      bool
	Backdrop     image.Image
	Theme        Theme
}

// DefaultOptions returns a 640x480 viewport advancing one degree per tick.
func DefaultOptions() Options {
	return Options{
		Width:        640,
		Height:       480,
		PhaseStep:    DefaultPhaseStep,
		RebuildFaces: true,
		Theme:        DefaultTheme(),
	}
}

// Renderer drives the solid and draws it through the camera. It owns both
// and is not safe for concurrent use.
type Renderer struct {
	Camera *Camera
	Solid  *solid.Cuboid
	Opts   Options

	cache *FrameCache
}

// NewRenderer drives s through cam with the given options.
func NewRenderer(cam *Camera, s *solid.Cuboid, opts Options) *Renderer {
	return &Renderer{Camera: cam, Solid: s, Opts: opts}
}

// UseCache attaches a frame cache. Frames are only cached while
// RebuildFaces is set, since stale faces are not part of the cache key.
func (r *Renderer) UseCache(c *FrameCache) {
	r.cache = c
}

// Tick advances the animation by one phase step.
func (r *Renderer) Tick() error {
	r.Solid.RegenerateVertices(r.Opts.PhaseStep)
	if r.Opts.RebuildFaces {
		return r.Solid.BuildFaces()
	}
	return nil
}

// Frame draws the current state.
func (r *Renderer) Frame() *image.NRGBA {
	key, cacheable := r.frameKey()
	if cacheable {
		if img, ok := r.cache.Get(key); ok {
			return img
		}
	}
	s := r.Solid.Snapshot()
	img := DrawFrame(r.Camera, &s, r.Opts)
	if cacheable {
		r.cache.Add(key, img)
	}
	return img
}

func (r *Renderer) frameKey() (FrameKey, bool) {
	if r.cache == nil || !r.Opts.RebuildFaces {
		return FrameKey{}, false
	}
	return newFrameKey(r.Camera, r.Solid, r.Opts), true
}

// Visible returns the cosine between the face normal and the view direction
// and whether the face should be drawn. Faces with a cosine <= 0 are culled.
func Visible(face solid.Polygon, forward vectors.Vec3) (float64, bool) {
	d := face.Normal.Dot(forward)
	return d, d > 0
}

// Brightness maps the view cosine of a visible face to an 8-bit level,
// 255·d^(1/4).
func Brightness(d float64) uint8 {
	if d <= 0 {
		return 0
	}
	if d >= 1 {
		return 255
	}
	return uint8(255 * math.Pow(d, 0.25))
}

// Triangle is a projected face ready for filling.
type Triangle struct {
	Points     [3]vectors.Vec2
	Brightness uint8
	Depth      float64 // of the centroid along Forward; larger is nearer
}

// ProjectFaces culls back faces and projects the rest so that the solid's
// origin lands in the middle of a width×height viewport. Triangles come back
// ordered far to near.
func ProjectFaces(cam *Camera, s *solid.Cuboid, width, height int) []Triangle {
	offset := viewportOffset(cam, s, width, height)

	out := make([]Triangle, 0, len(s.Faces))
	for _, face := range s.Faces {
		d, ok := Visible(face, cam.Forward)
		if !ok {
			continue
		}
		pts := cam.ProjectBatch(face.Vertices[:], offset)
		centroid := face.Vertices[0].Add(face.Vertices[1]).Add(face.Vertices[2]).Scale(1.0 / 3)
		out = append(out, Triangle{
			Points:     [3]vectors.Vec2{pts[0], pts[1], pts[2]},
			Brightness: Brightness(d),
			Depth:      cam.Depth(centroid),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

func viewportOffset(cam *Camera, s *solid.Cuboid, width, height int) vectors.Vec2 {
	center := vectors.Vec2{X: float64(width) / 2, Y: float64(height) / 2}
	return cam.ProjectPoint(s.Origin).Sub(center)
}

// DrawFrame renders s as seen by cam. It only reads its arguments, so
// snapshots may be drawn concurrently.
func DrawFrame(cam *Camera, s *solid.Cuboid, opts Options) *image.NRGBA {
	w, h := opts.Width, opts.Height
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Theme.Background), image.Point{}, draw.Src)
	if opts.Backdrop != nil {
		xdraw.ApproxBiLinear.Scale(img, img.Bounds(), opts.Backdrop, opts.Backdrop.Bounds(), draw.Over, nil)
	}

	z := vector.NewRasterizer(w, h)
	for _, tri := range ProjectFaces(cam, s, w, h) {
		z.Reset(w, h)
		z.DrawOp = draw.Over
		z.MoveTo(float32(tri.Points[0].X), float32(tri.Points[0].Y))
		z.LineTo(float32(tri.Points[1].X), float32(tri.Points[1].Y))
		z.LineTo(float32(tri.Points[2].X), float32(tri.Points[2].Y))
		z.ClosePath()

		c := opts.Theme.Fill.Shade(float64(tri.Brightness) / 255)
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	if opts.Outline {
		drawMarkers(z, img, cam, s, opts.Theme.Outline)
	}
	return img
}

// drawMarkers puts a disc on every projected vertex and on the origin.
func drawMarkers(z *vector.Rasterizer, img *image.NRGBA, cam *Camera, s *solid.Cuboid, c colors.Color4) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	offset := viewportOffset(cam, s, w, h)

	points := append(s.Vertices[:len(s.Vertices):len(s.Vertices)], s.Origin)
	src := image.NewUniform(c)
	for _, p := range cam.ProjectBatch(points, offset) {
		z.Reset(w, h)
		z.DrawOp = draw.Over
		for i := 0; i <= markerSegments; i++ {
			a := 2 * math.Pi * float64(i) / markerSegments
			x := float32(p.X + markerRadius*math.Cos(a))
			y := float32(p.Y + markerRadius*math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), src, image.Point{})
	}
}
