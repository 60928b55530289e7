package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/echoflaresat/prismcam/colors"
	"github.com/echoflaresat/prismcam/solid"
	"github.com/echoflaresat/prismcam/vectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*Camera, *solid.Cuboid) {
	t.Helper()
	s, err := solid.NewCuboid(vectors.Vec3{X: 100, Y: 100, Z: 100}, 150)
	require.NoError(t, err)
	return NewCamera(), s
}

func TestVisibleCullsBackFaces(t *testing.T) {
	cam := NewCamera()
	facing := solid.Polygon{Normal: cam.Forward}
	opposed := solid.Polygon{Normal: cam.Forward.Scale(-1)}
	edgeOn := solid.Polygon{Normal: cam.Axis1}

	d, ok := Visible(facing, cam.Forward)
	assert.True(t, ok)
	assert.InDelta(t, 1, d, 1e-12)
	assert.Equal(t, uint8(255), Brightness(d))

	d, ok = Visible(opposed, cam.Forward)
	assert.False(t, ok)
	assert.InDelta(t, -1, d, 1e-12)

	_, ok = Visible(edgeOn, cam.Forward)
	assert.False(t, ok)
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		dot  float64
		want uint8
	}{
		{1, 255},
		{1.0000001, 255},
		{0.0625, 127},
		{0.5, 214},
		{0, 0},
		{-0.5, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Brightness(tc.dot), "Brightness(%v)", tc.dot)
	}
}

func TestProjectFacesCullsHalfTheWalls(t *testing.T) {
	cam, s := newTestScene(t)
	cam.SetAzimuth(30)
	require.True(t, cam.SetElevation(60))

	tris := ProjectFaces(cam, s, 640, 480)

	var visible int
	for _, f := range s.Faces {
		if _, ok := Visible(f, cam.Forward); ok {
			visible++
		}
	}
	assert.Equal(t, visible, len(tris))
	assert.Equal(t, 6, len(tris), "a box seen from a generic direction shows three walls")
	for i, tri := range tris {
		assert.Greater(t, tri.Brightness, uint8(0))
		if i > 0 {
			assert.LessOrEqual(t, tris[i-1].Depth, tri.Depth, "triangles are drawn far to near")
		}
	}
}

func TestProjectFacesCentersOrigin(t *testing.T) {
	cam, s := newTestScene(t)
	cam.ModifyOrigin(vectors.Vec3{X: 12, Y: -40, Z: 3})
	offset := viewportOffset(cam, s, 640, 480)

	center := cam.ProjectPoint(s.Origin).Sub(offset)
	assert.InDelta(t, 320, center.X, 1e-9)
	assert.InDelta(t, 240, center.Y, 1e-9)
}

func nearNRGBA(t *testing.T, want color.NRGBA, got color.Color) {
	t.Helper()
	c := color.NRGBAModel.Convert(got).(color.NRGBA)
	assert.InDelta(t, want.R, c.R, 2, "R of %v", c)
	assert.InDelta(t, want.G, c.G, 2, "G of %v", c)
	assert.InDelta(t, want.B, c.B, 2, "B of %v", c)
	assert.InDelta(t, want.A, c.A, 2, "A of %v", c)
}

func TestDrawFrameFrontWall(t *testing.T) {
	cam, s := newTestScene(t)
	opts := DefaultOptions()

	img := DrawFrame(cam, s, opts)
	require.Equal(t, image.Rect(0, 0, 640, 480), img.Bounds())

	// Looking down +x the wall through keys 1, 2, 5 and 6 faces the camera
	// head-on and covers a square of ±106 around the viewport center.
	nearNRGBA(t, color.NRGBA{255, 255, 255, 255}, img.At(360, 280))
	nearNRGBA(t, color.NRGBA{255, 255, 255, 255}, img.At(260, 190))
	nearNRGBA(t, color.NRGBA{0, 0, 0, 255}, img.At(0, 0))
	nearNRGBA(t, color.NRGBA{0, 0, 0, 255}, img.At(320, 400))
}

func TestDrawFrameThemeAndOutline(t *testing.T) {
	cam, s := newTestScene(t)
	opts := DefaultOptions()
	opts.Outline = true
	opts.Theme.Fill = colors.New(0, 0, 1, 1)
	opts.Theme.Background = colors.New(0, 1, 0, 1)

	img := DrawFrame(cam, s, opts)

	nearNRGBA(t, color.NRGBA{0, 0, 255, 255}, img.At(360, 280))
	nearNRGBA(t, color.NRGBA{0, 255, 0, 255}, img.At(5, 5))
	nearNRGBA(t, colors.DarkMagenta().ToNRGBA(), img.At(320, 240))
}

func TestDrawFrameBackdrop(t *testing.T) {
	cam, s := newTestScene(t)
	backdrop := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			backdrop.SetNRGBA(x, y, color.NRGBA{200, 0, 0, 255})
		}
	}
	opts := DefaultOptions()
	opts.Backdrop = backdrop

	img := DrawFrame(cam, s, opts)

	nearNRGBA(t, color.NRGBA{200, 0, 0, 255}, img.At(10, 470))
	nearNRGBA(t, color.NRGBA{255, 255, 255, 255}, img.At(360, 280))
}

func TestTickRebuildsFaces(t *testing.T) {
	cam, s := newTestScene(t)
	r := NewRenderer(cam, s, DefaultOptions())

	require.NoError(t, r.Tick())
	assert.Equal(t, DefaultPhaseStep, s.Phase)
	assert.Equal(t, s.Vertex(2), s.Faces[0].Vertices[0])
}

func TestTickKeepsFacesWhenNotRebuilding(t *testing.T) {
	cam, s := newTestScene(t)
	faces := s.Faces
	opts := DefaultOptions()
	opts.RebuildFaces = false
	opts.PhaseStep = 15
	r := NewRenderer(cam, s, opts)

	require.NoError(t, r.Tick())
	assert.Equal(t, 15.0, s.Phase)
	assert.Equal(t, faces, s.Faces)
}

func TestFrameUsesCache(t *testing.T) {
	cam, s := newTestScene(t)
	cache, err := NewFrameCache(8)
	require.NoError(t, err)

	r := NewRenderer(cam, s, DefaultOptions())
	r.UseCache(cache)

	first := r.Frame()
	assert.Same(t, first, r.Frame())
	assert.Equal(t, 1, cache.Len())

	cam.AddToAzimuth(10)
	assert.NotSame(t, first, r.Frame())
	assert.Equal(t, 2, cache.Len())
}
