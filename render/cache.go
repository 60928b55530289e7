package render

import (
	"image"

	"github.com/echoflaresat/prismcam/solid"
	"github.com/echoflaresat/prismcam/vectors"
	lru "github.com/hashicorp/golang-lru"
)

// FrameKey identifies everything that determines a drawn frame, apart from
// the theme and backdrop which are fixed per renderer.
type FrameKey struct {
	Phase              float64
	Azimuth, Elevation float64
	Position           vectors.Vec3
	Origin             vectors.Vec3
	Radius             float64
	Width, Height      int
	Outline            bool
}

func newFrameKey(cam *Camera, s *solid.Cuboid, opts Options) FrameKey {
	return FrameKey{
		Phase:     s.Phase,
		Azimuth:   cam.Azimuth(),
		Elevation: cam.Elevation(),
		Position:  cam.Position,
		Origin:    s.Origin,
		Radius:    s.Radius,
		Width:     opts.Width,
		Height:    opts.Height,
		Outline:   opts.Outline,
	}
}

// FrameCache keeps recently drawn frames. The phase is periodic, so a long
// animation with a still camera repeats itself after one turn. Cached images
// are shared and must not be modified.
type FrameCache struct {
	lru *lru.Cache
}

func NewFrameCache(size int) (*FrameCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &FrameCache{lru: c}, nil
}

func (c *FrameCache) Get(key FrameKey) (*image.NRGBA, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*image.NRGBA), true
}

func (c *FrameCache) Add(key FrameKey, img *image.NRGBA) {
	c.lru.Add(key, img)
}

func (c *FrameCache) Len() int {
	return c.lru.Len()
}
