package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/echoflaresat/prismcam/solid"
	"golang.org/x/sync/errgroup"
)

type frameJob struct {
	key       FrameKey
	cacheable bool
	cam       Camera
	solid     solid.Cuboid
	frames    []int
}

// Animate advances r by n ticks and returns the frame of every tick in order.
// Ticks run sequentially on r; drawing runs on snapshots with at most
// workers goroutines (no limit when workers <= 0).
func Animate(ctx context.Context, r *Renderer, n, workers int) ([]*image.NRGBA, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative frame count %d", n)
	}
	out := make([]*image.NRGBA, n)
	pending := make(map[FrameKey]*frameJob)
	var jobs []*frameJob

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.Tick(); err != nil {
			return nil, err
		}

		key, cacheable := r.frameKey()
		if cacheable {
			if img, ok := r.cache.Get(key); ok {
				out[i] = img
				continue
			}
			if j, ok := pending[key]; ok {
				j.frames = append(j.frames, i)
				continue
			}
		}

		j := &frameJob{
			key:       key,
			cacheable: cacheable,
			cam:       *r.Camera,
			solid:     r.Solid.Snapshot(),
			frames:    []int{i},
		}
		jobs = append(jobs, j)
		if cacheable {
			pending[key] = j
		}
	}

	counter := NewFrameCounter()
	opts := r.Opts
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img := DrawFrame(&j.cam, &j.solid, opts)
			for _, i := range j.frames {
				out[i] = img
			}
			if j.cacheable {
				r.cache.Add(j.key, img)
			}
			slog.Debug("frame drawn", "frame", j.frames[0], "fps", counter.Tick(time.Now()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attrs := []any{"frames", n, "drawn", len(jobs), "fps", counter.FPS(time.Now())}
	if r.cache != nil {
		attrs = append(attrs, "cached", r.cache.Len())
	}
	slog.Info("animation rendered", attrs...)
	return out, nil
}
