package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/echoflaresat/prismcam/colors"
	"github.com/echoflaresat/prismcam/render"
	"github.com/echoflaresat/prismcam/solid"
	"github.com/echoflaresat/prismcam/texture"
	"github.com/echoflaresat/prismcam/vectors"
)

type config struct {
	azimuth, elevation *float64
	keys               *string
	origin             *string
	radius, phaseStep  *float64
	frames             *int
	size               *string
	outline            *bool
	background, fill   *string
	backdrop           *string
	workers, cacheSize *int
	out                *string
	cols, delay        *int
	verbose            *bool
	showHelp           *bool
}

func defineFlags(fs *flag.FlagSet) config {
	return config{
		azimuth:   fs.Float64("azimuth", 0, "Camera azimuth in degrees"),
		elevation: fs.Float64("elevation", render.DefaultElevation, "Camera elevation in degrees, 0..180"),
		keys:      fs.String("keys", "", "Comma separated camera keys applied before rendering (left,right,up,down,a,d,w,s,z,x,r)"),

		origin:    fs.String("origin", "100,100,100", "Solid origin as x,y,z"),
		radius:    fs.Float64("radius", 150, "Radius of the sphere the solid is inscribed in"),
		phaseStep: fs.Float64("phase-step", render.DefaultPhaseStep, "Phase advance per frame in degrees"),
		frames:    fs.Int("frames", 1, "Number of frames to render"),

		size:       fs.String("size", "640x480", "Viewport size as WIDTHxHEIGHT"),
		outline:    fs.Bool("outline", false, "Mark vertices and origin"),
		background: fs.String("bg", "#000000", "Background color"),
		fill:       fs.String("fill", "#ffffff", "Face color at full brightness"),
		backdrop:   fs.String("backdrop", "", "Optional image drawn behind the solid"),
		workers:    fs.Int("workers", runtime.GOMAXPROCS(0), "Frames drawn in parallel"),
		cacheSize:  fs.Int("cache", 360, "Number of frames kept in the frame cache (0 disables)"),

		out:   fs.String("out", "prism.png", "Output file (.png, .jpg or .gif)"),
		cols:  fs.Int("cols", 6, "Columns of the contact sheet when writing several frames to .png/.jpg"),
		delay: fs.Int("delay", 4, "GIF frame delay in 1/100 s"),

		verbose:  fs.Bool("v", false, "Verbose logging"),
		showHelp: fs.Bool("h", false, "Show this help message"),
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Prism Renderer - spinning prism through an orbit camera

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup(fs, "Camera Options", []string{"azimuth", "elevation", "keys"})
	printGroup(fs, "Solid Options", []string{"origin", "radius", "phase-step", "frames"})
	printGroup(fs, "Rendering Options", []string{"size", "outline", "bg", "fill", "backdrop", "workers", "cache"})
	printGroup(fs, "Output", []string{"out", "cols", "delay"})
	printGroup(fs, "Misc", []string{"v", "h"})
}

func printGroup(fs *flag.FlagSet, title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := fs.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-11s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg := defineFlags(fs)
	fs.Usage = func() { printHelp(fs) }
	fs.Parse(os.Args[1:])

	if *cfg.showHelp {
		printHelp(fs)
		return
	}

	level := slog.LevelInfo
	if *cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config) error {
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	slog.Info("rendering", "out", *cfg.out, "frames", *cfg.frames,
		"azimuth", r.Camera.Azimuth(), "elevation", r.Camera.Elevation())
	frames, err := render.Animate(ctx, r, *cfg.frames, *cfg.workers)
	if err != nil {
		return err
	}

	if err := writeFrames(*cfg.out, frames, *cfg.cols, *cfg.delay); err != nil {
		return fmt.Errorf("failed to write %s: %w", *cfg.out, err)
	}
	return nil
}

// newRenderer validates the configuration and builds the scene.
func newRenderer(cfg config) (*render.Renderer, error) {
	if *cfg.frames <= 0 {
		return nil, fmt.Errorf("frames must be greater than 0")
	}
	if *cfg.radius <= 0 {
		return nil, fmt.Errorf("radius must be greater than 0")
	}

	opts := render.DefaultOptions()
	var err error
	opts.Width, opts.Height, err = parseSize(*cfg.size)
	if err != nil {
		return nil, err
	}
	opts.PhaseStep = *cfg.phaseStep
	opts.Outline = *cfg.outline
	if opts.Theme.Background, err = colors.Parse(*cfg.background); err != nil {
		return nil, err
	}
	if opts.Theme.Fill, err = colors.Parse(*cfg.fill); err != nil {
		return nil, err
	}
	if *cfg.backdrop != "" {
		if opts.Backdrop, err = texture.Load(*cfg.backdrop); err != nil {
			return nil, err
		}
	}

	origin, err := parseVec(*cfg.origin)
	if err != nil {
		return nil, err
	}
	s, err := solid.NewCuboid(origin, *cfg.radius)
	if err != nil {
		return nil, err
	}

	cam := render.NewCamera()
	cam.SetAzimuth(*cfg.azimuth)
	if !cam.SetElevation(*cfg.elevation) {
		return nil, fmt.Errorf("elevation %v outside 0..180", *cfg.elevation)
	}
	keys, err := render.ParseKeys(*cfg.keys)
	if err != nil {
		return nil, err
	}
	controls := render.DefaultControls()
	for _, k := range keys {
		controls.Apply(cam, k)
	}

	r := render.NewRenderer(cam, s, opts)
	if *cfg.cacheSize > 0 {
		cache, err := render.NewFrameCache(*cfg.cacheSize)
		if err != nil {
			return nil, err
		}
		r.UseCache(cache)
	}
	return r, nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}

func parseVec(s string) (vectors.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vectors.Vec3{}, fmt.Errorf("invalid vector %q (expected x,y,z)", s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vectors.Vec3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		c[i] = v
	}
	return vectors.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// writeFrames writes a GIF animation, or a single image for PNG/JPEG. Several
// frames written to PNG/JPEG become a contact sheet.
func writeFrames(path string, frames []*image.NRGBA, cols, delay int) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gif" {
		return writeGIF(path, frames, delay)
	}

	img := frames[0]
	if len(frames) > 1 {
		var err error
		if img, err = render.Sheet(frames, cols); err != nil {
			return err
		}
	}

	switch ext {
	case ".png":
		return writePNG(path, img)
	case ".jpg", ".jpeg":
		return writeJPEG(path, img)
	default:
		return fmt.Errorf("unsupported output format: %s", ext)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
}

func writeGIF(path string, frames []*image.NRGBA, delay int) error {
	anim := &gif.GIF{}
	for _, frame := range frames {
		p := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, frame.Bounds().Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}
