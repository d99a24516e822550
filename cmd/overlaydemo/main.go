// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command overlaydemo draws a scene through the overlay servers into an
// in-memory host, prints frame statistics and saves a PNG preview.
//
// Usage:
//
//	overlaydemo -scene bracket.yaml -output bracket.png
//	overlaydemo -grid 10 -style wireframe
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	overlay3d "github.com/gogpu/overlay3d"
	"github.com/gogpu/overlay3d/config"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file (default: built-in grid)")
		grid      = flag.Int("grid", 4, "cubes per side of the built-in grid")
		style     = flag.String("style", "", "display style, overrides the scene")
		output    = flag.String("output", "overlay.png", "output PNG file")
		lang      = flag.String("lang", "en", "language tag for number formatting")
		verbose   = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		overlay3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	scene, err := loadScene(*scenePath, *grid)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *style != "" {
		scene.Style = *style
		if err := scene.Validate(); err != nil {
			log.Fatalf("Invalid style: %v", err)
		}
	}

	p := message.NewPrinter(language.Make(*lang))
	if err := run(scene, *output, p); err != nil {
		log.Fatalf("Failed: %v", err)
	}
}

func loadScene(path string, grid int) (*config.Scene, error) {
	if path != "" {
		return config.Load(path)
	}
	return gridScene(grid)
}

func run(scene *config.Scene, output string, p *message.Printer) error {
	h := memhost.New()
	doc := h.OpenDocument(scene.Document)
	view := h.OpenView("3D", doc)

	bar := progressbar.Default(int64(scene.PointCount()), "placing solids")
	opts := append(scene.Options(), overlay3d.WithProgress(func(int, int) {
		_ = bar.Add(1)
	}))
	sm := overlay3d.New(h, opts...)

	res, err := scene.Draw(sm, doc)
	_ = bar.Close()
	if err != nil {
		return err
	}

	frame, err := h.RenderFrame(view, scene.DisplayStyle())
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	printStats(p, scene, res, frame)

	img := memhost.Preview(frame, scene.PreviewOptions())
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := sm.ClearAll(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	p.Printf("Preview saved to %s (%dx%d), %d host resources released\n",
		output, img.Bounds().Dx(), img.Bounds().Dy(), h.DisposeResources())
	return nil
}

func printStats(p *message.Printer, scene *config.Scene, res config.Result, f *memhost.Frame) {
	p.Printf("Document %q, style %s\n", scene.Document, scene.DisplayStyle())
	p.Printf("  servers:   %d solid, %d line, %d mesh\n", res.Solids, res.Lines, res.Meshes)
	p.Printf("  flushes:   %d (%d rejected)\n", len(f.Flushes), f.Rejected)
	p.Printf("  triangles: %d\n", f.Primitives(host.TriangleList))
	p.Printf("  segments:  %d\n", f.Primitives(host.LineList))
}
