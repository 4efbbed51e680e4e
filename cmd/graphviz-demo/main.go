// Command graphviz-demo loads a BLOM graph payload, runs the force
// layout for a fixed number of ticks (-ticks), and writes the resulting frame to a PNG,
// exercising the same construct -> load_graph -> step_layout -> render
// sequence a browser host drives every frame.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/blomgraph/engine"
	"github.com/blomgraph/engine/surface"
)

func main() {
	var (
		input   = flag.String("input", "", "path to a BLOM graph payload")
		output  = flag.String("output", "demo.png", "output PNG path")
		width   = flag.Int("width", 1024, "surface width")
		height  = flag.Int("height", 768, "surface height")
		ticks   = flag.Int("ticks", 300, "number of layout ticks to run before rendering")
		verbose = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}

	if *verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	payload, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	surf := surface.NewImageSurface(*width, *height)
	defer surf.Close()

	eng, err := engine.Construct(surf)
	if err != nil {
		log.Fatalf("construct engine: %v", err)
	}
	defer eng.Destroy()

	log.Printf("selected backend tier: %d", eng.BackendTier())

	if err := eng.LoadGraph(payload); err != nil {
		log.Fatalf("load graph: %v", err)
	}

	eng.Start()
	eng.StepLayout(*ticks)
	eng.Stop()
	eng.FitView()

	eng.Render()

	if err := surf.Flush(); err != nil {
		log.Fatalf("flush surface: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, surf.Snapshot()); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	log.Printf("wrote %s (%dx%d, %d ticks)", *output, *width, *height, *ticks)
}
