// Command fourierfilter applies a chain of frequency-domain filters to an
// image without the GUI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"fourier-paint/internal/acquire"
	"fourier-paint/internal/spectrum"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	in := flag.String("in", "", "Path to input image")
	out := flag.String("out", "out.png", "Path to output PNG")
	configPath := flag.String("config", "filters.yaml", "Path to YAML filter chain")
	flag.Parse()

	if *in == "" {
		fmt.Println("Usage: fourierfilter -in <image> [-out <png>] [-config <yaml>]")
		os.Exit(1)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(cfg.Filters) == 0 {
		log.Fatalf("Config %s names no filters", *configPath)
	}

	img, err := acquire.LoadFile(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}

	session := spectrum.NewSession()
	if err := session.Load(img); err != nil {
		log.Fatalf("Transform failed: %v", err)
	}
	if cfg.Output.Verbose {
		log.Printf("Loaded %s (%dx%d)", *in, img.Rect.Dx(), img.Rect.Dy())
	}

	for i, step := range cfg.Filters {
		kind, err := spectrum.ParseFilterKind(step.Kind)
		if err != nil {
			log.Fatalf("Step %d: %v", i+1, err)
		}
		if err := session.ApplyFilter(kind, step.Param); err != nil {
			log.Fatalf("Step %d (%s %.3f): %v", i+1, kind, step.Param, err)
		}
		if cfg.Output.Verbose {
			log.Printf("Step %d: %s (%.3f)", i+1, kind, step.Param)
		}
	}

	if err := acquire.SavePNG(*out, session.Result()); err != nil {
		log.Fatalf("Failed to save %s: %v", *out, err)
	}
	log.Printf("Wrote %s", *out)
}
