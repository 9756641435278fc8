package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"seiscoherence/internal/models"
	"seiscoherence/pkg/attribute"
	"seiscoherence/pkg/config"
	"seiscoherence/pkg/synthetic"
	"seiscoherence/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "seiscoherence.yaml", "Path to YAML configuration file")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	inputPath := flag.String("input", "", "Raw little-endian float64 volume file")
	ni := flag.Int("ni", 0, "Inline count of the input volume")
	nj := flag.Int("nj", 0, "Crossline count of the input volume")
	nk := flag.Int("nk", 0, "Sample count of the input volume")
	syntheticDemo := flag.Bool("synthetic", false, "Run on a built-in synthetic faulted volume instead of a file")
	algorithm := flag.String("algorithm", "", "Override algorithm: crosscorrelation, semblance or eigenstructure")
	outputName := flag.String("output", "coherence.bin", "Output raw float64 field filename")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config file: %v", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *algorithm != "" {
		cfg.Attribute.Algorithm = *algorithm
	}

	// Validate inputs
	if *inputPath == "" && !*syntheticDemo {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("SEISMIC COHERENCE ATTRIBUTE COMPUTATION")
	fmt.Println("Cross-correlation, semblance and eigenstructure coherence")
	fmt.Println("================================")

	// Step 1: Load or generate the input volume
	var vol *models.Volume
	if *syntheticDemo {
		fmt.Println("Step 1: Generating synthetic faulted volume...")
		vol = synthetic.Faulted(32, 32, 64, 16.0, 16, 4)
		synthetic.AddNoise(vol, 0.02, 1)
	} else {
		fmt.Println("Step 1: Loading input volume...")
		if *ni < 1 || *nj < 1 || *nk < 1 {
			log.Fatalf("Raw input requires positive -ni, -nj and -nk dimensions")
		}
		vol, err = models.LoadRaw(*inputPath, *ni, *nj, *nk)
		if err != nil {
			log.Fatalf("Failed to load volume: %v", err)
		}
	}
	vol.Geometry = models.Geometry{
		SampleInterval:   cfg.Volume.SampleInterval,
		InlineSpacing:    cfg.Volume.InlineSpacing,
		CrosslineSpacing: cfg.Volume.CrosslineSpacing,
	}
	fmt.Printf("Volume: %d inlines x %d crosslines x %d samples (%.1f ms sampling)\n",
		vol.Ni, vol.Nj, vol.Nk, vol.Geometry.SampleInterval)

	// Step 2: Run the attribute computation
	fmt.Printf("Step 2: Computing %s coherence...\n", cfg.Attribute.Algorithm)
	params := &attribute.Params{
		Algorithm: attribute.Algorithm(cfg.Attribute.Algorithm),
		Window: attribute.Window{
			I: cfg.Attribute.WindowInline,
			J: cfg.Attribute.WindowCrossline,
			K: cfg.Attribute.WindowSample,
		},
		ZWin:     cfg.Attribute.ZWin,
		Boundary: attribute.BoundaryMode(cfg.Attribute.Boundary),
		NumCores: cfg.Processing.NumCores,
		Verbose:  cfg.Output.Verbose,
	}

	computer := attribute.NewComputer(vol, params)
	startTime := time.Now()
	if err := computer.Run(); err != nil {
		log.Fatalf("Attribute computation failed: %v", err)
	}
	processingTime := time.Since(startTime)

	field := computer.Field()
	stats := computer.Stats()
	fmt.Printf("\nComputation completed in %.2f seconds\n", processingTime.Seconds())
	fmt.Printf("Output field: %dx%dx%d (%d voxels, %d cores)\n",
		field.Ni, field.Nj, field.Nk, stats.Voxels, cfg.Processing.NumCores)
	if stats.DegenerateCount > 0 {
		fmt.Printf("Degenerate voxels substituted with fallback: %d\n", stats.DegenerateCount)
		for _, d := range stats.Degenerate {
			fmt.Printf("  (%d,%d,%d): %s\n", d.I, d.J, d.K, d.Reason)
		}
	}

	// Step 3: Write the output field
	fmt.Println("Step 3: Writing coherence field...")
	if err := field.SaveRaw(*outputName); err != nil {
		log.Fatalf("Failed to save coherence field: %v", err)
	}
	fmt.Printf("Coherence field saved to: %s\n", *outputName)

	// Step 4: Optionally export section images for inspection
	if cfg.Output.SaveSlices {
		fmt.Println("Step 4: Exporting section images...")
		viewer := visualization.NewViewer(field)

		for _, axis := range []string{"inline", "crossline", "time"} {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			fmt.Printf("Saving %s sections to: %s\n", axis, axisDir)

			if err := viewer.SaveSectionSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s sections: %v", axis, err)
			}
		}
	}
}
