package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"nrrdvol/pkg/config"
	"nrrdvol/pkg/nrrd"
	"nrrdvol/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Path to the NRRD header (.nhdr) file")
	configPath := flag.String("config", "nrrdvol.yaml", "Path to YAML configuration file")
	strictType := flag.Bool("strict-type", false, "Reject headers declaring a voxel type other than int16")
	strictEndian := flag.Bool("strict-endian", false, "Reject big-endian payloads instead of byte-swapping")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save windowed preview slices")
	slicesDir := flag.String("slices-dir", "", "Directory to save preview slices (default: from config)")
	flag.Parse()

	// Validate inputs
	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Command line flags override the config file
	if *strictType {
		cfg.Loader.StrictType = true
	}
	if *strictEndian {
		cfg.Loader.StrictEndian = true
	}
	if *slicesDir != "" {
		cfg.Preview.OutputDir = *slicesDir
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("NRRD VOLUME LOADER")
		fmt.Println("================================")
	}

	// Run the ingestion pipeline
	startTime := time.Now()
	volume, err := nrrd.Load(*inputPath,
		nrrd.WithPolicy(cfg.Policy()),
		nrrd.WithObserver(func(w nrrd.Warning) {
			log.Printf("Warning [%s]: %s", w.Kind, w.Detail)
		}),
	)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}
	loadTime := time.Since(startTime)

	h := volume.Header
	fmt.Printf("\nLoaded %s in %.3f seconds\n", filepath.Base(*inputPath), loadTime.Seconds())
	fmt.Printf("Dimensions (X Y Z): %d %d %d\n", h.Dims[0], h.Dims[1], h.Dims[2])
	fmt.Printf("Spacing (mm):       %.3f %.3f %.3f\n", h.Spacing[0], h.Spacing[1], h.Spacing[2])
	fmt.Printf("Origin:             %.3f %.3f %.3f\n", h.Origin[0], h.Origin[1], h.Origin[2])
	fmt.Printf("Voxel type:         %s\n", h.VoxelType)
	fmt.Printf("Payload bytes:      %d\n", len(volume.Data))
	fmt.Printf("Intensity range:    [%d, %d]\n", volume.Stats.Min, volume.Stats.Max)
	if cfg.Output.Verbose {
		fmt.Printf("Mean / StdDev:      %.2f / %.2f\n", volume.Stats.Mean, volume.Stats.StdDev)
	}

	if len(volume.Warnings) > 0 {
		fmt.Printf("\nLoad completed with %d warning(s).\n", len(volume.Warnings))
	}

	// Extract and save preview slices if requested
	if *extractSlices {
		fmt.Println("\nExtracting preview slices...")

		viewer := visualization.NewViewer(volume, cfg.Preview.Quality)

		for _, axis := range cfg.Preview.Axes {
			axisDir := filepath.Join(cfg.Preview.OutputDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)

			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}

		fmt.Println("Slice extraction completed!")
	}
}
