// Command replay inspects a recorded frame trace and re-checks the stage
// invariants offline: positions inside the stage rectangle and scale at or
// above the floor.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"spritelab.dev/internal/sim/stage"
	"spritelab.dev/internal/sim/tuning"
	"spritelab.dev/internal/trace"
)

func main() {
	var (
		traceDir   = flag.String("trace", "", "frame trace directory")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		fromFrame  = flag.Uint64("from_frame", 0, "start checking from frame (inclusive, optional)")
		toFrame    = flag.Uint64("to_frame", 0, "stop at frame (inclusive, optional)")
	)
	flag.Parse()

	if strings.TrimSpace(*traceDir) == "" {
		fmt.Fprintln(os.Stderr, "missing -trace")
		os.Exit(2)
	}

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			tune = tuning.Defaults()
		} else {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
	}

	files, err := trace.ListFrameFiles(*traceDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list trace:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no frame files found in", *traceDir)
		os.Exit(1)
	}

	var frames, commands, playingFrames, violations uint64
	var lastFrame uint64
	check := func(rec stage.FrameRecord) error {
		if rec.Frame < *fromFrame {
			return nil
		}
		if *toFrame != 0 && rec.Frame > *toFrame {
			return nil
		}
		frames++
		lastFrame = rec.Frame
		commands += uint64(len(rec.Commands))
		if rec.Playing {
			playingFrames++
		}
		for _, s := range rec.Sprites {
			if s.X < 0 || s.X > tune.StageWidth || s.Y < 0 || s.Y > tune.StageHeight {
				violations++
				fmt.Printf("frame %d: sprite %s out of bounds at (%v,%v)\n", rec.Frame, s.ID, s.X, s.Y)
			}
			if s.Scale < tune.ScaleFloor {
				violations++
				fmt.Printf("frame %d: sprite %s below scale floor: %v\n", rec.Frame, s.ID, s.Scale)
			}
			if s.Dir < 0 || s.Dir >= 360 {
				violations++
				fmt.Printf("frame %d: sprite %s direction not normalized: %v\n", rec.Frame, s.ID, s.Dir)
			}
		}
		return nil
	}

	for _, path := range files {
		if err := trace.ReadFrames(path, check); err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("replay: frames=%d (playing=%d) commands=%d last_frame=%d violations=%d\n",
		frames, playingFrames, commands, lastFrame, violations)
	if violations > 0 {
		os.Exit(1)
	}
}
