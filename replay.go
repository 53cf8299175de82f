package main

import (
	"fmt"
	"time"

	"scanline/internal/log"
	"scanline/internal/registry"
	"scanline/internal/render"
	"scanline/internal/scan"
)

// replay steps a fresh animator over the laid-out scene on a fake clock
// starting at the Unix epoch, calling each for every produced frame. It
// returns the last frame at or before until.
func replay(s render.Scene, opt scan.Options, logger *log.Logger, until time.Duration, fps int, each func(elapsed time.Duration, f scan.Frame)) (scan.Frame, error) {
	if fps <= 0 || int64(fps) > int64(time.Second) {
		return scan.Frame{}, fmt.Errorf("fps must be between 1 and %d, got %d", int64(time.Second), fps)
	}
	if until < 0 {
		return scan.Frame{}, fmt.Errorf("time must not be negative, got %s", until)
	}

	ids := make([]string, 0)
	for _, m := range s.Timeline.Markers() {
		ids = append(ids, m.ID)
	}
	anim := scan.New(registry.New(ids), registry.Laid{Result: s.Layout}, opt, logger)
	defer anim.Stop()

	t0 := time.Unix(0, 0)
	step := time.Second / time.Duration(fps)
	var last scan.Frame
	for elapsed := time.Duration(0); ; elapsed += step {
		// the final frame lands exactly on until
		if elapsed > until {
			elapsed = until
		}
		if f, ok := anim.Step(t0.Add(elapsed)); ok {
			last = f
			if each != nil {
				each(elapsed, f)
			}
		}
		if elapsed == until {
			return last, nil
		}
	}
}
