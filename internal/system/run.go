package system

import (
	"context"
	"fmt"
	"math"
)

// MaxRunSteps bounds Duration/Dt for a headless run.
const MaxRunSteps = 10_000_000

// maxFramePrealloc caps the initial frame capacity of a Result.
const maxFramePrealloc = 4096

// RunConfig controls a headless run.
type RunConfig struct {
	Dt       float64
	Duration float64
	// Every records one snapshot per Every steps; 0 or 1 records all.
	Every int
}

// Result holds the recorded frames of a headless run.
type Result struct {
	Frames     []Snapshot
	StepsTaken int
	Clamped    int
	Errors     []error
}

func (c RunConfig) validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Every < 0 {
		return fmt.Errorf("record interval must not be negative, got %d", c.Every)
	}
	if steps := c.Duration / c.Dt; steps > MaxRunSteps {
		return fmt.Errorf("duration/dt gives %.0f steps, more than the limit of %d", steps, MaxRunSteps)
	}
	return nil
}

// Run steps the system for Duration/Dt ticks, recording snapshots. It
// stops early with the context's error on cancellation, and stops without
// error when a step produces a non-finite position, recording a SimError.
func (s *System) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	every := cfg.Every
	if every < 1 {
		every = 1
	}
	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		Frames: make([]Snapshot, 0, min(steps/every+2, maxFramePrealloc)),
	}
	result.Frames = append(result.Frames, s.Snapshot())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rep := s.Step(cfg.Dt)
		result.StepsTaken++
		result.Clamped += len(rep.Clamped)

		snap := s.Snapshot()
		if !snap.Valid() {
			result.Errors = append(result.Errors, SimError{Time: s.t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}
		if (i+1)%every == 0 || i == steps-1 {
			result.Frames = append(result.Frames, snap)
		}
	}

	return result, nil
}
