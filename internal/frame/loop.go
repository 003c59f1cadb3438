// Package frame paces a system against the wall clock and fans snapshots
// out to render collaborators.
package frame

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/system"
)

const (
	// ReferenceFPS is the frame rate at which dt = 1.
	ReferenceFPS = 60.0
	// MaxDt caps the step taken after a stall.
	MaxDt = 4.0
)

var ErrBadFPS = errors.New("fps must be positive and finite")

// Sink receives a snapshot after every step. Publish must not block.
type Sink interface {
	Publish(snap system.Snapshot)
}

type SinkFunc func(snap system.Snapshot)

func (f SinkFunc) Publish(snap system.Snapshot) { f(snap) }

type Loop struct {
	sys     *system.System
	fps     float64
	limiter *rate.Limiter
	sinks   []Sink
	logger  log.Logger
	now     func() time.Time
	frames  int
}

func New(sys *system.System, fps float64, logger log.Logger, sinks ...Sink) (*Loop, error) {
	if !(fps > 0) || math.IsInf(fps, 0) {
		return nil, ErrBadFPS
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loop{
		sys:     sys,
		fps:     fps,
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		sinks:   sinks,
		logger:  log.With(logger, "component", "frame"),
		now:     time.Now,
	}, nil
}

func (l *Loop) AddSink(s Sink) { l.sinks = append(l.sinks, s) }

func (l *Loop) Frames() int { return l.frames }

// Run steps the system once per limiter token until ctx is done. The
// first frame advances by the nominal dt for the configured rate; later
// frames use the elapsed wall time, capped at MaxDt.
func (l *Loop) Run(ctx context.Context) error {
	level.Info(l.logger).Log("msg", "frame loop started", "fps", l.fps)
	l.publish(l.sys.Snapshot())

	var last time.Time
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			// Wait also fails early when the next token lies past the
			// deadline; the context is then done within one frame.
			<-ctx.Done()
			level.Info(l.logger).Log("msg", "frame loop stopped", "frames", l.frames)
			return ctx.Err()
		}

		now := l.now()
		dt := ReferenceFPS / l.fps
		if !last.IsZero() {
			dt = FrameDt(now.Sub(last))
		}
		last = now

		if dt <= 0 {
			continue
		}
		l.sys.Step(dt)
		l.frames++

		snap := l.sys.Snapshot()
		if !snap.Valid() {
			err := system.SimError{Time: snap.Time, Step: snap.Tick, Message: "invalid state (NaN/Inf)"}
			level.Error(l.logger).Log("msg", "frame loop aborted", "err", err)
			return err
		}
		l.publish(snap)
	}
}

func (l *Loop) publish(snap system.Snapshot) {
	for _, s := range l.sinks {
		s.Publish(snap)
	}
}

// FrameDt converts elapsed wall time into frames at ReferenceFPS, capped
// at MaxDt.
func FrameDt(elapsed time.Duration) float64 {
	dt := elapsed.Seconds() * ReferenceFPS
	if dt < 0 {
		return 0
	}
	return math.Min(dt, MaxDt)
}
