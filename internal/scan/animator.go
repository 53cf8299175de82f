// Package scan drives a looping scan line across a timeline and derives
// each marker's highlight state from its distance to the line.
package scan

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanline/internal/highlight"
	"scanline/internal/log"
	"scanline/internal/registry"
)

// Options tunes the sweep and the highlight bands.
type Options struct {
	Period        time.Duration // one full left-to-right sweep
	PeakEpsilon   float64       // |marker-scan| below this is the peak band
	ApproachBand  float64       // 0 < marker-scan < this is approaching
	FadeDelay     time.Duration // Peak -> Fading
	IdleDelay     time.Duration // Fading -> Idle
	FrameInterval time.Duration // cadence of the built-in loop
}

func DefaultOptions() Options {
	return Options{
		Period:        10 * time.Second,
		PeakEpsilon:   0.02,
		ApproachBand:  0.1,
		FadeDelay:     highlight.DefaultFadeDelay,
		IdleDelay:     highlight.DefaultIdleDelay,
		FrameInterval: 16 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Period <= 0 {
		o.Period = d.Period
	}
	if o.PeakEpsilon <= 0 {
		o.PeakEpsilon = d.PeakEpsilon
	}
	if o.ApproachBand <= 0 {
		o.ApproachBand = d.ApproachBand
	}
	if o.FadeDelay <= 0 {
		o.FadeDelay = d.FadeDelay
	}
	if o.IdleDelay <= 0 {
		o.IdleDelay = d.IdleDelay
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = d.FrameInterval
	}
	return o
}

// Transition is one marker's state change between two frames.
type Transition struct {
	ID   string
	From highlight.State
	To   highlight.State
}

// Frame is what subscribers receive once per animation step.
type Frame struct {
	At      time.Time
	Scan    float64 // normalized scan line position
	States  map[string]highlight.State
	Changes []Transition
}

// In returns the sorted IDs currently in state s.
func (f Frame) In(s highlight.State) []string {
	var ids []string
	for id, st := range f.States {
		if st == s {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// State returns id's state, Idle when unknown.
func (f Frame) State(id string) highlight.State {
	return f.States[id]
}

// Animator is the per-view scan engine. A host creates one per mounted
// timeline and calls Stop when the view goes away; nothing is shared
// between animators.
//
// Frames come either from the built-in loop (Start) or from a host that
// owns its own frame cadence and calls Step directly.
type Animator struct {
	id    string
	opt   Options
	reg   *registry.Registry
	geom  registry.Geometry
	log   *log.Logger
	table *highlight.Table

	mu      sync.Mutex
	now     func() time.Time
	origin  time.Time
	inBand  map[string]bool
	last    map[string]highlight.State
	frame   Frame
	subs    map[int]func(Frame)
	nextSub int
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New wires an animator to a registry and the geometry it samples.
func New(reg *registry.Registry, geom registry.Geometry, opt Options, logger *log.Logger) *Animator {
	opt = opt.withDefaults()
	if logger == nil {
		logger = log.Discard()
	}
	id := uuid.NewString()
	return &Animator{
		id:     id,
		opt:    opt,
		reg:    reg,
		geom:   geom,
		log:    logger.With("[scan " + id[:8] + "]"),
		table:  highlight.NewTable(opt.FadeDelay, opt.IdleDelay),
		now:    time.Now,
		inBand: make(map[string]bool),
		last:   make(map[string]highlight.State),
		subs:   make(map[int]func(Frame)),
	}
}

// ID identifies this animator in logs.
func (a *Animator) ID() string { return a.id }

// Options returns the effective options.
func (a *Animator) Options() Options { return a.opt }

// SetNowFunc overrides the clock used by the built-in loop.
func (a *Animator) SetNowFunc(f func() time.Time) {
	a.mu.Lock()
	a.now = f
	a.mu.Unlock()
}

// OnHighlightChange registers cb for every emitted frame and returns a
// function that removes it. Callbacks run on the goroutine producing the
// frame and must not call Stop.
func (a *Animator) OnHighlightChange(cb func(Frame)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = cb
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subs, id)
			a.mu.Unlock()
		})
	}
}

// Invalidate marks marker positions stale; the next frame refreshes them
// before classifying. Call it on resize.
func (a *Animator) Invalidate() {
	a.reg.Invalidate()
}

// Start refreshes marker positions and launches the frame loop. The sweep
// restarts at the left edge. Calling Start on a running animator is a no-op.
func (a *Animator) Start(ctx context.Context) {
	a.mu.Lock()
	if a.cancel != nil {
		a.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done
	a.stopped = false
	a.origin = a.now()
	if _, ok := a.reg.Refresh(a.geom); !ok {
		a.log.Debugf("container not mounted at start, deferring marker refresh")
	}
	a.mu.Unlock()

	a.log.Infof("started: period=%s frame=%s markers=%d", a.opt.Period, a.opt.FrameInterval, len(a.reg.IDs()))
	go a.run(loopCtx, done)
}

func (a *Animator) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.opt.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.mu.Lock()
			now := a.now()
			a.mu.Unlock()
			a.Step(now)
		}
	}
}

// Stop cancels the frame loop, waits for it to exit and drops every
// pending highlight timer. It is safe to call more than once.
func (a *Animator) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.stopped = true
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	a.mu.Lock()
	a.table.Clear()
	a.inBand = make(map[string]bool)
	a.last = make(map[string]highlight.State)
	a.frame = Frame{}
	a.mu.Unlock()
	if cancel != nil {
		a.log.Infof("stopped")
	}
}

// Running reports whether the built-in loop is active.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Position returns the normalized scan position at now: elapsed wall time
// modulo the period, a sawtooth that snaps back to 0 after each sweep.
func (a *Animator) Position(now time.Time) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.origin.IsZero() {
		return 0
	}
	return a.positionLocked(now)
}

func (a *Animator) positionLocked(now time.Time) float64 {
	elapsed := now.Sub(a.origin)
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed%a.opt.Period) / float64(a.opt.Period)
}

// Last returns the most recently emitted frame.
func (a *Animator) Last() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// Step computes one frame at now and notifies subscribers. ok is false
// when the frame was skipped: the animator is stopped, or the container
// is not mounted. A skipped frame is not an error; the next one retries.
func (a *Animator) Step(now time.Time) (Frame, bool) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return Frame{}, false
	}
	if a.origin.IsZero() {
		a.origin = now
	}

	if a.geom == nil {
		a.mu.Unlock()
		return Frame{}, false
	}
	if _, mounted := a.geom.Container(); !mounted {
		a.reg.Invalidate()
		a.mu.Unlock()
		return Frame{}, false
	}

	// positions must be current before anything is classified
	var positions map[string]float64
	if a.reg.Dirty() {
		var ok bool
		if positions, ok = a.reg.Refresh(a.geom); !ok {
			a.mu.Unlock()
			return Frame{}, false
		}
		a.log.Debugf("refreshed %d marker positions", len(positions))
	} else {
		positions = a.reg.Positions()
	}

	scan := a.positionLocked(now)
	frame := Frame{At: now, Scan: scan, States: make(map[string]highlight.State, len(positions))}

	for _, id := range a.reg.IDs() {
		st := a.classifyLocked(id, positions, scan, now)
		frame.States[id] = st
		if prev := a.last[id]; prev != st {
			frame.Changes = append(frame.Changes, Transition{ID: id, From: prev, To: st})
		}
		a.last[id] = st
	}
	sort.Slice(frame.Changes, func(i, j int) bool { return frame.Changes[i].ID < frame.Changes[j].ID })
	a.frame = frame

	subs := make([]func(Frame), 0, len(a.subs))
	keys := make([]int, 0, len(a.subs))
	for k := range a.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		subs = append(subs, a.subs[k])
	}
	a.mu.Unlock()

	for _, c := range frame.Changes {
		a.log.Debugf("%s: %s -> %s at scan=%.3f", c.ID, c.From, c.To, scan)
	}
	for _, cb := range subs {
		cb(frame)
	}
	return frame, true
}

// classifyLocked decides one marker's state. Entering the peak band
// (edge-triggered) restarts the marker's timer slot; the timer slot then
// owns the state until it expires, after which geometry decides between
// Approaching and Idle again. Absent markers keep any running timers but
// never enter a band.
func (a *Animator) classifyLocked(id string, positions map[string]float64, scan float64, now time.Time) highlight.State {
	pos, present := positions[id]
	if !present || math.IsNaN(pos) {
		a.inBand[id] = false
		if st, ok := a.table.Resolve(id, now); ok {
			return st
		}
		return highlight.Idle
	}

	d := pos - scan
	in := math.Abs(d) < a.opt.PeakEpsilon
	if in && !a.inBand[id] {
		a.table.Trigger(id, now)
	}
	a.inBand[id] = in

	if st, ok := a.table.Resolve(id, now); ok {
		return st
	}
	if d > 0 && d < a.opt.ApproachBand {
		return highlight.Approaching
	}
	return highlight.Idle
}
