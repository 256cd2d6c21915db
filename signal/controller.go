package signal

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/status"
)

// Occupancy reports whether the player stands in the crossing
type Occupancy interface {
	PlayerInside() bool
}

// HonkGate is driven every frame with the honk condition
type HonkGate interface {
	Sync(shouldHonk bool)
}

// Clips are the cues the controller plays on its own source
type Clips struct {
	Wait  *audio.Clip
	Cross *audio.Clip
	Beep  *audio.Clip
}

// Timing holds the cycle durations
type Timing struct {
	Wait      time.Duration // Request to pedestrian green
	CrossHold time.Duration // Crossing cue to beep cue
	PedsGreen time.Duration // Beep cue to revert
}

// DefaultTiming returns the stock cycle
func DefaultTiming() Timing {
	return Timing{
		Wait:      parameter.SignalWaitTime,
		CrossHold: parameter.SignalCrossCueHold,
		PedsGreen: parameter.SignalPedsGreenDuration,
	}
}

// Controller runs the pedestrian crossing cycle
//
// A request starts one cycle: wait cue, pedestrian green with crossing cue,
// beep cue, then back to cars green. Requests during a cycle are ignored and a
// running cycle has no cancellation path
type Controller struct {
	world  *engine.World
	source audio.Source
	clips  Clips
	timing Timing

	crossing Occupancy
	honker   HonkGate

	Near     Head
	Opposite Head

	state   State
	waiting bool
	cycle   *engine.Handle

	stateListeners []func(State)
	cycleListeners []func()

	statCycles  *atomic.Int64
	statIgnored *atomic.Int64
	statState   *status.AtomicString
}

// NewController creates a controller showing cars green
func NewController(w *engine.World, source audio.Source, clips Clips, timing Timing) *Controller {
	if source == nil {
		source = audio.Null{}
	}
	c := &Controller{
		world:       w,
		source:      source,
		clips:       clips,
		timing:      timing,
		Near:        Head{Red: Cover{Name: "red"}, Green: Cover{Name: "green"}},
		Opposite:    Head{Red: Cover{Name: "red-opposite"}, Green: Cover{Name: "green-opposite"}},
		statCycles:  w.Status.Ints.Get("signal.cycles"),
		statIgnored: w.Status.Ints.Get("signal.requests_ignored"),
		statState:   w.Status.Strings.Get("signal.state"),
	}
	c.applyVisuals()
	return c
}

// SetCrossing wires the crossing occupancy used by the safety override
func (c *Controller) SetCrossing(o Occupancy) {
	c.crossing = o
}

// SetHonker wires the honk loop the controller drives every frame
func (c *Controller) SetHonker(h HonkGate) {
	c.honker = h
}

// OnStateChange registers a listener for every transition
func (c *Controller) OnStateChange(fn func(State)) {
	c.stateListeners = append(c.stateListeners, fn)
}

// OnCycleComplete registers a listener for cycle completion
func (c *Controller) OnCycleComplete(fn func()) {
	c.cycleListeners = append(c.cycleListeners, fn)
}

// State returns the current aspect
func (c *Controller) State() State {
	return c.state
}

// Waiting reports whether a cycle is pending or running
func (c *Controller) Waiting() bool {
	return c.waiting
}

// RequestCrossing starts a cycle unless one is already in flight
// Returns false for an ignored request
func (c *Controller) RequestCrossing() bool {
	if c.waiting {
		c.statIgnored.Add(1)
		return false
	}
	c.waiting = true
	log.Printf("[SIGNAL] Crossing requested at %v", c.world.Now())

	c.cycle = c.world.Scheduler.Start("signal-cycle", engine.NewSequence(
		engine.Do(func() { c.play(c.clips.Wait) }),
		engine.Wait(c.timing.Wait),
		engine.Do(func() {
			c.setState(CarsRedPedsGreen)
			c.play(c.clips.Cross)
		}),
		engine.Wait(c.timing.CrossHold),
		engine.Do(func() { c.play(c.clips.Beep) }),
		engine.Wait(c.timing.PedsGreen),
		engine.Do(c.finish),
	))
	return true
}

func (c *Controller) finish() {
	c.source.Stop()
	c.setState(CarsGreenPedsRed)
	c.waiting = false
	c.statCycles.Add(1)
	log.Printf("[SIGNAL] Crossing cycle complete at %v", c.world.Now())

	c.world.Emit(event.EventCrossingComplete, nil)
	for _, fn := range c.cycleListeners {
		fn()
	}
}

// ShouldCarsStop is true on cars red, and on cars green while the player is in the crossing
func (c *Controller) ShouldCarsStop() bool {
	return c.state == CarsRedPedsGreen || c.playerBlocking()
}

// ShouldHonk is true when cars are held only because the player lingers on cars green
func (c *Controller) ShouldHonk() bool {
	return c.playerBlocking()
}

func (c *Controller) playerBlocking() bool {
	return c.state == CarsGreenPedsRed && c.crossing != nil && c.crossing.PlayerInside()
}

func (c *Controller) Name() string  { return "signal" }
func (c *Controller) Priority() int { return parameter.PrioritySignal }

// Update drives the honk loop from the current condition
func (c *Controller) Update(time.Duration) {
	if c.honker != nil {
		c.honker.Sync(c.ShouldHonk())
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.state = s
	c.applyVisuals()
	log.Printf("[SIGNAL] %v at %v", s, c.world.Now())

	c.world.Emit(event.EventSignalChanged, &event.SignalChangedPayload{State: s.String()})
	for _, fn := range c.stateListeners {
		fn(s)
	}
}

func (c *Controller) applyVisuals() {
	c.Near.Apply(c.state)
	c.Opposite.Apply(c.state)
	c.statState.Store(c.state.String())
}

func (c *Controller) play(clip *audio.Clip) {
	if clip == nil {
		return
	}
	c.source.Play(clip)
}
