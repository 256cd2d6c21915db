package traffic

import (
	"log"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/parameter"
)

// Hazard receives permanent vision reductions
type Hazard interface {
	ReduceBaseRadius(amount float64)
}

// HonkView is the honk gate: cars hold only because the crossing is occupied on cars green
type HonkView interface {
	ShouldHonk() bool
}

// Honker makes a random stopped vehicle honk periodically while the crossing is blocked
type Honker struct {
	IntervalMin, IntervalMax time.Duration
	PitchMin, PitchMax       float64

	world  *engine.World
	gate   HonkView
	chains []*Chain
	horns  []*audio.Clip
	hazard Hazard
	stats  *Stats

	handle  *engine.Handle
	scratch []*Vehicle
}

// NewHonker creates an idle honker over the given stop line chains
func NewHonker(w *engine.World, gate HonkView, chains []*Chain, horns []*audio.Clip, hazard Hazard, stats *Stats) *Honker {
	return &Honker{
		IntervalMin: parameter.HonkIntervalMin,
		IntervalMax: parameter.HonkIntervalMax,
		PitchMin:    parameter.HonkPitchMin,
		PitchMax:    parameter.HonkPitchMax,
		world:       w,
		gate:        gate,
		chains:      chains,
		horns:       horns,
		hazard:      hazard,
		stats:       stats,
	}
}

// Start begins the honk loop; a running loop is left alone
func (h *Honker) Start() {
	if h.handle.Running() {
		return
	}
	h.handle = h.world.Scheduler.Start("honk", engine.NewEvery(h.interval, h.honk))
	log.Printf("[TRAFFIC] Honking started")
}

// Stop ends the loop; the next Start waits a fresh interval
func (h *Honker) Stop() {
	if !h.handle.Running() {
		return
	}
	h.handle.Cancel()
	h.handle = nil
	log.Printf("[TRAFFIC] Honking stopped")
}

// Sync starts or stops to match the gating condition
func (h *Honker) Sync(shouldHonk bool) {
	if shouldHonk {
		h.Start()
	} else {
		h.Stop()
	}
}

// Running reports whether the loop is active
func (h *Honker) Running() bool {
	return h.handle.Running()
}

func (h *Honker) interval() time.Duration {
	return h.world.RandRange(h.IntervalMin, h.IntervalMax)
}

func (h *Honker) honk() {
	// The gate may close earlier in the same tick, before the controller syncs the loop
	if h.gate == nil || !h.gate.ShouldHonk() {
		return
	}

	h.scratch = h.scratch[:0]
	for _, ch := range h.chains {
		if ch != nil {
			h.scratch = ch.Stopped(h.scratch)
		}
	}
	if len(h.scratch) == 0 {
		return
	}

	v := h.scratch[h.world.Rand.Intn(len(h.scratch))]
	if v.Horn != nil && len(h.horns) > 0 {
		clip := h.horns[h.world.Rand.Intn(len(h.horns))]
		pitch := h.world.RandFloat(h.PitchMin, h.PitchMax)
		v.Horn.PlayOneShot(clip, pitch)
		h.stats.add(statHonks, 1)
	}

	if h.hazard != nil {
		h.hazard.ReduceBaseRadius(parameter.HonkHazardStep)
	}
}
