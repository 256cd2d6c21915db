package traffic

import (
	"testing"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
)

type fakeHazard struct{ total float64 }

func (h *fakeHazard) ReduceBaseRadius(a float64) { h.total += a }

// The fake gate honks whenever cars are held
func (f *fakeSignal) ShouldHonk() bool { return f.stop }

func honkFixture(stop bool) (*engine.World, *fakeSignal, *Honker, *audio.Recorder, *fakeHazard) {
	w := engine.NewWorld(7)
	sig := &fakeSignal{stop: stop}
	ch := NewChain(testLane(), 40, 2, 7, sig, nil)
	rec := audio.NewRecorder("horn", false)

	v := NewVehicle(1, ch.Lane, 39, 8)
	v.Horn = rec
	stay(ch.Nodes[0], v)

	hz := &fakeHazard{}
	horns := []*audio.Clip{audio.Horn(0), audio.Horn(1)}
	h := NewHonker(w, sig, []*Chain{ch}, horns, hz, NewStats(w.Status))
	return w, sig, h, rec, hz
}

func run(w *engine.World, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 50 * time.Millisecond {
		w.Tick(50 * time.Millisecond)
	}
}

func TestHonkerHonksAtStoppedVehicles(t *testing.T) {
	w, _, h, rec, hz := honkFixture(true)
	h.Start()
	h.Start()
	run(w, 10*time.Second)

	plays := rec.Plays()
	// One honk per [1.5s, 3.5s]: at least 2 and at most 6 in 10s
	if len(plays) < 2 || len(plays) > 6 {
		t.Fatalf("Expected 2..6 honks in 10s, got %d", len(plays))
	}
	for _, p := range plays {
		if !p.OneShot || p.Pitch < 0.9 || p.Pitch >= 1.1 {
			t.Errorf("Expected one-shot with pitch in [0.9, 1.1), got %+v", p)
		}
	}
	want := 0.02 * float64(len(plays))
	if diff := hz.total - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected hazard reduced by %f, got %f", want, hz.total)
	}
}

func TestHonkerSilentWhenCarsMayGo(t *testing.T) {
	w, _, h, rec, hz := honkFixture(false)
	h.Start()
	run(w, 10*time.Second)

	if n := len(rec.Plays()); n != 0 {
		t.Errorf("Expected no horn when cars may go, got %d", n)
	}
	if hz.total != 0 {
		t.Errorf("Expected no hazard change, got %f", hz.total)
	}
}

func TestHonkerStopResets(t *testing.T) {
	w, _, h, rec, _ := honkFixture(true)
	h.Sync(true)
	run(w, 5*time.Second)
	h.Sync(false)

	if h.Running() {
		t.Error("Expected loop stopped")
	}
	before := len(rec.Plays())
	run(w, 10*time.Second)
	if after := len(rec.Plays()); after != before {
		t.Errorf("Expected no honks after stop, got %d more", after-before)
	}
	if w.Scheduler.Len() != 0 {
		t.Errorf("Expected no scheduled tasks, got %d", w.Scheduler.Len())
	}
}

func TestHonkerNoStoppedVehicles(t *testing.T) {
	w := engine.NewWorld(1)
	sig := &fakeSignal{stop: true}
	ch := NewChain(testLane(), 40, 2, 7, sig, nil)
	hz := &fakeHazard{}
	h := NewHonker(w, sig, []*Chain{ch}, []*audio.Clip{audio.Horn(0)}, hz, nil)
	h.Start()
	run(w, 10*time.Second)
	if hz.total != 0 {
		t.Errorf("Expected no hazard change without stopped vehicles, got %f", hz.total)
	}
}

func TestHonkerChecksGateOnEveryFiring(t *testing.T) {
	w, sig, h, rec, hz := honkFixture(true)
	h.IntervalMin, h.IntervalMax = time.Second, time.Second
	h.Start()
	run(w, 950*time.Millisecond)

	// Gate closes without a Sync; the due firing must still stay silent
	sig.stop = false
	run(w, 100*time.Millisecond)

	if !h.Running() {
		t.Fatal("Expected loop still scheduled until the next sync")
	}
	if n := len(rec.Plays()); n != 0 {
		t.Errorf("Expected no horn after the gate closed, got %d", n)
	}
	if hz.total != 0 {
		t.Errorf("Expected no hazard change, got %f", hz.total)
	}
}
