package pedestrian

import (
	"testing"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

const frame = 50 * time.Millisecond

type viewer struct {
	pos vmath.Vec3F
	yaw float64
}

func (v *viewer) Position() vmath.Vec3F { return v.pos }
func (v *viewer) Forward() vmath.Vec3F  { return vmath.YawForward(v.yaw) }
func (v *viewer) Right() vmath.Vec3F    { return vmath.YawRight(v.yaw) }

type hazard struct{ total float64 }

func (h *hazard) ReduceBaseRadius(a float64) { h.total += a }

type fixture struct {
	world   *engine.World
	crowd   *Crowd
	event   *CrossEvent
	effects *audio.Recorder
	voice   *audio.Recorder
	hazard  *hazard
}

func newFixture(spawn vmath.Vec3F, exit *vmath.Vec3F) *fixture {
	w := engine.NewWorld(1)
	tr := zone.NewTracker()
	crowd := NewCrowd(w, tr)
	w.AddSystem(tr)
	w.AddSystem(crowd)

	f := &fixture{
		world:   w,
		crowd:   crowd,
		effects: audio.NewRecorder("effects", false),
		voice:   audio.NewRecorder("pedestrian", false),
		hazard:  &hazard{},
	}
	f.event = NewCrossEvent(w, crowd, &viewer{}, Setup{
		Spawn:    spawn,
		SpawnYaw: 270,
		Exit:     exit,
		Impact:   audio.Tone("impact", 90, 100*time.Millisecond, 1),
		Line:     audio.Tone("line", 220, 100*time.Millisecond, 1),
		Effects:  f.effects,
		VoiceFor: func(*Walker) audio.Source { return f.voice },
		Hazard:   f.hazard,
	})
	return f
}

func (f *fixture) run(d time.Duration) {
	end := f.world.Now() + d
	for f.world.Now() < end {
		f.world.Tick(frame)
	}
}

func TestBumpPoint(t *testing.T) {
	f := newFixture(vmath.Vec3F{}, nil)
	got := f.event.BumpPoint()
	want := vmath.Vec3F{X: 0.1, Z: 1.2}
	if vmath.V3FDist(got, want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEncounterSequence(t *testing.T) {
	f := newFixture(vmath.Vec3F{X: 5, Z: 1.2}, nil)
	completed := 0
	f.event.OnComplete(func() { completed++ })

	f.event.Start()

	f.run(900 * time.Millisecond)
	if f.event.Walker() != nil {
		t.Fatal("Expected no spawn before the start delay")
	}
	f.run(200 * time.Millisecond)
	if f.event.Walker() == nil {
		t.Fatal("Expected a walker after the start delay")
	}

	f.run(10 * time.Second)

	if !f.event.Done() || completed != 1 {
		t.Fatalf("Expected encounter done once, got done=%t completed=%d", f.event.Done(), completed)
	}
	if f.event.TimedOut() {
		t.Error("Expected the walker to reach the bump point in time")
	}
	if names := f.effects.Names(); len(names) != 1 || names[0] != "impact" {
		t.Errorf("Expected impact on the effects source, got %v", names)
	}
	if names := f.voice.Names(); len(names) != 1 || names[0] != "line" {
		t.Errorf("Expected the spoken line on the walker, got %v", names)
	}
	if f.hazard.total != 0.02 {
		t.Errorf("Expected a single 0.02 reduction, got %f", f.hazard.total)
	}
	if y := f.event.Walker().Yaw; y != 180 {
		t.Errorf("Expected final heading 180, got %f", y)
	}
}

func TestEncounterTimeoutContinues(t *testing.T) {
	f := newFixture(vmath.Vec3F{X: 30}, nil)
	f.event.Start()
	f.run(7 * time.Second)

	if !f.event.TimedOut() {
		t.Fatal("Expected the approach to time out")
	}
	f.run(3 * time.Second)
	if !f.event.Done() {
		t.Error("Expected the encounter to finish after a timeout")
	}
	if f.hazard.total != 0.02 {
		t.Errorf("Expected the reduction to still apply, got %f", f.hazard.total)
	}
}

func TestEncounterIsOneShot(t *testing.T) {
	f := newFixture(vmath.Vec3F{X: 3}, nil)
	if !f.event.Start() {
		t.Fatal("Expected first start accepted")
	}
	if f.event.Start() {
		t.Error("Expected second start ignored")
	}
	f.run(12 * time.Second)
	if n := len(f.voice.Plays()); n != 1 {
		t.Errorf("Expected one spoken line, got %d", n)
	}
}

func TestWalkerLeavesThroughExit(t *testing.T) {
	exit := vmath.Vec3F{X: -4, Z: 1.2}
	f := newFixture(vmath.Vec3F{X: 3, Z: 1.2}, &exit)
	encounters := 0
	f.world.Router.Register(event.HandlerFunc{Type: event.EventPedestrianEncounter, Fn: func(event.GameEvent) { encounters++ }})

	f.event.Start()
	f.run(15 * time.Second)

	if w := f.event.Walker(); w.Alive() {
		t.Errorf("Expected walker despawned at exit, at %v", w.Pos)
	}
	if len(f.crowd.Walkers()) != 0 {
		t.Errorf("Expected empty crowd, got %d", len(f.crowd.Walkers()))
	}
	if encounters != 1 {
		t.Errorf("Expected 1 encounter event, got %d", encounters)
	}
}

func TestEncounterWithoutCrowd(t *testing.T) {
	w := engine.NewWorld(1)
	h := &hazard{}
	e := NewCrossEvent(w, nil, &viewer{}, Setup{Hazard: h})
	e.Start()
	for i := 0; i < 100; i++ {
		w.Tick(frame)
	}
	if !e.Done() {
		t.Error("Expected the encounter to degrade to a no-op run")
	}
}
