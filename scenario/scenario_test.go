package scenario

import (
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

const frame = 50 * time.Millisecond

func clip(name string, d time.Duration) *audio.Clip {
	return audio.Tone(name, 440, d, 1)
}

func runUntil(t *testing.T, w *engine.World, limit time.Duration, cond func() bool) {
	t.Helper()
	end := w.Now() + limit
	for !cond() {
		if w.Now() >= end {
			t.Fatalf("Condition not reached within %v", limit)
		}
		w.Tick(frame)
	}
}

func TestCueQueueStartsAfterSummedDurations(t *testing.T) {
	w := engine.NewWorld(1)
	rec := audio.NewRecorder("narration", false)
	q := NewCueQueue(w, rec)
	w.AddSystem(q)

	a := clip("a", 300*time.Millisecond)
	b := clip("b", 500*time.Millisecond)
	c := clip("c", 200*time.Millisecond)

	cues := []*Cue{q.PlayCue(a), q.PlayCue(nil), q.PlayCue(b), q.PlayCue(c)}
	if !cues[1].Skipped() || !cues[1].Done() {
		t.Error("Expected nil clip to be skipped and done")
	}

	expected := []time.Duration{0, 0, a.Duration(), a.Duration() + b.Duration()}
	for i, cue := range cues {
		if cue.Skipped() {
			continue
		}
		if cue.Start != expected[i] {
			t.Errorf("Cue %d: expected start %v, got %v", i, expected[i], cue.Start)
		}
	}

	if names := rec.Names(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("Expected only a playing at start, got %v", names)
	}

	runUntil(t, w, 2*time.Second, func() bool { return w.Now() >= 250*time.Millisecond })
	if len(rec.Names()) != 1 {
		t.Errorf("Expected b to wait for a, got %v", rec.Names())
	}

	runUntil(t, w, 2*time.Second, func() bool { return cues[3].Done() })
	names := rec.Names()
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("Expected a,b,c, got %v", names)
	}
	if got := w.Status.Ints.Get("audio.cues_played").Load(); got != 3 {
		t.Errorf("Expected 3 cues played, got %d", got)
	}
	if q.Busy() {
		t.Error("Expected idle queue after the last cue")
	}
}

// stretchSource reports a fixed playback length regardless of the clip
type stretchSource struct {
	length time.Duration
	played []string
}

func (s *stretchSource) Play(c *audio.Clip) time.Duration {
	s.played = append(s.played, c.Name)
	return s.length
}
func (s *stretchSource) PlayOneShot(*audio.Clip, float64) {}
func (s *stretchSource) Stop()                            {}

func TestCueQueueFollowsReportedDuration(t *testing.T) {
	w := engine.NewWorld(1)
	src := &stretchSource{length: time.Second}
	q := NewCueQueue(w, src)
	w.AddSystem(q)

	a := q.PlayCue(clip("a", 300*time.Millisecond))
	b := q.PlayCue(clip("b", 300*time.Millisecond))

	if a.EndTime() != time.Second {
		t.Errorf("Expected a to end at the reported 1s, got %v", a.EndTime())
	}
	if b.Start != time.Second {
		t.Errorf("Expected b rescheduled to 1s, got %v", b.Start)
	}

	runUntil(t, w, 2*time.Second, func() bool { return w.Now() >= 950*time.Millisecond })
	if len(src.played) != 1 {
		t.Errorf("Expected b held back while a still plays, got %v", src.played)
	}
	runUntil(t, w, 2*time.Second, func() bool { return b.Started() })
	if w.Now() != time.Second {
		t.Errorf("Expected b to start at 1s, got %v", w.Now())
	}
	if b.EndTime() != 2*time.Second {
		t.Errorf("Expected b to end at 2s, got %v", b.EndTime())
	}
}

func TestCueQueueIdleStartsImmediately(t *testing.T) {
	w := engine.NewWorld(1)
	rec := audio.NewRecorder("narration", false)
	q := NewCueQueue(w, rec)
	w.AddSystem(q)

	q.PlayCue(clip("a", 100*time.Millisecond))
	runUntil(t, w, 3*time.Second, func() bool { return w.Now() >= 2*time.Second })

	cue := q.PlayCue(clip("b", 100*time.Millisecond))
	if cue.Start != w.Now() || !cue.Started() {
		t.Errorf("Expected immediate start at %v, got %v (started %v)", w.Now(), cue.Start, cue.Started())
	}
}

type encounter struct{ starts int }

func (e *encounter) Start() bool {
	e.starts++
	return e.starts == 1
}

type scene struct {
	world      *engine.World
	rec        *audio.Recorder
	coord      *Coordinator
	transcript *Transcript
	encounter  *encounter
}

func newScene(t *testing.T) *scene {
	t.Helper()
	w := engine.NewWorld(1)
	rec := audio.NewRecorder("narration", false)
	q := NewCueQueue(w, rec)
	w.AddSystem(q)

	d := 100 * time.Millisecond
	tr := NewTranscript(32)
	c, err := NewCoordinator(w, q, Options{
		Lines: Lines{
			Intro:      clip("intro", d),
			TryExpand:  clip("try", d),
			AfterTry:   clip("after", d),
			FindButton: clip("find", d),
			Info:       clip("info", d),
			Recap:      clip("recap", d),
			ExitDoor:   clip("exit", d),
		},
		Pauses:   DefaultPauses(),
		Narrator: tr,
	})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	enc := &encounter{}
	c.SetEncounter(enc)
	w.Router.Register(c)
	return &scene{world: w, rec: rec, coord: c, transcript: tr, encounter: enc}
}

func (s *scene) emit(et event.EventType) {
	s.world.Emit(et, nil)
	s.world.Tick(frame)
}

func (s *scene) phase(p Phase) func() bool {
	return func() bool { return s.coord.Phase() == p }
}

func TestCoordinatorFullFlow(t *testing.T) {
	s := newScene(t)
	if s.coord.PhaseName() != "Intro" {
		t.Fatalf("Expected Intro, got %s", s.coord.PhaseName())
	}

	s.emit(event.EventSceneEntered)
	runUntil(t, s.world, 6*time.Second, s.phase(PhaseTryExpand))
	if !s.coord.InTryExpand() {
		t.Error("Expected InTryExpand in TryExpand")
	}

	s.emit(event.EventExpandAttempted)
	if s.coord.Phase() != PhaseFindCrosswalkButton {
		t.Fatalf("Expected FindCrosswalkButton, got %s", s.coord.PhaseName())
	}
	runUntil(t, s.world, 5*time.Second, s.phase(PhaseWaitForGreen))

	s.emit(event.EventCrosswalkPressed)
	if s.coord.Phase() != PhaseCrossStreet {
		t.Fatalf("Expected CrossStreet, got %s", s.coord.PhaseName())
	}
	if s.encounter.starts != 1 {
		t.Errorf("Expected pedestrian event started once, got %d", s.encounter.starts)
	}

	s.emit(event.EventReachedOtherSide)
	if s.coord.Phase() != PhaseDone {
		t.Fatalf("Expected Done, got %s", s.coord.PhaseName())
	}
	runUntil(t, s.world, 5*time.Second, func() bool {
		n := s.rec.Names()
		return len(n) > 0 && n[len(n)-1] == "exit"
	})

	expected := "intro,try,after,find,info,recap,exit"
	if got := strings.Join(s.rec.Names(), ","); got != expected {
		t.Errorf("Expected cues %s, got %s", expected, got)
	}
	phases := strings.Join(s.transcript.Phases(), ",")
	if phases != "Intro,TryExpand,FindCrosswalkButton,WaitForGreen,CrossStreet,Done" {
		t.Errorf("Unexpected phase notes: %s", phases)
	}
	if got := s.world.Status.Strings.Get("scenario.phase").Load(); got != "Done" {
		t.Errorf("Expected scenario.phase Done, got %q", got)
	}
}

func TestIntroWaitsForPause(t *testing.T) {
	s := newScene(t)
	s.emit(event.EventSceneEntered)

	runUntil(t, s.world, 5*time.Second, func() bool { return s.world.Now() >= 4*time.Second })
	if s.coord.Phase() != PhaseIntro {
		t.Errorf("Expected Intro before clip plus pause elapsed, got %s", s.coord.PhaseName())
	}
	runUntil(t, s.world, time.Second, s.phase(PhaseTryExpand))
}

func TestExpandLatchedDuringIntroConsumedOnce(t *testing.T) {
	s := newScene(t)

	for i := 0; i < 3; i++ {
		s.coord.RequestExpandAttempt()
	}
	if !s.coord.PendingExpand() {
		t.Fatal("Expected expand attempt latched during Intro")
	}
	if got := s.world.Status.Ints.Get("scenario.latched").Load(); got != 1 {
		t.Errorf("Expected one latch, got %d", got)
	}

	s.emit(event.EventSceneEntered)
	runUntil(t, s.world, 6*time.Second, s.phase(PhaseFindCrosswalkButton))
	if s.coord.PendingExpand() {
		t.Error("Expected latch consumed on entering TryExpand")
	}

	history := strings.Join(s.coord.History(), ",")
	if history != "Intro,TryExpand,FindCrosswalkButton" {
		t.Errorf("Expected pass through TryExpand, got %s", history)
	}
	for _, n := range s.rec.Names() {
		if n == "try" {
			t.Error("Expected try-expand cue skipped when latch consumed")
		}
	}

	s.coord.RequestExpandAttempt()
	if s.coord.Phase() != PhaseFindCrosswalkButton || s.coord.PendingExpand() {
		t.Error("Expected late attempt ignored")
	}
}

func TestButtonLatchedBeforeWaitForGreen(t *testing.T) {
	s := newScene(t)
	s.emit(event.EventSceneEntered)
	runUntil(t, s.world, 6*time.Second, s.phase(PhaseTryExpand))

	s.coord.OnCrosswalkButtonPressed()
	s.coord.OnCrosswalkButtonPressed()
	if !s.coord.PendingButton() || s.coord.Phase() != PhaseTryExpand {
		t.Fatal("Expected button press latched during TryExpand")
	}

	s.coord.RequestExpandAttempt()
	runUntil(t, s.world, 5*time.Second, s.phase(PhaseCrossStreet))
	if s.coord.PendingButton() {
		t.Error("Expected button latch consumed")
	}
	if s.encounter.starts != 1 {
		t.Errorf("Expected one pedestrian start, got %d", s.encounter.starts)
	}
}

func TestOutOfPhaseRequestsIgnored(t *testing.T) {
	s := newScene(t)

	s.coord.OnReachedOtherSide()
	s.coord.OnExitDoor()
	if s.coord.Phase() != PhaseIntro || s.coord.Exited() {
		t.Error("Expected reach and exit ignored during Intro")
	}

	s.emit(event.EventSceneEntered)
	s.emit(event.EventSceneEntered)
	runUntil(t, s.world, 6*time.Second, s.phase(PhaseTryExpand))
	if n := strings.Count(strings.Join(s.rec.Names(), ","), "intro"); n != 1 {
		t.Errorf("Expected intro once, got %d", n)
	}
}

func TestExitDoorRunsHooksOnce(t *testing.T) {
	s := newScene(t)
	exits := 0
	s.coord.OnExit(func() { exits++ })

	s.coord.pendingExpand = true
	s.coord.pendingButton = true
	s.coord.OnEnteredScene()
	runUntil(t, s.world, 10*time.Second, s.phase(PhaseCrossStreet))
	s.coord.OnReachedOtherSide()

	s.coord.OnExitDoor()
	s.coord.OnExitDoor()
	if exits != 1 || !s.coord.Exited() {
		t.Errorf("Expected one exit hook call, got %d", exits)
	}
}

func TestCoordinatorRequiresQueue(t *testing.T) {
	if _, err := NewCoordinator(engine.NewWorld(1), nil, Options{}); err == nil {
		t.Error("Expected error without cue queue")
	}
}

type player struct{ p vmath.Vec3F }

func (p *player) Position() vmath.Vec3F { return p.p }

func TestStartTriggerFiresOnce(t *testing.T) {
	tr := zone.NewTracker()
	fires := 0
	trig := NewTrigger(TriggerStartScene, vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 1, Z: 1}, func() { fires++ })
	tr.Watch(trig.Collider, trig)

	pl := &player{p: vmath.Vec3F{X: 5}}
	body := zone.NewCollider("player", pl, vmath.Vec3F{}, vmath.Vec3F{X: 0.3, Y: 1, Z: 0.3}, zone.LayerPlayer, false)
	tr.Add(body)
	other := zone.NewCollider("car", nil, vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 1, Z: 1}, zone.LayerVehicleBody, false)
	tr.Add(other)

	steps := []float64{0, 5, 0, 5, 0}
	for _, x := range steps {
		pl.p.X = x
		tr.Update(frame)
	}
	if fires != 1 || trig.Fired() != 1 {
		t.Errorf("Expected start trigger once, got %d", fires)
	}

	end := 0
	endTrig := NewTrigger(TriggerEndCrossing, vmath.Vec3F{X: 10}, vmath.Vec3F{X: 1, Y: 1, Z: 1}, func() { end++ })
	tr.Watch(endTrig.Collider, endTrig)
	for _, x := range []float64{10, 0, 10} {
		pl.p.X = x
		tr.Update(frame)
	}
	if end != 2 {
		t.Errorf("Expected end trigger on each entry, got %d", end)
	}
}
