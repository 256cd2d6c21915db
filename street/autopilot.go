package street

import (
	"log"
	"time"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/scenario"
	"github.com/lixenwraith/crosswalk/signal"
	"github.com/lixenwraith/crosswalk/vmath"
)

// Autopilot plays the scene start to finish the way a visitor would
// It drives input through the same events as the terminal front end, except
// walking, which moves the player directly at walking speed
type Autopilot struct {
	scene *Scene
	speed float64
	tick  time.Duration

	handle *engine.Handle
	done   bool
}

// NewAutopilot creates an idle autopilot; tick is the step the scene runs at
func NewAutopilot(s *Scene, tick time.Duration) *Autopilot {
	return &Autopilot{scene: s, speed: parameter.AutopilotWalkSpeed, tick: tick}
}

// Done reports whether the visitor has left through the exit door
func (a *Autopilot) Done() bool {
	return a.done
}

// Start schedules the walkthrough; later calls are ignored
func (a *Autopilot) Start() {
	if a.handle != nil {
		return
	}
	s := a.scene
	l := s.Layout
	curb := vmath.Vec3F{X: l.Crossing.X, Z: -l.CrossingHalf.Z - parameter.PlayerRadius - 1}
	far := vmath.Vec3F{X: l.FarCurb.X, Z: l.FarCurb.Z}
	door := vmath.Vec3F{X: l.ExitDoor.X, Z: l.ExitDoor.Z}
	emit := func(t event.EventType, p any) engine.Step {
		return engine.Do(func() { s.World.Emit(t, p) })
	}

	a.handle = s.World.Scheduler.Start("autopilot", engine.NewSequence(
		a.walk(vmath.Vec3F{X: l.StartArea.X, Z: l.StartArea.Z}),
		a.await(scenario.PhaseTryExpand),

		emit(event.EventGripChange, &event.GripPayload{Left: true, Right: true}),
		emit(event.EventHandDistance, &event.HandDistancePayload{Meters: 0.3}),
		engine.Wait(200*time.Millisecond),
		emit(event.EventHandDistance, &event.HandDistancePayload{Meters: 0.6}),
		engine.Wait(time.Second),
		emit(event.EventGripChange, &event.GripPayload{}),
		a.await(scenario.PhaseWaitForGreen),

		a.walk(curb),
		emit(event.EventButtonPress, nil),
		engine.WaitUntil(func() bool { return s.Signal.State() == signal.CarsRedPedsGreen }, 0),
		a.walk(far),
		a.await(scenario.PhaseDone),

		engine.WaitUntil(func() bool { return !s.Cues.Busy() }, 0),
		a.walk(door),
		engine.WaitUntil(s.Scenario.Exited, 0),
		engine.Do(func() {
			a.done = true
			log.Printf("[STREET] Autopilot finished at %v", s.World.Now())
		}),
	))
}

// Stop cancels the walkthrough
func (a *Autopilot) Stop() {
	a.handle.Cancel()
}

func (a *Autopilot) walk(target vmath.Vec3F) engine.Step {
	step := a.speed * a.tick.Seconds()
	return engine.Poll(func(time.Duration) bool {
		p := a.scene.Player
		p.Pos = vmath.V3FMoveTowards(p.Pos, target, step)
		return p.Pos == target
	}, 0)
}

func (a *Autopilot) await(phase scenario.Phase) engine.Step {
	return engine.WaitUntil(func() bool { return a.scene.Scenario.Phase() >= phase }, 0)
}
