package pedestrian

import (
	"log"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
)

// Viewer is the player's tracked origin and head
type Viewer interface {
	Position() vmath.Vec3F
	Forward() vmath.Vec3F
	Right() vmath.Vec3F
}

// Hazard receives permanent vision reductions
type Hazard interface {
	ReduceBaseRadius(amount float64)
}

// Setup holds the scene references the encounter needs
type Setup struct {
	Spawn    vmath.Vec3F
	SpawnYaw float64
	Exit     *vmath.Vec3F // nil leaves the walker standing after the encounter
	Impact   *audio.Clip
	Line     *audio.Clip
	Effects  audio.Source // Plays the impact next to the player
	VoiceFor func(*Walker) audio.Source
	Hazard   Hazard
}

// CrossEvent is the one-shot pedestrian bump while the player waits for green
//
// A walker spawns, heads for a point just ahead of the player, turns, collides
// with a sound and a spoken line, pauses, turns away and walks to the exit.
// The approach is bounded; on timeout the encounter plays out wherever the walker stands
type CrossEvent struct {
	world  *engine.World
	crowd  *Crowd
	viewer Viewer
	setup  Setup

	started  bool
	done     bool
	timedOut bool
	walker   *Walker
	handle   *engine.Handle
	turnFrom float64

	listeners []func()
}

// NewCrossEvent creates an idle encounter
func NewCrossEvent(w *engine.World, crowd *Crowd, viewer Viewer, setup Setup) *CrossEvent {
	return &CrossEvent{world: w, crowd: crowd, viewer: viewer, setup: setup}
}

// OnComplete registers a completion listener
func (e *CrossEvent) OnComplete(fn func()) {
	e.listeners = append(e.listeners, fn)
}

// Start runs the encounter once; later calls are ignored
func (e *CrossEvent) Start() bool {
	if e.started {
		return false
	}
	e.started = true
	log.Printf("[PEDESTRIAN] Encounter started at %v", e.world.Now())

	e.handle = e.world.Scheduler.Start("pedestrian", engine.NewSequence(
		engine.Wait(parameter.PedestrianStartDelay),
		engine.Do(e.spawn),
		engine.Poll(e.approach, parameter.PedestrianApproachMax).OnTimeout(func() {
			e.timedOut = true
			log.Printf("[PEDESTRIAN] Approach timed out, continuing in place")
		}),
		engine.Do(e.beginTurn),
		engine.Tween(parameter.PedestrianTurnDuration, e.turnTo(parameter.PedestrianFaceHeading)),
		engine.Do(e.react),
		engine.Wait(parameter.PedestrianPauseDuration),
		engine.Do(e.beginTurn),
		engine.Tween(parameter.PedestrianTurnDuration, e.turnTo(parameter.PedestrianExitHeading)),
		engine.Do(e.leave),
	))
	return true
}

// Started reports whether Start has run
func (e *CrossEvent) Started() bool { return e.started }

// Done reports whether the encounter finished
func (e *CrossEvent) Done() bool { return e.done }

// TimedOut reports whether the approach gave up before reaching the bump point
func (e *CrossEvent) TimedOut() bool { return e.timedOut }

// Walker returns the spawned walker, nil before spawn
func (e *CrossEvent) Walker() *Walker { return e.walker }

// BumpPoint is just ahead of the player and slightly to the right, at the player's height
func (e *CrossEvent) BumpPoint() vmath.Vec3F {
	origin := e.viewer.Position()
	fwd := vmath.V3FFlat(e.viewer.Forward())
	p := vmath.V3FAdd(origin, vmath.V3FScale(fwd, parameter.PedestrianBumpForward))
	p = vmath.V3FAdd(p, vmath.V3FScale(e.viewer.Right(), parameter.PedestrianBumpSideOffset))
	p.Y = origin.Y
	return p
}

func (e *CrossEvent) spawn() {
	if e.crowd == nil {
		log.Printf("[PEDESTRIAN] No crowd to spawn into")
		return
	}
	e.walker = e.crowd.Spawn(e.setup.Spawn, e.setup.SpawnYaw)
	if e.setup.VoiceFor != nil {
		e.walker.Voice = e.setup.VoiceFor(e.walker)
	}
}

// approach re-targets the moving bump point every tick until close enough
func (e *CrossEvent) approach(time.Duration) bool {
	if e.walker == nil || e.viewer == nil {
		return true
	}
	bump := e.BumpPoint()
	e.walker.GoTo(bump)
	return vmath.V3FDist(e.walker.Pos, bump) <= parameter.PedestrianArrivalRadius
}

func (e *CrossEvent) beginTurn() {
	if e.walker != nil {
		e.turnFrom = e.walker.Yaw
	}
}

func (e *CrossEvent) turnTo(target float64) func(t float64) {
	return func(t float64) {
		if e.walker == nil {
			return
		}
		if t >= 1 {
			e.walker.Yaw = target
			return
		}
		e.walker.Yaw = vmath.LerpAngle(e.turnFrom, target, t)
	}
}

func (e *CrossEvent) react() {
	if e.setup.Effects != nil && e.setup.Impact != nil {
		e.setup.Effects.Play(e.setup.Impact)
	}
	if e.walker != nil && e.walker.Voice != nil && e.setup.Line != nil {
		e.walker.Voice.Play(e.setup.Line)
	}
	if e.setup.Hazard != nil {
		e.setup.Hazard.ReduceBaseRadius(parameter.PedestrianHazardStep)
	}
	if e.walker != nil {
		e.walker.Stop()
	}
}

func (e *CrossEvent) leave() {
	if e.walker != nil {
		e.walker.Resume()
		if e.setup.Exit != nil {
			e.walker.DespawnOnArrival = true
			e.walker.GoTo(*e.setup.Exit)
		}
	}
	e.done = true
	log.Printf("[PEDESTRIAN] Encounter complete at %v", e.world.Now())

	e.world.Emit(event.EventPedestrianEncounter, nil)
	for _, fn := range e.listeners {
		fn()
	}
}
