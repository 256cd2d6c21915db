package scenario

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/engine/fsm"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/status"
)

// Phase is a step of the one-way scene progression
type Phase = fsm.StateID

const (
	PhaseIntro Phase = iota + 1
	PhaseTryExpand
	PhaseFindCrosswalkButton
	PhaseWaitForGreen
	PhaseCrossStreet
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseIntro:               "Intro",
	PhaseTryExpand:           "TryExpand",
	PhaseFindCrosswalkButton: "FindCrosswalkButton",
	PhaseWaitForGreen:        "WaitForGreen",
	PhaseCrossStreet:         "CrossStreet",
	PhaseDone:                "Done",
}

// Lines are the narration clips, one field per cue; nil fields are skipped
type Lines struct {
	Intro      *audio.Clip
	TryExpand  *audio.Clip
	AfterTry   *audio.Clip
	FindButton *audio.Clip
	Info       *audio.Clip
	Recap      *audio.Clip
	ExitDoor   *audio.Clip
}

// LinesFromBank resolves every narration line by name
func LinesFromBank(b *audio.Bank) Lines {
	return Lines{
		Intro:      b.Clip(audio.LineIntro),
		TryExpand:  b.Clip(audio.LineTryExpand),
		AfterTry:   b.Clip(audio.LineAfterTry),
		FindButton: b.Clip(audio.LineFindButton),
		Info:       b.Clip(audio.LineInfo),
		Recap:      b.Clip(audio.LineRecap),
		ExitDoor:   b.Clip(audio.LineExitDoor),
	}
}

// Pauses are the silent gaps inserted after specific cues
type Pauses struct {
	Intro    time.Duration
	AfterTry time.Duration
	Outro    time.Duration
}

// DefaultPauses returns the stock narration pacing
func DefaultPauses() Pauses {
	return Pauses{
		Intro:    parameter.ScenarioIntroPause,
		AfterTry: parameter.ScenarioAfterTryPause,
		Outro:    parameter.ScenarioOutroPause,
	}
}

// Encounter is the scripted pedestrian event started on CrossStreet
type Encounter interface {
	Start() bool
}

// Options configure a coordinator
type Options struct {
	Lines    Lines
	Pauses   Pauses
	Narrator Narrator
	Session  Session
}

// Coordinator advances the narration phases from scene events
//
// Transitions happen only on event calls. A request that arrives before its
// gating phase is latched in a single flag and consumed on entering that phase
type Coordinator struct {
	world    *engine.World
	cues     *CueQueue
	machine  *fsm.Machine[*Coordinator]
	lines    Lines
	pauses   Pauses
	narrator Narrator
	session  Session

	encounter Encounter
	onExit    []func()

	sceneEntered  bool
	pendingExpand bool
	pendingButton bool
	exited        bool

	sequences []*engine.Handle

	statPhase   *status.AtomicString
	statLatched *atomic.Int64
}

// NewCoordinator builds the phase graph and enters Intro
func NewCoordinator(w *engine.World, cues *CueQueue, opts Options) (*Coordinator, error) {
	if cues == nil {
		return nil, fmt.Errorf("coordinator requires a cue queue")
	}
	c := &Coordinator{
		world:       w,
		cues:        cues,
		lines:       opts.Lines,
		pauses:      opts.Pauses,
		narrator:    opts.Narrator,
		session:     opts.Session,
		statPhase:   w.Status.Strings.Get("scenario.phase"),
		statLatched: w.Status.Ints.Get("scenario.latched"),
	}
	if c.session.ID == "" {
		c.session = NewSession()
	}

	m, err := c.build()
	if err != nil {
		return nil, fmt.Errorf("scenario graph: %w", err)
	}
	c.machine = m
	m.Subscribe(func(from, to fsm.StateID) {
		log.Printf("[SCENARIO] %s -> %s at %v", m.StateName(from), m.StateName(to), w.Now())
		c.phaseChanged(to)
	})
	if err := m.Init(c, PhaseIntro); err != nil {
		return nil, fmt.Errorf("scenario init: %w", err)
	}
	c.phaseChanged(PhaseIntro)
	return c, nil
}

func (c *Coordinator) build() (*fsm.Machine[*Coordinator], error) {
	m := fsm.NewMachine[*Coordinator]()
	for id := PhaseIntro; id <= PhaseDone; id++ {
		m.AddState(id, phaseNames[id])
	}

	link := func(from, to Phase, et event.EventType) {
		m.AddTransition(from, fsm.Transition[*Coordinator]{TargetID: to, Event: et})
	}
	link(PhaseIntro, PhaseTryExpand, event.EventIntroComplete)
	link(PhaseTryExpand, PhaseFindCrosswalkButton, event.EventExpandAttempted)
	link(PhaseFindCrosswalkButton, PhaseWaitForGreen, event.EventInstructionsComplete)
	link(PhaseWaitForGreen, PhaseCrossStreet, event.EventCrosswalkPressed)
	link(PhaseCrossStreet, PhaseDone, event.EventReachedOtherSide)

	m.OnEnter(PhaseTryExpand, (*Coordinator).enterTryExpand)
	m.OnEnter(PhaseFindCrosswalkButton, (*Coordinator).enterFindButton)
	m.OnEnter(PhaseWaitForGreen, (*Coordinator).enterWaitForGreen)
	m.OnEnter(PhaseCrossStreet, (*Coordinator).enterCrossStreet)
	m.OnEnter(PhaseDone, (*Coordinator).enterDone)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// SetEncounter wires the pedestrian event started on CrossStreet
func (c *Coordinator) SetEncounter(e Encounter) {
	c.encounter = e
}

// OnExit registers a callback run once when the player leaves through the exit door
func (c *Coordinator) OnExit(fn func()) {
	c.onExit = append(c.onExit, fn)
}

// Session returns the run identity
func (c *Coordinator) Session() Session {
	return c.session
}

// Phase returns the active phase
func (c *Coordinator) Phase() Phase {
	return c.machine.Current()
}

// PhaseName returns the active phase's name
func (c *Coordinator) PhaseName() string {
	return c.machine.CurrentName()
}

// History returns every phase entered, starting with Intro
func (c *Coordinator) History() []string {
	ids := c.machine.History()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.machine.StateName(id)
	}
	return out
}

// InTryExpand reports whether the gesture hint should be shown
func (c *Coordinator) InTryExpand() bool {
	return c.machine.Current() == PhaseTryExpand
}

// PendingExpand reports a latched gesture attempt
func (c *Coordinator) PendingExpand() bool { return c.pendingExpand }

// PendingButton reports a latched button press
func (c *Coordinator) PendingButton() bool { return c.pendingButton }

// Exited reports whether the exit door was used
func (c *Coordinator) Exited() bool { return c.exited }

// OnEnteredScene starts the intro narration; only the first call counts
func (c *Coordinator) OnEnteredScene() {
	if c.sceneEntered {
		return
	}
	c.sceneEntered = true
	c.notice("scene entered")

	var intro *Cue
	c.run("intro", engine.NewSequence(
		engine.Do(func() { intro = c.cues.PlayCue(c.lines.Intro) }),
		engine.At(func() time.Duration { return intro.EndTime() }),
		engine.Wait(c.pauses.Intro),
		engine.Do(func() { c.machine.HandleEvent(c, event.EventIntroComplete) }),
	))
}

// RequestExpandAttempt advances TryExpand, or latches the attempt during Intro
func (c *Coordinator) RequestExpandAttempt() {
	switch c.Phase() {
	case PhaseIntro:
		if !c.pendingExpand {
			c.pendingExpand = true
			c.statLatched.Add(1)
			log.Printf("[SCENARIO] Expand attempt latched during Intro")
		}
	case PhaseTryExpand:
		c.machine.HandleEvent(c, event.EventExpandAttempted)
	}
}

// OnCrosswalkButtonPressed starts CrossStreet, or latches the press before WaitForGreen
func (c *Coordinator) OnCrosswalkButtonPressed() {
	switch c.Phase() {
	case PhaseIntro, PhaseTryExpand, PhaseFindCrosswalkButton:
		if !c.pendingButton {
			c.pendingButton = true
			c.statLatched.Add(1)
			log.Printf("[SCENARIO] Button press latched during %s", c.PhaseName())
		}
	case PhaseWaitForGreen:
		c.machine.HandleEvent(c, event.EventCrosswalkPressed)
	}
}

// OnReachedOtherSide finishes the crossing; ignored outside CrossStreet
func (c *Coordinator) OnReachedOtherSide() {
	if c.Phase() != PhaseCrossStreet {
		return
	}
	c.machine.HandleEvent(c, event.EventReachedOtherSide)
}

// OnExitDoor leaves the scene once the crossing is done
func (c *Coordinator) OnExitDoor() {
	if c.Phase() != PhaseDone || c.exited {
		return
	}
	c.exited = true
	c.notice("exited through the door")
	for _, fn := range c.onExit {
		fn()
	}
}

func (c *Coordinator) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSceneEntered:
		c.OnEnteredScene()
	case event.EventExpandAttempted:
		c.RequestExpandAttempt()
	case event.EventCrosswalkPressed:
		c.OnCrosswalkButtonPressed()
	case event.EventReachedOtherSide:
		c.OnReachedOtherSide()
	case event.EventSignalChanged:
		if p, ok := ev.Payload.(*event.SignalChangedPayload); ok {
			c.notice("signal " + p.State)
		}
	case event.EventCrossingComplete:
		c.notice("crossing cycle complete")
	case event.EventPedestrianEncounter:
		c.notice("pedestrian encounter complete")
	}
}

func (c *Coordinator) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSceneEntered,
		event.EventExpandAttempted,
		event.EventCrosswalkPressed,
		event.EventReachedOtherSide,
		event.EventSignalChanged,
		event.EventCrossingComplete,
		event.EventPedestrianEncounter,
	}
}

func (c *Coordinator) enterTryExpand() {
	if c.pendingExpand {
		c.pendingExpand = false
		// Deferred by the machine until this transition completes
		c.machine.HandleEvent(c, event.EventExpandAttempted)
		return
	}
	c.cues.PlayCue(c.lines.TryExpand)
}

func (c *Coordinator) enterFindButton() {
	var after, find *Cue
	c.run("find-button", engine.NewSequence(
		engine.Do(func() { after = c.cues.PlayCue(c.lines.AfterTry) }),
		engine.At(func() time.Duration { return after.EndTime() }),
		engine.Wait(c.pauses.AfterTry),
		engine.Do(func() { find = c.cues.PlayCue(c.lines.FindButton) }),
		engine.At(func() time.Duration { return find.EndTime() }),
		engine.Do(func() { c.machine.HandleEvent(c, event.EventInstructionsComplete) }),
	))
}

func (c *Coordinator) enterWaitForGreen() {
	if c.pendingButton {
		c.pendingButton = false
		c.machine.HandleEvent(c, event.EventCrosswalkPressed)
	}
}

func (c *Coordinator) enterCrossStreet() {
	if c.encounter == nil {
		log.Printf("[SCENARIO] No pedestrian event wired, crossing continues without it")
		return
	}
	c.encounter.Start()
}

func (c *Coordinator) enterDone() {
	var recap *Cue
	c.run("outro", engine.NewSequence(
		engine.Do(func() {
			c.cues.PlayCue(c.lines.Info)
			recap = c.cues.PlayCue(c.lines.Recap)
		}),
		engine.At(func() time.Duration { return recap.EndTime() }),
		engine.Wait(c.pauses.Outro),
		engine.Do(func() { c.cues.PlayCue(c.lines.ExitDoor) }),
	))
}

func (c *Coordinator) run(name string, seq *engine.Sequence) {
	c.sequences = append(c.sequences, c.world.Scheduler.Start("scenario-"+name, seq))
}

// Stop cancels every narration sequence still running
func (c *Coordinator) Stop() {
	for _, h := range c.sequences {
		h.Cancel()
	}
	c.sequences = nil
}

func (c *Coordinator) phaseChanged(p Phase) {
	name := c.machine.StateName(p)
	c.statPhase.Store(name)
	c.narrate(NotePhase, name)
}

func (c *Coordinator) notice(text string) {
	c.narrate(NoteNotice, text)
}

func (c *Coordinator) narrate(kind NoteKind, text string) {
	if c.narrator == nil {
		return
	}
	c.narrator.Narrate(Note{
		Session: c.session.ID,
		At:      c.world.Now(),
		Kind:    kind,
		Text:    text,
	})
}
