package street

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/config"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/pedestrian"
	"github.com/lixenwraith/crosswalk/scenario"
	"github.com/lixenwraith/crosswalk/signal"
	"github.com/lixenwraith/crosswalk/traffic"
	"github.com/lixenwraith/crosswalk/vision"
	"github.com/lixenwraith/crosswalk/zone"
)

// SourceFactory creates the named audio source for one emitter in the scene
type SourceFactory func(name string) audio.Source

// Options are the build inputs that do not come from Config
type Options struct {
	Layout   Layout
	Sources  SourceFactory     // nil plays nothing
	Narrator scenario.Narrator // Receives notes in addition to the scene transcript
	Session  scenario.Session

	// AutoRequest enables the waiting area that requests a crossing on entry
	AutoRequest bool
}

// Scene is the assembled street with every component wired
type Scene struct {
	World   *engine.World
	Config  config.Config
	Layout  Layout
	Session scenario.Session
	Bank    *audio.Bank

	Tracker  *zone.Tracker
	Stats    *traffic.Stats
	Near     *traffic.Lane
	Opposite *traffic.Lane
	Chains   []*traffic.Chain
	Fleet    *traffic.Fleet
	Honker   *traffic.Honker

	Signal   *signal.Controller
	Crossing *signal.CrossingZone
	Button   *signal.Button
	Waiting  *signal.ZoneRequest

	Player    *Player
	Crowd     *pedestrian.Crowd
	Encounter *pedestrian.CrossEvent

	Tunnel *vision.Tunnel
	Vision *vision.Driver

	Cues       *scenario.CueQueue
	Scenario   *scenario.Coordinator
	Transcript *scenario.Transcript
	StartArea  *scenario.Trigger
	FarCurb    *scenario.Trigger
	ExitDoor   *scenario.Trigger
}

// Build assembles the scene; nothing moves until Start
func Build(cfg config.Config, opts Options) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout()
	}
	if opts.Session.ID == "" {
		opts.Session = scenario.NewSession()
	}
	source := opts.Sources
	if source == nil {
		source = func(string) audio.Source { return audio.Null{} }
	}

	w := engine.NewWorld(cfg.Seed)
	s := &Scene{
		World:   w,
		Config:  cfg,
		Layout:  opts.Layout,
		Session: opts.Session,
		Bank:    audio.NewBank(),
		Tracker: zone.NewTracker(),
		Stats:   traffic.NewStats(w.Status),
	}
	if _, err := s.Bank.LoadDir(cfg.AudioDir); err != nil {
		return nil, fmt.Errorf("scene audio: %w", err)
	}
	w.Status.Strings.Get("scenario.session").Store(s.Session.Short())

	s.buildSignal(source)
	s.buildTraffic(source)
	s.buildPlayer()
	s.buildPedestrian(source)
	if err := s.buildScenario(source, opts); err != nil {
		return nil, err
	}
	s.Waiting.Collider.SetEnabled(opts.AutoRequest)

	// Signal reads precede traffic decisions within a frame
	w.AddSystem(s.Signal)
	w.AddSystem(s.Fleet)
	w.AddSystem(s.Tracker)
	w.AddSystem(s.Fleet.Sweeper())
	w.AddSystem(s.Crowd)
	w.AddSystem(s.Vision)
	w.AddSystem(s.Cues)

	log.Printf("[STREET] Scene %s built: %d lanes, %d stop lines per lane", s.Session.Short(), len(s.Chains), cfg.CheckpointCount)
	return s, nil
}

func (s *Scene) buildSignal(source SourceFactory) {
	s.Signal = signal.NewController(s.World, source("signal"), signal.Clips{
		Wait:  s.Bank.Clip(audio.CueWait),
		Cross: s.Bank.Clip(audio.CueCross),
		Beep:  s.Bank.Clip(audio.CueBeep),
	}, signal.Timing{
		Wait:      s.Config.SignalWait,
		CrossHold: s.Config.SignalCrossHold,
		PedsGreen: s.Config.SignalPedsGreen,
	})

	s.Crossing = signal.NewCrossingZone(s.Layout.Crossing, s.Layout.CrossingHalf)
	s.Signal.SetCrossing(s.Crossing)
	s.Tracker.Watch(s.Crossing.Collider, s.Crossing)
}

func (s *Scene) buildTraffic(source SourceFactory) {
	start, end := s.Layout.NearLane()
	s.Near = traffic.NewLane("near", start, end)
	start, end = s.Layout.OppositeLane()
	s.Opposite = traffic.NewLane("opposite", start, end)

	routes := make([]traffic.Route, 0, 2)
	for _, lane := range []*traffic.Lane{s.Near, s.Opposite} {
		front := lane.Project(s.Layout.Crossing) - s.Layout.StopLineGap()
		ch := traffic.NewChain(lane, front, s.Config.CheckpointCount, s.Config.CheckpointSpacing, s.Signal, s.Stats)
		ch.Watch(s.Tracker)
		s.Chains = append(s.Chains, ch)
		routes = append(routes, traffic.Route{Lane: lane, Chain: ch})
	}

	horn := func(v *traffic.Vehicle) audio.Source { return source(v.String() + "/horn") }
	s.Fleet = traffic.NewFleet(s.World, s.Tracker, s.Stats, horn, routes...)
	s.Fleet.Cruise = s.Config.CruiseSpeed
	s.Fleet.SpawnInterval = s.Config.SpawnInterval

	s.Tunnel = vision.NewTunnel(s.World.Status)
	s.Vision = vision.NewDriver(s.World, s.Tunnel)
	s.World.Router.Register(s.Vision)

	s.Honker = traffic.NewHonker(s.World, s.Signal, s.Chains, s.Bank.Horns, s.Tunnel, s.Stats)
	s.Honker.IntervalMin = s.Config.HonkIntervalMin
	s.Honker.IntervalMax = s.Config.HonkIntervalMax
	s.Honker.PitchMin = s.Config.HonkPitchMin
	s.Honker.PitchMax = s.Config.HonkPitchMax
	s.Signal.SetHonker(s.Honker)
}

func (s *Scene) buildPlayer() {
	s.Player = NewPlayer(s.World.Entities.Next(), s.Layout.PlayerStart, s.Layout.PlayerYaw)
	s.Tracker.Add(s.Player.Collider)
	s.World.Router.Register(s.Player)

	s.Button = signal.NewButton(s.World, s.Signal, s.Player, s.Layout.Button, parameter.ButtonReach)
	s.World.Router.Register(s.Button)

	s.Waiting = signal.NewZoneRequest(s.Signal, s.Layout.WaitingArea, s.Layout.WaitingHalf)
	s.Tracker.Watch(s.Waiting.Collider, s.Waiting)
}

func (s *Scene) buildPedestrian(source SourceFactory) {
	s.Crowd = pedestrian.NewCrowd(s.World, s.Tracker)
	exit := s.Layout.PedestrianExit
	s.Encounter = pedestrian.NewCrossEvent(s.World, s.Crowd, s.Player, pedestrian.Setup{
		Spawn:    s.Layout.PedestrianSpawn,
		SpawnYaw: s.Layout.PedestrianYaw,
		Exit:     &exit,
		Impact:   s.Bank.Clip(audio.CueImpact),
		Line:     s.Bank.Clip(audio.LinePedestrian),
		Effects:  source("effects"),
		VoiceFor: func(wk *pedestrian.Walker) audio.Source {
			return source(fmt.Sprintf("walker#%d/voice", wk.Entity))
		},
		Hazard: s.Tunnel,
	})
}

func (s *Scene) buildScenario(source SourceFactory, opts Options) error {
	s.Cues = scenario.NewCueQueue(s.World, source("narration"))
	s.Transcript = scenario.NewTranscript(parameter.TranscriptLimit)

	coord, err := scenario.NewCoordinator(s.World, s.Cues, scenario.Options{
		Lines: scenario.LinesFromBank(s.Bank),
		Pauses: scenario.Pauses{
			Intro:    s.Config.IntroPause,
			AfterTry: s.Config.AfterTryPause,
			Outro:    s.Config.OutroPause,
		},
		Narrator: scenario.Narrators{s.Transcript, opts.Narrator},
		Session:  s.Session,
	})
	if err != nil {
		return fmt.Errorf("scene scenario: %w", err)
	}
	s.Scenario = coord
	coord.SetEncounter(s.Encounter)
	coord.OnExit(s.leave)
	s.World.Router.Register(coord)
	s.Vision.SetPhase(coord)

	w := s.World
	s.StartArea = scenario.NewTrigger(scenario.TriggerStartScene, s.Layout.StartArea, s.Layout.StartHalf, func() {
		w.Emit(event.EventSceneEntered, nil)
	})
	s.FarCurb = scenario.NewTrigger(scenario.TriggerEndCrossing, s.Layout.FarCurb, s.Layout.FarCurbHalf, func() {
		w.Emit(event.EventReachedOtherSide, nil)
	})
	s.ExitDoor = scenario.NewTrigger(scenario.TriggerExitDoor, s.Layout.ExitDoor, s.Layout.ExitDoorHalf, coord.OnExitDoor)
	for _, t := range []*scenario.Trigger{s.StartArea, s.FarCurb, s.ExitDoor} {
		s.Tracker.Watch(t.Collider, t)
	}
	return nil
}

// Start begins traffic
func (s *Scene) Start() {
	s.Fleet.StartSpawning()
}

// Stop halts spawning, honking and narration sequences
func (s *Scene) Stop() {
	s.Fleet.StopSpawning()
	s.Honker.Stop()
	s.Scenario.Stop()
	s.Cues.Clear()
}

// Tick advances the scene by dt under the world lock
func (s *Scene) Tick(dt time.Duration) {
	s.World.RunSafe(func() { s.World.Tick(dt) })
}

// leave runs when the player walks out through the exit door
func (s *Scene) leave() {
	s.Tunnel.SetActive(false)
	s.Fleet.StopSpawning()
	log.Printf("[STREET] Player left the street at %v", s.World.Now())
}
