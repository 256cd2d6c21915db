package traffic

import (
	"log"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/zone"
)

// HornFactory builds the horn source for a new vehicle
type HornFactory func(v *Vehicle) audio.Source

// Route is a lane and the stop lines on it
type Route struct {
	Lane  *Lane
	Chain *Chain
}

// Fleet moves vehicles, spawns them at lane starts and despawns them at lane ends
type Fleet struct {
	world   *engine.World
	tracker *zone.Tracker
	stats   *Stats
	routes  []Route
	horn    HornFactory

	Cruise        float64
	SpawnInterval time.Duration

	vehicles []*Vehicle
	spawner  *engine.Handle
}

// NewFleet creates an empty fleet
func NewFleet(w *engine.World, tracker *zone.Tracker, stats *Stats, horn HornFactory, routes ...Route) *Fleet {
	return &Fleet{
		world:         w,
		tracker:       tracker,
		stats:         stats,
		routes:        routes,
		horn:          horn,
		Cruise:        parameter.VehicleCruiseSpeed,
		SpawnInterval: parameter.SpawnInterval,
		vehicles:      make([]*Vehicle, 0, 16),
	}
}

// Vehicles returns the live vehicles
func (f *Fleet) Vehicles() []*Vehicle {
	return f.vehicles
}

// Routes returns the lanes the fleet drives
func (f *Fleet) Routes() []Route {
	return f.routes
}

// Sweeper returns the spacing sweep system for this fleet
func (f *Fleet) Sweeper() *Sweeper {
	return &Sweeper{fleet: f}
}

// Spawn places a vehicle at distance d on a route's lane with a spacing sensor
func (f *Fleet) Spawn(r Route, d float64) *Vehicle {
	v := NewVehicle(f.world.Entities.Next(), r.Lane, d, f.Cruise)
	s := NewSpacingSensor(v, f.stats)
	if f.horn != nil {
		v.Horn = f.horn(v)
	}
	f.tracker.Add(v.Body)
	f.tracker.Watch(s.Collider, s)
	f.vehicles = append(f.vehicles, v)
	f.stats.add(statSpawned, 1)
	return v
}

// Despawn removes a vehicle and clears every bookkeeping entry that references it
func (f *Fleet) Despawn(v *Vehicle) {
	if !v.Alive() {
		return
	}
	for _, r := range f.routes {
		if r.Chain != nil {
			r.Chain.Forget(v)
		}
	}
	v.Despawn()
	f.stats.add(statDespawned, 1)
}

// StartSpawning begins periodic spawning; a running spawner is left alone
func (f *Fleet) StartSpawning() {
	if f.spawner.Running() || f.SpawnInterval <= 0 {
		return
	}
	f.spawner = f.world.Scheduler.Start("spawner", engine.NewEvery(
		func() time.Duration { return f.SpawnInterval },
		f.spawnAll,
	))
	log.Printf("[TRAFFIC] Spawning every %v on %d lanes", f.SpawnInterval, len(f.routes))
}

// StopSpawning halts the spawner
func (f *Fleet) StopSpawning() {
	f.spawner.Cancel()
	f.spawner = nil
}

func (f *Fleet) spawnAll() {
	for _, r := range f.routes {
		if f.entryClear(r.Lane) {
			f.Spawn(r, 0)
		}
	}
}

// entryClear reports whether no vehicle is near the lane start
func (f *Fleet) entryClear(l *Lane) bool {
	for _, v := range f.vehicles {
		if v.Alive() && v.Lane == l && v.Distance < parameter.SpawnClearDistance {
			return false
		}
	}
	return true
}

func (f *Fleet) Name() string  { return "traffic" }
func (f *Fleet) Priority() int { return parameter.PriorityTraffic }

// Update advances vehicles and despawns those past the lane end
func (f *Fleet) Update(dt time.Duration) {
	for _, v := range f.vehicles {
		v.Advance(dt)
		if v.Distance >= v.Lane.Length() {
			f.Despawn(v)
		}
	}

	live := f.vehicles[:0]
	for _, v := range f.vehicles {
		if v.Alive() {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(f.vehicles); i++ {
		f.vehicles[i] = nil
	}
	f.vehicles = live
}
