package pedestrian

import (
	"time"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// Crowd spawns and moves walkers
type Crowd struct {
	world   *engine.World
	tracker *zone.Tracker
	walkers []*Walker
}

// NewCrowd creates an empty crowd
func NewCrowd(w *engine.World, tracker *zone.Tracker) *Crowd {
	return &Crowd{world: w, tracker: tracker}
}

// Spawn places a walker and registers its collider
func (c *Crowd) Spawn(pos vmath.Vec3F, yaw float64) *Walker {
	w := NewWalker(c.world.Entities.Next(), pos, yaw)
	if c.tracker != nil {
		c.tracker.Add(w.Collider)
	}
	c.walkers = append(c.walkers, w)
	return w
}

// Walkers returns the live walkers
func (c *Crowd) Walkers() []*Walker {
	return c.walkers
}

func (c *Crowd) Name() string  { return "pedestrians" }
func (c *Crowd) Priority() int { return parameter.PriorityPedestrian }

func (c *Crowd) Update(dt time.Duration) {
	live := c.walkers[:0]
	for _, w := range c.walkers {
		w.Update(dt)
		if w.Alive() {
			live = append(live, w)
		}
	}
	for i := len(live); i < len(c.walkers); i++ {
		c.walkers[i] = nil
	}
	c.walkers = live
}
