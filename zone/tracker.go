package zone

import (
	"time"

	"github.com/lixenwraith/crosswalk/parameter"
)

// Listener receives overlap callbacks for a watched trigger volume
type Listener interface {
	OnZoneEnter(other *Collider)
	OnZoneStay(other *Collider)
	OnZoneExit(other *Collider)
}

// volume is a trigger collider with a listener and its current overlap set
type volume struct {
	collider *Collider
	listener Listener
	inside   map[*Collider]struct{}
}

// Tracker computes enter/stay/exit transitions once per frame per overlapping pair
//
// A collider that is destroyed or disabled while overlapping is dropped without an
// Exit callback; listeners that keep per-collider state must sweep for dead entries
type Tracker struct {
	colliders []*Collider
	volumes   []*volume
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		colliders: make([]*Collider, 0, 32),
		volumes:   make([]*volume, 0, 16),
	}
}

// Add registers a collider for overlap tests
func (t *Tracker) Add(c *Collider) {
	for _, existing := range t.colliders {
		if existing == c {
			return
		}
	}
	t.colliders = append(t.colliders, c)
}

// Watch registers a trigger volume and its listener; the collider is added if needed
func (t *Tracker) Watch(c *Collider, l Listener) {
	t.Add(c)
	t.volumes = append(t.volumes, &volume{
		collider: c,
		listener: l,
		inside:   make(map[*Collider]struct{}),
	})
}

// Colliders returns the registered colliders
func (t *Tracker) Colliders() []*Collider {
	return t.colliders
}

func (t *Tracker) Name() string { return "zones" }

func (t *Tracker) Priority() int { return parameter.PriorityZones }

// Update dispatches overlap callbacks for this frame
func (t *Tracker) Update(time.Duration) {
	t.prune()

	for _, v := range t.volumes {
		if !v.collider.Alive() {
			// Disabled volume forgets its overlaps silently
			clear(v.inside)
			continue
		}

		// Dead colliders vanish without Exit
		for c := range v.inside {
			if !c.Alive() {
				delete(v.inside, c)
			}
		}

		for _, c := range t.colliders {
			if c == v.collider || !c.Alive() {
				continue
			}
			_, was := v.inside[c]
			now := v.collider.Overlaps(c)

			switch {
			case now && !was:
				v.inside[c] = struct{}{}
				v.listener.OnZoneEnter(c)
			case now && was:
				v.listener.OnZoneStay(c)
			case !now && was:
				delete(v.inside, c)
				v.listener.OnZoneExit(c)
			}

			// Listener may have disabled its own volume
			if !v.collider.Alive() {
				break
			}
		}
	}
}

// prune drops destroyed colliders and volumes from the registry
func (t *Tracker) prune() {
	live := t.colliders[:0]
	for _, c := range t.colliders {
		if !c.destroyed {
			live = append(live, c)
		}
	}
	for i := len(live); i < len(t.colliders); i++ {
		t.colliders[i] = nil
	}
	t.colliders = live

	vols := t.volumes[:0]
	for _, v := range t.volumes {
		if !v.collider.destroyed {
			vols = append(vols, v)
		}
	}
	for i := len(vols); i < len(t.volumes); i++ {
		t.volumes[i] = nil
	}
	t.volumes = vols
}
