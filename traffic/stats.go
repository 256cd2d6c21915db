package traffic

import (
	"sync/atomic"

	"github.com/lixenwraith/crosswalk/status"
)

// Stats holds cached metric pointers; a nil *Stats counts nothing
type Stats struct {
	Holds     *atomic.Int64
	Releases  *atomic.Int64
	Purged    *atomic.Int64
	Honks     *atomic.Int64
	Spawned   *atomic.Int64
	Despawned *atomic.Int64
}

// NewStats registers traffic metrics
func NewStats(reg *status.Registry) *Stats {
	return &Stats{
		Holds:     reg.Ints.Get("traffic.holds"),
		Releases:  reg.Ints.Get("traffic.releases"),
		Purged:    reg.Ints.Get("spacing.purged"),
		Honks:     reg.Ints.Get("honk.count"),
		Spawned:   reg.Ints.Get("traffic.spawned"),
		Despawned: reg.Ints.Get("traffic.despawned"),
	}
}

func (s *Stats) hold(first bool) {
	if s != nil && first {
		s.Holds.Add(1)
	}
}

func (s *Stats) release(restored bool) {
	if s != nil && restored {
		s.Releases.Add(1)
	}
}

func (s *Stats) add(p func(*Stats) *atomic.Int64, n int) {
	if s != nil && n > 0 {
		p(s).Add(int64(n))
	}
}

func statPurged(s *Stats) *atomic.Int64    { return s.Purged }
func statHonks(s *Stats) *atomic.Int64     { return s.Honks }
func statSpawned(s *Stats) *atomic.Int64   { return s.Spawned }
func statDespawned(s *Stats) *atomic.Int64 { return s.Despawned }
