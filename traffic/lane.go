package traffic

import "github.com/lixenwraith/crosswalk/vmath"

// Lane is a straight one-way path vehicles ride along
type Lane struct {
	Name    string
	Start   vmath.Vec3F
	End     vmath.Vec3F
	length  float64
	forward vmath.Vec3F
}

// NewLane creates a lane from start to end
func NewLane(name string, start, end vmath.Vec3F) *Lane {
	return &Lane{
		Name:    name,
		Start:   start,
		End:     end,
		length:  vmath.V3FDist(start, end),
		forward: vmath.V3FNormalize(vmath.V3FSub(end, start)),
	}
}

// Length returns the path length in meters
func (l *Lane) Length() float64 { return l.length }

// Forward returns the unit travel direction
func (l *Lane) Forward() vmath.Vec3F { return l.forward }

// At returns the point at distance d along the lane
func (l *Lane) At(d float64) vmath.Vec3F {
	return vmath.V3FAdd(l.Start, vmath.V3FScale(l.forward, d))
}

// Project returns the distance along the lane of the point closest to p
func (l *Lane) Project(p vmath.Vec3F) float64 {
	return vmath.V3FDot(vmath.V3FSub(p, l.Start), l.forward)
}
