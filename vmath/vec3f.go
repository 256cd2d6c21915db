package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in scene space (Y up, meters)
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns the euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FFlat drops the vertical component and renormalizes, for ground-plane headings
func V3FFlat(v Vec3F) Vec3F {
	return V3FNormalize(Vec3F{X: v.X, Z: v.Z})
}

// V3FMoveTowards steps from toward target by at most maxStep without overshooting
func V3FMoveTowards(from, target Vec3F, maxStep float64) Vec3F {
	delta := V3FSub(target, from)
	dist := V3FMag(delta)
	if dist <= maxStep || dist == 0 {
		return target
	}
	return V3FAdd(from, V3FScale(delta, maxStep/dist))
}

// YawForward returns the ground-plane forward vector for a yaw in degrees
// Yaw 0 faces +Z, 90 faces +X
func YawForward(yawDeg float64) Vec3F {
	rad := yawDeg * math.Pi / 180
	return Vec3F{X: math.Sin(rad), Z: math.Cos(rad)}
}

// YawRight returns the ground-plane right vector for a yaw in degrees
func YawRight(yawDeg float64) Vec3F {
	rad := yawDeg * math.Pi / 180
	return Vec3F{X: math.Cos(rad), Z: -math.Sin(rad)}
}

// V3FGround projects a point onto the ground plane
func V3FGround(v Vec3F) Vec3F {
	return Vec3F{X: v.X, Z: v.Z}
}
