package parameter

// Tunnel vision drive values (normalized screen radius)
const (
	TunnelBaseRadius     = 0.18
	TunnelMinRadius      = 0.05
	TunnelMaxExtraRadius = 0.08
	TunnelExpandSpeed    = 12.0
	TunnelSnapTime       = 0.03
	TunnelStrainRise     = 10.0
	TunnelStrainFall     = 18.0
	TunnelSnapDecay      = 35.0
	TunnelExpandResist   = 3.0 // Exponential resistance of the stretch response

	// Gesture thresholds (meters)
	GestureMaxStretch = 0.25
	GestureMinStretch = 0.02 // Normalized stretch that counts as an attempt
)
