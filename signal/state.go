package signal

// State is the combined vehicle/pedestrian signal aspect
type State int

const (
	CarsGreenPedsRed State = iota
	CarsRedPedsGreen
)

func (s State) String() string {
	switch s {
	case CarsGreenPedsRed:
		return "CarsGreen_PedsRed"
	case CarsRedPedsGreen:
		return "CarsRed_PedsGreen"
	}
	return "Unknown"
}

// Cover is a visual mask over one lamp of a pedestrian signal head
type Cover struct {
	Name   string
	Active bool
}

// Head is one pedestrian signal head with a cover over each lamp
// An active cover hides its lamp, so exactly one lamp shows at a time
type Head struct {
	Red   Cover
	Green Cover
}

// Apply covers the lamp that must not show for the given state
func (h *Head) Apply(s State) {
	pedsGreen := s == CarsRedPedsGreen
	h.Red.Active = pedsGreen
	h.Green.Active = !pedsGreen
}

// Showing returns the lamp currently visible
func (h *Head) Showing() string {
	switch {
	case h.Green.Active && !h.Red.Active:
		return "red"
	case h.Red.Active && !h.Green.Active:
		return "green"
	}
	return "dark"
}
