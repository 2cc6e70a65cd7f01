package types

// ElevBehaviour is the operating state of a single elevator.
type ElevBehaviour int

const (
	Idle ElevBehaviour = iota
	MovingUp
	MovingDown
	Loading
	Repair
)

func (b ElevBehaviour) String() string {
	switch b {
	case Idle:
		return "idle"
	case MovingUp:
		return "moving_up"
	case MovingDown:
		return "moving_down"
	case Loading:
		return "loading"
	case Repair:
		return "repair"
	default:
		return "undefined"
	}
}

// Direction of travel. Derived from behaviour while moving.
type Direction int

const (
	DirDown Direction = -1
	DirStop Direction = 0
	DirUp   Direction = 1
)

// DirectionTo gives the direction of travel between two floors.
func DirectionTo(from, to int) Direction {
	if to > from {
		return DirUp
	}
	if to < from {
		return DirDown
	}
	return DirStop
}
