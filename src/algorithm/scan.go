package algorithm

import "liftsim/src/types"

// Scan is the classic elevator sweep: keep serving stops in the current
// direction of travel until none remain, then reverse. Falls back to the
// nearest stop when the car has no travel history.
type Scan struct{}

func NewScan() *Scan { return &Scan{} }

func (a *Scan) Name() string { return "scan" }

func (a *Scan) Description() string {
	return "Continues in the current direction of travel until exhausted, then reverses."
}

func (a *Scan) AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int {
	// Prefer an elevator already sweeping toward the caller.
	best := -1
	bestDist := 0.0
	for _, e := range building.Elevators {
		if !Serviceable(e) {
			continue
		}
		if !sweepingToward(e, floor) {
			continue
		}
		d := Distance(e, floor)
		if best < 0 || d < bestDist {
			best = e.ID
			bestDist = d
		}
	}
	if best >= 0 {
		return best
	}
	if idx := NearestServiceable(building, floor); idx >= 0 {
		return idx
	}
	return 0
}

func (a *Scan) DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int {
	if len(elevator.FloorsToVisit) == 0 {
		return elevator.Floor
	}
	dir := elevator.Direction
	if dir == types.DirStop {
		dir = elevator.LastDirection
	}
	switch dir {
	case types.DirUp:
		if f, ok := lowestAbove(elevator); ok {
			return f
		}
		if f, ok := highestBelow(elevator); ok {
			return f
		}
	case types.DirDown:
		if f, ok := highestBelow(elevator); ok {
			return f
		}
		if f, ok := lowestAbove(elevator); ok {
			return f
		}
	}
	return nearestOf(elevator, elevator.FloorsToVisit)
}

func sweepingToward(e types.ElevatorData, floor int) bool {
	switch e.Direction {
	case types.DirUp:
		return floor >= e.Floor
	case types.DirDown:
		return floor <= e.Floor
	default:
		return true
	}
}

// lowestAbove is the first pending stop above the current floor on an upward
// sweep.
func lowestAbove(e types.ElevatorData) (int, bool) {
	best, found := 0, false
	for _, f := range e.FloorsToVisit {
		if f <= e.Floor {
			continue
		}
		if !found || f < best {
			best, found = f, true
		}
	}
	return best, found
}

func highestBelow(e types.ElevatorData) (int, bool) {
	best, found := 0, false
	for _, f := range e.FloorsToVisit {
		if f >= e.Floor {
			continue
		}
		if !found || f > best {
			best, found = f, true
		}
	}
	return best, found
}
