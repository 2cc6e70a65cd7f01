package algorithm

import "liftsim/src/types"

// Ascending is the trivial baseline: stops are visited in numeric order and
// calls go to the nearest assignable elevator.
type Ascending struct{}

func NewAscending() *Ascending { return &Ascending{} }

func (a *Ascending) Name() string { return "ascending" }

func (a *Ascending) Description() string {
	return "Visits pending floors in ascending numeric order; baseline strategy."
}

func (a *Ascending) AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int {
	if idx := NearestServiceable(building, floor); idx >= 0 {
		return idx
	}
	return 0
}

func (a *Ascending) DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int {
	if len(elevator.FloorsToVisit) == 0 {
		return elevator.Floor
	}
	lowest := elevator.FloorsToVisit[0]
	for _, f := range elevator.FloorsToVisit[1:] {
		if f < lowest {
			lowest = f
		}
	}
	return lowest
}
