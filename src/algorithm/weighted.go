package algorithm

import (
	"liftsim/src/types"
)

// WaitWeighted scores every candidate decision with a composite weight.
// Routing combines floor wait time, waiting headcount, directional
// continuity and drop-off urgency; assignment combines distance, remaining
// capacity, an idle bonus and directional match.
type WaitWeighted struct{}

func NewWaitWeighted() *WaitWeighted { return &WaitWeighted{} }

func (a *WaitWeighted) Name() string { return "waitweighted" }

func (a *WaitWeighted) Description() string {
	return "Scores floors by wait time, headcount, continuity and drop-off urgency."
}

const (
	assignDistanceWeight = 2.0
	assignCapacityWeight = 1.5
	assignIdleBonus      = 3.0
	assignDirectionBonus = 4.0

	routeWaitWeight       = 1.0
	routeCountWeight      = 2.5
	routeContinuityBonus  = 5.0
	routeDropOffPerPerson = 4.0
)

func (a *WaitWeighted) AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int {
	best := -1
	bestScore := 0.0
	for _, e := range building.Elevators {
		if !Serviceable(e) {
			continue
		}
		score := -Distance(e, floor) * assignDistanceWeight
		score += float64(e.Capacity-e.PassengerCount) * assignCapacityWeight
		if e.Behaviour == types.Idle && len(e.FloorsToVisit) == 0 {
			score += assignIdleBonus
		}
		if e.Direction != types.DirStop && e.Direction == types.DirectionTo(e.Floor, floor) {
			score += assignDirectionBonus
		}
		if best < 0 || score > bestScore {
			best = e.ID
			bestScore = score
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func (a *WaitWeighted) DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int {
	if len(elevator.FloorsToVisit) == 0 {
		return elevator.Floor
	}
	dir := elevator.Direction
	if dir == types.DirStop {
		dir = elevator.LastDirection
	}

	dropOffs := make(map[int]int)
	for _, d := range elevator.Destinations {
		dropOffs[d]++
	}
	// The fuller the car, the more urgent it is to unload.
	loadFactor := 1.0
	if elevator.Capacity > 0 {
		loadFactor += float64(elevator.PassengerCount) / float64(elevator.Capacity)
	}

	best := elevator.FloorsToVisit[0]
	bestScore := -1.0
	for _, f := range elevator.FloorsToVisit {
		score := 0.0
		if f < len(building.Floors) {
			stats := building.Floors[f]
			score += stats.MaxWait * routeWaitWeight
			score += float64(stats.WaitingCount) * routeCountWeight
		}
		if dir != types.DirStop && dir == types.DirectionTo(elevator.Floor, f) {
			score += routeContinuityBonus
		}
		score += float64(dropOffs[f]) * routeDropOffPerPerson * loadFactor
		if score > bestScore {
			best = f
			bestScore = score
		}
	}
	return best
}
