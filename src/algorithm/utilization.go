package algorithm

import (
	"math"

	"liftsim/src/types"
)

// UtilizationTarget steers every car toward a target occupancy ratio rather
// than a maximal or minimal load. Neither an empty nor a packed elevator
// moves people efficiently.
type UtilizationTarget struct {
	Target float64
}

func NewUtilizationTarget() *UtilizationTarget {
	return &UtilizationTarget{Target: 0.7}
}

func (a *UtilizationTarget) Name() string { return "utilization" }

func (a *UtilizationTarget) Description() string {
	return "Keeps elevators near a target occupancy ratio (default 70%)."
}

func (a *UtilizationTarget) AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int {
	best := -1
	bestDev := 0.0
	bestDist := 0.0
	for _, e := range building.Elevators {
		if !Serviceable(e) {
			continue
		}
		// Occupancy after taking this passenger.
		ratio := float64(e.PassengerCount+1) / float64(e.Capacity)
		dev := math.Abs(ratio - a.Target)
		d := Distance(e, floor)
		if best < 0 || dev < bestDev || (dev == bestDev && d < bestDist) {
			best = e.ID
			bestDev = dev
			bestDist = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func (a *UtilizationTarget) DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int {
	if len(elevator.FloorsToVisit) == 0 {
		return elevator.Floor
	}
	ratio := 0.0
	if elevator.Capacity > 0 {
		ratio = float64(elevator.PassengerCount) / float64(elevator.Capacity)
	}

	var dropOffs, pickups []int
	for _, f := range elevator.FloorsToVisit {
		isDrop := false
		for _, d := range elevator.Destinations {
			if d == f {
				isDrop = true
				break
			}
		}
		if isDrop {
			dropOffs = append(dropOffs, f)
		} else {
			pickups = append(pickups, f)
		}
	}

	// Above target: unload first. Below target: collect first.
	if ratio >= a.Target && len(dropOffs) > 0 {
		return nearestOf(elevator, dropOffs)
	}
	if ratio < a.Target && len(pickups) > 0 {
		return nearestOf(elevator, pickups)
	}
	return nearestOf(elevator, elevator.FloorsToVisit)
}
