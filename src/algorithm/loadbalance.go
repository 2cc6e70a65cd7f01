package algorithm

import "liftsim/src/types"

// LoadBalance assigns calls to the least-occupied elevator and routes
// drop-offs before new pickups, keeping every car lightly loaded.
type LoadBalance struct{}

func NewLoadBalance() *LoadBalance { return &LoadBalance{} }

func (a *LoadBalance) Name() string { return "loadbalance" }

func (a *LoadBalance) Description() string {
	return "Assigns the least-occupied elevator; prioritizes drop-offs over pickups."
}

func (a *LoadBalance) AssignElevatorToPerson(person types.PersonData, floor int, building types.BuildingData) int {
	best := -1
	bestCount := 0
	bestDist := 0.0
	for _, e := range building.Elevators {
		if !Serviceable(e) {
			continue
		}
		d := Distance(e, floor)
		if best < 0 || e.PassengerCount < bestCount || (e.PassengerCount == bestCount && d < bestDist) {
			best = e.ID
			bestCount = e.PassengerCount
			bestDist = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func (a *LoadBalance) DecideNextFloor(elevator types.ElevatorData, building types.BuildingData) int {
	if len(elevator.FloorsToVisit) == 0 {
		return elevator.Floor
	}
	// Drop-offs first: any pending stop that is an onboard destination.
	var dropOffs []int
	for _, f := range elevator.FloorsToVisit {
		for _, d := range elevator.Destinations {
			if d == f {
				dropOffs = append(dropOffs, f)
				break
			}
		}
	}
	if len(dropOffs) > 0 {
		return nearestOf(elevator, dropOffs)
	}
	return nearestOf(elevator, elevator.FloorsToVisit)
}
