package algorithm

import (
	"testing"

	"liftsim/src/types"
)

func twoElevatorBuilding() types.BuildingData {
	return types.BuildingData{
		NumFloors: 6,
		Elevators: []types.ElevatorData{
			{ID: 0, Floor: 1, Position: 1, Capacity: 4, PassengerCount: 4},
			{ID: 1, Floor: 5, Position: 5, Capacity: 4, PassengerCount: 1},
		},
		Floors: make([]types.FloorStats, 6),
	}
}

func TestFullElevatorNeverAssigned(t *testing.T) {
	building := twoElevatorBuilding()
	person := types.PersonData{Origin: 1, Destination: 3, AssignedElev: -1}

	for _, alg := range DefaultRegistry().algorithms {
		// Elevator 0 is at capacity and right next to the caller; every
		// strategy must still pick elevator 1.
		if got := alg.AssignElevatorToPerson(person, 1, building); got != 1 {
			t.Errorf("%s assigned full elevator: got %d, want 1", alg.Name(), got)
		}
	}
}

func TestRepairingElevatorNeverAssigned(t *testing.T) {
	building := twoElevatorBuilding()
	building.Elevators[0].PassengerCount = 0
	building.Elevators[0].InRepair = true
	building.Elevators[0].Behaviour = types.Repair
	person := types.PersonData{Origin: 1, Destination: 3, AssignedElev: -1}

	for _, alg := range DefaultRegistry().algorithms {
		if got := alg.AssignElevatorToPerson(person, 1, building); got != 1 {
			t.Errorf("%s assigned repairing elevator: got %d, want 1", alg.Name(), got)
		}
	}
}

func TestDecideNextFloorIsIdempotent(t *testing.T) {
	building := types.BuildingData{
		NumFloors: 8,
		Elevators: []types.ElevatorData{
			{ID: 0, Floor: 3, Position: 3, Capacity: 6, PassengerCount: 2,
				FloorsToVisit: []int{1, 5, 6}, Destinations: []int{5, 6},
				LastDirection: types.DirUp},
		},
		Floors: make([]types.FloorStats, 8),
	}

	for _, alg := range DefaultRegistry().algorithms {
		first := alg.DecideNextFloor(building.Elevators[0], building)
		second := alg.DecideNextFloor(building.Elevators[0], building)
		if first != second {
			t.Errorf("%s not idempotent: %d then %d", alg.Name(), first, second)
		}
		if first < 0 || first >= building.NumFloors {
			t.Errorf("%s returned out-of-range floor %d", alg.Name(), first)
		}
	}
}

func TestEmptyVisitSetMeansStayPut(t *testing.T) {
	building := types.BuildingData{
		NumFloors: 6,
		Elevators: []types.ElevatorData{{ID: 0, Floor: 4, Position: 4, Capacity: 4}},
		Floors:    make([]types.FloorStats, 6),
	}
	for _, alg := range DefaultRegistry().algorithms {
		if got := alg.DecideNextFloor(building.Elevators[0], building); got != 4 {
			t.Errorf("%s moved an elevator with no pending stops: got %d", alg.Name(), got)
		}
	}
}

func TestAscendingVisitsInNumericOrder(t *testing.T) {
	a := NewAscending()
	e := types.ElevatorData{ID: 0, Floor: 4, Position: 4, Capacity: 4, FloorsToVisit: []int{5, 2, 3}}
	b := types.BuildingData{NumFloors: 6, Elevators: []types.ElevatorData{e}, Floors: make([]types.FloorStats, 6)}
	if got := a.DecideNextFloor(e, b); got != 2 {
		t.Fatalf("ascending picked %d, want 2", got)
	}
}

func TestLoadBalancePicksLeastOccupied(t *testing.T) {
	a := NewLoadBalance()
	building := types.BuildingData{
		NumFloors: 6,
		Elevators: []types.ElevatorData{
			{ID: 0, Floor: 2, Position: 2, Capacity: 4, PassengerCount: 3},
			{ID: 1, Floor: 5, Position: 5, Capacity: 4, PassengerCount: 1},
			{ID: 2, Floor: 0, Position: 0, Capacity: 4, PassengerCount: 2},
		},
		Floors: make([]types.FloorStats, 6),
	}
	person := types.PersonData{Origin: 2, Destination: 4, AssignedElev: -1}
	if got := a.AssignElevatorToPerson(person, 2, building); got != 1 {
		t.Fatalf("load balance picked %d, want 1", got)
	}
}

func TestLoadBalancePrefersDropOffs(t *testing.T) {
	a := NewLoadBalance()
	e := types.ElevatorData{
		ID: 0, Floor: 3, Position: 3, Capacity: 4, PassengerCount: 1,
		FloorsToVisit: []int{2, 4},
		Destinations:  []int{4}, // floor 4 is a drop-off, floor 2 a pickup
	}
	b := types.BuildingData{NumFloors: 6, Elevators: []types.ElevatorData{e}, Floors: make([]types.FloorStats, 6)}
	if got := a.DecideNextFloor(e, b); got != 4 {
		t.Fatalf("load balance picked %d, want drop-off floor 4", got)
	}
}

func TestUtilizationSteersTowardTarget(t *testing.T) {
	a := NewUtilizationTarget()
	building := types.BuildingData{
		NumFloors: 6,
		Elevators: []types.ElevatorData{
			{ID: 0, Floor: 2, Position: 2, Capacity: 10, PassengerCount: 0}, // 10% after boarding
			{ID: 1, Floor: 5, Position: 5, Capacity: 10, PassengerCount: 6}, // 70% after boarding
		},
		Floors: make([]types.FloorStats, 6),
	}
	person := types.PersonData{Origin: 2, Destination: 4, AssignedElev: -1}
	if got := a.AssignElevatorToPerson(person, 2, building); got != 1 {
		t.Fatalf("utilization picked %d, want 1", got)
	}
}

func TestWaitWeightedFavorsLongWaits(t *testing.T) {
	a := NewWaitWeighted()
	floors := make([]types.FloorStats, 8)
	floors[6] = types.FloorStats{Floor: 6, WaitingCount: 3, MaxWait: 80, AvgWait: 70, ButtonPressed: true}
	floors[1] = types.FloorStats{Floor: 1, WaitingCount: 1, MaxWait: 2, AvgWait: 2, ButtonPressed: true}
	e := types.ElevatorData{
		ID: 0, Floor: 4, Position: 4, Capacity: 6, PassengerCount: 0,
		FloorsToVisit: []int{1, 6},
	}
	b := types.BuildingData{NumFloors: 8, Elevators: []types.ElevatorData{e}, Floors: floors}
	if got := a.DecideNextFloor(e, b); got != 6 {
		t.Fatalf("wait-weighted picked %d, want the starving floor 6", got)
	}
}

func TestRegistryHotSwap(t *testing.T) {
	r := DefaultRegistry()
	if r.Active().Name() != "ascending" {
		t.Fatalf("unexpected default algorithm %s", r.Active().Name())
	}
	if err := r.Select("scan"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if r.Active().Name() != "scan" {
		t.Fatalf("active algorithm not swapped")
	}
	if err := r.Select("nope"); err == nil {
		t.Fatalf("selecting unknown algorithm succeeded")
	}
	next := r.Next()
	if next.Name() == "scan" {
		t.Fatalf("Next did not advance")
	}
}
