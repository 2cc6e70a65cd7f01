// Snapshot schema passed to dispatch algorithms. All fields are value copies
// of core state; an algorithm can never reach a live collection through them.
package types

// PersonData describes one waiting passenger to an algorithm.
type PersonData struct {
	Origin       int
	Destination  int
	WaitTime     float64 // seconds waited so far
	AssignedElev int     // -1 while unassigned
}

// ElevatorData describes one elevator to an algorithm.
type ElevatorData struct {
	ID             int
	Floor          int
	Position       float64 // continuous position in floor units
	Target         int
	HasTarget      bool
	Behaviour      ElevBehaviour
	Direction      Direction // current motion: -1, 0 or +1
	LastDirection  Direction // most recent non-zero travel direction
	PassengerCount int
	Capacity       int
	FloorsToVisit  []int
	Destinations   []int // onboard passenger destinations, one entry per passenger
	InRepair       bool
}

// ElevatorWaitStats breaks a floor's wait statistics down by assigned elevator.
type ElevatorWaitStats struct {
	Elevator int
	Count    int
	MaxWait  float64
	AvgWait  float64
}

// FloorStats aggregates the waiting passengers on one floor.
type FloorStats struct {
	Floor         int
	WaitingCount  int
	ButtonPressed bool
	MaxWait       float64
	AvgWait       float64
	PerElevator   []ElevatorWaitStats
}

// BuildingData is the full read-only view handed to an algorithm per decision.
type BuildingData struct {
	NumFloors int
	Elevators []ElevatorData
	Floors    []FloorStats
}

// SimStats is the statistics surface pulled by the UI layer.
type SimStats struct {
	WarmingUp      bool
	WarmupLeft     float64
	AvgWaitTime    float64
	AvgTransitTime float64
	AvgServiceTime float64
	ServedCount    int
	GiveUpCount    int
	Score          float64
}
