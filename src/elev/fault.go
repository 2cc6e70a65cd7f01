// Fault detection for the elevator state machine. A buggy or indecisive
// routing strategy must never wedge the simulation; anything that stops
// making progress is converted into a time-bounded REPAIR.
package elev

import (
	"log/slog"
	"math"

	"liftsim/src/config"
	"liftsim/src/passenger"
	"liftsim/src/types"
)

// FaultReport is the diagnostic record kept when an elevator enters REPAIR.
type FaultReport struct {
	Elevator    int
	Reason      string
	Behaviour   types.ElevBehaviour
	StateTime   float64
	Position    float64
	Route       []int        // planned stops at the time of the fault
	Transitions []Transition // recent state changes, oldest first
}

// Transition records one behaviour change and how long the previous
// behaviour had lasted.
type Transition struct {
	From     types.ElevBehaviour
	To       types.ElevBehaviour
	Duration float64
}

func (e *Elevator) recordSample() {
	e.history = append(e.history, sample{pos: e.Position, behaviour: e.Behaviour})
	if len(e.history) > config.HistoryLength {
		e.history = e.history[1:]
	}
}

func (e *Elevator) recordTransition(to types.ElevBehaviour) {
	e.transitions = append(e.transitions, Transition{
		From:     e.Behaviour,
		To:       to,
		Duration: e.stateTime,
	})
	if len(e.transitions) > config.HistoryLength {
		e.transitions = e.transitions[1:]
	}
}

// detectFault runs the per-tick checks. Nil means healthy. Checks are
// suppressed during the grace period following any state change.
func (e *Elevator) detectFault() *FaultReport {
	if e.graceLeft > 0 {
		return nil
	}

	switch e.Behaviour {
	case types.MovingUp:
		if e.Position >= float64(e.NumFloors-1) {
			return e.fault("moving up at top floor")
		}
	case types.MovingDown:
		if e.Position <= 0 {
			return e.fault("moving down at ground floor")
		}
	}

	if e.Behaviour == types.MovingUp || e.Behaviour == types.MovingDown {
		if e.stateTime > config.MovingStuckTimeout && e.historyStalled() {
			return e.fault("not making progress")
		}
	}

	if e.Behaviour == types.Loading {
		if e.stateTime > config.LoadingDuration*config.LoadingStuckFactor {
			return e.fault("door stuck open")
		}
		if !e.warned && e.stateTime > config.LoadingDuration*config.LoadingWarnFactor {
			e.warned = true
			slog.Warn("Elevator loading far beyond expected duration",
				"elevator", e.ID, "floor", e.Floor, "stateTime", e.stateTime)
		}
	}

	if e.Behaviour == types.Idle && !e.warned && e.stateTime > config.IdleWarnTimeout {
		e.warned = true
		slog.Warn("Elevator idle for a long time",
			"elevator", e.ID, "floor", e.Floor, "pendingStops", len(e.floorsToVisit))
	}

	return nil
}

// historyStalled reports whether the rolling position history shows no
// measurable movement. The history rules out reacting to one noisy sample.
func (e *Elevator) historyStalled() bool {
	if len(e.history) < config.HistoryLength {
		return false
	}
	lo, hi := e.history[0].pos, e.history[0].pos
	for _, s := range e.history {
		if s.behaviour != e.Behaviour {
			return false
		}
		lo = math.Min(lo, s.pos)
		hi = math.Max(hi, s.pos)
	}
	return hi-lo < 1e-9
}

func (e *Elevator) fault(reason string) *FaultReport {
	transitions := make([]Transition, len(e.transitions))
	copy(transitions, e.transitions)
	return &FaultReport{
		Elevator:    e.ID,
		Reason:      reason,
		Behaviour:   e.Behaviour,
		StateTime:   e.stateTime,
		Position:    e.Position,
		Route:       e.FloorsToVisit(),
		Transitions: transitions,
	}
}

// enterRepair snaps the car to the nearest floor, evacuates everyone onboard
// and clears the route. The evacuated passengers are returned so the
// orchestrator can put them back in a floor queue.
func (e *Elevator) enterRepair(fault *FaultReport) []*passenger.Passenger {
	e.Floor = int(math.Round(e.Position))
	if e.Floor < 0 {
		e.Floor = 0
	}
	if e.Floor > e.NumFloors-1 {
		e.Floor = e.NumFloors - 1
	}
	e.Position = float64(e.Floor)
	e.hasTarget = false
	e.floorsToVisit = make(map[int]struct{})
	e.history = nil

	evacuated := e.passengers
	e.passengers = nil
	for _, p := range evacuated {
		p.Evacuate(e.Floor)
	}

	e.LastFault = fault
	e.repairLeft = config.RepairDuration
	e.setBehaviour(types.Repair)
	slog.Error("Elevator fault, entering repair",
		"elevator", e.ID,
		"reason", fault.Reason,
		"behaviour", fault.Behaviour,
		"stateTime", fault.StateTime,
		"position", fault.Position,
		"route", fault.Route,
		"evacuated", len(evacuated))
	return evacuated
}
