package elev

import (
	"math"
	"testing"

	"liftsim/src/config"
	"liftsim/src/passenger"
	"liftsim/src/types"
)

type stubRouter struct {
	next int
}

func (r stubRouter) DecideNextFloor(e *Elevator) int { return r.next }

func TestIdleStaysPutWithoutWork(t *testing.T) {
	e := New(0, 6, 4, 1.0)
	for i := 0; i < 20; i++ {
		e.Update(0.1, stubRouter{next: 0})
	}
	if e.Behaviour != types.Idle || e.Position != 0 {
		t.Fatalf("idle elevator moved: behaviour=%v position=%f", e.Behaviour, e.Position)
	}
}

func TestTravelReachesTargetAndLoads(t *testing.T) {
	e := New(0, 6, 4, 1.0)
	e.AddFloorToVisit(3)
	r := stubRouter{next: 3}

	e.Update(0.1, r)
	if e.Behaviour != types.MovingUp {
		t.Fatalf("expected moving up, got %v", e.Behaviour)
	}

	// Distance to target must strictly decrease every moving tick.
	prev := math.Abs(3 - e.Position)
	for i := 0; i < 100 && e.Behaviour == types.MovingUp; i++ {
		e.Update(0.1, r)
		d := math.Abs(3 - e.Position)
		if e.Behaviour == types.MovingUp && d >= prev {
			t.Fatalf("no progress toward target: %f >= %f", d, prev)
		}
		prev = d
	}
	if e.Behaviour != types.Loading {
		t.Fatalf("expected loading after travel, got %v", e.Behaviour)
	}
	if e.Floor != 3 || e.Position != 3 {
		t.Fatalf("did not snap to floor 3: floor=%d position=%f", e.Floor, e.Position)
	}
	if e.HasFloorToVisit(3) {
		t.Fatalf("reached floor still pending")
	}

	// Loading lasts its fixed duration and returns to idle.
	ticks := int(config.LoadingDuration/0.1) + 2
	for i := 0; i < ticks; i++ {
		e.Update(0.1, r)
	}
	if e.Behaviour != types.Idle {
		t.Fatalf("expected idle after loading, got %v", e.Behaviour)
	}
	if e.LastDirection() != types.DirUp {
		t.Fatalf("travel direction not retained, got %v", e.LastDirection())
	}
}

func TestLoadingUnloadsArrivals(t *testing.T) {
	e := New(0, 6, 4, 1.0)
	e.Floor = 2
	e.Position = 2
	p := passenger.New(2, 4, 60)
	if err := e.Board(p); err != nil {
		t.Fatalf("board failed: %v", err)
	}
	// The passenger's destination became a pending stop.
	if !e.HasFloorToVisit(4) {
		t.Fatalf("destination not queued")
	}

	e.floorsToVisit[2] = struct{}{}
	res := e.Update(0.1, stubRouter{next: 2})
	if !res.StartedLoading {
		t.Fatalf("expected loading at current floor")
	}
	if len(res.Served) != 0 {
		t.Fatalf("passenger served before reaching destination")
	}

	// Drive to the destination and check the unload.
	var served []*passenger.Passenger
	for i := 0; i < 400 && p.Phase != passenger.Served; i++ {
		r := e.Update(0.1, stubRouter{next: 4})
		served = append(served, r.Served...)
	}
	if p.Phase != passenger.Served {
		t.Fatalf("passenger never served, phase %v", p.Phase)
	}
	if len(served) != 1 || served[0] != p {
		t.Fatalf("served list did not report the passenger")
	}
	if e.PassengerCount() != 0 {
		t.Fatalf("passenger still onboard after arrival")
	}
}

func TestCapacityEnforced(t *testing.T) {
	e := New(0, 6, 2, 1.0)
	if err := e.Board(passenger.New(0, 1, 60)); err != nil {
		t.Fatalf("first board failed: %v", err)
	}
	if err := e.Board(passenger.New(0, 2, 60)); err != nil {
		t.Fatalf("second board failed: %v", err)
	}
	if err := e.Board(passenger.New(0, 3, 60)); err == nil {
		t.Fatalf("board above capacity succeeded")
	}
	if e.PassengerCount() > e.Capacity {
		t.Fatalf("capacity invariant violated: %d > %d", e.PassengerCount(), e.Capacity)
	}
}

func TestBoundaryFaultEntersRepairAndEvacuates(t *testing.T) {
	e := New(0, 5, 4, 1.0)
	p := passenger.New(0, 2, 60)
	if err := e.Board(p); err != nil {
		t.Fatalf("board failed: %v", err)
	}

	// Simulate an invalid command: moving up while already at the top.
	e.Behaviour = types.MovingUp
	e.Floor = 4
	e.Position = 4
	e.target = 5
	e.hasTarget = true

	res := e.Update(0.1, stubRouter{next: 4})
	if res.Fault == nil {
		t.Fatalf("boundary violation not detected")
	}
	if res.Fault.Reason != "moving up at top floor" {
		t.Fatalf("unexpected fault reason %q", res.Fault.Reason)
	}
	if e.Behaviour != types.Repair {
		t.Fatalf("expected repair, got %v", e.Behaviour)
	}
	if len(res.Evacuated) != 1 || res.Evacuated[0] != p {
		t.Fatalf("onboard passenger not evacuated")
	}
	if p.Phase != passenger.Waiting || p.Origin != 4 {
		t.Fatalf("evacuee not requeued at fault floor: phase=%v origin=%d", p.Phase, p.Origin)
	}
	if e.PendingStops() != 0 {
		t.Fatalf("route not cleared on repair entry")
	}
	if e.LastFault == nil || e.LastFault.Reason == "" {
		t.Fatalf("diagnostic report not retained")
	}

	// Routing decisions are refused while under repair.
	e.AddFloorToVisit(1)
	if e.PendingStops() != 0 {
		t.Fatalf("repairing elevator accepted a visit request")
	}

	// Repair is recoverable after its fixed duration.
	ticks := int(config.RepairDuration/0.1) + 2
	for i := 0; i < ticks; i++ {
		e.Update(0.1, stubRouter{next: 4})
	}
	if e.Behaviour != types.Idle {
		t.Fatalf("elevator did not recover from repair, got %v", e.Behaviour)
	}
}

func TestStuckMovementTriggersRepair(t *testing.T) {
	// Zero speed: the car is commanded to move but never makes progress.
	e := New(0, 5, 4, 0)
	e.AddFloorToVisit(3)
	r := stubRouter{next: 3}

	e.Update(0.1, r)
	if e.Behaviour != types.MovingUp {
		t.Fatalf("expected moving up, got %v", e.Behaviour)
	}

	entered := false
	for i := 0; i < int(config.MovingStuckTimeout/0.1)+config.HistoryLength+20; i++ {
		res := e.Update(0.1, r)
		if res.Fault != nil {
			if res.Fault.Reason != "not making progress" {
				t.Fatalf("unexpected fault reason %q", res.Fault.Reason)
			}
			entered = true
			break
		}
	}
	if !entered {
		t.Fatalf("stuck elevator never entered repair")
	}
	if e.Behaviour != types.Repair {
		t.Fatalf("expected repair, got %v", e.Behaviour)
	}
}

func TestGracePeriodSuppressesChecks(t *testing.T) {
	e := New(0, 5, 4, 1.0)
	e.Behaviour = types.MovingUp
	e.Position = 4
	e.Floor = 4
	e.graceLeft = config.FaultGracePeriod

	res := e.Update(0.1, stubRouter{next: 4})
	if res.Fault != nil {
		t.Fatalf("fault raised during grace period")
	}
}
