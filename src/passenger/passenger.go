package passenger

// Phase is the exclusive lifecycle state of a passenger. Exactly one phase
// holds at any tick; GivenUp is terminal.
type Phase int

const (
	Waiting Phase = iota
	Onboard
	Served
	GivenUp
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Onboard:
		return "onboard"
	case Served:
		return "served"
	case GivenUp:
		return "given_up"
	default:
		return "undefined"
	}
}

const Unassigned = -1

type Passenger struct {
	Origin      int
	Destination int
	Phase       Phase

	// WaitTime accumulates while waiting and freezes at boarding.
	// TransitTime accumulates while onboard and freezes at arrival.
	WaitTime    float64
	TransitTime float64

	// GiveUpAfter is this passenger's personal abandonment timeout.
	GiveUpAfter float64

	AssignedElev int

	// WarmupSpawn marks passengers created during the warm-up window; they
	// are served normally but excluded from scoring.
	WarmupSpawn bool
}

func New(origin, destination int, giveUpAfter float64) *Passenger {
	return &Passenger{
		Origin:       origin,
		Destination:  destination,
		GiveUpAfter:  giveUpAfter,
		AssignedElev: Unassigned,
	}
}

// Tick advances whichever timer is live for the current phase.
func (p *Passenger) Tick(dt float64) {
	switch p.Phase {
	case Waiting:
		p.WaitTime += dt
	case Onboard:
		p.TransitTime += dt
	}
}

func (p *Passenger) ShouldGiveUp() bool {
	return p.Phase == Waiting && p.WaitTime > p.GiveUpAfter
}

// GiveUp abandons the wait. The passenger leaves the served population for good.
func (p *Passenger) GiveUp() {
	p.Phase = GivenUp
}

// Board freezes the wait timer and starts the transit timer.
func (p *Passenger) Board() {
	if p.Phase != Waiting {
		return
	}
	p.Phase = Onboard
}

// Arrive freezes the transit timer; the journey is complete.
func (p *Passenger) Arrive() {
	if p.Phase != Onboard {
		return
	}
	p.Phase = Served
}

// Evacuate puts an onboard passenger back on a floor after an elevator fault.
// The wait timer resumes from its frozen value; the assignment is dropped so
// the dispatcher can hand the passenger to another elevator.
func (p *Passenger) Evacuate(floor int) {
	if p.Phase != Onboard {
		return
	}
	p.Phase = Waiting
	p.Origin = floor
	p.AssignedElev = Unassigned
}

// TotalServiceTime is wait plus transit, meaningful once served.
func (p *Passenger) TotalServiceTime() float64 {
	return p.WaitTime + p.TransitTime
}
