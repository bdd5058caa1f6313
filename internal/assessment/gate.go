package assessment

// GateState is the submission gate's two-state machine.
type GateState int

const (
	// GateIdle means no submit is in progress.
	GateIdle GateState = iota
	// GatePending means the user answered fewer questions than the set
	// holds and must confirm before submitting.
	GatePending
	// GateSubmitting means the analysis call has been dispatched.
	GateSubmitting
)

// Gate decides whether a submit proceeds immediately or needs an explicit
// confirmation. Resolved only by user action; there is no timeout.
type Gate struct {
	state GateState
}

// State returns the current gate state.
func (g *Gate) State() GateState {
	return g.state
}

// RequestSubmit evaluates a submit action. It returns true when the
// submit should proceed directly (all questions answered); otherwise the
// gate enters the pending-confirmation state and returns false.
func (g *Gate) RequestSubmit(answered, total int) bool {
	if answered >= total {
		g.state = GateSubmitting
		return true
	}
	g.state = GatePending
	return false
}

// Confirm resolves a pending confirmation in favor of submitting.
func (g *Gate) Confirm() bool {
	if g.state != GatePending {
		return false
	}
	g.state = GateSubmitting
	return true
}

// Decline resolves a pending confirmation by returning to the assessment.
func (g *Gate) Decline() {
	if g.state == GatePending {
		g.state = GateIdle
	}
}

// Reset clears the gate after the analysis call settles.
func (g *Gate) Reset() {
	g.state = GateIdle
}
