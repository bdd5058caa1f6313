package assessment

import "testing"

func TestGateSubmitsDirectlyWhenComplete(t *testing.T) {
	var g Gate
	if !g.RequestSubmit(60, 60) {
		t.Fatal("expected direct submit with all questions answered")
	}
	if g.State() != GateSubmitting {
		t.Errorf("expected GateSubmitting, got %v", g.State())
	}
}

func TestGateDemandsConfirmationWhenIncomplete(t *testing.T) {
	var g Gate

	// 45 of 60 answered: the submit must not proceed yet.
	if g.RequestSubmit(45, 60) {
		t.Fatal("expected pending confirmation, not a direct submit")
	}
	if g.State() != GatePending {
		t.Fatalf("expected GatePending, got %v", g.State())
	}

	if !g.Confirm() {
		t.Fatal("expected confirm to resolve the pending submit")
	}
	if g.State() != GateSubmitting {
		t.Errorf("expected GateSubmitting after confirm, got %v", g.State())
	}
}

func TestGateDeclineReturnsToIdle(t *testing.T) {
	var g Gate
	g.RequestSubmit(1, 10)
	g.Decline()
	if g.State() != GateIdle {
		t.Errorf("expected GateIdle after decline, got %v", g.State())
	}

	// Confirm without a pending prompt does nothing.
	if g.Confirm() {
		t.Error("expected confirm to be a no-op when idle")
	}
}

func TestGateReset(t *testing.T) {
	var g Gate
	g.RequestSubmit(10, 10)
	g.Reset()
	if g.State() != GateIdle {
		t.Errorf("expected GateIdle after reset, got %v", g.State())
	}
}
