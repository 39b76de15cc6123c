package models

import "testing"

func TestCanTransitionForwardPath(t *testing.T) {
	path := []OrderStatus{
		StatusPending,
		StatusAcceptedByStore,
		StatusAcceptedByDriver,
		StatusPickedUp,
		StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		if !CanTransition(path[i], path[i+1]) {
			t.Errorf("transition %s → %s devrait être autorisée", path[i], path[i+1])
		}
	}
}

func TestCanTransitionNoSkipNoBackward(t *testing.T) {
	cases := []struct{ from, to OrderStatus }{
		{StatusPending, StatusAcceptedByDriver}, // saut d'étape
		{StatusPending, StatusDelivered},
		{StatusAcceptedByStore, StatusPickedUp},
		{StatusAcceptedByDriver, StatusDelivered},
		{StatusAcceptedByStore, StatusPending}, // retour arrière
		{StatusDelivered, StatusPickedUp},
		{StatusPending, StatusPending}, // sur place
	}
	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("transition %s → %s ne devrait pas être autorisée", tc.from, tc.to)
		}
	}
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{StatusPending, StatusAcceptedByStore, StatusAcceptedByDriver, StatusPickedUp} {
		if !CanTransition(from, StatusCancelled) {
			t.Errorf("annulation depuis %s devrait être autorisée", from)
		}
	}
	for _, from := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if CanTransition(from, StatusCancelled) {
			t.Errorf("annulation depuis l'état terminal %s ne devrait pas être autorisée", from)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !StatusDelivered.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Error("DELIVERED et CANCELLED sont terminaux")
	}
	for _, s := range []OrderStatus{StatusPending, StatusAcceptedByStore, StatusAcceptedByDriver, StatusPickedUp} {
		if s.IsTerminal() {
			t.Errorf("%s ne devrait pas être terminal", s)
		}
	}
}

func TestRequiresDriver(t *testing.T) {
	withDriver := map[OrderStatus]bool{
		StatusPending:          false,
		StatusAcceptedByStore:  false,
		StatusAcceptedByDriver: true,
		StatusPickedUp:         true,
		StatusDelivered:        true,
		StatusCancelled:        false,
	}
	for s, want := range withDriver {
		if got := s.RequiresDriver(); got != want {
			t.Errorf("RequiresDriver(%s) = %v, attendu %v", s, got, want)
		}
	}
}
