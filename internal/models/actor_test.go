package models

import "testing"

func TestCanPerform(t *testing.T) {
	cases := []struct {
		role Role
		op   Operation
		want bool
	}{
		{RoleCustomer, OpPlaceOrder, true},
		{RoleCustomer, OpCancel, true},
		{RoleCustomer, OpStoreAccept, false},
		{RoleCustomer, OpDriverClaim, false},
		{RoleStore, OpStoreAccept, true},
		{RoleStore, OpPlaceOrder, false},
		{RoleStore, OpConfirmPickup, false},
		{RoleDriver, OpDriverClaim, true},
		{RoleDriver, OpConfirmPickup, true},
		{RoleDriver, OpConfirmDelivery, true},
		{RoleDriver, OpStoreAccept, false},
		{RoleAdmin, OpCancel, true},
		{RoleAdmin, OpPlaceOrder, false},
	}
	for _, tc := range cases {
		if got := CanPerform(tc.role, tc.op); got != tc.want {
			t.Errorf("CanPerform(%s, %s) = %v, attendu %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestCanPerformUnknownRole(t *testing.T) {
	if CanPerform(Role("ghost"), OpPlaceOrder) {
		t.Error("un rôle inconnu ne doit rien pouvoir faire")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleCustomer, RoleStore, RoleDriver, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("rôle %s devrait être valide", r)
		}
	}
	if ValidRole(Role("superuser")) {
		t.Error("rôle inconnu accepté")
	}
}
