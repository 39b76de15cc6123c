package admin

import (
	"testing"
	"time"
)

func TestStartOfDayZoneAware(t *testing.T) {
	// UTC+10 : le 2 à 01h00 local correspond encore au 1er en UTC.
	zone := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2026, time.March, 2, 1, 0, 0, 0, zone)

	got := startOfDay(now)
	want := time.Date(2026, time.March, 2, 0, 0, 0, 0, zone)
	if !got.Equal(want) {
		t.Fatalf("minuit local: attendu %s, obtenu %s", want, got)
	}

	// une commande passée à 00h30 local le même jour compte,
	// une commande de la veille à 23h30 non
	sameDay := time.Date(2026, time.March, 2, 0, 30, 0, 0, zone)
	if sameDay.Before(got) {
		t.Fatal("commande du jour classée hors journée")
	}
	previousDay := time.Date(2026, time.March, 1, 23, 30, 0, 0, zone)
	if !previousDay.Before(got) {
		t.Fatal("commande de la veille classée dans la journée")
	}
}
