package geo

import (
	"math"
	"testing"

	"livra_back_end/internal/models"
)

func TestDistanceKmSamePoint(t *testing.T) {
	a := models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	if d := DistanceKm(a, a); d != 0 {
		t.Fatalf("distance d'un point à lui-même: attendu 0, obtenu %f", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := models.Coordinates{Lat: 48.8566, Lng: 2.3522}  // Paris
	b := models.Coordinates{Lat: 45.7640, Lng: 4.8357}  // Lyon
	ab := DistanceKm(a, b)
	ba := DistanceKm(b, a)
	if ab != ba {
		t.Fatalf("distance non symétrique: %f != %f", ab, ba)
	}
}

func TestDistanceKmKnownPair(t *testing.T) {
	a := models.Coordinates{Lat: 48.8566, Lng: 2.3522} // Paris
	b := models.Coordinates{Lat: 45.7640, Lng: 4.8357} // Lyon
	d := DistanceKm(a, b)
	// à vol d'oiseau Paris-Lyon ≈ 392 km
	if d < 380 || d > 405 {
		t.Fatalf("distance Paris-Lyon hors plage attendue: %f", d)
	}
}

func TestDistanceKmRoundedToOneDecimal(t *testing.T) {
	a := models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	b := models.Coordinates{Lat: 48.8570, Lng: 2.3530}
	d := DistanceKm(a, b)
	if math.Abs(d*10-math.Round(d*10)) > 1e-9 {
		t.Fatalf("distance non arrondie à une décimale: %v", d)
	}
}

func TestDistanceKmInvalidCoordinates(t *testing.T) {
	valid := models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	cases := []models.Coordinates{
		{},                          // non renseigné
		{Lat: 91, Lng: 0.5},         // latitude hors plage
		{Lat: 48.85, Lng: -181},     // longitude hors plage
	}
	for _, c := range cases {
		if d := DistanceKm(valid, c); d != 0 {
			t.Errorf("coordonnée invalide %+v: attendu 0, obtenu %f", c, d)
		}
		if d := DistanceKm(c, valid); d != 0 {
			t.Errorf("coordonnée invalide %+v (inversé): attendu 0, obtenu %f", c, d)
		}
	}
}
