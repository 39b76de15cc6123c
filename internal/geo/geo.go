package geo

import (
	"log"
	"math"

	"livra_back_end/internal/models"
)

const earthRadiusKm = 6371.0

// DistanceKm calcule la distance orthodromique (haversine) entre deux points,
// arrondie à une décimale. Si l'une des coordonnées est absente ou invalide,
// retourne 0 — mais le signale en log plutôt que de masquer silencieusement
// un profil sans position.
func DistanceKm(a, b models.Coordinates) float64 {
	if !a.IsValid() || !b.IsValid() {
		log.Printf("⚠️ Coordonnées manquantes ou invalides (a=%+v, b=%+v), distance 0 par défaut", a, b)
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}
