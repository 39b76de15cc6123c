package services

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
)

// Présence des livreurs : positions vivantes dans Redis GEO, métadonnées
// (disponibilité, dernière mise à jour) dans un hash à côté.

const driverGeoKey = "drivers:geo"

func driverMetaKey(driverID string) string {
	return "driver:meta:" + driverID
}

// UpdateDriverLocation enregistre la dernière position connue d'un livreur.
func UpdateDriverLocation(ctx context.Context, driverID string, loc models.Coordinates, available bool) error {
	_, err := database.Redis.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      driverID,
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}).Result()
	if err != nil {
		return err
	}

	return database.Redis.HSet(ctx, driverMetaKey(driverID), map[string]interface{}{
		"available": strconv.FormatBool(available),
		"updated":   time.Now().Format(time.RFC3339),
	}).Err()
}

// NearbyDriver est un livreur proche d'un point, avec sa distance.
type NearbyDriver struct {
	DriverID   string  `json:"driver_id"`
	DistanceKm float64 `json:"distance_km"`
	Available  bool    `json:"available"`
}

// NearbyDrivers retourne les livreurs dans un rayon donné, les plus proches
// en premier. Utilisé par les magasins pour estimer la couverture.
func NearbyDrivers(ctx context.Context, center models.Coordinates, radiusKm float64, limit int) ([]NearbyDriver, error) {
	res, err := database.Redis.GeoRadius(ctx, driverGeoKey, center.Lng, center.Lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Count:    limit,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	out := make([]NearbyDriver, 0, len(res))
	for _, g := range res {
		d := NearbyDriver{DriverID: g.Name, DistanceKm: g.Dist}
		if m, err := database.Redis.HGetAll(ctx, driverMetaKey(g.Name)).Result(); err == nil {
			d.Available = m["available"] == "true"
		}
		out = append(out, d)
	}
	return out, nil
}
