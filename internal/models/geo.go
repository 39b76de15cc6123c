package models

// Coordinates représente une position GPS (latitude/longitude en degrés).
type Coordinates struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// IsValid vérifie que les coordonnées sont exploitables.
// Le point (0,0) est traité comme "non renseigné" : aucun magasin ni client
// de la plateforme ne se trouve dans le golfe de Guinée.
func (c Coordinates) IsValid() bool {
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
