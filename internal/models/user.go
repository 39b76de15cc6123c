package models

import "time"

// User est le compte d'authentification commun à tous les rôles.
type User struct {
	ID        string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role,omitempty"`
	Provider  string    `json:"provider,omitempty"` // local, google, facebook
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating est l'agrégat (moyenne, nombre d'avis) tenu sur les profils.
// Mise à jour par moyenne glissante : newAvg = (oldAvg*count + note) / (count+1).
type Rating struct {
	Average float64 `json:"average" db:"rating_avg"`
	Count   int     `json:"count" db:"rating_count"`
}

// StoreProfile est la fiche publique d'un magasin.
type StoreProfile struct {
	UserID   string      `json:"user_id" db:"user_id"`
	Name     string      `json:"name" db:"name"`
	Address  string      `json:"address" db:"address"`
	Phone    string      `json:"phone" db:"phone"`
	ImageURL string      `json:"image_url,omitempty" db:"image_url"`
	Location Coordinates `json:"location" db:"location"`
	Rating   Rating      `json:"rating"`
}

// DriverProfile est la fiche d'un livreur, avec sa dernière position connue.
type DriverProfile struct {
	UserID    string      `json:"user_id" db:"user_id"`
	Name      string      `json:"name" db:"name"`
	Phone     string      `json:"phone" db:"phone"`
	Vehicle   string      `json:"vehicle,omitempty" db:"vehicle"`
	ImageURL  string      `json:"image_url,omitempty" db:"image_url"`
	Location  Coordinates `json:"location" db:"location"`
	Available bool        `json:"available" db:"available"`
	Rating    Rating      `json:"rating"`
}

// CustomerProfile est la fiche d'un client (adresse de livraison par défaut).
type CustomerProfile struct {
	UserID   string      `json:"user_id" db:"user_id"`
	Name     string      `json:"name" db:"name"`
	Phone    string      `json:"phone" db:"phone"`
	Address  string      `json:"address" db:"address"`
	Location Coordinates `json:"location" db:"location"`
}
