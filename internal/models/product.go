package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Product est un article du catalogue d'un magasin.
// Le prix catalogue peut changer à tout moment : les commandes déjà passées
// conservent leur prix figé dans OrderItem.
type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	StoreID     string     `json:"store_id" db:"store_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Price       int64      `json:"price" db:"price"` // en centimes
	Stock       int        `json:"stock" db:"stock"`
	ImageURL    string     `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
