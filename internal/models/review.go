package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Review est un avis laissé par un client sur un magasin ou un livreur
// après une livraison.
type Review struct {
	ID         gocql.UUID `json:"id" db:"review_id"`
	TargetID   string     `json:"target_id" db:"target_id"` // magasin ou livreur noté
	TargetRole Role       `json:"target_role" db:"target_role"`
	OrderID    gocql.UUID `json:"order_id" db:"order_id"`
	AuthorID   string     `json:"author_id" db:"author_id"`
	AuthorName string     `json:"author_name" db:"author_name"`
	Score      int        `json:"score" db:"score"` // 1-5
	Comment    string     `json:"comment" db:"comment"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
