package models

import (
	"time"

	"github.com/gocql/gocql"
)

// OrderStatus représente l'étape courante d'une commande dans son cycle de vie.
type OrderStatus string

const (
	StatusPending          OrderStatus = "PENDING"
	StatusAcceptedByStore  OrderStatus = "ACCEPTED_BY_STORE"
	StatusAcceptedByDriver OrderStatus = "ACCEPTED_BY_DRIVER"
	StatusPickedUp         OrderStatus = "PICKED_UP"
	StatusDelivered        OrderStatus = "DELIVERED"
	StatusCancelled        OrderStatus = "CANCELLED"
)

// Transitions autorisées le long du cycle de vie.
// CANCELLED est atteignable depuis tout état non terminal.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:          {StatusAcceptedByStore: true, StatusCancelled: true},
	StatusAcceptedByStore:  {StatusAcceptedByDriver: true, StatusCancelled: true},
	StatusAcceptedByDriver: {StatusPickedUp: true, StatusCancelled: true},
	StatusPickedUp:         {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

// CanTransition vérifie si le passage from → to est autorisé.
func CanTransition(from, to OrderStatus) bool {
	nexts := allowedTransitions[from]
	return nexts != nil && nexts[to]
}

// IsTerminal indique si le statut est un état final (aucune transition possible).
func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// RequiresDriver indique si le statut implique qu'un livreur est assigné.
// Invariant : driver_id est renseigné si et seulement si RequiresDriver() est vrai.
func (s OrderStatus) RequiresDriver() bool {
	return s == StatusAcceptedByDriver || s == StatusPickedUp || s == StatusDelivered
}

// OrderItem est une ligne de commande. Le prix unitaire est figé au moment
// de la commande : les changements ultérieurs du catalogue ne modifient
// jamais une commande passée.
type OrderItem struct {
	ProductID gocql.UUID `json:"product_id" db:"product_id"`
	Name      string     `json:"name" db:"name"`
	Quantity  int        `json:"quantity" db:"quantity"`
	UnitPrice int64      `json:"unit_price" db:"unit_price"` // en centimes
}

// Order est l'entité centrale de la plateforme.
// Montants en centimes pour éviter toute dérive flottante.
type Order struct {
	ID          gocql.UUID  `json:"id" db:"order_id"`
	CustomerID  string      `json:"customer_id" db:"customer_id"`
	StoreID     string      `json:"store_id" db:"store_id"`
	DriverID    string      `json:"driver_id,omitempty" db:"driver_id"`
	Items       []OrderItem `json:"items" db:"items"`
	ItemsTotal  int64       `json:"items_total" db:"items_total"`
	DeliveryFee int64       `json:"delivery_fee" db:"delivery_fee"` // figé à la création
	TotalPrice  int64       `json:"total_price" db:"total_price"`
	Pickup      Coordinates `json:"pickup" db:"pickup"`
	Dropoff     Coordinates `json:"dropoff" db:"dropoff"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// StatusChange est une entrée d'audit : une ligne par transition.
type StatusChange struct {
	OrderID   gocql.UUID  `json:"order_id" db:"order_id"`
	From      OrderStatus `json:"from" db:"from_status"`
	To        OrderStatus `json:"to" db:"to_status"`
	ActorID   string      `json:"actor_id" db:"actor_id"`
	ChangedAt time.Time   `json:"changed_at" db:"changed_at"`
}
