// Package customer regroupe les endpoints réservés aux clients :
// panier, checkout, suivi de commande et avis.
package customer

import (
	"livra_back_end/internal/orders"
	"livra_back_end/internal/services"
)

type Handler struct {
	Orders   *orders.Service
	Notifier *services.Notifier
}

func NewHandler(svc *orders.Service, notifier *services.Notifier) *Handler {
	return &Handler{Orders: svc, Notifier: notifier}
}
