// Package driver regroupe les endpoints réservés aux livreurs :
// courses disponibles, prise de course et avancement de la livraison.
package driver

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
