// Package store regroupe les endpoints réservés aux magasins :
// gestion du catalogue et traitement des commandes entrantes.
package store

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
