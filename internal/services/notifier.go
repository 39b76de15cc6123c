package services

import (
	"context"
	"encoding/json"
	"log"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/utils"
)

// Notifier diffuse les changements de statut de commande sur tous les canaux :
// pubsub Redis (websocket de suivi), e-mail client, push par rôle.
// Tout est best-effort : aucun canal ne conditionne la transition elle-même.
type Notifier struct {
	Push *PushDispatcher
}

func NewNotifier() *Notifier {
	return &Notifier{Push: NewPushDispatcher()}
}

// OrderChannel est le canal pubsub Redis d'une commande, partagé avec le
// websocket de suivi.
func OrderChannel(orderID string) string {
	return "orders:" + orderID
}

// OrderStatusChanged publie le nouvel état de la commande.
func (n *Notifier) OrderStatusChanged(ctx context.Context, order *models.Order, customerEmail string) {
	// 1. Pubsub Redis pour le suivi temps réel
	payload, _ := json.Marshal(map[string]interface{}{
		"order_id": order.ID.String(),
		"status":   order.Status,
	})
	if err := database.Redis.Publish(ctx, OrderChannel(order.ID.String()), payload).Err(); err != nil {
		log.Printf("⚠️ Publication statut commande %s: %v", order.ID, err)
	}

	// 2. E-mail au client
	if customerEmail != "" {
		go func(o models.Order) {
			_ = utils.SendOrderStatusEmail(&o, customerEmail)
		}(*order)
	}

	// 3. Push
	switch order.Status {
	case models.StatusAcceptedByStore:
		// Nouvelle commande réclamable : on prévient les livreurs
		n.Push.Send("drivers", "Nouvelle course disponible",
			"Une commande vient d'être acceptée près de vous",
			map[string]string{"order_id": order.ID.String()})
	default:
		n.Push.Send("customer-"+order.CustomerID, "Commande mise à jour",
			string(order.Status),
			map[string]string{"order_id": order.ID.String(), "status": string(order.Status)})
	}
}
