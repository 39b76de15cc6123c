package customer

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/gorilla/websocket"

	"livra_back_end/internal/database"
	"livra_back_end/internal/handlers"
	"livra_back_end/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Le JWT a déjà filtré l'appelant, l'origine importe peu ici
	CheckOrigin: func(r *http.Request) bool { return true },
}

//
// =========================
// 📡 SUIVI TEMPS RÉEL
// =========================
//

// TrackOrder ouvre un websocket et relaie les changements de statut publiés
// sur le canal Redis de la commande. Le premier message envoyé est toujours
// l'état courant, pour que le client n'attende pas la prochaine transition.
func (h *Handler) TrackOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	order, err := h.Orders.Get(ctx, orderID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	if order.CustomerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ Upgrade websocket échoué pour %s: %v", orderID, err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(gin.H{"order_id": orderID.String(), "status": order.Status}); err != nil {
		return
	}

	sub := database.Redis.Subscribe(ctx, services.OrderChannel(orderID.String()))
	defer sub.Close()

	// Libère la goroutine pubsub quand le client ferme la connexion
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}
}
