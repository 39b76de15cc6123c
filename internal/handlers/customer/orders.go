package customer

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/handlers"
	"livra_back_end/internal/middleware"
)

//
// =========================
// 📦 MES COMMANDES
// =========================
//

// MyOrders liste les commandes du client.
func (h *Handler) MyOrders(c *gin.Context) {
	list, err := h.Orders.ByCustomer(context.Background(), c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// GetOrder retourne une commande du client (refusé si elle appartient à
// quelqu'un d'autre).
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := h.Orders.Get(context.Background(), orderID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	if order.CustomerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// OrderHistory retourne le journal des transitions d'une commande du client.
func (h *Handler) OrderHistory(c *gin.Context) {
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

	history, err := h.Orders.History(ctx, orderID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "history": history})
}

// CancelOrder annule une commande du client si son statut le permet encore.
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	order, err := h.Orders.Cancel(ctx, orderID, middleware.CurrentActor(c))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "Commande annulée", "order": order})
}
