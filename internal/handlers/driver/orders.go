package driver

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/handlers"
	"livra_back_end/internal/middleware"
	"livra_back_end/internal/models"
	"livra_back_end/internal/services"
)

//
// =========================
// 🛵 COURSES
// =========================
//

// AvailableOrders liste les commandes acceptées par un magasin et pas
// encore prises par un livreur.
func (h *Handler) AvailableOrders(c *gin.Context) {
	list, err := h.Orders.Available(context.Background())
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// ClaimOrder tente de prendre une course. Si plusieurs livreurs réclament
// la même commande, un seul gagne ; les autres reçoivent un 409 explicite
// et doivent choisir une autre course.
func (h *Handler) ClaimOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	driverID := c.GetString("user_id")

	order, err := h.Orders.DriverClaim(ctx, orderID, driverID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	log.Printf("🛵 Course %s prise par %s", orderID, driverID)
	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "✅ Course attribuée", "order": order})
}

// ConfirmPickup confirme le retrait au magasin. Le corps peut contenir le
// contenu du QR scanné au comptoir ; s'il est présent il doit correspondre.
func (h *Handler) ConfirmPickup(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		QRPayload string `json:"qr_payload"`
	}
	_ = c.ShouldBindJSON(&input)
	if input.QRPayload != "" {
		expected := "livra:pickup:" + orderID.String()
		if strings.TrimSpace(input.QRPayload) != expected {
			c.JSON(http.StatusConflict, gin.H{"error": "QR code d'une autre commande"})
			return
		}
	}

	ctx := context.Background()
	order, err := h.Orders.DriverConfirmPickup(ctx, orderID, c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "📦 Retrait confirmé", "order": order})
}

// ConfirmDelivery clôture la course.
func (h *Handler) ConfirmDelivery(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	order, err := h.Orders.DriverConfirmDelivery(ctx, orderID, c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	log.Printf("✅ Course %s livrée par %s", orderID, order.DriverID)
	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "✅ Livraison confirmée", "order": order})
}

// MyDeliveries liste les courses du livreur, en cours et passées.
func (h *Handler) MyDeliveries(c *gin.Context) {
	list, err := h.Orders.ByDriver(context.Background(), c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// CancelOrder abandonne une course déjà prise (panne, urgence).
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
	c.JSON(http.StatusOK, gin.H{"message": "Course abandonnée", "order": order})
}

// UpdateLocation enregistre la position du livreur dans l'index GEO Redis.
func (h *Handler) UpdateLocation(c *gin.Context) {
	var input struct {
		Lat       float64 `json:"lat" binding:"required"`
		Lng       float64 `json:"lng" binding:"required"`
		Available bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := models.Coordinates{Lat: input.Lat, Lng: input.Lng}
	if !loc.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordonnées invalides"})
		return
	}

	if err := services.UpdateDriverLocation(context.Background(), c.GetString("user_id"), loc, input.Available); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour position"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position mise à jour"})
}
