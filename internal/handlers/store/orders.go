package store

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/handlers"
	"livra_back_end/internal/middleware"
	"livra_back_end/internal/models"
	"livra_back_end/internal/services"
	"livra_back_end/internal/utils"
)

//
// =========================
// 📦 COMMANDES ENTRANTES
// =========================
//

// IncomingOrders liste les commandes adressées au magasin.
func (h *Handler) IncomingOrders(c *gin.Context) {
	list, err := h.Orders.ByStore(context.Background(), c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// AcceptOrder fait passer une commande PENDING en ACCEPTED_BY_STORE et
// prévient les livreurs qu'une course est disponible.
func (h *Handler) AcceptOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := context.Background()
	order, err := h.Orders.StoreAccept(ctx, orderID, c.GetString("user_id"))
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "✅ Commande acceptée", "order": order})
}

// CancelOrder annule une commande du magasin (rupture de stock, fermeture).
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

// PickupQR génère le QR code que le livreur scanne au comptoir pour
// confirmer qu'il emporte la bonne commande.
func (h *Handler) PickupQR(c *gin.Context) {
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
	if order.StoreID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}
	if order.Status != models.StatusAcceptedByDriver {
		c.JSON(http.StatusConflict, gin.H{"error": "Le QR n'est disponible qu'une fois un livreur assigné"})
		return
	}

	qr, err := utils.GeneratePickupQR(orderID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "qr_png_base64": qr})
}

// NearbyDrivers liste les livreurs disponibles autour du magasin (Redis GEO).
func (h *Handler) NearbyDrivers(c *gin.Context) {
	store, err := handlers.StoreLocation(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil magasin introuvable"})
		return
	}

	radiusKm := 5.0
	if raw := c.Query("radius_km"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			radiusKm = v
		}
	}

	drivers, err := services.NearbyDrivers(context.Background(), store, radiusKm, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche livreurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drivers": drivers, "count": len(drivers)})
}
