// Package admin regroupe les endpoints de supervision de la plateforme.
package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/database"
	"livra_back_end/internal/handlers"
	"livra_back_end/internal/middleware"
	"livra_back_end/internal/models"
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

//
// =========================
// 🛠️ SUPERVISION
// =========================
//

// ListOrders retourne toutes les commandes, filtrables par statut.
func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.Orders.All(context.Background())
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := list[:0]
		for _, o := range list {
			if o.Status == models.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}

	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// GetOrder retourne n'importe quelle commande avec sa piste d'audit.
func (h *Handler) GetOrder(c *gin.Context) {
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

	history, err := h.Orders.History(ctx, orderID)
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
}

// CancelOrder annule n'importe quelle commande non terminale (litige, fraude).
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

	log.Printf("🛠️ Commande %s annulée par l'admin %s", orderID, c.GetString("user_id"))
	h.Notifier.OrderStatusChanged(ctx, order, handlers.UserEmail(order.CustomerID))
	c.JSON(http.StatusOK, gin.H{"message": "Commande annulée", "order": order})
}

// ListUsers retourne tous les comptes, filtrables par rôle.
func (h *Handler) ListUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	roleFilter := c.Query("role")

	iter := session.Query(`SELECT user_id, email, name, role, provider, phone, created_at FROM users`).Iter()

	users := []models.User{}
	var u models.User
	var role string
	for iter.Scan(&u.ID, &u.Email, &u.Name, &role, &u.Provider, &u.Phone, &u.CreatedAt) {
		if roleFilter != "" && role != roleFilter {
			continue
		}
		u.Role = models.Role(role)
		users = append(users, u)
		u = models.User{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// DeleteUser supprime un compte et ses fiches profil.
func (h *Handler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de supprimer son propre compte"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var email string
	if err := session.Query("SELECT email FROM users WHERE user_id = ?", userID).Scan(&email); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := session.Query("DELETE FROM users WHERE user_id = ?", userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression utilisateur"})
		return
	}
	if err := session.Query("DELETE FROM users_by_email WHERE email = ?", email).Exec(); err != nil {
		log.Printf("⚠️ Index users_by_email non nettoyé pour %s: %v", email, err)
	}
	for _, table := range []string{"store_profiles", "driver_profiles", "customer_profiles"} {
		_ = session.Query("DELETE FROM "+table+" WHERE user_id = ?", userID).Exec()
	}

	log.Printf("🗑️ Compte %s supprimé par l'admin %s", userID, c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé", "user_id": userID})
}

// startOfDay rend minuit dans le fuseau local du serveur : "aujourd'hui"
// suit le fuseau du déploiement, pas UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Stats retourne quelques agrégats simples pour le tableau de bord.
func (h *Handler) Stats(c *gin.Context) {
	list, err := h.Orders.All(context.Background())
	if err != nil {
		handlers.RespondOrderError(c, err)
		return
	}

	byStatus := map[models.OrderStatus]int{}
	var revenue int64
	var today int
	midnight := startOfDay(time.Now())
	for _, o := range list {
		byStatus[o.Status]++
		if o.Status == models.StatusDelivered {
			revenue += o.TotalPrice
		}
		if !o.CreatedAt.Before(midnight) {
			today++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders_total":      len(list),
		"orders_today":      today,
		"orders_by_status":  byStatus,
		"delivered_revenue": revenue, // en centimes
	})
}
