package customer

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"livra_back_end/internal/cache"
	"livra_back_end/internal/database"
	"livra_back_end/internal/handlers"
	"livra_back_end/internal/models"
)

//
// =========================
// ⭐ AVIS
// =========================
//

// CreateReview enregistre un avis sur le magasin ou le livreur d'une
// commande livrée, et met à jour la note agrégée du profil visé.
func (h *Handler) CreateReview(c *gin.Context) {
	var input struct {
		OrderID    string `json:"order_id" binding:"required"`
		TargetRole string `json:"target_role" binding:"required"` // store ou driver
		Score      int    `json:"score" binding:"required,min=1,max=5"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(input.OrderID)
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
	if order.Status != models.StatusDelivered {
		c.JSON(http.StatusConflict, gin.H{"error": "Seule une commande livrée peut être notée"})
		return
	}

	targetRole := models.Role(input.TargetRole)
	var targetID string
	switch targetRole {
	case models.RoleStore:
		targetID = order.StoreID
	case models.RoleDriver:
		targetID = order.DriverID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_role doit être store ou driver"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	review := models.Review{
		ID:         gocql.TimeUUID(),
		TargetID:   targetID,
		TargetRole: targetRole,
		OrderID:    orderID,
		AuthorID:   order.CustomerID,
		AuthorName: c.GetString("email"),
		Score:      input.Score,
		Comment:    input.Comment,
		CreatedAt:  time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews (review_id, target_id, target_role, order_id, author_id, author_name, score, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.TargetID, string(review.TargetRole), review.OrderID,
		review.AuthorID, review.AuthorName, review.Score, review.Comment, review.CreatedAt).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement avis"})
		return
	}

	updateRating(session, targetRole, targetID, input.Score)
	if targetRole == models.RoleStore {
		cache.InvalidateStore(targetID)
	}

	log.Printf("⭐ Avis %d/5 sur %s (%s)", input.Score, targetID, targetRole)
	c.JSON(http.StatusCreated, review)
}

// updateRating fait avancer la moyenne glissante du profil visé par écriture
// conditionnelle : relecture + retry si un autre avis est passé entre-temps.
func updateRating(session *gocql.Session, role models.Role, targetID string, score int) {
	table := "store_profiles"
	if role == models.RoleDriver {
		table = "driver_profiles"
	}

	for attempt := 0; attempt < 5; attempt++ {
		var avg float64
		var count int
		if err := session.Query("SELECT rating_avg, rating_count FROM "+table+" WHERE user_id = ?", targetID).
			Scan(&avg, &count); err != nil {
			log.Printf("⚠️ Lecture note %s: %v", targetID, err)
			return
		}

		newAvg := (avg*float64(count) + float64(score)) / float64(count+1)

		applied, err := session.Query("UPDATE "+table+
			" SET rating_avg = ?, rating_count = ? WHERE user_id = ? IF rating_avg = ? AND rating_count = ?",
			newAvg, count+1, targetID, avg, count).
			ScanCAS(nil, nil)
		if err != nil {
			log.Printf("⚠️ Mise à jour note %s: %v", targetID, err)
			return
		}
		if applied {
			return
		}
	}
	log.Printf("⚠️ Note non mise à jour pour %s après plusieurs essais", targetID)
}
