package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/orders"
)

// RespondOrderError traduit la taxonomie d'erreurs métier en codes HTTP.
// Toutes les erreurs métier sont des issues attendues, présentées comme
// messages utilisateur.
func RespondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
	case errors.Is(err, orders.ErrNotAssigned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrClaimLost):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Commande déjà prise par un autre livreur",
			"claim_lost": true,
		})
	case errors.Is(err, orders.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrExternalService):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Service temporairement indisponible, réessayez"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}

// UserEmail retourne l'e-mail d'un compte, chaîne vide si introuvable.
func UserEmail(userID string) string {
	stmt := database.GetPreparedGetUserByID()
	if stmt == nil {
		return ""
	}
	var email, password, name, role, provider, phone string
	var createdAt time.Time
	if err := stmt.Bind(userID).Scan(&email, &password, &name, &role, &provider, &phone, &createdAt); err != nil {
		return ""
	}
	return email
}

// StoreLocation retourne les coordonnées de la fiche magasin.
func StoreLocation(storeID string) (models.Coordinates, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return models.Coordinates{}, err
	}
	var loc models.Coordinates
	if err := session.Query("SELECT lat, lng FROM store_profiles WHERE user_id = ?", storeID).
		Scan(&loc.Lat, &loc.Lng); err != nil {
		return models.Coordinates{}, err
	}
	return loc, nil
}
