package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"livra_back_end/internal/cache"
	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/services"
)

//
// =========================
// 🟢 UPLOAD IMAGE DE PROFIL
// =========================
//

// UploadProfileImage stocke l'image dans MinIO puis met à jour la fiche
// profil correspondant au rôle de l'appelant.
func UploadProfileImage(c *gin.Context) {
	ctx := context.Background()

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champ 'file' manquant"})
		return
	}

	userID := c.GetString("user_id")
	role := models.Role(c.GetString("role"))

	url, err := services.UploadImage(ctx, "profiles", file)
	if err != nil {
		log.Printf("❌ Erreur upload MinIO: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var table string
	switch role {
	case models.RoleStore:
		table = "store_profiles"
	case models.RoleDriver:
		table = "driver_profiles"
	default:
		table = "customer_profiles"
	}
	if err := session.Query("UPDATE "+table+" SET image_url = ? WHERE user_id = ?", url, userID).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	if role == models.RoleStore {
		cache.InvalidateStore(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "✅ Image uploadée avec succès",
		"image_url": url,
	})
}
