package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"livra_back_end/internal/database"
	"livra_back_end/internal/models"
	"livra_back_end/internal/utils"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth finalise le flux OAuth : crée le compte client au premier
// passage, puis retourne un JWT comme le login classique.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "le provider n'a pas fourni d'email"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var user models.User
	var userID string
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", gothUser.Email).
		Scan(&userID); err == nil {
		var role string
		if err := session.Query(`SELECT email, name, role, provider, phone, created_at
			FROM users WHERE user_id = ?`, userID).
			Scan(&user.Email, &user.Name, &role, &user.Provider, &user.Phone, &user.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateur"})
			return
		}
		user.ID = userID
		user.Role = models.Role(role)
	} else {
		// Premier passage : les comptes OAuth sont toujours des clients.
		name := gothUser.Name
		if name == "" {
			name = gothUser.NickName
		}
		user = models.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     gothUser.Email,
			Role:      models.RoleCustomer,
			Provider:  provider,
			CreatedAt: time.Now(),
		}
		if err := session.Query(`INSERT INTO users (user_id, email, password, name, role, provider, phone, created_at)
			VALUES (?, ?, '', ?, ?, ?, '', ?)`,
			user.ID, user.Email, user.Name, string(user.Role), user.Provider, user.CreatedAt).
			Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		if err := session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)",
			user.Email, user.ID).Exec(); err != nil {
			log.Printf("⚠️ Erreur index users_by_email: %v", err)
		}
		createProfile(session, user, "", "", models.Coordinates{})
		log.Printf("✅ Compte client créé via %s: %s", provider, user.Email)
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"provider": user.Provider,
		"user_id":  user.ID,
		"email":    user.Email,
		"role":     user.Role,
	})
}
