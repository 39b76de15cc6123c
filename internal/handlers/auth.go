package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"livra_back_end/internal/database"
	"livra_back_end/internal/middleware"
	"livra_back_end/internal/models"
	"livra_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

// Register crée un compte client, magasin ou livreur avec sa fiche profil.
func Register(c *gin.Context) {
	var input struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=8"`
		Role     string  `json:"role" binding:"required"`
		Phone    string  `json:"phone"`
		Address  string  `json:"address"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		Vehicle  string  `json:"vehicle"` // livreurs uniquement
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role(input.Role)
	if role == models.RoleAdmin || !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email déjà pris ?
	var existingID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).
		Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      role,
		Provider:  "local",
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}

	if err := database.GetPreparedInsertUser().Bind(
		user.ID, user.Email, user.Password, user.Name, string(user.Role), user.Provider, user.Phone, user.CreatedAt).
		Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur index users_by_email: %v", err)
	}

	createProfile(session, user, input.Address, input.Vehicle, models.Coordinates{Lat: input.Lat, Lng: input.Lng})

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Compte %s créé: %s (%s)", user.Role, user.Email, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// createProfile crée la fiche adaptée au rôle.
func createProfile(session *gocql.Session, user models.User, address, vehicle string, loc models.Coordinates) {
	var err error
	switch user.Role {
	case models.RoleStore:
		err = session.Query(`INSERT INTO store_profiles (user_id, name, address, phone, image_url, lat, lng, rating_avg, rating_count)
			VALUES (?, ?, ?, ?, '', ?, ?, 0, 0)`,
			user.ID, user.Name, address, user.Phone, loc.Lat, loc.Lng).Exec()
	case models.RoleDriver:
		err = session.Query(`INSERT INTO driver_profiles (user_id, name, phone, vehicle, image_url, lat, lng, available, rating_avg, rating_count)
			VALUES (?, ?, ?, ?, '', ?, ?, false, 0, 0)`,
			user.ID, user.Name, user.Phone, vehicle, loc.Lat, loc.Lng).Exec()
	case models.RoleCustomer:
		err = session.Query(`INSERT INTO customer_profiles (user_id, name, phone, address, lat, lng)
			VALUES (?, ?, ?, ?, ?, ?)`,
			user.ID, user.Name, user.Phone, address, loc.Lat, loc.Lng).Exec()
	}
	if err != nil {
		log.Printf("⚠️ Erreur création profil %s: %v", user.Role, err)
	}
}

// Login authentifie un compte local et retourne un JWT.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID string
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).
		Scan(&userID); err != nil {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var user models.User
	user.ID = userID
	var role string
	if err := database.GetPreparedGetUserByID().Bind(userID).
		Scan(&user.Email, &user.Password, &user.Name, &role, &user.Provider, &user.Phone, &user.CreatedAt); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	user.Role = models.Role(role)

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ResetLoginAttempts(input.Email)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("🔓 Connexion: %s (%s)", user.Email, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

// Me retourne l'identité de l'appelant courant.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString("user_id"),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}
