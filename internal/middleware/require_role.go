package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"livra_back_end/internal/models"
)

// RequireRole restreint une route à un ou plusieurs rôles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[models.Role(c.GetString("role"))] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé à un autre rôle"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOperation restreint une route aux rôles autorisés à invoquer une
// opération du cycle de vie. Unique point de dispatch rôle → opérations :
// les handlers ne re-vérifient jamais le rôle eux-mêmes.
func RequireOperation(op models.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString("role"))
		if !models.CanPerform(role, op) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Opération non autorisée pour ce rôle"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	if models.Role(c.GetString("role")) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
