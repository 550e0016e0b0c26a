package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin bloque les requêtes sans rôle "admin"
func RequireAdmin(c *gin.Context) {
	if !IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
