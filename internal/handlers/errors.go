package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

// RespondError traduit les erreurs métier typées en réponses HTTP.
// Tout est 4xx sauf ErrStorage, qui est un défaut opérationnel.
func RespondError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.Name,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	var unavailableErr *services.ProductUnavailableError
	if errors.As(err, &unavailableErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": unavailableErr.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrCouponAlreadyUsed),
		errors.Is(err, services.ErrCouponExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStorage):
		log.Printf("❌ Erreur stockage: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
	default:
		log.Printf("❌ Erreur inattendue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
	}
}
