package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/halfhalf"
	userrepo "kantinho-pos/internal/repository/user"
	tillsvc "kantinho-pos/internal/service/till"
	usersvc "kantinho-pos/internal/service/user"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognized
// is a 500 with a generic body so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, usersvc.ErrInvalidCredentials),
		errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalid),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, tillsvc.ErrSizeRequired),
		errors.Is(err, tillsvc.ErrNotAnExtra),
		errors.Is(err, tillsvc.ErrNoHalfFlow),
		errors.Is(err, halfhalf.ErrNotReady),
		errors.Is(err, userrepo.ErrInsufficientPoints):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
