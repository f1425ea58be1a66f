package utils

import (
	"Tankard/middleware"
	"Tankard/services/coordination"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AbortWithError writes the mapped status and the error message.
func AbortWithError(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}

// RequireGamer resolves the authenticated gamer from the token identity.
// On a wrong role or a vanished account it writes the 401 itself and
// returns ok=false.
func RequireGamer(c *gin.Context, svc *coordination.Service) (string, bool) {
	gamerID, role := middleware.Identity(c)
	if role != middleware.RoleGamer {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gamer account required"})
		return "", false
	}
	if _, err := svc.GetGamer(context.Background(), gamerID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Gamer not found: invalid token identity"})
		return "", false
	}
	return gamerID, true
}

// RequirePublican is the publican counterpart of RequireGamer.
func RequirePublican(c *gin.Context, svc *coordination.Service) (string, bool) {
	pubID, role := middleware.Identity(c)
	if role != middleware.RolePublican {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Publican account required"})
		return "", false
	}
	if _, err := svc.GetPublican(context.Background(), pubID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Publican not found: invalid token identity"})
		return "", false
	}
	return pubID, true
}
