package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anafaris/wedding-api/internal/config"
	"github.com/anafaris/wedding-api/internal/helpers"
	"github.com/anafaris/wedding-api/internal/models"
)

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges the shared dashboard password for a session token. The
// password comes from the environment, never from a literal in the codebase.
func AdminLogin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("password is required"))
			return
		}

		if !helpers.PasswordMatches(req.Password, cfg.AdminPassword, cfg.AdminPasswordHash) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("incorrect password"))
			return
		}

		token, err := helpers.GenerateAdminToken(cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("could not create admin session"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
