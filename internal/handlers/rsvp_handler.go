package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anafaris/wedding-api/internal/middleware"
	"github.com/anafaris/wedding-api/internal/models"
	"github.com/anafaris/wedding-api/internal/services"
)

type rsvpRequest struct {
	Name   string `json:"name" binding:"required"`
	Pax    int    `json:"pax" binding:"required,gt=0"`
	Wishes string `json:"wishes"`
}

func CreateRSVP(rs *services.RSVPService, inv *middleware.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rsvpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("name and a positive pax are required"))
			return
		}

		rsvp, err := rs.SubmitRSVP(c.Request.Context(), req.Name, req.Pax, req.Wishes)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		inv.PurgeRSVPs(c.Request.Context())
		c.JSON(http.StatusCreated, rsvp)
	}
}

func ListRSVPs(rs *services.RSVPService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rsvps, err := rs.ListRSVPs(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, rsvps)
	}
}

func ExportRSVPs(rs *services.RSVPService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := rs.ExportCSV(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="rsvps.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
	}
}
