package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/anafaris/wedding-api/internal/csvio"
	"github.com/anafaris/wedding-api/internal/middleware"
	"github.com/anafaris/wedding-api/internal/models"
	"github.com/anafaris/wedding-api/internal/services"
)

type contributionRequest struct {
	ItemID          string          `json:"item_id" binding:"required"`
	ContributorName string          `json:"contributor_name" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

func ListRegistry(gs *services.RegistryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := gs.ListItems(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func Contribute(gs *services.RegistryService, inv *middleware.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contributionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("item_id, contributor_name and amount are required"))
			return
		}

		item, err := gs.SubmitContribution(c.Request.Context(), req.ItemID, req.ContributorName, req.Amount)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		inv.PurgeRegistry(c.Request.Context())
		c.JSON(http.StatusOK, item)
	}
}

// UploadRegistryCSV accepts the admin dashboard's multipart upload. Error
// bodies carry a "detail" field because that is what the dashboard displays.
func UploadRegistryCSV(gs *services.RegistryService, inv *middleware.CacheInvalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "a CSV file is required in the \"file\" field"})
			return
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "only .csv files are accepted"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read the uploaded file"})
			return
		}
		defer file.Close()

		summary, err := gs.ImportCSV(c.Request.Context(), file)
		if err != nil {
			var parseErr *models.ParseError
			if errors.As(err, &parseErr) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": parseErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update the registry, please try again"})
			return
		}

		inv.PurgeRegistry(c.Request.Context())
		c.JSON(http.StatusOK, summary)
	}
}

func ExportRegistryCSV(gs *services.RegistryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := gs.ExportCSV(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="registry_export.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
	}
}

func DownloadRegistryTemplate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="registry_template.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", csvio.Template())
	}
}
