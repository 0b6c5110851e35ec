package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anafaris/wedding-api/internal/models"
)

// respondServiceError maps domain errors onto status codes: validation and
// parse failures are the caller's to fix, missing aggregates are 404, anything
// else is a storage-side 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		parseErr      *models.ParseError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(validationErr.Error()))
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(parseErr.Error()))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, models.ErrorResponse(notFoundErr.Error()))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("something went wrong, please try again later"))
	}
}
