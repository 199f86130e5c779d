package v1

import (
	"errors"
	"net/http"

	"github.com/centavo-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errOwnerInvalid            = errors.New("the X-User-ID header must be a valid UUID")
	errCategoryNotDeterminable = errors.New("no category was specified and no category rule matches the description")
	errMonthsInvalid           = errors.New("the months parameter must be a positive integer")
)
