package handler

import (
	"errors"
	"net/http"

	"fashionhub/internal/repository"
	"fashionhub/internal/service"
	"fashionhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrSupplierNotFound),
		errors.Is(err, repository.ErrSaleNotFound),
		errors.Is(err, repository.ErrDraftNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOrderAlreadyReceived),
		errors.Is(err, service.ErrOrderCancelled),
		errors.Is(err, service.ErrOrderNotPending),
		errors.Is(err, service.ErrAdminExists),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrZeroAdjustment),
		errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, repository.ErrDuplicateBarcode),
		errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserInactive):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, response.Error(status, err.Error()))
}
