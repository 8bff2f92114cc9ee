package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fashionhub/internal/repository"
	"fashionhub/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"order not found", repository.ErrOrderNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: %q is not a valid id", repository.ErrOrderNotFound, "does-not-exist"), http.StatusNotFound},
		{"product not found", repository.ErrProductNotFound, http.StatusNotFound},
		{"already received", service.ErrOrderAlreadyReceived, http.StatusBadRequest},
		{"cancelled", service.ErrOrderCancelled, http.StatusBadRequest},
		{"not pending", service.ErrOrderNotPending, http.StatusBadRequest},
		{"insufficient stock", repository.ErrInsufficientStock, http.StatusBadRequest},
		{"wrapped insufficient stock", fmt.Errorf("failed to sell %q: %w", "Shirt", repository.ErrInsufficientStock), http.StatusBadRequest},
		{"duplicate barcode", repository.ErrDuplicateBarcode, http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive user", service.ErrUserInactive, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
