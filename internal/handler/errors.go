package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
	"github.com/flicky/storefront/internal/service"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrBannerNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrEmailTaken, http.StatusConflict},
	{repository.ErrConflict, http.StatusConflict},
	{service.ErrNotSignedIn, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrVerificationRequired, http.StatusForbidden},
	{service.ErrBackupDisabled, http.StatusServiceUnavailable},
	{model.ErrInvalid, http.StatusBadRequest},
	{service.ErrInvalidPromo, http.StatusBadRequest},
	{service.ErrEmptyOrder, http.StatusBadRequest},
	{service.ErrIncompleteDestination, http.StatusBadRequest},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest},
	{service.ErrInvalidTransition, http.StatusBadRequest},
	{service.ErrInvalidCode, http.StatusBadRequest},
	{service.ErrInvalidPurpose, http.StatusBadRequest},
}

// respondError maps a service error to a status code. Anything unexpected,
// storage failures included, becomes a 500 with the detail kept for the log.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
