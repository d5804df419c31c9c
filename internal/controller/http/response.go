package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/usecase"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondUseCaseError maps use case failures to HTTP statuses. Unrecognized
// errors become an opaque 500.
func respondUseCaseError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid username/email or password")
	case errors.Is(err, usecase.ErrUserExists):
		respondError(c, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, usecase.ErrAlreadyPurchased):
		respondError(c, http.StatusConflict, "Gallery access already purchased")
	case errors.Is(err, usecase.ErrAmountOutOfRange):
		respondError(c, http.StatusBadRequest, "Tip amount out of range")
	case errors.Is(err, usecase.ErrProvider):
		respondError(c, http.StatusBadGateway, "Upstream service unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// baseURL reconstructs scheme://host of the request for checkout redirect
// targets, honoring the forwarded proto set by a TLS-terminating proxy.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
