package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-finder/backend/internal/edamam"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// statusFor maps service and client errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidSearch), errors.Is(err, service.ErrInvalidRecipe):
		return http.StatusBadRequest
	case errors.Is(err, edamam.ErrRecipeNotFound), errors.Is(err, service.ErrSavedRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadySaved), errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case edamam.IsConfigError(err):
		return http.StatusServiceUnavailable
	case edamam.IsRequestError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error with any notifications collected for the request
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		message = "internal server error"
	}
	c.JSON(status, ErrorBody{
		Error:         message,
		Notifications: middleware.Notifications(c),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:         message,
		Notifications: middleware.Notifications(c),
	})
}
