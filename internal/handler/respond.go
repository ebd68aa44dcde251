// Package handler maps the REST surface onto the service layer.
//
// Handlers never reach into storage directly and never rely on ambient
// identity: the authenticated user ID is read from the request context once
// and passed explicitly into every service call.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/auth"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/service"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

// renderError translates service and storage errors into the response
// taxonomy. Authorization failures and truly absent records share one 404
// shape so the responses are indistinguishable to the client.
func renderError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, validationErr.Fields)
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unable to log in with provided credentials."})
	default:
		slog.Error("request handling failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}

func renderBindError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
}
