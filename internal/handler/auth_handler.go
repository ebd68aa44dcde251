package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/service"
)

// AuthHandler serves registration and token issuance.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /users/.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/login/ and exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	token, _, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
