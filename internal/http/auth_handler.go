package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authsvc/internal/service"
)

// AuthHandler expone las operaciones de autenticación sobre HTTP/JSON.
type AuthHandler struct {
	logger *zap.Logger
	auth   *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth}
}

// HealthCheck maneja GET /health.
func (h *AuthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user_id": id.String()})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": token})
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.SessionID, req.UserID); err != nil {
		h.fail(c, "logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ValidateSession maneja POST /auth/validate.
func (h *AuthHandler) ValidateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.auth.ValidateSession(c.Request.Context(), req.SessionID, req.UserID); err != nil {
		h.fail(c, "validate session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdatePassword maneja POST /auth/password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		SessionID   string `json:"session_id"`
		UserID      string `json:"user_id"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.auth.UpdatePassword(c.Request.Context(), req.SessionID, req.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		h.fail(c, "update password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount maneja POST /auth/delete.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.auth.DeleteAccount(c.Request.Context(), req.SessionID, req.UserID); err != nil {
		h.fail(c, "delete account", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// fail traduce la taxonomía de errores a códigos HTTP. Las fallas de store
// o internas nunca exponen detalle al cliente.
func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
