package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bridalstudio/models"
	"bridalstudio/services/user"
	"bridalstudio/utils"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

// NewAuthHandler creates an AuthHandler with its dependencies.
func NewAuthHandler(svc user.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Logger: logger}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input user.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.Register(input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   resp.Token,
		"user":    gin.H{"id": resp.ID, "name": resp.Name, "email": resp.Email, "role": resp.Role},
	})
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   resp.Token,
		"user":    gin.H{"id": resp.ID, "name": resp.Name, "email": resp.Email, "role": resp.Role},
	})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	account, err := h.Service.GetUserByID(c.GetString("userID"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": account})
}

func (h *AuthHandler) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Error()})
		return
	}

	switch {
	case errors.Is(err, user.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "An account with that email already exists"})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
	default:
		h.Logger.Error("Auth request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
