package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: s}
}

// Login is the POST /auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required", err)
		return
	}
	resp, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, dtos.Fail("Invalid credentials", err.Error()))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, dtos.Fail("Login failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Login successful", resp))
}

// Logout is the POST /auth/logout endpoint. It must run behind RequireAuth.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dtos.Fail("Access token required", ""))
		return
	}
	h.AuthService.Logout(claims)
	c.JSON(http.StatusOK, dtos.OK[any]("Logged out successfully", nil))
}
