package handler

import (
	"context"
	"net/http"
	"time"

	"carshare/internal/httpapi/dto"
	"carshare/internal/httpapi/middleware"
	"carshare/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the auth endpoints. Register and login are public
// (behind the rate limiter); logout and me need a bearer token.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, limited gin.HandlerFunc, authed gin.HandlerFunc) {
	rg.POST("/register", limited, h.Register)
	rg.POST("/login", limited, h.Login)
	rg.POST("/logout", authed, h.Logout)
	rg.GET("/me", authed, h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.authService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if err == service.ErrEmailInUse {
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{
				Success: false,
				Message: "validation failed",
				Errors:  map[string]string{"email": "already in use"},
			})
			return
		}
		respondError(c, http.StatusBadRequest, "registration failed")
		return
	}

	respondOK(c, http.StatusCreated, "registration successful", dto.AuthResponse{
		User:  dto.FromUser(*user),
		Token: token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	respondOK(c, http.StatusOK, "login successful", dto.AuthResponse{
		User:  dto.FromUser(*user),
		Token: token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.Logout(ctx, userID); err != nil {
		respondError(c, http.StatusInternalServerError, "logout failed")
		return
	}

	respondOK(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.Me(ctx, userID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "user not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"user": dto.FromUser(*user)})
}
