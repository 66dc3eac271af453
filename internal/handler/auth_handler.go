package handler

import (
	"errors"
	"net/http"

	"courseshare/internal/services"
	"courseshare/internal/transport/httpdto"
	apperrors "courseshare/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "cs_session"

// AuthHandler handles registration, login, logout and the login-status check.
type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	_, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("email already registered"))
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("name, email and password are required"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not register user"))
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "User registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	u, token, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid email or password"))
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("could not log in"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(h.service.SessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, httpdto.LoginResponse{
		IsLoggedIn: true,
		User:       httpdto.FromUser(u),
	})
}

// Logout always succeeds: the session is destroyed server-side and the
// cookie is expired, whatever state the request arrived in.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		c.Error(err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, httpdto.LogoutResponse{Success: true})
}

// CheckLogin reports the session state. It never fails: anything short of a
// live session and an existing user reads as unauthenticated.
func (h *AuthHandler) CheckLogin(c *gin.Context) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, httpdto.LoginResponse{IsLoggedIn: false})
		return
	}

	u, ok, err := h.service.CheckLogin(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusOK, httpdto.LoginResponse{IsLoggedIn: false})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, httpdto.LoginResponse{IsLoggedIn: false})
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{
		IsLoggedIn: true,
		User:       httpdto.FromUser(u),
	})
}
