package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type AuthRateLimit struct {
	PerSecond float64
	Burst     int
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, limit AuthRateLimit) {
	h := &AuthHandler{auth: auth}
	limiter := authRateLimiter(limit.PerSecond, limit.Burst)

	g := e.Group("/api/auth")
	g.POST("/register", h.register, limiter)
	g.POST("/login", h.login, limiter)
	g.POST("/token/refresh", h.refresh, limiter)
	if auth.GoogleEnabled() {
		g.POST("/google", h.google, limiter)
	}

	protected := g.Group("", RequireAuth(auth))
	protected.POST("/logout", h.logout)
	protected.GET("/current-user", h.currentUser)
	protected.GET("/user-profile", h.currentUser)
	protected.DELETE("/delete-account", h.deleteAccount)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toTokenResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTokenResponse(result))
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTokenResponse(result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req googleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toTokenResponse(result))
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), currentSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) currentUser(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, toAuthUser(user))
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.DeleteAccount(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted"})
}

func toTokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		User:            toAuthUser(result.User),
		Access:          result.Access,
		AccessExpiresAt: result.AccessExpiresAt.UTC().Format(time.RFC3339),
		Refresh:         result.Refresh,
	}
}
