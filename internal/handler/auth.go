package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-tracker/internal/middleware"
	"github.com/iliyamo/task-tracker/internal/repository"
	"github.com/iliyamo/task-tracker/internal/service"
	"github.com/iliyamo/task-tracker/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Register creates the user and returns a success detail. Tokens are never
// returned here; the client must log in separately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	_, err := h.Auth.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"detail": "user registered successfully"})
}

// Login accepts form credentials (username holds the email) and returns an
// access/refresh token pair. Both an unknown user and a wrong password map
// to 404 at this boundary.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	pair, err := h.Auth.Login(c.Request().Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user does not exist"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "password does not match"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
	}
	return c.JSON(http.StatusOK, tokenResp{
		AccessToken:  pair.Access.Token,
		RefreshToken: pair.Refresh.Token,
		TokenType:    "bearer",
	})
}

// Refresh exchanges a bearer refresh token for a new access token. The
// refresh token is not rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	access, err := h.Auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidToken):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user does not exist"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "refresh failed"})
		}
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: access.Token, TokenType: "bearer"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	email, _ := c.Get(middleware.ContextEmailKey).(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Auth.CurrentUser(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        strconv.FormatUint(u.ID, 10),
		"email":     u.Email,
		"full_name": u.FullName,
	})
}
