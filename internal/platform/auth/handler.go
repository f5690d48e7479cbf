package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the session provider over HTTP.
type Handler struct {
	provider *Provider
	issuer   *TokenIssuer
}

func NewHandler(provider *Provider, issuer *TokenIssuer) *Handler {
	return &Handler{provider: provider, issuer: issuer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)

	users := api.Group("/users", RequireRole(RoleAdmin))
	users.GET("", h.ListUsers)
	users.DELETE("/:id", h.DeleteUser)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login checks the credential list. The failure message is deliberately
// generic: unknown email and wrong password are not distinguished.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, ok := h.provider.Login(req.Email, req.Password)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	token, err := h.issuer.Issue(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: u})
}

// Register creates an account without signing it in.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.provider.Register(req)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.provider.Logout(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	u, ok := h.provider.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.provider.Users())
}

func (h *Handler) DeleteUser(c echo.Context) error {
	if !h.provider.DeleteUser(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.NoContent(http.StatusNoContent)
}
