package notification

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
	"github.com/swasthtrack/clinic/pkg/pagination"
)

// Handler exposes the notification feed. Users read their own feed by the
// display name attached to their token; staff can post and list everything.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/notifications")
	g.GET("", h.ListMine)
	g.GET("/all", h.ListAll, auth.RequireRole(auth.RoleAdmin))
	g.GET("/unread-count", h.UnreadCount)
	g.POST("", h.Notify, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	g.POST("/:id/read", h.MarkRead)
	g.POST("/read-all", h.MarkAllRead)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Notify(c echo.Context) error {
	var req Notification
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.Notify(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListMine(c echo.Context) error {
	name := auth.UserNameFromContext(c.Request().Context())
	if name == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user in context")
	}
	rows, err := h.svc.ListForRecipient(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

func (h *Handler) ListAll(c echo.Context) error {
	rows, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

func (h *Handler) UnreadCount(c echo.Context) error {
	name := auth.UserNameFromContext(c.Request().Context())
	if name == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user in context")
	}
	n, err := h.svc.UnreadCount(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": n})
}

func (h *Handler) MarkRead(c echo.Context) error {
	n, err := h.svc.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	name := auth.UserNameFromContext(c.Request().Context())
	if name == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no user in context")
	}
	n, err := h.svc.MarkAllRead(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": n})
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
