package scheduling

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
	"github.com/swasthtrack/clinic/pkg/pagination"
)

// Handler exposes appointments and video calls over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the scheduling endpoints on the API group. Listing
// everything is staff-only; booking and per-call transitions are open to any
// authenticated user so patients can book and join their own sessions.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	appts := api.Group("/appointments")
	appts.GET("", h.ListAppointments, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	appts.POST("", h.CreateAppointment)
	appts.GET("/:id", h.GetAppointment)
	appts.PATCH("/:id", h.UpdateAppointment)
	appts.POST("/:id/confirm", h.ConfirmAppointment)
	appts.POST("/:id/complete", h.CompleteAppointment, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	appts.POST("/:id/cancel", h.CancelAppointment)
	appts.DELETE("/:id", h.DeleteAppointment, auth.RequireRole(auth.RoleAdmin))

	calls := api.Group("/video-calls")
	calls.GET("", h.ListCalls, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	calls.POST("", h.ScheduleCall)
	calls.GET("/:id", h.GetCall)
	calls.PATCH("/:id", h.UpdateCall)
	calls.POST("/:id/join", h.JoinCall)
	calls.POST("/:id/end", h.EndCall)
	calls.POST("/:id/cancel", h.CancelCall)
	calls.POST("/:id/missed", h.MarkCallMissed, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req Appointment
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.CreateAppointment(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.GetAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var patch AppointmentPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ConfirmAppointment(c echo.Context) error {
	return h.appointmentTransition(c, h.svc.ConfirmAppointment)
}

func (h *Handler) CompleteAppointment(c echo.Context) error {
	return h.appointmentTransition(c, h.svc.CompleteAppointment)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	return h.appointmentTransition(c, h.svc.CancelAppointment)
}

func (h *Handler) appointmentTransition(c echo.Context, op func(context.Context, string) (*Appointment, error)) error {
	a, err := op(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.DeleteAppointment(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	rows, err := h.svc.ListAppointments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

func (h *Handler) ScheduleCall(c echo.Context) error {
	var req VideoCall
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.ScheduleCall(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetCall(c echo.Context) error {
	v, err := h.svc.GetCall(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "video call not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) UpdateCall(c echo.Context) error {
	var patch VideoCallPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	v, err := h.svc.UpdateCall(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "video call not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) JoinCall(c echo.Context) error {
	return h.callTransition(c, h.svc.JoinCall)
}

func (h *Handler) EndCall(c echo.Context) error {
	return h.callTransition(c, h.svc.EndCall)
}

func (h *Handler) CancelCall(c echo.Context) error {
	return h.callTransition(c, h.svc.CancelCall)
}

func (h *Handler) MarkCallMissed(c echo.Context) error {
	return h.callTransition(c, h.svc.MarkCallMissed)
}

func (h *Handler) callTransition(c echo.Context, op func(context.Context, string) (*VideoCall, error)) error {
	v, err := op(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "video call not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListCalls(c echo.Context) error {
	rows, err := h.svc.ListCalls(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}
