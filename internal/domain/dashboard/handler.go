package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
)

// Handler serves the per-role dashboard views. Patients and doctors may only
// fetch the view for their own display name; admins can fetch anyone's.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/dashboard")
	g.GET("/patient/:name", h.Patient, auth.RequireRole(auth.RoleAdmin, auth.RolePatient))
	g.GET("/doctor/:name", h.Doctor, auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	g.GET("/admin", h.Admin, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) Patient(c echo.Context) error {
	name := c.Param("name")
	if err := h.authorizeSelf(c, name); err != nil {
		return err
	}
	view, err := h.svc.PatientData(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Doctor(c echo.Context) error {
	name := c.Param("name")
	if err := h.authorizeSelf(c, name); err != nil {
		return err
	}
	view, err := h.svc.DoctorData(c.Request().Context(), name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Admin(c echo.Context) error {
	stats, err := h.svc.Admin(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

// authorizeSelf lets admins through and holds everyone else to their own
// display name.
func (h *Handler) authorizeSelf(c echo.Context, name string) error {
	ctx := c.Request().Context()
	if auth.RoleFromContext(ctx) == auth.RoleAdmin {
		return nil
	}
	if auth.UserNameFromContext(ctx) != name {
		return echo.NewHTTPError(http.StatusForbidden, "cannot view another user's dashboard")
	}
	return nil
}
