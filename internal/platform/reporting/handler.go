package reporting

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
)

// Handler serves report downloads. The format query parameter picks the file
// label; json is the default.
type Handler struct {
	builder *Builder
}

func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor)
	g := api.Group("/reports")
	g.GET("/practice", h.Practice, auth.RequireRole(auth.RoleAdmin))
	g.GET("/patient/:name", h.Patient, staff)
	g.GET("/doctor/:name", h.Doctor, staff)
}

func (h *Handler) Practice(c echo.Context) error {
	r, err := h.builder.PracticeSummary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.download(c, r)
}

func (h *Handler) Patient(c echo.Context) error {
	r, err := h.builder.PatientSummary(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.download(c, r)
}

func (h *Handler) Doctor(c echo.Context) error {
	r, err := h.builder.DoctorActivity(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.download(c, r)
}

func (h *Handler) download(c echo.Context, r *Report) error {
	format := c.QueryParam("format")
	if format == "" {
		format = FormatJSON
	}
	name, data, err := Export(r, format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
