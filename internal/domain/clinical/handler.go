package clinical

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
	"github.com/swasthtrack/clinic/pkg/pagination"
)

// Handler exposes health records, vital readings and prescriptions.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the clinical endpoints. Writes are staff-only except
// vital readings, which patients record themselves from home devices.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor)

	records := api.Group("/health-records")
	records.GET("", h.ListRecords, staff)
	records.POST("", h.CreateRecord, staff)
	records.GET("/:id", h.GetRecord)
	records.PATCH("/:id", h.UpdateRecord, staff)
	records.DELETE("/:id", h.DeleteRecord, auth.RequireRole(auth.RoleAdmin))

	vitals := api.Group("/vitals")
	vitals.GET("", h.ListVitals, staff)
	vitals.POST("", h.RecordVital)

	rx := api.Group("/prescriptions")
	rx.GET("", h.ListPrescriptions, staff)
	rx.POST("", h.IssuePrescription, staff)
	rx.GET("/:id", h.GetPrescription)
	rx.PATCH("/:id", h.UpdatePrescription, staff)
	rx.POST("/:id/complete", h.CompletePrescription, staff)
	rx.POST("/:id/cancel", h.CancelPrescription, staff)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var req HealthRecord
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.CreateRecord(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetRecord(c echo.Context) error {
	r, err := h.svc.GetRecord(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "health record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	var patch HealthRecordPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := h.svc.UpdateRecord(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "health record not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	if err := h.svc.DeleteRecord(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "health record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListRecords(c echo.Context) error {
	rows, err := h.svc.ListRecords(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

func (h *Handler) RecordVital(c echo.Context) error {
	var req VitalReading
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.RecordVital(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListVitals(c echo.Context) error {
	rows, err := h.svc.ListVitals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

func (h *Handler) IssuePrescription(c echo.Context) error {
	var req Prescription
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.IssuePrescription(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	p, err := h.svc.GetPrescription(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	var patch PrescriptionPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.svc.UpdatePrescription(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CompletePrescription(c echo.Context) error {
	return h.prescriptionTransition(c, h.svc.CompletePrescription)
}

func (h *Handler) CancelPrescription(c echo.Context) error {
	return h.prescriptionTransition(c, h.svc.CancelPrescription)
}

func (h *Handler) prescriptionTransition(c echo.Context, op func(context.Context, string) (*Prescription, error)) error {
	p, err := op(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	rows, err := h.svc.ListPrescriptions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}
