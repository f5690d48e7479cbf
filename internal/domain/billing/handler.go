package billing

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swasthtrack/clinic/internal/platform/auth"
	"github.com/swasthtrack/clinic/pkg/pagination"
)

// Handler exposes payments and invoices over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the billing endpoints. Paying an appointment is open
// to any authenticated user; the rest of the ledger is staff-only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor)

	api.POST("/appointments/:id/pay", h.PayAppointment)

	payments := api.Group("/payments")
	payments.GET("", h.ListPayments, staff)
	payments.POST("", h.RecordPayment, staff)
	payments.GET("/:id", h.GetPayment, staff)
	payments.POST("/:id/refund", h.RefundPayment, auth.RequireRole(auth.RoleAdmin))

	invoices := api.Group("/invoices")
	invoices.GET("", h.ListInvoices, staff)
	invoices.POST("", h.GenerateInvoice, staff)
	invoices.GET("/:id", h.GetInvoice)
	invoices.POST("/:id/send", h.SendInvoice, staff)
	invoices.POST("/:id/paid", h.MarkInvoicePaid, staff)
	invoices.POST("/:id/overdue", h.MarkInvoiceOverdue, staff)
}

type payRequest struct {
	Method string `json:"method"`
}

func (h *Handler) PayAppointment(c echo.Context) error {
	var req payRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.svc.ProcessAppointmentPayment(c.Request().Context(), c.Param("id"), req.Method)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var req Payment
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.RecordPayment(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPayment(c echo.Context) error {
	p, err := h.svc.GetPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) RefundPayment(c echo.Context) error {
	p, err := h.svc.RefundPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPayments(c echo.Context) error {
	rows, err := h.svc.ListPayments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}

type invoiceRequest struct {
	PatientName string        `json:"patient_name"`
	DoctorName  string        `json:"doctor_name"`
	Services    []ServiceLine `json:"services"`
}

func (h *Handler) GenerateInvoice(c echo.Context) error {
	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	inv, err := h.svc.GenerateInvoice(c.Request().Context(), req.PatientName, req.DoctorName, req.Services)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	inv, err := h.svc.GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) SendInvoice(c echo.Context) error {
	return h.invoiceTransition(c, h.svc.SendInvoice)
}

func (h *Handler) MarkInvoicePaid(c echo.Context) error {
	return h.invoiceTransition(c, h.svc.MarkInvoicePaid)
}

func (h *Handler) MarkInvoiceOverdue(c echo.Context) error {
	return h.invoiceTransition(c, h.svc.MarkInvoiceOverdue)
}

func (h *Handler) invoiceTransition(c echo.Context, op func(context.Context, string) (*Invoice, error)) error {
	inv, err := op(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListInvoices(c echo.Context) error {
	rows, err := h.svc.ListInvoices(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	lo, hi := pg.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[lo:hi], len(rows), pg.Limit, pg.Offset))
}
