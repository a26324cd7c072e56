// AngelaMos | 2026
// handler.go

package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/middleware"
	"github.com/carterperez-dev/invoicery/internal/pdf"
	"github.com/carterperez-dev/invoicery/internal/template"
)

type Handler struct {
	service   *Service
	templates *template.Service
	renderer  *pdf.Renderer
	validator *validator.Validate
}

func NewHandler(
	service *Service,
	templates *template.Service,
	renderer *pdf.Renderer,
) *Handler {
	return &Handler{
		service:   service,
		templates: templates,
		renderer:  renderer,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/invoices", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{invoiceID}", h.Get)
		r.Put("/{invoiceID}", h.Update)
		r.Delete("/{invoiceID}", h.Delete)
		r.Patch("/{invoiceID}/status", h.UpdateStatus)
		r.Get("/{invoiceID}/pdf", h.DownloadPDF)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListInvoicesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
	}

	if params.Status != "" && !Status(params.Status).Valid() {
		core.BadRequest(w, fmt.Sprintf(
			"unknown invoice status %q", params.Status,
		))
		return
	}

	invoices, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToInvoiceResponseList(invoices),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inv, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToInvoiceResponse(inv))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	invoiceID := chi.URLParam(r, "invoiceID")

	inv, err := h.service.Get(r.Context(), userID, invoiceID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invoice")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToInvoiceResponse(inv))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	invoiceID := chi.URLParam(r, "invoiceID")

	var req UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inv, err := h.service.Update(r.Context(), userID, invoiceID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invoice")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToInvoiceResponse(inv))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	invoiceID := chi.URLParam(r, "invoiceID")

	if err := h.service.Delete(r.Context(), userID, invoiceID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invoice")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	invoiceID := chi.URLParam(r, "invoiceID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inv, err := h.service.UpdateStatus(
		r.Context(),
		userID,
		invoiceID,
		Status(req.Status),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invoice")
			return
		}
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToInvoiceResponse(inv))
}

func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	invoiceID := chi.URLParam(r, "invoiceID")

	inv, err := h.service.Get(r.Context(), userID, invoiceID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invoice")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	style := h.templates.ResolveStyle(
		r.Context(),
		inv.TemplateID,
		inv.StyleOverride.Style,
	)

	output, err := h.renderer.Render(buildRenderData(inv, style))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	filename := h.renderer.Filename(inv.InvoiceNumber, inv.IssueDate)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename),
	)
	w.Header().Set("Content-Length", strconv.Itoa(len(output)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client disconnects are not actionable
	_, _ = w.Write(output)
}

func buildRenderData(inv *Invoice, style template.Style) pdf.Data {
	lines := make([]pdf.Line, 0, len(inv.Items))
	for _, item := range inv.Items {
		lines = append(lines, pdf.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	return pdf.Data{
		Title:          "INVOICE",
		Number:         inv.InvoiceNumber,
		Status:         string(inv.Status),
		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		CompanyEmail:   inv.CompanyEmail,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		ClientEmail:    inv.ClientEmail,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Currency:       inv.Currency,
		Lines:          lines,
		Notes:          inv.Notes,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Style:          style,
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
