// AngelaMos | 2026
// handler.go

package document

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
	r.Route("/documents", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{documentID}", h.Get)
		r.Put("/{documentID}", h.Update)
		r.Delete("/{documentID}", h.Delete)
		r.Post("/{documentID}/duplicate", h.Duplicate)
		r.Get("/{documentID}/pdf", h.DownloadPDF)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListDocumentsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	docs, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDocumentResponseList(docs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	doc, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToDocumentResponse(doc))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.service.Get(r.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDocumentResponse(doc))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	documentID := chi.URLParam(r, "documentID")

	var req UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	doc, err := h.service.Update(r.Context(), userID, documentID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDocumentResponse(doc))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	documentID := chi.URLParam(r, "documentID")

	if err := h.service.Delete(r.Context(), userID, documentID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.service.Duplicate(r.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToDocumentResponse(doc))
}

func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.service.Get(r.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	style := h.templates.ResolveStyle(
		r.Context(),
		doc.TemplateID,
		doc.StyleOverride.Style,
	)

	output, err := h.renderer.Render(buildRenderData(doc, style))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	number := ""
	if doc.Number != nil {
		number = *doc.Number
	}
	filename := h.renderer.Filename(number, doc.IssueDate)

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

func buildRenderData(doc *Document, style template.Style) pdf.Data {
	lines := make([]pdf.Line, 0, len(doc.Items))
	for _, item := range doc.Items {
		lines = append(lines, pdf.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	number := ""
	if doc.Number != nil {
		number = *doc.Number
	}

	return pdf.Data{
		Title:          "DOCUMENT",
		Number:         number,
		CompanyName:    doc.CompanyName,
		CompanyAddress: doc.CompanyAddress,
		CompanyEmail:   doc.CompanyEmail,
		ClientName:     doc.ClientName,
		ClientAddress:  doc.ClientAddress,
		ClientEmail:    doc.ClientEmail,
		IssueDate:      doc.IssueDate,
		DueDate:        doc.DueDate,
		Currency:       doc.Currency,
		Lines:          lines,
		Notes:          doc.Notes,
		Subtotal:       doc.Subtotal,
		Discount:       doc.Discount,
		TaxRate:        doc.TaxRate,
		TaxAmount:      doc.TaxAmount,
		Total:          doc.Total,
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
