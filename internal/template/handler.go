// AngelaMos | 2026
// handler.go

package template

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Reads are open to any authenticated user; writes are admin only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/templates", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{templateID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{templateID}", h.Update)
			r.Delete("/{templateID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTemplateResponseList(templates))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	tmpl, err := h.service.Get(r.Context(), templateID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "template")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTemplateResponse(tmpl))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tmpl, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToTemplateResponse(tmpl))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	var req UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tmpl, err := h.service.Update(r.Context(), templateID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "template")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTemplateResponse(tmpl))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")

	if err := h.service.Delete(r.Context(), templateID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "template")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
