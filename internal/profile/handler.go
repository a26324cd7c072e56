// AngelaMos | 2026
// handler.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/invoicery/internal/config"
	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/middleware"
)

type Handler struct {
	service        *Service
	maxUploadBytes int64
	validator      *validator.Validate
}

func NewHandler(service *Service, cfg config.StorageConfig) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: cfg.MaxUploadBytes,
		validator:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/business-profile", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Post("/logo", h.UploadLogo)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "business profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(p))
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			core.JSONError(w, core.NewAppError(
				core.ErrInvalidInput,
				"logo exceeds the upload size limit",
				http.StatusRequestEntityTooLarge,
				"FILE_TOO_LARGE",
			))
			return
		}
		core.BadRequest(w, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		core.BadRequest(w, "missing logo file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadLogo(r.Context(), userID, file)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "business profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, LogoResponse{LogoURL: url})
}
