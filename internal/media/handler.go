// AngelaMos | 2026
// handler.go

package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/core"
	"github.com/angelamos/agencyhub/internal/middleware"
)

type AccountSource interface {
	AgencyIDFor(ctx context.Context, subAccountID string) (string, error)
}

type Handler struct {
	service   *Service
	access    *authz.Resolver
	accounts  AccountSource
	validator *validator.Validate
}

func NewHandler(
	service *Service,
	access *authz.Resolver,
	accounts AccountSource,
) *Handler {
	return &Handler{
		service:   service,
		access:    access,
		accounts:  accounts,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/subaccounts/{subAccountID}/media", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{mediaID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	subAccountID, agencyID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	var req CreateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetUserID(r.Context())
	m, err := h.service.Create(
		r.Context(), actorID, agencyID, subAccountID, req,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToMediaResponse(m))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subAccountID, _, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), subAccountID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMediaResponseList(items))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	subAccountID, _, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	mediaID := chi.URLParam(r, "mediaID")
	if err := h.service.Delete(r.Context(), subAccountID, mediaID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "media")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) authorized(
	w http.ResponseWriter,
	r *http.Request,
	capability authz.Capability,
) (string, string, bool) {
	subAccountID := chi.URLParam(r, "subAccountID")

	agencyID, err := h.accounts.AgencyIDFor(r.Context(), subAccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sub account")
			return "", "", false
		}
		core.InternalServerError(w, err)
		return "", "", false
	}

	err = h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.SubAccountTarget(agencyID, subAccountID),
		capability,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this sub account")
			return "", "", false
		}
		core.InternalServerError(w, err)
		return "", "", false
	}

	return subAccountID, agencyID, true
}
