// AngelaMos | 2026
// handler.go

package agency

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/core"
	"github.com/angelamos/agencyhub/internal/middleware"
)

type Handler struct {
	service   *Service
	access    *authz.Resolver
	validator *validator.Validate
}

func NewHandler(service *Service, access *authz.Resolver) *Handler {
	return &Handler{
		service:   service,
		access:    access,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/agencies", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Upsert)
		r.Get("/{agencyID}", h.Get)
		r.Get("/{agencyID}/sidebar", h.GetSidebar)
		r.Put("/{agencyID}/goal", h.UpdateGoal)
		r.Delete("/{agencyID}", h.Delete)
	})
}

// Upsert creates the caller's agency on first use or updates the one
// they already manage. A user who already belongs to an agency may only
// target that agency.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	principal := authz.PrincipalFrom(r.Context())

	var req UpsertAgencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if principal.AgencyID != "" {
		if req.ID == "" || req.ID != principal.AgencyID {
			core.Forbidden(w, "no access to this agency")
			return
		}

		err := h.access.Authorize(
			r.Context(),
			principal,
			authz.AgencyTarget(req.ID),
			authz.CapabilityManage,
		)
		if err != nil {
			if errors.Is(err, core.ErrForbidden) {
				core.Forbidden(w, "no access to this agency")
				return
			}
			core.InternalServerError(w, err)
			return
		}
	}

	result, err := h.service.Upsert(r.Context(), principal.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "company email is required")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "agency already exists")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToAgencyResponse(result))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		authz.CapabilityView,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	result, err := h.service.Get(r.Context(), agencyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAgencyResponse(result))
}

func (h *Handler) GetSidebar(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		authz.CapabilityView,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	options, err := h.service.GetSidebarOptions(r.Context(), agencyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSidebarOptionResponses(options))
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		authz.CapabilityManage,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.UpdateGoal(r.Context(), userID, agencyID, req.Goal); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// Delete removes the agency and everything under it. The policy only
// grants the delete capability to the agency owner.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		authz.CapabilityDelete,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the agency owner can delete the agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), agencyID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "agency")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
