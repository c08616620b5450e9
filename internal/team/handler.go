// AngelaMos | 2026
// handler.go

package team

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
	r.Route("/agencies/{agencyID}/invitations", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.SendInvitation)
		r.Get("/", h.ListInvitations)
		r.Delete("/{invitationID}", h.RevokeInvitation)
	})

	r.Route("/agencies/{agencyID}/permissions", func(r chi.Router) {
		r.Use(authenticator)

		r.Put("/", h.UpsertPermission)
		r.Get("/", h.ListUserPermissions)
	})

	r.Route("/membership", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ResolveMembership)
		r.Post("/accept", h.AcceptInvitation)
	})
}

func (h *Handler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	if !h.authorizeAgency(w, r, agencyID, authz.CapabilityManage) {
		return
	}

	var req SendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetUserID(r.Context())
	inv, err := h.service.SendInvitation(r.Context(), actorID, agencyID, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "an invitation for this email already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToInvitationResponse(inv))
}

func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	if !h.authorizeAgency(w, r, agencyID, authz.CapabilityView) {
		return
	}

	invs, err := h.service.ListInvitations(r.Context(), agencyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToInvitationResponseList(invs))
}

func (h *Handler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")
	invitationID := chi.URLParam(r, "invitationID")

	if !h.authorizeAgency(w, r, agencyID, authz.CapabilityManage) {
		return
	}

	if err := h.service.RevokeInvitation(r.Context(), invitationID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invitation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpsertPermission(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	if !h.authorizeAgency(w, r, agencyID, authz.CapabilityManage) {
		return
	}

	var req UpsertPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetUserID(r.Context())
	perm, err := h.service.UpsertPermission(r.Context(), actorID, agencyID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "sub account belongs to another agency")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "sub account")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToPermissionResponse(perm))
}

func (h *Handler) ListUserPermissions(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	if !h.authorizeAgency(w, r, agencyID, authz.CapabilityView) {
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		core.BadRequest(w, "email query parameter is required")
		return
	}

	perms, err := h.service.ListUserPermissions(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPermissionResponseList(perms))
}

// ResolveMembership is the read half of onboarding: it reports where
// the caller belongs and whether an invitation is waiting.
func (h *Handler) ResolveMembership(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	membership, err := h.service.ResolveMembership(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, membership)
}

// AcceptInvitation is the write half: the caller explicitly consumes
// their pending invitation.
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	email := middleware.GetUserEmail(r.Context())

	membership, err := h.service.AcceptInvitation(r.Context(), userID, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "pending invitation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, membership)
}

func (h *Handler) authorizeAgency(
	w http.ResponseWriter,
	r *http.Request,
	agencyID string,
	capability authz.Capability,
) bool {
	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		capability,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this agency")
			return false
		}
		core.InternalServerError(w, err)
		return false
	}

	return true
}
