// AngelaMos | 2026
// handler.go

package account

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
	r.Route("/agencies/{agencyID}/subaccounts", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Upsert)
		r.Get("/", h.List)
	})

	r.Route("/subaccounts/{subAccountID}", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Get)
		r.Get("/sidebar", h.GetSidebar)
		r.Delete("/", h.Delete)
	})
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
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

	var req UpsertSubAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetUserID(r.Context())
	result, err := h.service.Upsert(r.Context(), actorID, agencyID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "company email is required")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "sub account belongs to another agency")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToSubAccountResponse(result))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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

	accounts, err := h.service.ListByAgency(r.Context(), agencyID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubAccountResponseList(accounts))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	core.OK(w, ToSubAccountResponse(account))
}

func (h *Handler) GetSidebar(w http.ResponseWriter, r *http.Request) {
	account, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	options, err := h.service.GetSidebarOptions(r.Context(), account.ID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSidebarOptionResponses(options))
}

// Delete removes the sub-account. Permission grants never convey
// delete, so only agency-level roles get through the policy here.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := h.authorized(w, r, authz.CapabilityDelete)
	if !ok {
		return
	}

	actorID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), actorID, account); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sub account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// authorized loads the sub-account named in the URL and checks the
// capability against it. The load has to come first because the target
// carries the owning agency id.
func (h *Handler) authorized(
	w http.ResponseWriter,
	r *http.Request,
	capability authz.Capability,
) (*SubAccount, bool) {
	subAccountID := chi.URLParam(r, "subAccountID")

	account, err := h.service.Get(r.Context(), subAccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sub account")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	err = h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.SubAccountTarget(account.AgencyID, account.ID),
		capability,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this sub account")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	return account, true
}
