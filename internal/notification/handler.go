// AngelaMos | 2026
// handler.go

package notification

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/core"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// AccountSource resolves a sub-account to its owning agency for
// authorization targets.
type AccountSource interface {
	AgencyIDFor(ctx context.Context, subAccountID string) (string, error)
}

type Handler struct {
	service  *Service
	access   *authz.Resolver
	accounts AccountSource
}

func NewHandler(
	service *Service,
	access *authz.Resolver,
	accounts AccountSource,
) *Handler {
	return &Handler{service: service, access: access, accounts: accounts}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).
		Get("/agencies/{agencyID}/notifications", h.ListByAgency)
	r.With(authenticator).
		Get("/subaccounts/{subAccountID}/notifications", h.ListBySubAccount)
}

// ListByAgency returns the agency-wide activity feed. Only agency-level
// roles can see it; sub-account members use the per-account feed.
func (h *Handler) ListByAgency(w http.ResponseWriter, r *http.Request) {
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

	page, pageSize := pagination(r)
	notifications, total, err := h.service.ListByAgency(
		r.Context(), agencyID, page, pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w, ToNotificationResponseList(notifications), page, pageSize, total,
	)
}

func (h *Handler) ListBySubAccount(w http.ResponseWriter, r *http.Request) {
	subAccountID := chi.URLParam(r, "subAccountID")

	agencyID, err := h.accounts.AgencyIDFor(r.Context(), subAccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sub account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	err = h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.SubAccountTarget(agencyID, subAccountID),
		authz.CapabilityView,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "no access to this sub account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	page, pageSize := pagination(r)
	notifications, total, err := h.service.ListBySubAccount(
		r.Context(), subAccountID, page, pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w, ToNotificationResponseList(notifications), page, pageSize, total,
	)
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
