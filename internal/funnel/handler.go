// AngelaMos | 2026
// handler.go

package funnel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/core"
)

// AccountSource resolves a sub-account to its owning agency for
// authorization targets.
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
	r.Route("/subaccounts/{subAccountID}/funnels", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.UpsertFunnel)
		r.Get("/", h.ListFunnels)

		r.Route("/{funnelID}", func(r chi.Router) {
			r.Get("/", h.GetFunnel)
			r.Delete("/", h.DeleteFunnel)
			r.Put("/publish", h.Publish)
			r.Put("/products", h.UpdateProducts)

			r.Post("/pages", h.UpsertPage)
			r.Get("/pages", h.ListPages)
			r.Put("/pages/reorder", h.ReorderPages)
			r.Get("/pages/{pageID}", h.GetPage)
			r.Put("/pages/{pageID}/content", h.UpdatePageContent)
			r.Delete("/pages/{pageID}", h.DeletePage)
		})
	})

	// the public site renderer hits this without a session
	r.Get("/sites/{subdomain}", h.PublicPage)
	r.Get("/sites/{subdomain}/{path}", h.PublicPage)
}

func (h *Handler) UpsertFunnel(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	var req UpsertFunnelRequest
	if !h.decode(w, r, &req) {
		return
	}

	f, err := h.service.UpsertFunnel(r.Context(), subAccountID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToFunnelResponse(f))
}

func (h *Handler) ListFunnels(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	funnels, err := h.service.ListFunnels(r.Context(), subAccountID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToFunnelResponseList(funnels))
}

func (h *Handler) GetFunnel(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	core.OK(w, ToFunnelResponse(f))
}

func (h *Handler) DeleteFunnel(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	if err := h.service.DeleteFunnel(r.Context(), f.ID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.service.SetPublished(
		r.Context(), f.ID, req.Published,
	); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpdateProducts(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	var req UpdateProductsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.SetLiveProducts(
		r.Context(), f.ID, req.LiveProducts,
	); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpsertPage(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	var req UpsertPageRequest
	if !h.decode(w, r, &req) {
		return
	}

	page, err := h.service.UpsertPage(r.Context(), f.ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp, err := ToPageResponse(page, false)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	pages, err := h.service.ListPages(r.Context(), f.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	responses := make([]PageResponse, 0, len(pages))
	for i := range pages {
		resp, err := ToPageResponse(&pages[i], false)
		if err != nil {
			h.writeError(w, err)
			return
		}
		responses = append(responses, resp)
	}

	core.OK(w, responses)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	page, ok := h.ownedPage(w, r, f.ID)
	if !ok {
		return
	}

	resp, err := ToPageResponse(page, true)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdatePageContent(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	page, ok := h.ownedPage(w, r, f.ID)
	if !ok {
		return
	}

	var req UpdatePageContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.service.UpdatePageContent(
		r.Context(), page.ID, req.Content,
	); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ReorderPages(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	var req ReorderPagesRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ReorderPages(r.Context(), f.ID, req); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	f, ok := h.ownedFunnel(w, r, subAccountID)
	if !ok {
		return
	}

	page, ok := h.ownedPage(w, r, f.ID)
	if !ok {
		return
	}

	if err := h.service.DeletePage(r.Context(), page.ID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

// PublicPage renders a published page for visitors, no session needed.
func (h *Handler) PublicPage(w http.ResponseWriter, r *http.Request) {
	subdomain := chi.URLParam(r, "subdomain")
	path := chi.URLParam(r, "path")

	page, err := h.service.PublicPage(r.Context(), subdomain, path)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "page")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	resp, err := ToPageResponse(page, true)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) authorized(
	w http.ResponseWriter,
	r *http.Request,
	capability authz.Capability,
) (string, bool) {
	subAccountID := chi.URLParam(r, "subAccountID")

	agencyID, err := h.accounts.AgencyIDFor(r.Context(), subAccountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sub account")
			return "", false
		}
		core.InternalServerError(w, err)
		return "", false
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
			return "", false
		}
		core.InternalServerError(w, err)
		return "", false
	}

	return subAccountID, true
}

func (h *Handler) ownedFunnel(
	w http.ResponseWriter,
	r *http.Request,
	subAccountID string,
) (*Funnel, bool) {
	funnelID := chi.URLParam(r, "funnelID")

	f, err := h.service.GetFunnel(r.Context(), funnelID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "funnel")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	if f.SubAccountID != subAccountID {
		core.NotFound(w, "funnel")
		return nil, false
	}

	return f, true
}

func (h *Handler) ownedPage(
	w http.ResponseWriter,
	r *http.Request,
	funnelID string,
) (*Page, bool) {
	pageID := chi.URLParam(r, "pageID")

	page, err := h.service.GetPage(r.Context(), pageID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "page")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	if page.FunnelID != funnelID {
		core.NotFound(w, "page")
		return nil, false
	}

	return page, true
}

func (h *Handler) decode(
	w http.ResponseWriter,
	r *http.Request,
	dst any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "resource")
	case errors.Is(err, core.ErrDuplicateKey):
		core.Conflict(w, "subdomain already taken")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "no access to this resource")
	default:
		core.InternalServerError(w, err)
	}
}
