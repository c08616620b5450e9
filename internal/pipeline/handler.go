// AngelaMos | 2026
// handler.go

package pipeline

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

// AccountSource resolves a sub-account to its owning agency so the
// authorization target can be built. The account service implements it.
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
	r.Route("/subaccounts/{subAccountID}", func(r chi.Router) {
		r.Use(authenticator)

		r.Route("/pipelines", func(r chi.Router) {
			r.Post("/", h.UpsertPipeline)
			r.Get("/", h.ListPipelines)

			r.Route("/{pipelineID}", func(r chi.Router) {
				r.Get("/", h.GetBoard)
				r.Delete("/", h.DeletePipeline)

				r.Post("/lanes", h.UpsertLane)
				r.Put("/lanes/reorder", h.ReorderLanes)
				r.Delete("/lanes/{laneID}", h.DeleteLane)
				r.Post("/lanes/{laneID}/tickets", h.UpsertTicket)

				r.Put("/tickets/reorder", h.ReorderTickets)
				r.Delete("/tickets/{ticketID}", h.DeleteTicket)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Post("/", h.UpsertTag)
			r.Get("/", h.ListTags)
			r.Delete("/{tagID}", h.DeleteTag)
		})
	})
}

func (h *Handler) UpsertPipeline(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	var req UpsertPipelineRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.service.UpsertPipeline(r.Context(), subAccountID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToPipelineResponse(p))
}

func (h *Handler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	pipelines, err := h.service.ListPipelines(r.Context(), subAccountID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToPipelineResponseList(pipelines))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	board, err := h.service.GetBoard(r.Context(), p.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, board)
}

func (h *Handler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	if err := h.service.DeletePipeline(r.Context(), p.ID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpsertLane(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	var req UpsertLaneRequest
	if !h.decode(w, r, &req) {
		return
	}

	lane, err := h.service.UpsertLane(r.Context(), p.ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, LaneResponse{
		ID:        lane.ID,
		Name:      lane.Name,
		Color:     lane.Color,
		SortOrder: lane.SortOrder,
		Tickets:   []TicketResponse{},
	})
}

// ReorderLanes replaces the lane order with the submitted permutation.
// A stale base version comes back as 409; the client refetches the
// board and redoes the drag.
func (h *Handler) ReorderLanes(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	var req ReorderLanesRequest
	if !h.decode(w, r, &req) {
		return
	}

	version, err := h.service.ReorderLanes(r.Context(), p.ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]int64{"version": version})
}

func (h *Handler) DeleteLane(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	lane, ok := h.ownedLane(w, r, p.ID)
	if !ok {
		return
	}

	if err := h.service.DeleteLane(r.Context(), lane.ID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpsertTicket(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	lane, ok := h.ownedLane(w, r, p.ID)
	if !ok {
		return
	}

	var req UpsertTicketRequest
	if !h.decode(w, r, &req) {
		return
	}

	agencyID := middleware.GetAgencyID(r.Context())
	actorID := middleware.GetUserID(r.Context())

	ticket, err := h.service.UpsertTicket(
		r.Context(), actorID, agencyID, subAccountID, lane.ID, req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, TicketResponse{
		ID:             ticket.ID,
		LaneID:         ticket.LaneID,
		Name:           ticket.Name,
		Description:    ticket.Description,
		Value:          ticket.Value,
		SortOrder:      ticket.SortOrder,
		ContactID:      ticket.ContactID,
		AssignedUserID: ticket.AssignedUserID,
		Tags:           []TagResponse{},
	})
}

func (h *Handler) ReorderTickets(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	var req ReorderTicketsRequest
	if !h.decode(w, r, &req) {
		return
	}

	version, err := h.service.ReorderTickets(r.Context(), p.ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]int64{"version": version})
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	p, ok := h.ownedPipeline(w, r, subAccountID)
	if !ok {
		return
	}

	ticketID := chi.URLParam(r, "ticketID")
	ticket, err := h.service.GetTicket(r.Context(), ticketID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	lane, err := h.service.GetLane(r.Context(), ticket.LaneID)
	if err != nil || lane.PipelineID != p.ID {
		core.NotFound(w, "ticket")
		return
	}

	if err := h.service.DeleteTicket(r.Context(), ticket.ID); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpsertTag(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	var req UpsertTagRequest
	if !h.decode(w, r, &req) {
		return
	}

	tag, err := h.service.UpsertTag(r.Context(), subAccountID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToTagResponse(tag))
}

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityView)
	if !ok {
		return
	}

	tags, err := h.service.ListTags(r.Context(), subAccountID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToTagResponseList(tags))
}

func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	subAccountID, ok := h.authorized(w, r, authz.CapabilityManage)
	if !ok {
		return
	}

	if err := h.service.DeleteTag(
		r.Context(), subAccountID, chi.URLParam(r, "tagID"),
	); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

// authorized resolves the sub-account's agency and checks the
// capability against the sub-account target.
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

// ownedPipeline loads the pipeline in the URL and rejects it when it
// hangs off a different sub-account than the one that was authorized.
func (h *Handler) ownedPipeline(
	w http.ResponseWriter,
	r *http.Request,
	subAccountID string,
) (*Pipeline, bool) {
	pipelineID := chi.URLParam(r, "pipelineID")

	p, err := h.service.GetPipeline(r.Context(), pipelineID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "pipeline")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	if p.SubAccountID != subAccountID {
		core.NotFound(w, "pipeline")
		return nil, false
	}

	return p, true
}

func (h *Handler) ownedLane(
	w http.ResponseWriter,
	r *http.Request,
	pipelineID string,
) (*Lane, bool) {
	laneID := chi.URLParam(r, "laneID")

	lane, err := h.service.GetLane(r.Context(), laneID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lane")
			return nil, false
		}
		core.InternalServerError(w, err)
		return nil, false
	}

	if lane.PipelineID != pipelineID {
		core.NotFound(w, "lane")
		return nil, false
	}

	return lane, true
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
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, "the board changed since it was loaded")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "no access to this resource")
	default:
		core.InternalServerError(w, err)
	}
}
