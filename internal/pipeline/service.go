// AngelaMos | 2026
// service.go

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

type ActivityLogger interface {
	Log(
		ctx context.Context,
		agencyID, subAccountID, actorID, description string,
	) error
}

type Service struct {
	repo     Repository
	activity ActivityLogger
}

func NewService(repo Repository, activity ActivityLogger) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) UpsertPipeline(
	ctx context.Context,
	subAccountID string,
	req UpsertPipelineRequest,
) (*Pipeline, error) {
	if req.ID != "" {
		existing, err := s.repo.GetPipeline(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if existing.SubAccountID != subAccountID {
				return nil, fmt.Errorf(
					"pipeline belongs to another sub account: %w",
					core.ErrForbidden,
				)
			}
			if err := s.repo.UpdatePipeline(ctx, req.ID, req.Name); err != nil {
				return nil, err
			}
			existing.Name = req.Name
			return existing, nil
		}
	}

	p := &Pipeline{
		ID:           req.ID,
		SubAccountID: subAccountID,
		Name:         req.Name,
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	if err := s.repo.CreatePipeline(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetPipeline(
	ctx context.Context,
	id string,
) (*Pipeline, error) {
	return s.repo.GetPipeline(ctx, id)
}

func (s *Service) ListPipelines(
	ctx context.Context,
	subAccountID string,
) ([]Pipeline, error) {
	return s.repo.ListPipelines(ctx, subAccountID)
}

func (s *Service) DeletePipeline(ctx context.Context, id string) error {
	return s.repo.DeletePipeline(ctx, id)
}

// GetBoard assembles the full kanban view: lanes in order, each with
// its tickets in order and their tags.
func (s *Service) GetBoard(
	ctx context.Context,
	pipelineID string,
) (*BoardResponse, error) {
	p, err := s.repo.GetPipeline(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	lanes, err := s.repo.ListLanes(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.repo.ListTickets(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	ticketTags, err := s.repo.ListTicketTags(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	byLane := make(map[string][]TicketResponse, len(lanes))
	for i := range tickets {
		t := &tickets[i]
		tags := ToTagResponseList(ticketTags[t.ID])
		if tags == nil {
			tags = []TagResponse{}
		}
		byLane[t.LaneID] = append(byLane[t.LaneID], TicketResponse{
			ID:             t.ID,
			LaneID:         t.LaneID,
			Name:           t.Name,
			Description:    t.Description,
			Value:          t.Value,
			SortOrder:      t.SortOrder,
			ContactID:      t.ContactID,
			AssignedUserID: t.AssignedUserID,
			Tags:           tags,
		})
	}

	board := &BoardResponse{
		Pipeline: ToPipelineResponse(p),
		Lanes:    make([]LaneResponse, 0, len(lanes)),
	}
	for i := range lanes {
		lane := &lanes[i]
		laneTickets := byLane[lane.ID]
		if laneTickets == nil {
			laneTickets = []TicketResponse{}
		}
		board.Lanes = append(board.Lanes, LaneResponse{
			ID:        lane.ID,
			Name:      lane.Name,
			Color:     lane.Color,
			SortOrder: lane.SortOrder,
			Tickets:   laneTickets,
		})
	}

	return board, nil
}

func (s *Service) UpsertLane(
	ctx context.Context,
	pipelineID string,
	req UpsertLaneRequest,
) (*Lane, error) {
	if req.ID != "" {
		existing, err := s.repo.GetLane(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if existing.PipelineID != pipelineID {
				return nil, fmt.Errorf(
					"lane belongs to another pipeline: %w", core.ErrForbidden,
				)
			}
			existing.Name = req.Name
			existing.Color = req.Color
			if err := s.repo.UpdateLane(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	lane := &Lane{
		ID:         req.ID,
		PipelineID: pipelineID,
		Name:       req.Name,
		Color:      req.Color,
	}
	if lane.ID == "" {
		lane.ID = uuid.New().String()
	}

	if err := s.repo.CreateLane(ctx, lane); err != nil {
		return nil, err
	}

	return lane, nil
}

func (s *Service) GetLane(ctx context.Context, id string) (*Lane, error) {
	return s.repo.GetLane(ctx, id)
}

func (s *Service) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	return s.repo.GetTicket(ctx, id)
}

func (s *Service) DeleteLane(ctx context.Context, id string) error {
	return s.repo.DeleteLane(ctx, id)
}

// ReorderLanes validates the submitted permutation and applies it
// against the client's base version. A stale base version surfaces as
// a conflict; the caller refetches the board and retries.
func (s *Service) ReorderLanes(
	ctx context.Context,
	pipelineID string,
	req ReorderLanesRequest,
) (int64, error) {
	if err := validateDistinct(req.LaneIDs); err != nil {
		return 0, err
	}

	return s.repo.ReorderLanes(
		ctx, pipelineID, req.BaseVersion, req.LaneIDs,
	)
}

func (s *Service) UpsertTicket(
	ctx context.Context,
	actorID, agencyID, subAccountID, laneID string,
	req UpsertTicketRequest,
) (*Ticket, error) {
	if req.ID != "" {
		existing, err := s.repo.GetTicket(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			lane, err := s.repo.GetLane(ctx, existing.LaneID)
			if err != nil {
				return nil, err
			}
			owner, err := s.repo.GetPipeline(ctx, lane.PipelineID)
			if err != nil {
				return nil, err
			}
			if owner.SubAccountID != subAccountID {
				return nil, fmt.Errorf(
					"ticket belongs to another sub account: %w",
					core.ErrForbidden,
				)
			}
			existing.Name = req.Name
			existing.Description = req.Description
			existing.Value = req.Value
			existing.ContactID = req.ContactID
			existing.AssignedUserID = req.AssignedUserID
			if err := s.repo.UpdateTicket(
				ctx, existing, req.TagIDs,
			); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	ticket := &Ticket{
		ID:             req.ID,
		LaneID:         laneID,
		Name:           req.Name,
		Description:    req.Description,
		Value:          req.Value,
		ContactID:      req.ContactID,
		AssignedUserID: req.AssignedUserID,
	}
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}

	if err := s.repo.CreateTicket(ctx, ticket, req.TagIDs); err != nil {
		return nil, err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agencyID, subAccountID, actorID,
		"Created ticket "+ticket.Name,
	)

	return ticket, nil
}

func (s *Service) DeleteTicket(ctx context.Context, id string) error {
	return s.repo.DeleteTicket(ctx, id)
}

// ReorderTickets applies per-lane ticket orders, including cross-lane
// moves, as one atomic permutation of the affected lanes.
func (s *Service) ReorderTickets(
	ctx context.Context,
	pipelineID string,
	req ReorderTicketsRequest,
) (int64, error) {
	laneIDs := make([]string, 0, len(req.Lanes))
	var ticketIDs []string
	for _, lane := range req.Lanes {
		laneIDs = append(laneIDs, lane.LaneID)
		ticketIDs = append(ticketIDs, lane.TicketIDs...)
	}

	if err := validateDistinct(laneIDs); err != nil {
		return 0, err
	}
	if err := validateDistinct(ticketIDs); err != nil {
		return 0, err
	}

	return s.repo.ReorderTickets(
		ctx, pipelineID, req.BaseVersion, req.Lanes,
	)
}

func (s *Service) UpsertTag(
	ctx context.Context,
	subAccountID string,
	req UpsertTagRequest,
) (*Tag, error) {
	tag := &Tag{
		ID:           req.ID,
		SubAccountID: subAccountID,
		Name:         req.Name,
		Color:        req.Color,
	}
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}

	if err := s.repo.UpsertTag(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (s *Service) ListTags(
	ctx context.Context,
	subAccountID string,
) ([]Tag, error) {
	return s.repo.ListTags(ctx, subAccountID)
}

func (s *Service) DeleteTag(
	ctx context.Context,
	subAccountID, id string,
) error {
	return s.repo.DeleteTag(ctx, subAccountID, id)
}

func validateDistinct(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf(
				"duplicate id %s in reorder: %w", id, core.ErrInvalidInput,
			)
		}
		seen[id] = true
	}

	return nil
}
