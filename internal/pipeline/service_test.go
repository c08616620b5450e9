// AngelaMos | 2026
// service_test.go

package pipeline

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/core"
)

type fakeRepo struct {
	pipelines  map[string]*Pipeline
	lanes      map[string]*Lane
	tickets    map[string]*Ticket
	tags       map[string]*Tag
	ticketTags map[string][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pipelines:  make(map[string]*Pipeline),
		lanes:      make(map[string]*Lane),
		tickets:    make(map[string]*Ticket),
		tags:       make(map[string]*Tag),
		ticketTags: make(map[string][]string),
	}
}

// attachTags mirrors the tenant filter the ticket_tags insert applies:
// a tag only attaches inside its own sub-account.
func (f *fakeRepo) attachTags(ticket *Ticket, tagIDs []string) error {
	lane, ok := f.lanes[ticket.LaneID]
	if !ok {
		return fmt.Errorf("attach tags: %w", core.ErrNotFound)
	}
	p, ok := f.pipelines[lane.PipelineID]
	if !ok {
		return fmt.Errorf("attach tags: %w", core.ErrNotFound)
	}
	for _, id := range tagIDs {
		tag, ok := f.tags[id]
		if !ok || tag.SubAccountID != p.SubAccountID {
			return fmt.Errorf(
				"unknown tag %s: %w", id, core.ErrInvalidInput,
			)
		}
	}
	f.ticketTags[ticket.ID] = tagIDs
	return nil
}

func (f *fakeRepo) CreatePipeline(_ context.Context, p *Pipeline) error {
	p.Version = 1
	copied := *p
	f.pipelines[p.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdatePipeline(_ context.Context, id, name string) error {
	p, ok := f.pipelines[id]
	if !ok {
		return fmt.Errorf("update: %w", core.ErrNotFound)
	}
	p.Name = name
	return nil
}

func (f *fakeRepo) GetPipeline(
	_ context.Context,
	id string,
) (*Pipeline, error) {
	p, ok := f.pipelines[id]
	if !ok {
		return nil, fmt.Errorf("get: %w", core.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) ListPipelines(
	_ context.Context,
	subAccountID string,
) ([]Pipeline, error) {
	var out []Pipeline
	for _, p := range f.pipelines {
		if p.SubAccountID == subAccountID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeletePipeline(_ context.Context, id string) error {
	if _, ok := f.pipelines[id]; !ok {
		return fmt.Errorf("delete: %w", core.ErrNotFound)
	}
	delete(f.pipelines, id)
	return nil
}

func (f *fakeRepo) CreateLane(_ context.Context, lane *Lane) error {
	if _, ok := f.pipelines[lane.PipelineID]; !ok {
		return fmt.Errorf("create lane: %w", core.ErrNotFound)
	}
	next := 0
	for _, l := range f.lanes {
		if l.PipelineID == lane.PipelineID {
			next++
		}
	}
	lane.SortOrder = next
	copied := *lane
	f.lanes[lane.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateLane(_ context.Context, lane *Lane) error {
	existing, ok := f.lanes[lane.ID]
	if !ok {
		return fmt.Errorf("update lane: %w", core.ErrNotFound)
	}
	existing.Name = lane.Name
	existing.Color = lane.Color
	lane.SortOrder = existing.SortOrder
	return nil
}

func (f *fakeRepo) GetLane(_ context.Context, id string) (*Lane, error) {
	lane, ok := f.lanes[id]
	if !ok {
		return nil, fmt.Errorf("get lane: %w", core.ErrNotFound)
	}
	copied := *lane
	return &copied, nil
}

func (f *fakeRepo) ListLanes(
	_ context.Context,
	pipelineID string,
) ([]Lane, error) {
	var out []Lane
	for _, l := range f.lanes {
		if l.PipelineID == pipelineID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (f *fakeRepo) DeleteLane(_ context.Context, id string) error {
	lane, ok := f.lanes[id]
	if !ok {
		return fmt.Errorf("delete lane: %w", core.ErrNotFound)
	}
	pipelineID := lane.PipelineID
	delete(f.lanes, id)

	remaining, _ := f.ListLanes(context.Background(), pipelineID)
	for i := range remaining {
		f.lanes[remaining[i].ID].SortOrder = i
	}
	return nil
}

func (f *fakeRepo) ReorderLanes(
	_ context.Context,
	pipelineID string,
	baseVersion int64,
	orderedIDs []string,
) (int64, error) {
	p, ok := f.pipelines[pipelineID]
	if !ok {
		return 0, fmt.Errorf("reorder: %w", core.ErrNotFound)
	}
	if p.Version != baseVersion {
		return 0, fmt.Errorf("reorder: %w", core.ErrConflict)
	}

	var current []string
	for _, l := range f.lanes {
		if l.PipelineID == pipelineID {
			current = append(current, l.ID)
		}
	}
	if !sameIDSet(current, orderedIDs) {
		return 0, fmt.Errorf("reorder: %w", core.ErrInvalidInput)
	}

	for position, id := range orderedIDs {
		f.lanes[id].SortOrder = position
	}
	p.Version++
	return p.Version, nil
}

func (f *fakeRepo) CreateTicket(
	_ context.Context,
	ticket *Ticket,
	tagIDs []string,
) error {
	if _, ok := f.lanes[ticket.LaneID]; !ok {
		return fmt.Errorf("create ticket: %w", core.ErrNotFound)
	}
	next := 0
	for _, t := range f.tickets {
		if t.LaneID == ticket.LaneID {
			next++
		}
	}
	ticket.SortOrder = next
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return f.attachTags(&copied, tagIDs)
}

func (f *fakeRepo) UpdateTicket(
	_ context.Context,
	ticket *Ticket,
	tagIDs []string,
) error {
	existing, ok := f.tickets[ticket.ID]
	if !ok {
		return fmt.Errorf("update ticket: %w", core.ErrNotFound)
	}
	ticket.LaneID = existing.LaneID
	ticket.SortOrder = existing.SortOrder
	existing.Name = ticket.Name
	existing.Description = ticket.Description
	existing.Value = ticket.Value
	return f.attachTags(existing, tagIDs)
}

func (f *fakeRepo) GetTicket(_ context.Context, id string) (*Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, fmt.Errorf("get ticket: %w", core.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepo) ListTickets(
	_ context.Context,
	pipelineID string,
) ([]Ticket, error) {
	var out []Ticket
	for _, t := range f.tickets {
		if lane, ok := f.lanes[t.LaneID]; ok && lane.PipelineID == pipelineID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LaneID != out[j].LaneID {
			return out[i].LaneID < out[j].LaneID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (f *fakeRepo) DeleteTicket(_ context.Context, id string) error {
	t, ok := f.tickets[id]
	if !ok {
		return fmt.Errorf("delete ticket: %w", core.ErrNotFound)
	}
	laneID := t.LaneID
	delete(f.tickets, id)

	var rest []*Ticket
	for _, other := range f.tickets {
		if other.LaneID == laneID {
			rest = append(rest, other)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].SortOrder < rest[j].SortOrder
	})
	for i, other := range rest {
		other.SortOrder = i
	}
	return nil
}

func (f *fakeRepo) ReorderTickets(
	_ context.Context,
	pipelineID string,
	baseVersion int64,
	lanes []LaneTicketOrder,
) (int64, error) {
	p, ok := f.pipelines[pipelineID]
	if !ok {
		return 0, fmt.Errorf("reorder: %w", core.ErrNotFound)
	}
	if p.Version != baseVersion {
		return 0, fmt.Errorf("reorder: %w", core.ErrConflict)
	}

	affected := make(map[string]bool, len(lanes))
	var submitted []string
	for _, lane := range lanes {
		l, ok := f.lanes[lane.LaneID]
		if !ok || l.PipelineID != pipelineID {
			return 0, fmt.Errorf("reorder: %w", core.ErrInvalidInput)
		}
		affected[lane.LaneID] = true
		submitted = append(submitted, lane.TicketIDs...)
	}

	var current []string
	for _, t := range f.tickets {
		if affected[t.LaneID] {
			current = append(current, t.ID)
		}
	}
	if !sameIDSet(current, submitted) {
		return 0, fmt.Errorf("reorder: %w", core.ErrInvalidInput)
	}

	for _, lane := range lanes {
		for position, ticketID := range lane.TicketIDs {
			t := f.tickets[ticketID]
			t.LaneID = lane.LaneID
			t.SortOrder = position
		}
	}
	p.Version++
	return p.Version, nil
}

func (f *fakeRepo) UpsertTag(_ context.Context, tag *Tag) error {
	if existing, ok := f.tags[tag.ID]; ok {
		if existing.SubAccountID != tag.SubAccountID {
			return fmt.Errorf(
				"tag belongs to another sub account: %w", core.ErrForbidden,
			)
		}
		existing.Name = tag.Name
		existing.Color = tag.Color
		return nil
	}
	copied := *tag
	f.tags[tag.ID] = &copied
	return nil
}

func (f *fakeRepo) ListTags(
	_ context.Context,
	subAccountID string,
) ([]Tag, error) {
	var out []Tag
	for _, t := range f.tags {
		if t.SubAccountID == subAccountID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteTag(
	_ context.Context,
	subAccountID, id string,
) error {
	tag, ok := f.tags[id]
	if !ok || tag.SubAccountID != subAccountID {
		return fmt.Errorf("delete tag: %w", core.ErrNotFound)
	}
	delete(f.tags, id)
	return nil
}

func (f *fakeRepo) ListTicketTags(
	_ context.Context,
	_ string,
) (map[string][]Tag, error) {
	return map[string][]Tag{}, nil
}

type fakeActivity struct {
	entries []string
}

func (f *fakeActivity) Log(
	_ context.Context,
	_, _, _, description string,
) error {
	f.entries = append(f.entries, description)
	return nil
}

func seedBoard(t *testing.T, svc *Service) (*Pipeline, []*Lane) {
	t.Helper()

	p, err := svc.UpsertPipeline(
		context.Background(), "sub-1",
		UpsertPipelineRequest{Name: "Lead Cycle"},
	)
	require.NoError(t, err)

	lanes := make([]*Lane, 0, 3)
	for _, name := range []string{"Todo", "Doing", "Done"} {
		lane, err := svc.UpsertLane(
			context.Background(), p.ID, UpsertLaneRequest{Name: name},
		)
		require.NoError(t, err)
		lanes = append(lanes, lane)
	}

	return p, lanes
}

func TestLaneAppendGetsNextOrder(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})

	_, lanes := seedBoard(t, svc)
	for i, lane := range lanes {
		assert.Equal(t, i, lane.SortOrder)
	}
}

func TestReorderLanesAppliesPermutation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	version, err := svc.ReorderLanes(
		context.Background(), p.ID,
		ReorderLanesRequest{
			BaseVersion: 1,
			LaneIDs:     []string{lanes[2].ID, lanes[0].ID, lanes[1].ID},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	ordered, err := repo.ListLanes(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Done", ordered[0].Name)
	assert.Equal(t, "Todo", ordered[1].Name)
	assert.Equal(t, "Doing", ordered[2].Name)
}

func TestReorderLanesRejectsStaleVersion(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	ids := []string{lanes[2].ID, lanes[0].ID, lanes[1].ID}

	_, err := svc.ReorderLanes(
		context.Background(), p.ID,
		ReorderLanesRequest{BaseVersion: 1, LaneIDs: ids},
	)
	require.NoError(t, err)

	// a second client still holding version 1 must be told to refetch
	_, err = svc.ReorderLanes(
		context.Background(), p.ID,
		ReorderLanesRequest{BaseVersion: 1, LaneIDs: ids},
	)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestReorderLanesRejectsDuplicates(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	_, err := svc.ReorderLanes(
		context.Background(), p.ID,
		ReorderLanesRequest{
			BaseVersion: 1,
			LaneIDs:     []string{lanes[0].ID, lanes[0].ID, lanes[1].ID},
		},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestReorderLanesRejectsPartialSet(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	_, err := svc.ReorderLanes(
		context.Background(), p.ID,
		ReorderLanesRequest{
			BaseVersion: 1,
			LaneIDs:     []string{lanes[0].ID, lanes[1].ID},
		},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestTicketAppendGetsNextOrderPerLane(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	_, lanes := seedBoard(t, svc)

	for i := 0; i < 3; i++ {
		ticket, err := svc.UpsertTicket(
			context.Background(), "actor", "agency-1", "sub-1",
			lanes[0].ID,
			UpsertTicketRequest{Name: fmt.Sprintf("Ticket %d", i)},
		)
		require.NoError(t, err)
		assert.Equal(t, i, ticket.SortOrder)
	}

	other, err := svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[1].ID,
		UpsertTicketRequest{Name: "Other lane"},
	)
	require.NoError(t, err)
	assert.Equal(t, 0, other.SortOrder)
}

func TestReorderTicketsMovesAcrossLanes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	a, err := svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[0].ID, UpsertTicketRequest{Name: "A"},
	)
	require.NoError(t, err)
	b, err := svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[0].ID, UpsertTicketRequest{Name: "B"},
	)
	require.NoError(t, err)

	version, err := svc.ReorderTickets(
		context.Background(), p.ID,
		ReorderTicketsRequest{
			BaseVersion: 1,
			Lanes: []LaneTicketOrder{
				{LaneID: lanes[0].ID, TicketIDs: []string{b.ID}},
				{LaneID: lanes[1].ID, TicketIDs: []string{a.ID}},
			},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	moved, err := repo.GetTicket(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, lanes[1].ID, moved.LaneID)
	assert.Equal(t, 0, moved.SortOrder)

	stayed, err := repo.GetTicket(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, lanes[0].ID, stayed.LaneID)
	assert.Equal(t, 0, stayed.SortOrder)
}

func TestReorderTicketsRejectsDroppedTicket(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	a, err := svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[0].ID, UpsertTicketRequest{Name: "A"},
	)
	require.NoError(t, err)
	_, err = svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[0].ID, UpsertTicketRequest{Name: "B"},
	)
	require.NoError(t, err)

	// submitting only one of the two tickets would silently drop the
	// other from the board
	_, err = svc.ReorderTickets(
		context.Background(), p.ID,
		ReorderTicketsRequest{
			BaseVersion: 1,
			Lanes: []LaneTicketOrder{
				{LaneID: lanes[0].ID, TicketIDs: []string{a.ID}},
			},
		},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestReorderTicketsRejectsStaleVersion(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	a, err := svc.UpsertTicket(
		context.Background(), "actor", "agency-1", "sub-1",
		lanes[0].ID, UpsertTicketRequest{Name: "A"},
	)
	require.NoError(t, err)

	order := ReorderTicketsRequest{
		BaseVersion: 1,
		Lanes: []LaneTicketOrder{
			{LaneID: lanes[0].ID, TicketIDs: []string{a.ID}},
		},
	}

	_, err = svc.ReorderTickets(context.Background(), p.ID, order)
	require.NoError(t, err)

	_, err = svc.ReorderTickets(context.Background(), p.ID, order)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestDeleteLaneRecompactsOrders(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})
	p, lanes := seedBoard(t, svc)

	require.NoError(t, svc.DeleteLane(context.Background(), lanes[1].ID))

	remaining, err := repo.ListLanes(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 0, remaining[0].SortOrder)
	assert.Equal(t, 1, remaining[1].SortOrder)
}

func TestUpsertPipelineRejectsCrossSubAccount(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeActivity{})
	p, _ := seedBoard(t, svc)

	_, err := svc.UpsertPipeline(
		context.Background(), "sub-other",
		UpsertPipelineRequest{ID: p.ID, Name: "Hijack"},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpsertTicketRejectsCrossSubAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})

	_, lanes := seedBoard(t, svc)
	victim, err := svc.UpsertTicket(
		context.Background(), "user-1", "agency-1", "sub-1", lanes[0].ID,
		UpsertTicketRequest{Name: "secret deal"},
	)
	require.NoError(t, err)

	otherPipeline, err := svc.UpsertPipeline(
		context.Background(), "sub-other",
		UpsertPipelineRequest{Name: "Other Cycle"},
	)
	require.NoError(t, err)
	otherLane, err := svc.UpsertLane(
		context.Background(), otherPipeline.ID,
		UpsertLaneRequest{Name: "Inbox"},
	)
	require.NoError(t, err)

	_, err = svc.UpsertTicket(
		context.Background(), "user-2", "agency-2", "sub-other",
		otherLane.ID,
		UpsertTicketRequest{ID: victim.ID, Name: "defaced"},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	kept, err := repo.GetTicket(context.Background(), victim.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret deal", kept.Name)
}

func TestUpsertTagRejectsForeignID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})

	tag, err := svc.UpsertTag(
		context.Background(), "sub-1",
		UpsertTagRequest{Name: "hot", Color: "#f00"},
	)
	require.NoError(t, err)

	_, err = svc.UpsertTag(
		context.Background(), "sub-other",
		UpsertTagRequest{ID: tag.ID, Name: "stolen", Color: "#000"},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	kept := repo.tags[tag.ID]
	assert.Equal(t, "hot", kept.Name)
	assert.Equal(t, "sub-1", kept.SubAccountID)
}

func TestDeleteTagScopedToSubAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})

	tag, err := svc.UpsertTag(
		context.Background(), "sub-1",
		UpsertTagRequest{Name: "hot", Color: "#f00"},
	)
	require.NoError(t, err)

	err = svc.DeleteTag(context.Background(), "sub-other", tag.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, repo.tags, tag.ID)

	require.NoError(t, svc.DeleteTag(context.Background(), "sub-1", tag.ID))
	assert.NotContains(t, repo.tags, tag.ID)
}

func TestUpsertTicketRejectsForeignTags(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeActivity{})

	_, lanes := seedBoard(t, svc)
	foreign, err := svc.UpsertTag(
		context.Background(), "sub-other",
		UpsertTagRequest{Name: "vip", Color: "#0f0"},
	)
	require.NoError(t, err)

	_, err = svc.UpsertTicket(
		context.Background(), "user-1", "agency-1", "sub-1", lanes[0].ID,
		UpsertTicketRequest{Name: "Deal", TagIDs: []string{foreign.ID}},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
