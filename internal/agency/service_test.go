// AngelaMos | 2026
// service_test.go

package agency

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/core"
)

type fakeRepo struct {
	agencies map[string]*Agency
	sidebars map[string][]SidebarOption
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		agencies: make(map[string]*Agency),
		sidebars: make(map[string][]SidebarOption),
	}
}

func (f *fakeRepo) CreateWithDefaults(
	_ context.Context,
	agency *Agency,
	options []SidebarOption,
) error {
	cp := *agency
	f.agencies[agency.ID] = &cp
	f.sidebars[agency.ID] = options
	return nil
}

func (f *fakeRepo) Update(_ context.Context, agency *Agency) error {
	if _, ok := f.agencies[agency.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *agency
	f.agencies[agency.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Agency, error) {
	a, ok := f.agencies[id]
	if !ok {
		return nil, fmt.Errorf("get agency: %w", core.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetByCustomerID(
	_ context.Context,
	customerID string,
) (*Agency, error) {
	for _, a := range f.agencies {
		if a.CustomerID == customerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get agency: %w", core.ErrNotFound)
}

func (f *fakeRepo) SetCustomerID(
	_ context.Context,
	id, customerID string,
) error {
	a, ok := f.agencies[id]
	if !ok {
		return core.ErrNotFound
	}
	a.CustomerID = customerID
	return nil
}

func (f *fakeRepo) UpdateGoal(_ context.Context, id string, goal int) error {
	a, ok := f.agencies[id]
	if !ok {
		return core.ErrNotFound
	}
	a.Goal = goal
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.agencies[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.agencies, id)
	delete(f.sidebars, id)
	return nil
}

func (f *fakeRepo) ListSidebarOptions(
	_ context.Context,
	agencyID string,
) ([]SidebarOption, error) {
	return f.sidebars[agencyID], nil
}

type fakeMembership struct {
	assignments []string
}

func (f *fakeMembership) AssignAgency(
	_ context.Context,
	userID, agencyID, role string,
) error {
	f.assignments = append(
		f.assignments, userID+":"+agencyID+":"+role,
	)
	return nil
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

func validRequest() UpsertAgencyRequest {
	return UpsertAgencyRequest{
		Name:         "Northwind Digital",
		CompanyEmail: "hello@northwind.example",
		Goal:         5,
	}
}

func TestUpsertCreatesAgencyWithSeededSidebar(t *testing.T) {
	repo := newFakeRepo()
	membership := &fakeMembership{}
	activity := &fakeActivity{}
	svc := NewService(repo, membership, activity)

	agency, err := svc.Upsert(context.Background(), "user-1", validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, agency.ID)

	options := repo.sidebars[agency.ID]
	require.Len(t, options, 6)

	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
		assert.Equal(t, agency.ID, opt.AgencyID)
		assert.Contains(t, opt.Link, "/agency/"+agency.ID)
	}
	assert.Contains(t, names, "Dashboard")
	assert.Contains(t, names, "Sub Accounts")
	assert.Contains(t, names, "Team")

	require.Len(t, membership.assignments, 1)
	assert.Equal(
		t, "user-1:"+agency.ID+":AGENCY_OWNER", membership.assignments[0],
	)

	require.Len(t, activity.entries, 1)
	assert.Contains(t, activity.entries[0], "Created agency")
}

func TestUpsertUpdatesExistingWithoutReseeding(t *testing.T) {
	repo := newFakeRepo()
	membership := &fakeMembership{}
	svc := NewService(repo, membership, &fakeActivity{})

	created, err := svc.Upsert(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.ID = created.ID
	req.Name = "Northwind Rebranded"

	updated, err := svc.Upsert(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Northwind Rebranded", updated.Name)

	// still only the creation assignment
	assert.Len(t, membership.assignments, 1)
	assert.Len(t, repo.sidebars[created.ID], 6)
}

func TestUpsertRejectsMissingCompanyEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeMembership{}, &fakeActivity{})

	req := validRequest()
	req.CompanyEmail = ""

	_, err := svc.Upsert(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLinkCustomerRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeMembership{}, &fakeActivity{})

	agency, err := svc.Upsert(context.Background(), "user-1", validRequest())
	require.NoError(t, err)

	require.NoError(
		t, svc.LinkCustomer(context.Background(), agency.ID, "cus_123"),
	)

	found, err := svc.FindByCustomerID(context.Background(), "cus_123")
	require.NoError(t, err)
	assert.Equal(t, agency.ID, found.ID)

	_, err = svc.FindByCustomerID(context.Background(), "cus_missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
