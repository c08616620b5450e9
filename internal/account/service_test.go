// AngelaMos | 2026
// service_test.go

package account

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/core"
)

type fakeRepo struct {
	accounts map[string]*SubAccount
	seeds    map[string]Seed
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: make(map[string]*SubAccount),
		seeds:    make(map[string]Seed),
	}
}

func (f *fakeRepo) CreateWithDefaults(
	_ context.Context,
	account *SubAccount,
	seed Seed,
) error {
	f.accounts[account.ID] = account
	f.seeds[account.ID] = seed
	return nil
}

func (f *fakeRepo) Update(_ context.Context, account *SubAccount) error {
	if _, ok := f.accounts[account.ID]; !ok {
		return fmt.Errorf("update: %w", core.ErrNotFound)
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*SubAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, fmt.Errorf("get: %w", core.ErrNotFound)
	}
	copied := *account
	return &copied, nil
}

func (f *fakeRepo) ListByAgency(
	_ context.Context,
	agencyID string,
) ([]SubAccount, error) {
	var out []SubAccount
	for _, a := range f.accounts {
		if a.AgencyID == agencyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.accounts[id]; !ok {
		return fmt.Errorf("delete: %w", core.ErrNotFound)
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeRepo) ListSidebarOptions(
	_ context.Context,
	subAccountID string,
) ([]SidebarOption, error) {
	return f.seeds[subAccountID].SidebarOptions, nil
}

type fakeOwners struct {
	email string
	err   error
}

func (f *fakeOwners) FindAgencyOwnerEmail(
	_ context.Context,
	_ string,
) (string, error) {
	return f.email, f.err
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

func TestUpsertCreatesWithSeed(t *testing.T) {
	repo := newFakeRepo()
	activity := &fakeActivity{}
	svc := NewService(repo, &fakeOwners{email: "owner@acme.io"}, activity)

	created, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{
			Name:         "Client One",
			CompanyEmail: "hello@clientone.io",
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "agency-1", created.AgencyID)

	seed := repo.seeds[created.ID]
	assert.Equal(t, "owner@acme.io", seed.OwnerEmail)
	assert.Equal(t, "Lead Cycle", seed.PipelineName)
	assert.NotEmpty(t, seed.PipelineID)
	assert.Len(t, seed.SidebarOptions, 8)

	require.Len(t, activity.entries, 1)
	assert.Contains(t, activity.entries[0], "Created sub account")
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{email: "owner@acme.io"}, &fakeActivity{})

	created, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{
			Name:         "Client One",
			CompanyEmail: "hello@clientone.io",
		},
	)
	require.NoError(t, err)

	updated, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{
			ID:           created.ID,
			Name:         "Client One Renamed",
			CompanyEmail: "hello@clientone.io",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Client One Renamed", updated.Name)

	// update must not reseed
	assert.Len(t, repo.seeds, 1)
}

func TestUpsertRejectsCrossAgencyUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeOwners{email: "owner@acme.io"}, &fakeActivity{})

	created, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{
			Name:         "Client One",
			CompanyEmail: "hello@clientone.io",
		},
	)
	require.NoError(t, err)

	_, err = svc.Upsert(
		context.Background(), "actor-2", "agency-2",
		UpsertSubAccountRequest{
			ID:           created.ID,
			Name:         "Hijacked",
			CompanyEmail: "evil@other.io",
		},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpsertRequiresCompanyEmail(t *testing.T) {
	svc := NewService(
		newFakeRepo(), &fakeOwners{email: "owner@acme.io"}, &fakeActivity{},
	)

	_, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{Name: "No Email"},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpsertFailsWhenOwnerLookupFails(t *testing.T) {
	svc := NewService(
		newFakeRepo(),
		&fakeOwners{err: fmt.Errorf("owner: %w", core.ErrNotFound)},
		&fakeActivity{},
	)

	_, err := svc.Upsert(
		context.Background(), "actor-1", "agency-1",
		UpsertSubAccountRequest{
			Name:         "Client One",
			CompanyEmail: "hello@clientone.io",
		},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
