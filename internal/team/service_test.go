// AngelaMos | 2026
// service_test.go

package team

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/agencyhub/internal/core"
)

type fakeRepo struct {
	perms       map[string]*Permission
	invitations map[string]*Invitation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		perms:       make(map[string]*Permission),
		invitations: make(map[string]*Invitation),
	}
}

func permKey(email, subAccountID string) string {
	return email + "|" + subAccountID
}

func (f *fakeRepo) UpsertPermission(_ context.Context, perm *Permission) error {
	key := permKey(perm.Email, perm.SubAccountID)
	if existing, ok := f.perms[key]; ok {
		existing.Access = perm.Access
		*perm = *existing
		return nil
	}
	copied := *perm
	f.perms[key] = &copied
	return nil
}

func (f *fakeRepo) GetPermission(
	_ context.Context,
	email, subAccountID string,
) (*Permission, error) {
	perm, ok := f.perms[permKey(email, subAccountID)]
	if !ok {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	copied := *perm
	return &copied, nil
}

func (f *fakeRepo) ListPermissionsByEmail(
	_ context.Context,
	email string,
) ([]Permission, error) {
	var out []Permission
	for _, p := range f.perms {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasAccess(
	_ context.Context,
	email, subAccountID string,
) (bool, error) {
	perm, ok := f.perms[permKey(email, subAccountID)]
	return ok && perm.Access, nil
}

func (f *fakeRepo) CreateInvitation(_ context.Context, inv *Invitation) error {
	for _, existing := range f.invitations {
		if existing.Email == inv.Email && existing.IsPending() {
			return fmt.Errorf("create invitation: %w", core.ErrDuplicateKey)
		}
	}
	copied := *inv
	f.invitations[inv.ID] = &copied
	return nil
}

func (f *fakeRepo) GetPendingInvitationByEmail(
	_ context.Context,
	email string,
) (*Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Email == email && inv.IsPending() {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get invitation: %w", core.ErrNotFound)
}

func (f *fakeRepo) ListInvitationsByAgency(
	_ context.Context,
	agencyID string,
) ([]Invitation, error) {
	var out []Invitation
	for _, inv := range f.invitations {
		if inv.AgencyID == agencyID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkInvitation(_ context.Context, id, status string) error {
	inv, ok := f.invitations[id]
	if !ok {
		return fmt.Errorf("mark invitation: %w", core.ErrNotFound)
	}
	inv.Status = status
	return nil
}

func (f *fakeRepo) DeleteInvitation(_ context.Context, id string) error {
	if _, ok := f.invitations[id]; !ok {
		return fmt.Errorf("delete invitation: %w", core.ErrNotFound)
	}
	delete(f.invitations, id)
	return nil
}

type fakeDirectory struct {
	members  map[string]*Member
	assigned []string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{members: make(map[string]*Member)}
}

func (f *fakeDirectory) FindMemberByEmail(
	_ context.Context,
	email string,
) (*Member, error) {
	member, ok := f.members[email]
	if !ok {
		return nil, fmt.Errorf("find member: %w", core.ErrNotFound)
	}
	copied := *member
	return &copied, nil
}

func (f *fakeDirectory) AssignAgency(
	_ context.Context,
	userID, agencyID, role string,
) error {
	f.assigned = append(f.assigned, userID)
	for _, member := range f.members {
		if member.UserID == userID {
			member.AgencyID = agencyID
			member.Role = role
		}
	}
	return nil
}

type fakeAccounts struct {
	owners map[string]string
}

func (f *fakeAccounts) AgencyIDFor(
	_ context.Context,
	subAccountID string,
) (string, error) {
	agencyID, ok := f.owners[subAccountID]
	if !ok {
		return "", fmt.Errorf("sub account: %w", core.ErrNotFound)
	}
	return agencyID, nil
}

type fakeNamer struct{}

func (fakeNamer) AgencyName(_ context.Context, _ string) (string, error) {
	return "Acme Agency", nil
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

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendInvitation(
	_ context.Context,
	email, _, _ string,
) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func newTestService(
	repo *fakeRepo,
	dir *fakeDirectory,
	mailer *fakeMailer,
) *Service {
	accounts := &fakeAccounts{owners: map[string]string{
		"sub-1": "agency-1",
		"sub-2": "agency-2",
	}}
	return NewService(
		repo, dir, fakeNamer{}, accounts, &fakeActivity{}, mailer,
		"https://app.example.com", slog.Default(),
	)
}

func TestSendInvitation(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	mailer := &fakeMailer{}
	svc := newTestService(repo, dir, mailer)

	inv, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "new@example.com", Role: "SUBACCOUNT_USER",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, InvitationPending, inv.Status)
	assert.Equal(t, []string{"new@example.com"}, mailer.sent)
}

func TestSendInvitationRejectsDuplicate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory(), &fakeMailer{})

	_, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "new@example.com", Role: "SUBACCOUNT_USER",
		},
	)
	require.NoError(t, err)

	_, err = svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "new@example.com", Role: "AGENCY_ADMIN",
		},
	)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestSendInvitationRejectsExistingMember(t *testing.T) {
	dir := newFakeDirectory()
	dir.members["taken@example.com"] = &Member{
		UserID: "user-1", AgencyID: "agency-9", Role: "SUBACCOUNT_USER",
	}
	svc := newTestService(newFakeRepo(), dir, &fakeMailer{})

	_, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "taken@example.com", Role: "SUBACCOUNT_USER",
		},
	)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestSendInvitationSurvivesMailFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{err: fmt.Errorf("smtp down")}
	svc := newTestService(repo, newFakeDirectory(), mailer)

	inv, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "new@example.com", Role: "SUBACCOUNT_USER",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, InvitationPending, repo.invitations[inv.ID].Status)
}

func TestResolveMembershipIsReadOnly(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	dir.members["invitee@example.com"] = &Member{UserID: "user-1"}
	svc := newTestService(repo, dir, &fakeMailer{})

	_, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "invitee@example.com", Role: "SUBACCOUNT_USER",
		},
	)
	require.NoError(t, err)

	membership, err := svc.ResolveMembership(
		context.Background(), "invitee@example.com",
	)
	require.NoError(t, err)
	assert.True(t, membership.PendingInvitation)
	assert.Empty(t, membership.AgencyID)

	// resolving must not consume the invitation or assign membership
	assert.Empty(t, dir.assigned)
	for _, inv := range repo.invitations {
		assert.Equal(t, InvitationPending, inv.Status)
	}
}

func TestAcceptInvitation(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	dir.members["invitee@example.com"] = &Member{UserID: "user-1"}
	svc := newTestService(repo, dir, &fakeMailer{})

	inv, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "invitee@example.com", Role: "AGENCY_ADMIN",
		},
	)
	require.NoError(t, err)

	membership, err := svc.AcceptInvitation(
		context.Background(), "user-1", "invitee@example.com",
	)
	require.NoError(t, err)
	assert.Equal(t, "agency-1", membership.AgencyID)
	assert.Equal(t, "AGENCY_ADMIN", membership.Role)
	assert.Equal(t, InvitationAccepted, repo.invitations[inv.ID].Status)
	assert.Equal(t, []string{"user-1"}, dir.assigned)
}

func TestAcceptInvitationIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	dir.members["invitee@example.com"] = &Member{UserID: "user-1"}
	svc := newTestService(repo, dir, &fakeMailer{})

	_, err := svc.SendInvitation(
		context.Background(), "actor-1", "agency-1",
		SendInvitationRequest{
			Email: "invitee@example.com", Role: "AGENCY_ADMIN",
		},
	)
	require.NoError(t, err)

	first, err := svc.AcceptInvitation(
		context.Background(), "user-1", "invitee@example.com",
	)
	require.NoError(t, err)

	second, err := svc.AcceptInvitation(
		context.Background(), "user-1", "invitee@example.com",
	)
	require.NoError(t, err)
	assert.Equal(t, first.AgencyID, second.AgencyID)
	assert.Equal(t, first.Role, second.Role)

	// membership was only assigned once
	assert.Equal(t, []string{"user-1"}, dir.assigned)
}

func TestAcceptInvitationWithoutInvitation(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeDirectory(), &fakeMailer{})

	_, err := svc.AcceptInvitation(
		context.Background(), "user-1", "nobody@example.com",
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpsertPermissionTogglesAccess(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory(), &fakeMailer{})

	granted, err := svc.UpsertPermission(
		context.Background(), "actor-1", "agency-1",
		UpsertPermissionRequest{
			Email:        "member@example.com",
			SubAccountID: "sub-1",
			Access:       true,
		},
	)
	require.NoError(t, err)
	assert.True(t, granted.Access)

	has, err := svc.HasAccess(
		context.Background(), "member@example.com", "sub-1",
	)
	require.NoError(t, err)
	assert.True(t, has)

	revoked, err := svc.UpsertPermission(
		context.Background(), "actor-1", "agency-1",
		UpsertPermissionRequest{
			Email:        "member@example.com",
			SubAccountID: "sub-1",
			Access:       false,
		},
	)
	require.NoError(t, err)
	assert.False(t, revoked.Access)

	has, err = svc.HasAccess(
		context.Background(), "member@example.com", "sub-1",
	)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpsertPermissionRejectsForeignSubAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory(), &fakeMailer{})

	_, err := svc.UpsertPermission(
		context.Background(), "actor-1", "agency-1",
		UpsertPermissionRequest{
			Email:        "mole@example.com",
			SubAccountID: "sub-2",
			Access:       true,
		},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	has, err := svc.HasAccess(
		context.Background(), "mole@example.com", "sub-2",
	)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpsertPermissionRejectsUnknownSubAccount(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeDirectory(), &fakeMailer{})

	_, err := svc.UpsertPermission(
		context.Background(), "actor-1", "agency-1",
		UpsertPermissionRequest{
			Email:        "member@example.com",
			SubAccountID: "sub-gone",
			Access:       true,
		},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
