// AngelaMos | 2026
// service_test.go

package notification

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created   []Notification
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, n *Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeRepo) ListByAgency(
	_ context.Context,
	agencyID string,
	_, _ int,
) ([]Notification, int, error) {
	var out []Notification
	for _, n := range f.created {
		if n.AgencyID == agencyID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListBySubAccount(
	_ context.Context,
	subAccountID string,
	_, _ int,
) ([]Notification, int, error) {
	var out []Notification
	for _, n := range f.created {
		if n.SubAccountID != nil && *n.SubAccountID == subAccountID {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

type fakeNamer struct {
	names map[string]string
}

func (f *fakeNamer) UserName(_ context.Context, userID string) (string, error) {
	name, ok := f.names[userID]
	if !ok {
		return "", errors.New("unknown user")
	}
	return name, nil
}

func TestLogPrefixesActorName(t *testing.T) {
	repo := &fakeRepo{}
	namer := &fakeNamer{names: map[string]string{"user-1": "Dana"}}
	svc := NewService(repo, namer, slog.Default())

	err := svc.Log(
		context.Background(), "agency-1", "sub-1", "user-1", "Created contact Jo",
	)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	entry := repo.created[0]
	assert.Equal(t, "Dana | Created contact Jo", entry.Text)
	assert.Equal(t, "agency-1", entry.AgencyID)
	require.NotNil(t, entry.SubAccountID)
	assert.Equal(t, "sub-1", *entry.SubAccountID)
}

func TestLogFallsBackToSystemActor(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeNamer{}, slog.Default())

	err := svc.Log(
		context.Background(), "agency-1", "", "", "Updated agency goal",
	)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "System | Updated agency goal", repo.created[0].Text)
	assert.Nil(t, repo.created[0].SubAccountID)
}

func TestLogNeverFailsTheCaller(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("db down")}
	svc := NewService(repo, &fakeNamer{}, slog.Default())

	err := svc.Log(
		context.Background(), "agency-1", "", "user-1", "Uploaded media logo.png",
	)
	assert.NoError(t, err)
}
