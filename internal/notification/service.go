// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// UserNamer resolves an actor's display name for feed entries. The
// user service implements it.
type UserNamer interface {
	UserName(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo   Repository
	users  UserNamer
	logger *slog.Logger
}

func NewService(repo Repository, users UserNamer, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Log writes an activity feed entry. It satisfies the ActivityLogger
// interfaces the domain services declare, and it never fails the
// caller's operation: a lost feed line is logged and swallowed.
func (s *Service) Log(
	ctx context.Context,
	agencyID, subAccountID, actorID, description string,
) error {
	name, err := s.users.UserName(ctx, actorID)
	if err != nil {
		name = "System"
	}

	n := &Notification{
		ID:       uuid.New().String(),
		AgencyID: agencyID,
		UserID:   actorID,
		Text:     fmt.Sprintf("%s | %s", name, description),
	}
	if subAccountID != "" {
		n.SubAccountID = &subAccountID
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("activity feed write failed",
			slog.String("agency_id", agencyID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (s *Service) ListByAgency(
	ctx context.Context,
	agencyID string,
	page, pageSize int,
) ([]Notification, int, error) {
	return s.repo.ListByAgency(ctx, agencyID, page, pageSize)
}

func (s *Service) ListBySubAccount(
	ctx context.Context,
	subAccountID string,
	page, pageSize int,
) ([]Notification, int, error) {
	return s.repo.ListBySubAccount(ctx, subAccountID, page, pageSize)
}
