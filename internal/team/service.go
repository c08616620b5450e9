// AngelaMos | 2026
// service.go

package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// Member is the slice of a user the team service needs: who they are
// and where they already belong.
type Member struct {
	UserID   string
	AgencyID string
	Role     string
}

// UserDirectory is implemented by the user service.
type UserDirectory interface {
	FindMemberByEmail(ctx context.Context, email string) (*Member, error)
	AssignAgency(ctx context.Context, userID, agencyID, role string) error
}

// AgencyNamer resolves an agency's display name for invitation emails.
type AgencyNamer interface {
	AgencyName(ctx context.Context, agencyID string) (string, error)
}

// AccountSource resolves a sub-account to its owning agency. The
// account service implements it.
type AccountSource interface {
	AgencyIDFor(ctx context.Context, subAccountID string) (string, error)
}

type ActivityLogger interface {
	Log(
		ctx context.Context,
		agencyID, subAccountID, actorID, description string,
	) error
}

type Service struct {
	repo     Repository
	users    UserDirectory
	agencies AgencyNamer
	accounts AccountSource
	activity ActivityLogger
	mailer   Mailer
	baseURL  string
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	users UserDirectory,
	agencies AgencyNamer,
	accounts AccountSource,
	activity ActivityLogger,
	mailer Mailer,
	baseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		agencies: agencies,
		accounts: accounts,
		activity: activity,
		mailer:   mailer,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// SendInvitation creates a pending invitation and emails the invitee.
// One live invitation per email; a second send for the same address is
// a conflict.
func (s *Service) SendInvitation(
	ctx context.Context,
	actorID, agencyID string,
	req SendInvitationRequest,
) (*Invitation, error) {
	existing, err := s.repo.GetPendingInvitationByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf(
			"invitation already pending for %s: %w",
			req.Email, core.ErrDuplicateKey,
		)
	}

	member, err := s.users.FindMemberByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if member != nil && member.AgencyID != "" {
		return nil, fmt.Errorf(
			"user already belongs to an agency: %w", core.ErrDuplicateKey,
		)
	}

	inv := &Invitation{
		ID:       uuid.New().String(),
		Email:    req.Email,
		AgencyID: agencyID,
		Role:     req.Role,
		Status:   InvitationPending,
	}

	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	agencyName, err := s.agencies.AgencyName(ctx, agencyID)
	if err != nil {
		agencyName = "the agency"
	}

	acceptURL := s.baseURL + "/agency"
	if err := s.mailer.SendInvitation(
		ctx, req.Email, agencyName, acceptURL,
	); err != nil {
		// the invitation row exists either way; the invitee can still
		// accept by signing in with the invited address
		s.logger.Warn("invitation email failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agencyID, "", actorID, "Invited "+req.Email,
	)

	return inv, nil
}

func (s *Service) ListInvitations(
	ctx context.Context,
	agencyID string,
) ([]Invitation, error) {
	return s.repo.ListInvitationsByAgency(ctx, agencyID)
}

func (s *Service) RevokeInvitation(ctx context.Context, id string) error {
	return s.repo.MarkInvitation(ctx, id, InvitationRevoked)
}

// ResolveMembership answers where the caller belongs without mutating
// anything. Pending invitations are reported, never consumed.
func (s *Service) ResolveMembership(
	ctx context.Context,
	email string,
) (*MembershipResponse, error) {
	member, err := s.users.FindMemberByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	if member != nil && member.AgencyID != "" {
		return &MembershipResponse{
			AgencyID: member.AgencyID,
			Role:     member.Role,
		}, nil
	}

	_, err = s.repo.GetPendingInvitationByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &MembershipResponse{}, nil
		}
		return nil, err
	}

	return &MembershipResponse{PendingInvitation: true}, nil
}

// AcceptInvitation consumes the caller's pending invitation and joins
// them to the inviting agency. Calling it again after acceptance is a
// no-op that reports the existing membership.
func (s *Service) AcceptInvitation(
	ctx context.Context,
	userID, email string,
) (*MembershipResponse, error) {
	inv, err := s.repo.GetPendingInvitationByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}

		member, lookupErr := s.users.FindMemberByEmail(ctx, email)
		if lookupErr != nil {
			return nil, fmt.Errorf("no pending invitation: %w", core.ErrNotFound)
		}
		if member.AgencyID != "" {
			return &MembershipResponse{
				AgencyID: member.AgencyID,
				Role:     member.Role,
			}, nil
		}

		return nil, fmt.Errorf("no pending invitation: %w", core.ErrNotFound)
	}

	if err := s.users.AssignAgency(
		ctx, userID, inv.AgencyID, inv.Role,
	); err != nil {
		return nil, fmt.Errorf("assign membership: %w", err)
	}

	if err := s.repo.MarkInvitation(
		ctx, inv.ID, InvitationAccepted,
	); err != nil {
		return nil, err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(ctx, inv.AgencyID, "", userID, "Joined "+email)

	return &MembershipResponse{
		AgencyID: inv.AgencyID,
		Role:     inv.Role,
	}, nil
}

// UpsertPermission grants or revokes a user's access to a sub-account.
// The sub-account must belong to the agency the actor was authorized
// on; grants cannot reach into other agencies' tenants.
func (s *Service) UpsertPermission(
	ctx context.Context,
	actorID, agencyID string,
	req UpsertPermissionRequest,
) (*Permission, error) {
	owner, err := s.accounts.AgencyIDFor(ctx, req.SubAccountID)
	if err != nil {
		return nil, fmt.Errorf("resolve sub account: %w", err)
	}
	if owner != agencyID {
		return nil, fmt.Errorf(
			"sub account belongs to another agency: %w", core.ErrForbidden,
		)
	}

	perm := &Permission{
		ID:           uuid.New().String(),
		Email:        req.Email,
		SubAccountID: req.SubAccountID,
		Access:       req.Access,
	}

	if err := s.repo.UpsertPermission(ctx, perm); err != nil {
		return nil, err
	}

	verb := "Gave"
	if !req.Access {
		verb = "Revoked"
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agencyID, req.SubAccountID, actorID,
		fmt.Sprintf("%s %s access to a sub account", verb, req.Email),
	)

	return perm, nil
}

func (s *Service) ListUserPermissions(
	ctx context.Context,
	email string,
) ([]Permission, error) {
	return s.repo.ListPermissionsByEmail(ctx, email)
}

// HasAccess satisfies the authorization resolver's grant lookup.
func (s *Service) HasAccess(
	ctx context.Context,
	email, subAccountID string,
) (bool, error) {
	return s.repo.HasAccess(ctx, email, subAccountID)
}
