// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/auth"
	"github.com/angelamos/agencyhub/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers a fresh platform user. New users start as sub-account
// users with no agency; creating an agency promotes them to owner.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name, avatarURL string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		AvatarURL:    avatarURL,
		Role:         RoleSubAccountUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// InitUser is the idempotent identity sync: keyed by email, it creates
// the row when absent and otherwise folds in the provided profile
// fields. Absent rows get no credentials; login still requires
// registration.
func (s *Service) InitUser(
	ctx context.Context,
	email, name, avatarURL string,
) (*User, error) {
	email = strings.ToLower(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		changed := false
		if name != "" && user.Name != name {
			user.Name = name
			changed = true
		}
		if avatarURL != "" && user.AvatarURL != avatarURL {
			user.AvatarURL = avatarURL
			changed = true
		}
		if !changed {
			return user, nil
		}
		if updateErr := s.repo.Update(ctx, user); updateErr != nil {
			return nil, updateErr
		}
		return user, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	user = &User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		Role:      RoleSubAccountUser,
	}
	if createErr := s.repo.Create(ctx, user); createErr != nil {
		return nil, createErr
	}

	return user, nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserRole is the write-back half of the external role claim: the
// new role lands in the row and the token version bump forces the claim
// to be re-minted before it is trusted again.
func (s *Service) UpdateUserRole(
	ctx context.Context,
	id, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == RoleAgencyOwner && role != RoleAgencyOwner {
		return nil, fmt.Errorf(
			"update role: agency owner role cannot be demoted: %w",
			core.ErrForbidden,
		)
	}

	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) AssignAgency(
	ctx context.Context,
	userID, agencyID, role string,
) error {
	if !ValidRole(role) {
		return fmt.Errorf(
			"assign agency: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	return s.repo.AssignAgency(ctx, userID, agencyID, role)
}

func (s *Service) ListAgencyMembers(
	ctx context.Context,
	agencyID string,
) ([]User, error) {
	return s.repo.ListByAgency(ctx, agencyID)
}

func (s *Service) FindAgencyOwner(
	ctx context.Context,
	agencyID string,
) (*User, error) {
	return s.repo.FindAgencyOwner(ctx, agencyID)
}

func (s *Service) RemoveMember(
	ctx context.Context,
	requesterID, targetID string,
) error {
	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !requester.IsAgencyLevel() {
		return fmt.Errorf("remove member: %w", core.ErrForbidden)
	}

	if requester.AgencyIDValue() == "" ||
		requester.AgencyIDValue() != target.AgencyIDValue() {
		return fmt.Errorf("remove member: %w", core.ErrForbidden)
	}

	if target.Role == RoleAgencyOwner {
		return fmt.Errorf(
			"remove member: cannot remove the agency owner: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		AvatarURL:    u.AvatarURL,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		AgencyID:     u.AgencyIDValue(),
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
