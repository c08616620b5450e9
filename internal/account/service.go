// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// OwnerFinder resolves the owner of an agency so a new sub-account can
// seed its permission grant. The user service implements it.
type OwnerFinder interface {
	FindAgencyOwnerEmail(ctx context.Context, agencyID string) (string, error)
}

type ActivityLogger interface {
	Log(
		ctx context.Context,
		agencyID, subAccountID, actorID, description string,
	) error
}

type Service struct {
	repo     Repository
	owners   OwnerFinder
	activity ActivityLogger
}

func NewService(
	repo Repository,
	owners OwnerFinder,
	activity ActivityLogger,
) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		activity: activity,
	}
}

// Upsert creates or updates a sub-account under the agency. Creation
// seeds the agency owner's permission grant, a default pipeline and the
// sidebar, all atomically.
func (s *Service) Upsert(
	ctx context.Context,
	actorID, agencyID string,
	req UpsertSubAccountRequest,
) (*SubAccount, error) {
	if req.CompanyEmail == "" {
		return nil, fmt.Errorf("upsert sub account: %w", core.ErrInvalidInput)
	}

	if req.ID != "" {
		existing, err := s.repo.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			if existing.AgencyID != agencyID {
				return nil, fmt.Errorf(
					"sub account belongs to another agency: %w",
					core.ErrForbidden,
				)
			}

			applyRequest(existing, req)
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}

			//nolint:errcheck // activity log is best-effort
			_ = s.activity.Log(
				ctx, agencyID, existing.ID, actorID,
				"Updated sub account "+existing.Name,
			)

			return existing, nil
		}
	}

	ownerEmail, err := s.owners.FindAgencyOwnerEmail(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("find agency owner: %w", err)
	}

	account := &SubAccount{ID: req.ID, AgencyID: agencyID}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	applyRequest(account, req)

	seed := Seed{
		OwnerPermissionID: uuid.New().String(),
		OwnerEmail:        ownerEmail,
		PipelineID:        uuid.New().String(),
		PipelineName:      "Lead Cycle",
		SidebarOptions:    defaultSidebarOptions(account.ID),
	}

	if err := s.repo.CreateWithDefaults(ctx, account, seed); err != nil {
		return nil, err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agencyID, account.ID, actorID,
		"Created sub account "+account.Name,
	)

	return account, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SubAccount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAgency(
	ctx context.Context,
	agencyID string,
) ([]SubAccount, error) {
	return s.repo.ListByAgency(ctx, agencyID)
}

func (s *Service) GetSidebarOptions(
	ctx context.Context,
	subAccountID string,
) ([]SidebarOption, error) {
	return s.repo.ListSidebarOptions(ctx, subAccountID)
}

func (s *Service) Delete(
	ctx context.Context,
	actorID string,
	account *SubAccount,
) error {
	if err := s.repo.Delete(ctx, account.ID); err != nil {
		return err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, account.AgencyID, "", actorID,
		"Deleted sub account "+account.Name,
	)

	return nil
}

func applyRequest(a *SubAccount, req UpsertSubAccountRequest) {
	a.Name = req.Name
	a.CompanyEmail = req.CompanyEmail
	a.CompanyPhone = req.CompanyPhone
	a.Logo = req.Logo
	a.Address = req.Address
	a.City = req.City
	a.ZipCode = req.ZipCode
	a.State = req.State
	a.Country = req.Country
	a.Goal = req.Goal
}

func defaultSidebarOptions(subAccountID string) []SidebarOption {
	base := "/subaccount/" + subAccountID
	entries := []struct {
		name string
		icon string
		link string
	}{
		{"Launchpad", "clipboardIcon", base + "/launchpad"},
		{"Settings", "settings", base + "/settings"},
		{"Funnels", "pipelines", base + "/funnels"},
		{"Media", "database", base + "/media"},
		{"Automations", "chip", base + "/automations"},
		{"Pipelines", "flag", base + "/pipelines"},
		{"Contacts", "person", base + "/contacts"},
		{"Dashboard", "category", base},
	}

	options := make([]SidebarOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, SidebarOption{
			ID:           uuid.New().String(),
			SubAccountID: subAccountID,
			Name:         e.name,
			Icon:         e.icon,
			Link:         e.link,
		})
	}
	return options
}
