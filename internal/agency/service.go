// AngelaMos | 2026
// service.go

package agency

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// MembershipAssigner promotes the creating user to owner of the new
// agency. The user service implements it.
type MembershipAssigner interface {
	AssignAgency(ctx context.Context, userID, agencyID, role string) error
}

type ActivityLogger interface {
	Log(
		ctx context.Context,
		agencyID, subAccountID, actorID, description string,
	) error
}

type Service struct {
	repo       Repository
	membership MembershipAssigner
	activity   ActivityLogger
}

func NewService(
	repo Repository,
	membership MembershipAssigner,
	activity ActivityLogger,
) *Service {
	return &Service{
		repo:       repo,
		membership: membership,
		activity:   activity,
	}
}

// Upsert creates the agency (seeding its sidebar) when the id is new,
// or updates the existing record. Creation makes the caller the agency
// owner.
func (s *Service) Upsert(
	ctx context.Context,
	actorID string,
	req UpsertAgencyRequest,
) (*Agency, error) {
	if req.CompanyEmail == "" {
		return nil, fmt.Errorf("upsert agency: %w", core.ErrInvalidInput)
	}

	if req.ID != "" {
		existing, err := s.repo.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			applyRequest(existing, req)
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}

			//nolint:errcheck // activity log is best-effort
			_ = s.activity.Log(
				ctx, existing.ID, "", actorID,
				"Updated agency "+existing.Name,
			)

			return existing, nil
		}
	}

	agency := &Agency{ID: req.ID}
	if agency.ID == "" {
		agency.ID = uuid.New().String()
	}
	applyRequest(agency, req)

	options := defaultSidebarOptions(agency.ID)
	if err := s.repo.CreateWithDefaults(ctx, agency, options); err != nil {
		return nil, err
	}

	if err := s.membership.AssignAgency(
		ctx, actorID, agency.ID, "AGENCY_OWNER",
	); err != nil {
		return nil, fmt.Errorf("assign agency owner: %w", err)
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agency.ID, "", actorID, "Created agency "+agency.Name,
	)

	return agency, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Agency, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetSidebarOptions(
	ctx context.Context,
	agencyID string,
) ([]SidebarOption, error) {
	return s.repo.ListSidebarOptions(ctx, agencyID)
}

func (s *Service) UpdateGoal(
	ctx context.Context,
	actorID, agencyID string,
	goal int,
) error {
	if err := s.repo.UpdateGoal(ctx, agencyID, goal); err != nil {
		return err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(ctx, agencyID, "", actorID, "Updated agency goal")

	return nil
}

func (s *Service) Delete(ctx context.Context, agencyID string) error {
	return s.repo.Delete(ctx, agencyID)
}

// FindByCustomerID and LinkCustomer serve the billing mirror, which
// keys subscriptions on the payment provider's customer id.
func (s *Service) FindByCustomerID(
	ctx context.Context,
	customerID string,
) (*Agency, error) {
	return s.repo.GetByCustomerID(ctx, customerID)
}

func (s *Service) LinkCustomer(
	ctx context.Context,
	agencyID, customerID string,
) error {
	return s.repo.SetCustomerID(ctx, agencyID, customerID)
}

func applyRequest(a *Agency, req UpsertAgencyRequest) {
	a.Name = req.Name
	a.CompanyEmail = req.CompanyEmail
	a.CompanyPhone = req.CompanyPhone
	a.Logo = req.Logo
	a.WhiteLabel = req.WhiteLabel
	a.Address = req.Address
	a.City = req.City
	a.ZipCode = req.ZipCode
	a.State = req.State
	a.Country = req.Country
	a.Goal = req.Goal
}

func defaultSidebarOptions(agencyID string) []SidebarOption {
	base := "/agency/" + agencyID
	entries := []struct {
		name string
		icon string
		link string
	}{
		{"Dashboard", "category", base},
		{"Launchpad", "clipboardIcon", base + "/launchpad"},
		{"Billing", "payment", base + "/billing"},
		{"Settings", "settings", base + "/settings"},
		{"Sub Accounts", "person", base + "/all-subaccounts"},
		{"Team", "shield", base + "/team"},
	}

	options := make([]SidebarOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, SidebarOption{
			ID:       uuid.New().String(),
			AgencyID: agencyID,
			Name:     e.name,
			Icon:     e.icon,
			Link:     e.link,
		})
	}
	return options
}
