// AngelaMos | 2026
// adapters.go

package main

import (
	"context"

	"github.com/angelamos/agencyhub/internal/account"
	"github.com/angelamos/agencyhub/internal/agency"
	"github.com/angelamos/agencyhub/internal/team"
	"github.com/angelamos/agencyhub/internal/user"
)

// The domain packages declare small local interfaces instead of
// importing each other. These adapters close the loop at wire-up time.

type userDirectory struct {
	users *user.Service
}

func (d *userDirectory) FindMemberByEmail(
	ctx context.Context,
	email string,
) (*team.Member, error) {
	u, err := d.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &team.Member{
		UserID:   u.ID,
		AgencyID: u.AgencyIDValue(),
		Role:     u.Role,
	}, nil
}

func (d *userDirectory) AssignAgency(
	ctx context.Context,
	userID, agencyID, role string,
) error {
	return d.users.AssignAgency(ctx, userID, agencyID, role)
}

type ownerFinder struct {
	users *user.Service
}

func (f *ownerFinder) FindAgencyOwnerEmail(
	ctx context.Context,
	agencyID string,
) (string, error) {
	owner, err := f.users.FindAgencyOwner(ctx, agencyID)
	if err != nil {
		return "", err
	}
	return owner.Email, nil
}

type userNamer struct {
	users *user.Service
}

func (n *userNamer) UserName(
	ctx context.Context,
	userID string,
) (string, error) {
	u, err := n.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

type agencyNamer struct {
	agencies *agency.Service
}

func (n *agencyNamer) AgencyName(
	ctx context.Context,
	agencyID string,
) (string, error) {
	a, err := n.agencies.Get(ctx, agencyID)
	if err != nil {
		return "", err
	}
	return a.Name, nil
}

type agencyLinker struct {
	agencies *agency.Service
}

func (l *agencyLinker) AgencyIDByCustomer(
	ctx context.Context,
	customerID string,
) (string, error) {
	a, err := l.agencies.FindByCustomerID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

func (l *agencyLinker) LinkCustomer(
	ctx context.Context,
	agencyID, customerID string,
) error {
	return l.agencies.LinkCustomer(ctx, agencyID, customerID)
}

// accountSource resolves a sub account to its owning agency for the
// handlers that authorize against the agency hierarchy.
type accountSource struct {
	accounts *account.Service
}

func (s *accountSource) AgencyIDFor(
	ctx context.Context,
	subAccountID string,
) (string, error) {
	acc, err := s.accounts.Get(ctx, subAccountID)
	if err != nil {
		return "", err
	}
	return acc.AgencyID, nil
}
