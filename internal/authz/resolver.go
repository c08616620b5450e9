// AngelaMos | 2026
// resolver.go

package authz

import (
	"context"
	"fmt"

	"github.com/angelamos/agencyhub/internal/core"
)

// PermissionSource answers whether an explicit access=true grant exists
// for a user email on a sub-account. The team package provides the
// database-backed implementation.
type PermissionSource interface {
	HasAccess(ctx context.Context, email, subAccountID string) (bool, error)
}

// Resolver fetches the grant (when the target needs one) and delegates
// to the pure policy. It never mutates anything: membership side effects
// like invitation acceptance live in the team service as explicit calls.
type Resolver struct {
	perms PermissionSource
}

func NewResolver(perms PermissionSource) *Resolver {
	return &Resolver{perms: perms}
}

func (r *Resolver) Authorize(
	ctx context.Context,
	p Principal,
	t Target,
	capability Capability,
) error {
	hasGrant := false

	if t.Kind == KindSubAccount && p.Email != "" {
		granted, err := r.perms.HasAccess(ctx, p.Email, t.SubAccountID)
		if err != nil {
			return fmt.Errorf("lookup permission grant: %w", err)
		}
		hasGrant = granted
	}

	decision := Decide(p, t, capability, hasGrant)
	if !decision.Allowed {
		return fmt.Errorf("%s: %w", decision.Reason, core.ErrForbidden)
	}

	return nil
}

func AgencyTarget(agencyID string) Target {
	return Target{Kind: KindAgency, AgencyID: agencyID}
}

func SubAccountTarget(agencyID, subAccountID string) Target {
	return Target{
		Kind:         KindSubAccount,
		AgencyID:     agencyID,
		SubAccountID: subAccountID,
	}
}
