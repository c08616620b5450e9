// AngelaMos | 2026
// context.go

package authz

import (
	"context"

	"github.com/angelamos/agencyhub/internal/middleware"
)

// PrincipalFrom lifts the authenticated claims set by the middleware
// into a policy principal.
func PrincipalFrom(ctx context.Context) Principal {
	return Principal{
		UserID:   middleware.GetUserID(ctx),
		Email:    middleware.GetUserEmail(ctx),
		Role:     middleware.GetUserRole(ctx),
		AgencyID: middleware.GetAgencyID(ctx),
	}
}
