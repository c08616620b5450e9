// AngelaMos | 2026
// policy_test.go

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideAgencyRoles(t *testing.T) {
	target := AgencyTarget("agency-1")

	tests := []struct {
		name       string
		principal  Principal
		capability Capability
		want       bool
	}{
		{
			name: "owner can view own agency",
			principal: Principal{
				Role: "AGENCY_OWNER", AgencyID: "agency-1",
			},
			capability: CapabilityView,
			want:       true,
		},
		{
			name: "owner can delete own agency",
			principal: Principal{
				Role: "AGENCY_OWNER", AgencyID: "agency-1",
			},
			capability: CapabilityDelete,
			want:       true,
		},
		{
			name: "admin can manage own agency",
			principal: Principal{
				Role: "AGENCY_ADMIN", AgencyID: "agency-1",
			},
			capability: CapabilityManage,
			want:       true,
		},
		{
			name: "admin cannot delete agency",
			principal: Principal{
				Role: "AGENCY_ADMIN", AgencyID: "agency-1",
			},
			capability: CapabilityDelete,
			want:       false,
		},
		{
			name: "admin cannot touch billing",
			principal: Principal{
				Role: "AGENCY_ADMIN", AgencyID: "agency-1",
			},
			capability: CapabilityBill,
			want:       false,
		},
		{
			name: "subaccount user cannot view agency pages",
			principal: Principal{
				Role: "SUBACCOUNT_USER", AgencyID: "agency-1",
			},
			capability: CapabilityView,
			want:       false,
		},
		{
			name: "owner of another agency is denied",
			principal: Principal{
				Role: "AGENCY_OWNER", AgencyID: "agency-2",
			},
			capability: CapabilityView,
			want:       false,
		},
		{
			name:       "no membership is denied",
			principal:  Principal{Role: "AGENCY_OWNER"},
			capability: CapabilityView,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.principal, target, tt.capability, false)
			assert.Equal(t, tt.want, decision.Allowed)
			if !tt.want {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestDecideSubAccountAccess(t *testing.T) {
	target := SubAccountTarget("agency-1", "sub-1")

	owner := Principal{Role: "AGENCY_OWNER", AgencyID: "agency-1"}
	admin := Principal{Role: "AGENCY_ADMIN", AgencyID: "agency-1"}
	member := Principal{
		Role:     "SUBACCOUNT_USER",
		AgencyID: "agency-1",
		Email:    "member@example.com",
	}

	t.Run("owner bypasses permission grants", func(t *testing.T) {
		decision := Decide(owner, target, CapabilityView, false)
		assert.True(t, decision.Allowed)
	})

	t.Run("admin bypasses permission grants", func(t *testing.T) {
		decision := Decide(admin, target, CapabilityManage, false)
		assert.True(t, decision.Allowed)
	})

	t.Run("member with grant can view", func(t *testing.T) {
		decision := Decide(member, target, CapabilityView, true)
		assert.True(t, decision.Allowed)
	})

	t.Run("member without grant is denied", func(t *testing.T) {
		decision := Decide(member, target, CapabilityView, false)
		assert.False(t, decision.Allowed)
	})

	t.Run("grant does not convey delete", func(t *testing.T) {
		decision := Decide(member, target, CapabilityDelete, true)
		assert.False(t, decision.Allowed)
	})

	t.Run("grant in a different agency is denied", func(t *testing.T) {
		foreign := Principal{
			Role:     "SUBACCOUNT_USER",
			AgencyID: "agency-2",
			Email:    "member@example.com",
		}
		decision := Decide(foreign, target, CapabilityView, true)
		assert.False(t, decision.Allowed)
	})
}
