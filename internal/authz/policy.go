// AngelaMos | 2026
// policy.go

// Package authz is the single access-policy decision point for the
// platform. Every HTTP boundary asks the same question — may this
// principal exercise this capability on this target — instead of
// re-deriving role checks inline per route.
package authz

type Capability string

const (
	CapabilityView   Capability = "view"
	CapabilityManage Capability = "manage"
	CapabilityDelete Capability = "delete"
	CapabilityBill   Capability = "bill"
)

type TargetKind string

const (
	KindAgency     TargetKind = "agency"
	KindSubAccount TargetKind = "subaccount"
)

// Principal is the caller's verified identity. AgencyID is empty for
// users who have not established agency membership yet.
type Principal struct {
	UserID   string
	Email    string
	Role     string
	AgencyID string
}

// Target names the entity being accessed. AgencyID is always the owning
// agency; SubAccountID is set only for sub-account targets.
type Target struct {
	Kind         TargetKind
	AgencyID     string
	SubAccountID string
}

type Decision struct {
	Allowed bool
	Reason  string
}

const (
	roleAgencyOwner = "AGENCY_OWNER"
	roleAgencyAdmin = "AGENCY_ADMIN"
)

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide is the pure policy. hasGrant reports whether an explicit
// permission row with access=true exists for (principal email, target
// sub-account); it is ignored for agency targets.
//
// Rules, in order:
//   - no agency membership: deny everything.
//   - agency targets: owner or admin of that same agency, with delete
//     and billing reserved for the owner.
//   - sub-account targets: owner/admin of the owning agency pass
//     implicitly; anyone else needs the explicit grant, and the grant
//     never conveys delete (tearing a sub-account down is an agency
//     level act).
func Decide(
	p Principal,
	t Target,
	capability Capability,
	hasGrant bool,
) Decision {
	if p.AgencyID == "" {
		return deny("no agency membership")
	}

	switch t.Kind {
	case KindAgency:
		return decideAgency(p, t, capability)
	case KindSubAccount:
		return decideSubAccount(p, t, capability, hasGrant)
	default:
		return deny("unknown target kind")
	}
}

func decideAgency(p Principal, t Target, capability Capability) Decision {
	if p.AgencyID != t.AgencyID {
		return deny("different agency")
	}

	switch p.Role {
	case roleAgencyOwner:
		return allow()
	case roleAgencyAdmin:
		if capability == CapabilityDelete || capability == CapabilityBill {
			return deny("owner capability required")
		}
		return allow()
	default:
		return deny("agency role required")
	}
}

func decideSubAccount(
	p Principal,
	t Target,
	capability Capability,
	hasGrant bool,
) Decision {
	sameAgency := p.AgencyID == t.AgencyID

	if sameAgency &&
		(p.Role == roleAgencyOwner || p.Role == roleAgencyAdmin) {
		return allow()
	}

	if capability == CapabilityDelete {
		return deny("agency role required")
	}

	if sameAgency && hasGrant {
		return allow()
	}

	return deny("no permission grant")
}
