// AngelaMos | 2026
// entity.go

package team

import (
	"time"
)

const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationRevoked  = "REVOKED"
)

// Permission is an explicit sub-account grant keyed by email rather
// than user id, so invitations can pre-provision access before the
// invitee ever signs up.
type Permission struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	SubAccountID string    `db:"sub_account_id"`
	Access       bool      `db:"access"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Invitation is a pending offer to join an agency with a given role.
// At most one live invitation exists per email.
type Invitation struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	AgencyID  string    `db:"agency_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationPending
}
