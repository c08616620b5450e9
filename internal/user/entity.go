// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User belongs to at most one agency. Role is the platform-wide role
// claim; per-sub-account visibility is a separate permission grant owned
// by the team package.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	AvatarURL    string    `db:"avatar_url"`
	Role         string    `db:"role"`
	AgencyID     *string   `db:"agency_id"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleAgencyOwner     = "AGENCY_OWNER"
	RoleAgencyAdmin     = "AGENCY_ADMIN"
	RoleSubAccountUser  = "SUBACCOUNT_USER"
	RoleSubAccountGuest = "SUBACCOUNT_GUEST"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAgencyOwner, RoleAgencyAdmin, RoleSubAccountUser,
		RoleSubAccountGuest:
		return true
	}
	return false
}

func (u *User) IsAgencyLevel() bool {
	return u.Role == RoleAgencyOwner || u.Role == RoleAgencyAdmin
}

func (u *User) AgencyIDValue() string {
	if u.AgencyID == nil {
		return ""
	}
	return *u.AgencyID
}
