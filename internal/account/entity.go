// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

// SubAccount is a client workspace owned by exactly one agency. Most of
// the platform's day-to-day objects (pipelines, funnels, media,
// contacts) hang off a sub-account.
type SubAccount struct {
	ID               string    `db:"id"`
	AgencyID         string    `db:"agency_id"`
	Name             string    `db:"name"`
	CompanyEmail     string    `db:"company_email"`
	CompanyPhone     string    `db:"company_phone"`
	Logo             string    `db:"logo"`
	Address          string    `db:"address"`
	City             string    `db:"city"`
	ZipCode          string    `db:"zip_code"`
	State            string    `db:"state"`
	Country          string    `db:"country"`
	Goal             int       `db:"goal"`
	ConnectAccountID string    `db:"connect_account_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type SidebarOption struct {
	ID           string    `db:"id"`
	SubAccountID string    `db:"sub_account_id"`
	Name         string    `db:"name"`
	Icon         string    `db:"icon"`
	Link         string    `db:"link"`
	CreatedAt    time.Time `db:"created_at"`
}
