// AngelaMos | 2026
// entity.go

package agency

import (
	"time"
)

// Agency is the tenant root. CustomerID is the payment provider's
// customer id; the billing package keys the subscription mirror on it.
type Agency struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	CompanyEmail     string    `db:"company_email"`
	CompanyPhone     string    `db:"company_phone"`
	Logo             string    `db:"logo"`
	WhiteLabel       bool      `db:"white_label"`
	Address          string    `db:"address"`
	City             string    `db:"city"`
	ZipCode          string    `db:"zip_code"`
	State            string    `db:"state"`
	Country          string    `db:"country"`
	Goal             int       `db:"goal"`
	CustomerID       string    `db:"customer_id"`
	ConnectAccountID string    `db:"connect_account_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type SidebarOption struct {
	ID        string    `db:"id"`
	AgencyID  string    `db:"agency_id"`
	Name      string    `db:"name"`
	Icon      string    `db:"icon"`
	Link      string    `db:"link"`
	CreatedAt time.Time `db:"created_at"`
}
