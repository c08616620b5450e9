// AngelaMos | 2026
// entity.go

package funnel

import (
	"time"
)

// Funnel is a published marketing site under a sub-account, reachable
// through its subdomain. Pages are ordered densely by sort order.
type Funnel struct {
	ID            string    `db:"id"`
	SubAccountID  string    `db:"sub_account_id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	Published     bool      `db:"published"`
	SubDomainName string    `db:"sub_domain_name"`
	Favicon       string    `db:"favicon"`
	LiveProducts  string    `db:"live_products"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Page content is the serialized element tree rendered by the site
// editor. Visits is a plain counter bumped on public page loads.
type Page struct {
	ID           string    `db:"id"`
	FunnelID     string    `db:"funnel_id"`
	Name         string    `db:"name"`
	PathName     string    `db:"path_name"`
	Content      string    `db:"content"`
	SortOrder    int       `db:"sort_order"`
	Visits       int64     `db:"visits"`
	PreviewImage string    `db:"preview_image"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
