// AngelaMos | 2026
// entity.go

package billing

import (
	"time"
)

// Subscription mirrors the payment provider's subscription state for
// an agency. The provider is the source of truth; rows here are only
// ever written from verified webhook events.
type Subscription struct {
	ID               string    `db:"id"`
	AgencyID         string    `db:"agency_id"`
	CustomerID       string    `db:"customer_id"`
	SubscriptionID   string    `db:"subscription_id"`
	PriceID          string    `db:"price_id"`
	Plan             string    `db:"plan"`
	Active           bool      `db:"active"`
	CurrentPeriodEnd time.Time `db:"current_period_end"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type SubscriptionResponse struct {
	Plan             string    `json:"plan"`
	PriceID          string    `json:"price_id"`
	Active           bool      `json:"active"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}

type PlanResponse struct {
	Name    string `json:"name"`
	PriceID string `json:"price_id"`
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:             s.Plan,
		PriceID:          s.PriceID,
		Active:           s.Active,
		CurrentPeriodEnd: s.CurrentPeriodEnd,
	}
}
