// AngelaMos | 2026
// repository.go

package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, sub *Subscription) error
	GetByAgency(ctx context.Context, agencyID string) (*Subscription, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert is keyed on the agency: an agency has at most one mirrored
// subscription, and later webhook events overwrite earlier state.
func (r *repository) Upsert(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, agency_id, customer_id, subscription_id, price_id,
			plan, active, current_period_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (agency_id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			subscription_id = EXCLUDED.subscription_id,
			price_id = EXCLUDED.price_id,
			plan = EXCLUDED.plan,
			active = EXCLUDED.active,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, sub, query,
		sub.ID,
		sub.AgencyID,
		sub.CustomerID,
		sub.SubscriptionID,
		sub.PriceID,
		sub.Plan,
		sub.Active,
		sub.CurrentPeriodEnd,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

func (r *repository) GetByAgency(
	ctx context.Context,
	agencyID string,
) (*Subscription, error) {
	query := `
		SELECT id, agency_id, customer_id, subscription_id, price_id,
		       plan, active, current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE agency_id = $1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, agencyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}
