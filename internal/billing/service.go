// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
)

// AgencyLinker connects provider customers back to agencies. The
// agency service implements it.
type AgencyLinker interface {
	AgencyIDByCustomer(ctx context.Context, customerID string) (string, error)
	LinkCustomer(ctx context.Context, agencyID, customerID string) error
}

type Service struct {
	repo     Repository
	agencies AgencyLinker
	plans    []string
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	agencies AgencyLinker,
	plans []string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		agencies: agencies,
		plans:    plans,
		logger:   logger,
	}
}

// ApplySubscriptionEvent mirrors a verified subscription event into
// local state. Unknown customers are skipped, not failed: retrying the
// webhook would not make the agency appear.
func (s *Service) ApplySubscriptionEvent(
	ctx context.Context,
	sub *stripe.Subscription,
) error {
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	agencyID, err := s.agencies.AgencyIDByCustomer(ctx, sub.Customer.ID)
	if err != nil {
		s.logger.Warn("subscription event for unknown customer",
			slog.String("customer_id", sub.Customer.ID),
			slog.String("subscription_id", sub.ID),
		)
		return nil
	}

	priceID := ""
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		priceID = sub.Items.Data[0].Price.ID
	}

	mirror := &Subscription{
		ID:             uuid.New().String(),
		AgencyID:       agencyID,
		CustomerID:     sub.Customer.ID,
		SubscriptionID: sub.ID,
		PriceID:        priceID,
		Plan:           priceID,
		Active:         sub.Status == stripe.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Unix(
			sub.CurrentPeriodEnd, 0,
		).UTC(),
	}

	if err := s.repo.Upsert(ctx, mirror); err != nil {
		return err
	}

	s.logger.Info("subscription mirrored",
		slog.String("agency_id", agencyID),
		slog.String("subscription_id", sub.ID),
		slog.Bool("active", mirror.Active),
	)

	return nil
}

// LinkCustomer records the provider customer id on the agency so later
// webhook events can find it.
func (s *Service) LinkCustomer(
	ctx context.Context,
	agencyID, customerID string,
) error {
	return s.agencies.LinkCustomer(ctx, agencyID, customerID)
}

func (s *Service) GetSubscription(
	ctx context.Context,
	agencyID string,
) (*Subscription, error) {
	return s.repo.GetByAgency(ctx, agencyID)
}

// Plans returns the configured price catalog.
func (s *Service) Plans() []PlanResponse {
	out := make([]PlanResponse, 0, len(s.plans))
	for _, priceID := range s.plans {
		out = append(out, PlanResponse{Name: priceID, PriceID: priceID})
	}
	return out
}
