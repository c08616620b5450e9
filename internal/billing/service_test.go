// AngelaMos | 2026
// service_test.go

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/angelamos/agencyhub/internal/core"
)

type fakeRepo struct {
	byAgency map[string]*Subscription
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byAgency: make(map[string]*Subscription)}
}

func (f *fakeRepo) Upsert(_ context.Context, sub *Subscription) error {
	cp := *sub
	f.byAgency[sub.AgencyID] = &cp
	return nil
}

func (f *fakeRepo) GetByAgency(
	_ context.Context,
	agencyID string,
) (*Subscription, error) {
	sub, ok := f.byAgency[agencyID]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	cp := *sub
	return &cp, nil
}

type fakeLinker struct {
	byCustomer map[string]string
}

func (f *fakeLinker) AgencyIDByCustomer(
	_ context.Context,
	customerID string,
) (string, error) {
	id, ok := f.byCustomer[customerID]
	if !ok {
		return "", fmt.Errorf("get agency: %w", core.ErrNotFound)
	}
	return id, nil
}

func (f *fakeLinker) LinkCustomer(
	_ context.Context,
	agencyID, customerID string,
) error {
	f.byCustomer[customerID] = agencyID
	return nil
}

func providerSubscription(
	customerID string,
	status stripe.SubscriptionStatus,
) *stripe.Subscription {
	return &stripe.Subscription{
		ID:               "sub_42",
		Status:           status,
		Customer:         &stripe.Customer{ID: customerID},
		CurrentPeriodEnd: time.Now().Add(30 * 24 * time.Hour).Unix(),
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_basic"}},
			},
		},
	}
}

func newTestService(linker *fakeLinker) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(
		repo, linker, []string{"price_basic"}, slog.Default(),
	)
	return svc, repo
}

func TestApplySubscriptionEventMirrorsState(t *testing.T) {
	linker := &fakeLinker{byCustomer: map[string]string{"cus_1": "agency-1"}}
	svc, repo := newTestService(linker)

	err := svc.ApplySubscriptionEvent(
		context.Background(),
		providerSubscription("cus_1", stripe.SubscriptionStatusActive),
	)
	require.NoError(t, err)

	mirrored := repo.byAgency["agency-1"]
	require.NotNil(t, mirrored)
	assert.Equal(t, "sub_42", mirrored.SubscriptionID)
	assert.Equal(t, "cus_1", mirrored.CustomerID)
	assert.Equal(t, "price_basic", mirrored.PriceID)
	assert.True(t, mirrored.Active)
}

func TestApplySubscriptionEventDeactivatesOnCancel(t *testing.T) {
	linker := &fakeLinker{byCustomer: map[string]string{"cus_1": "agency-1"}}
	svc, repo := newTestService(linker)

	require.NoError(t, svc.ApplySubscriptionEvent(
		context.Background(),
		providerSubscription("cus_1", stripe.SubscriptionStatusActive),
	))
	require.NoError(t, svc.ApplySubscriptionEvent(
		context.Background(),
		providerSubscription("cus_1", stripe.SubscriptionStatusCanceled),
	))

	assert.False(t, repo.byAgency["agency-1"].Active)
}

func TestApplySubscriptionEventSkipsUnknownCustomer(t *testing.T) {
	linker := &fakeLinker{byCustomer: map[string]string{}}
	svc, repo := newTestService(linker)

	err := svc.ApplySubscriptionEvent(
		context.Background(),
		providerSubscription("cus_ghost", stripe.SubscriptionStatusActive),
	)

	// skipped, not failed: retries cannot resolve an unknown customer
	require.NoError(t, err)
	assert.Empty(t, repo.byAgency)
}

func TestApplySubscriptionEventRejectsMissingCustomer(t *testing.T) {
	svc, _ := newTestService(&fakeLinker{byCustomer: map[string]string{}})

	sub := providerSubscription("cus_1", stripe.SubscriptionStatusActive)
	sub.Customer = nil

	err := svc.ApplySubscriptionEvent(context.Background(), sub)
	assert.Error(t, err)
}

func TestPlansReflectConfiguredCatalog(t *testing.T) {
	svc, _ := newTestService(&fakeLinker{byCustomer: map[string]string{}})

	plans := svc.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, "price_basic", plans[0].PriceID)
}
