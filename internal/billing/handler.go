// AngelaMos | 2026
// handler.go

package billing

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/angelamos/agencyhub/internal/authz"
	"github.com/angelamos/agencyhub/internal/core"
)

// Provider webhook payloads are small; anything bigger is not ours.
const maxWebhookBody = 1 << 16

type Handler struct {
	service       *Service
	access        *authz.Resolver
	webhookSecret string
	logger        *slog.Logger
}

func NewHandler(
	service *Service,
	access *authz.Resolver,
	webhookSecret string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		service:       service,
		access:        access,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).
		Get("/agencies/{agencyID}/billing/subscription", h.GetSubscription)
	r.With(authenticator).Get("/billing/plans", h.ListPlans)

	// signature-verified, no session
	r.Post("/webhooks/stripe", h.Webhook)
}

// GetSubscription needs the bill capability, which the policy reserves
// for the agency owner.
func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	agencyID := chi.URLParam(r, "agencyID")

	err := h.access.Authorize(
		r.Context(),
		authz.PrincipalFrom(r.Context()),
		authz.AgencyTarget(agencyID),
		authz.CapabilityBill,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the agency owner can view billing")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	sub, err := h.service.GetSubscription(r.Context(), agencyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscription")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.service.Plans())
}

// Webhook ingests provider events. The signature is verified before
// anything is parsed; unverified payloads never reach the mirror.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		core.BadRequest(w, "unreadable payload")
		return
	}

	event, err := webhook.ConstructEvent(
		payload, r.Header.Get("Stripe-Signature"), h.webhookSecret,
	)
	if err != nil {
		h.logger.Warn("webhook signature rejected",
			slog.String("error", err.Error()),
		)
		core.BadRequest(w, "invalid signature")
		return
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":

		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			core.BadRequest(w, "malformed subscription payload")
			return
		}

		if err := h.service.ApplySubscriptionEvent(
			r.Context(), &sub,
		); err != nil {
			core.InternalServerError(w, err)
			return
		}

	default:
		h.logger.Debug("ignoring webhook event",
			slog.String("type", string(event.Type)),
		)
	}

	core.OK(w, map[string]bool{"received": true})
}
