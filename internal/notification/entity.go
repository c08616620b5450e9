// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

// Notification is one line of the agency activity feed. Text follows
// the "actor name | description" convention so the feed can split the
// actor out for display.
type Notification struct {
	ID           string    `db:"id"`
	AgencyID     string    `db:"agency_id"`
	SubAccountID *string   `db:"sub_account_id"`
	UserID       string    `db:"user_id"`
	Text         string    `db:"text"`
	CreatedAt    time.Time `db:"created_at"`
}

type NotificationResponse struct {
	ID           string    `json:"id"`
	AgencyID     string    `json:"agency_id"`
	SubAccountID *string   `json:"sub_account_id,omitempty"`
	UserID       string    `json:"user_id"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		AgencyID:     n.AgencyID,
		SubAccountID: n.SubAccountID,
		UserID:       n.UserID,
		Text:         n.Text,
		CreatedAt:    n.CreatedAt,
	}
}

func ToNotificationResponseList(ns []Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(ns))
	for i := range ns {
		responses = append(responses, ToNotificationResponse(&ns[i]))
	}
	return responses
}
