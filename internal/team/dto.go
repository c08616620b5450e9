// AngelaMos | 2026
// dto.go

package team

import (
	"time"
)

type SendInvitationRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"required,oneof=AGENCY_ADMIN SUBACCOUNT_USER SUBACCOUNT_GUEST"`
}

type UpsertPermissionRequest struct {
	Email        string `json:"email"          validate:"required,email,max=255"`
	SubAccountID string `json:"sub_account_id" validate:"required,uuid"`
	Access       bool   `json:"access"`
}

type InvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	AgencyID  string    `json:"agency_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PermissionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	SubAccountID string `json:"sub_account_id"`
	Access       bool   `json:"access"`
}

// MembershipResponse is the read-only answer to "where do I belong".
// It never mutates invitations; acceptance is a separate call.
type MembershipResponse struct {
	AgencyID          string `json:"agency_id,omitempty"`
	Role              string `json:"role,omitempty"`
	PendingInvitation bool   `json:"pending_invitation"`
}

func ToInvitationResponse(i *Invitation) InvitationResponse {
	return InvitationResponse{
		ID:        i.ID,
		Email:     i.Email,
		AgencyID:  i.AgencyID,
		Role:      i.Role,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}

func ToInvitationResponseList(invs []Invitation) []InvitationResponse {
	responses := make([]InvitationResponse, 0, len(invs))
	for i := range invs {
		responses = append(responses, ToInvitationResponse(&invs[i]))
	}
	return responses
}

func ToPermissionResponse(p *Permission) PermissionResponse {
	return PermissionResponse{
		ID:           p.ID,
		Email:        p.Email,
		SubAccountID: p.SubAccountID,
		Access:       p.Access,
	}
}

func ToPermissionResponseList(perms []Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(perms))
	for i := range perms {
		responses = append(responses, ToPermissionResponse(&perms[i]))
	}
	return responses
}
