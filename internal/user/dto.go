// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type InitUserRequest struct {
	Name      string `json:"name"       validate:"omitempty,min=1,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"       validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=512"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=AGENCY_OWNER AGENCY_ADMIN SUBACCOUNT_USER SUBACCOUNT_GUEST"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	AgencyID  string    `json:"agency_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		AgencyID:  u.AgencyIDValue(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
