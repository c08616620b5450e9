// AngelaMos | 2026
// dto.go

package agency

import (
	"time"
)

type UpsertAgencyRequest struct {
	ID           string `json:"id"            validate:"omitempty,uuid"`
	Name         string `json:"name"          validate:"required,min=2,max=120"`
	CompanyEmail string `json:"company_email" validate:"required,email,max=255"`
	CompanyPhone string `json:"company_phone" validate:"omitempty,max=32"`
	Logo         string `json:"logo"          validate:"omitempty,url,max=512"`
	WhiteLabel   bool   `json:"white_label"`
	Address      string `json:"address"       validate:"omitempty,max=255"`
	City         string `json:"city"          validate:"omitempty,max=120"`
	ZipCode      string `json:"zip_code"      validate:"omitempty,max=16"`
	State        string `json:"state"         validate:"omitempty,max=120"`
	Country      string `json:"country"       validate:"omitempty,max=120"`
	Goal         int    `json:"goal"          validate:"omitempty,gte=0"`
}

type UpdateGoalRequest struct {
	Goal int `json:"goal" validate:"required,gte=1"`
}

type AgencyResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CompanyEmail     string    `json:"company_email"`
	CompanyPhone     string    `json:"company_phone,omitempty"`
	Logo             string    `json:"logo,omitempty"`
	WhiteLabel       bool      `json:"white_label"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city,omitempty"`
	ZipCode          string    `json:"zip_code,omitempty"`
	State            string    `json:"state,omitempty"`
	Country          string    `json:"country,omitempty"`
	Goal             int       `json:"goal"`
	CustomerID       string    `json:"customer_id,omitempty"`
	ConnectAccountID string    `json:"connect_account_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SidebarOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Link string `json:"link"`
}

func ToAgencyResponse(a *Agency) AgencyResponse {
	return AgencyResponse{
		ID:               a.ID,
		Name:             a.Name,
		CompanyEmail:     a.CompanyEmail,
		CompanyPhone:     a.CompanyPhone,
		Logo:             a.Logo,
		WhiteLabel:       a.WhiteLabel,
		Address:          a.Address,
		City:             a.City,
		ZipCode:          a.ZipCode,
		State:            a.State,
		Country:          a.Country,
		Goal:             a.Goal,
		CustomerID:       a.CustomerID,
		ConnectAccountID: a.ConnectAccountID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func ToSidebarOptionResponses(opts []SidebarOption) []SidebarOptionResponse {
	responses := make([]SidebarOptionResponse, 0, len(opts))
	for _, opt := range opts {
		responses = append(responses, SidebarOptionResponse{
			ID:   opt.ID,
			Name: opt.Name,
			Icon: opt.Icon,
			Link: opt.Link,
		})
	}
	return responses
}
