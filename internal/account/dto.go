// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type UpsertSubAccountRequest struct {
	ID           string `json:"id"            validate:"omitempty,uuid"`
	Name         string `json:"name"          validate:"required,min=2,max=120"`
	CompanyEmail string `json:"company_email" validate:"required,email,max=255"`
	CompanyPhone string `json:"company_phone" validate:"omitempty,max=32"`
	Logo         string `json:"logo"          validate:"omitempty,url,max=512"`
	Address      string `json:"address"       validate:"omitempty,max=255"`
	City         string `json:"city"          validate:"omitempty,max=120"`
	ZipCode      string `json:"zip_code"      validate:"omitempty,max=16"`
	State        string `json:"state"         validate:"omitempty,max=120"`
	Country      string `json:"country"       validate:"omitempty,max=120"`
	Goal         int    `json:"goal"          validate:"omitempty,gte=0"`
}

type SubAccountResponse struct {
	ID               string    `json:"id"`
	AgencyID         string    `json:"agency_id"`
	Name             string    `json:"name"`
	CompanyEmail     string    `json:"company_email"`
	CompanyPhone     string    `json:"company_phone,omitempty"`
	Logo             string    `json:"logo,omitempty"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city,omitempty"`
	ZipCode          string    `json:"zip_code,omitempty"`
	State            string    `json:"state,omitempty"`
	Country          string    `json:"country,omitempty"`
	Goal             int       `json:"goal"`
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

func ToSubAccountResponse(s *SubAccount) SubAccountResponse {
	return SubAccountResponse{
		ID:               s.ID,
		AgencyID:         s.AgencyID,
		Name:             s.Name,
		CompanyEmail:     s.CompanyEmail,
		CompanyPhone:     s.CompanyPhone,
		Logo:             s.Logo,
		Address:          s.Address,
		City:             s.City,
		ZipCode:          s.ZipCode,
		State:            s.State,
		Country:          s.Country,
		Goal:             s.Goal,
		ConnectAccountID: s.ConnectAccountID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func ToSubAccountResponseList(accounts []SubAccount) []SubAccountResponse {
	responses := make([]SubAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToSubAccountResponse(&accounts[i]))
	}
	return responses
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
