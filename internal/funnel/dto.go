// AngelaMos | 2026
// dto.go

package funnel

import (
	"time"
)

type UpsertFunnelRequest struct {
	ID            string `json:"id"              validate:"omitempty,uuid"`
	Name          string `json:"name"            validate:"required,min=1,max=120"`
	Description   string `json:"description"     validate:"omitempty,max=2000"`
	SubDomainName string `json:"sub_domain_name" validate:"omitempty,hostname_rfc1123,max=120"`
	Favicon       string `json:"favicon"         validate:"omitempty,url,max=512"`
}

type UpsertPageRequest struct {
	ID           string `json:"id"            validate:"omitempty,uuid"`
	Name         string `json:"name"          validate:"required,min=1,max=120"`
	PathName     string `json:"path_name"     validate:"omitempty,max=120"`
	PreviewImage string `json:"preview_image" validate:"omitempty,url,max=512"`
}

type UpdatePageContentRequest struct {
	Content Node `json:"content" validate:"required"`
}

type ReorderPagesRequest struct {
	PageIDs []string `json:"page_ids" validate:"required,min=1,dive,uuid"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}

type UpdateProductsRequest struct {
	LiveProducts string `json:"live_products" validate:"required"`
}

type FunnelResponse struct {
	ID            string    `json:"id"`
	SubAccountID  string    `json:"sub_account_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Published     bool      `json:"published"`
	SubDomainName string    `json:"sub_domain_name,omitempty"`
	Favicon       string    `json:"favicon,omitempty"`
	LiveProducts  string    `json:"live_products,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PageResponse struct {
	ID           string    `json:"id"`
	FunnelID     string    `json:"funnel_id"`
	Name         string    `json:"name"`
	PathName     string    `json:"path_name"`
	Content      *Node     `json:"content,omitempty"`
	SortOrder    int       `json:"sort_order"`
	Visits       int64     `json:"visits"`
	PreviewImage string    `json:"preview_image,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToFunnelResponse(f *Funnel) FunnelResponse {
	return FunnelResponse{
		ID:            f.ID,
		SubAccountID:  f.SubAccountID,
		Name:          f.Name,
		Description:   f.Description,
		Published:     f.Published,
		SubDomainName: f.SubDomainName,
		Favicon:       f.Favicon,
		LiveProducts:  f.LiveProducts,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func ToFunnelResponseList(funnels []Funnel) []FunnelResponse {
	responses := make([]FunnelResponse, 0, len(funnels))
	for i := range funnels {
		responses = append(responses, ToFunnelResponse(&funnels[i]))
	}
	return responses
}

func ToPageResponse(p *Page, includeContent bool) (PageResponse, error) {
	resp := PageResponse{
		ID:           p.ID,
		FunnelID:     p.FunnelID,
		Name:         p.Name,
		PathName:     p.PathName,
		SortOrder:    p.SortOrder,
		Visits:       p.Visits,
		PreviewImage: p.PreviewImage,
		UpdatedAt:    p.UpdatedAt,
	}

	if includeContent && p.Content != "" {
		content, err := ParseContent(p.Content)
		if err != nil {
			return PageResponse{}, err
		}
		resp.Content = content
	}

	return resp, nil
}
