// AngelaMos | 2026
// dto.go

package pipeline

import (
	"time"
)

type UpsertPipelineRequest struct {
	ID   string `json:"id"   validate:"omitempty,uuid"`
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type UpsertLaneRequest struct {
	ID    string `json:"id"    validate:"omitempty,uuid"`
	Name  string `json:"name"  validate:"required,min=1,max=120"`
	Color string `json:"color" validate:"omitempty,max=32"`
}

type UpsertTicketRequest struct {
	ID             string  `json:"id"               validate:"omitempty,uuid"`
	Name           string  `json:"name"             validate:"required,min=1,max=200"`
	Description    string  `json:"description"      validate:"omitempty,max=2000"`
	Value          float64 `json:"value"            validate:"omitempty,gte=0"`
	ContactID      *string `json:"contact_id"       validate:"omitempty,uuid"`
	AssignedUserID *string `json:"assigned_user_id" validate:"omitempty,uuid"`
	TagIDs         []string `json:"tag_ids"         validate:"omitempty,dive,uuid"`
}

// ReorderLanesRequest carries the full ordered lane list plus the
// pipeline version the client rendered from.
type ReorderLanesRequest struct {
	BaseVersion int64    `json:"base_version" validate:"required,gte=1"`
	LaneIDs     []string `json:"lane_ids"     validate:"required,min=1,dive,uuid"`
}

// LaneTicketOrder is one lane's complete ordered ticket list after a
// drag. Cross-lane moves submit both the source and destination lanes.
type LaneTicketOrder struct {
	LaneID    string   `json:"lane_id"    validate:"required,uuid"`
	TicketIDs []string `json:"ticket_ids" validate:"dive,uuid"`
}

type ReorderTicketsRequest struct {
	BaseVersion int64             `json:"base_version" validate:"required,gte=1"`
	Lanes       []LaneTicketOrder `json:"lanes"        validate:"required,min=1,dive"`
}

type UpsertTagRequest struct {
	ID    string `json:"id"    validate:"omitempty,uuid"`
	Name  string `json:"name"  validate:"required,min=1,max=60"`
	Color string `json:"color" validate:"required,max=32"`
}

type PipelineResponse struct {
	ID           string    `json:"id"`
	SubAccountID string    `json:"sub_account_id"`
	Name         string    `json:"name"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LaneResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Color     string           `json:"color,omitempty"`
	SortOrder int              `json:"sort_order"`
	Tickets   []TicketResponse `json:"tickets"`
}

type TicketResponse struct {
	ID             string        `json:"id"`
	LaneID         string        `json:"lane_id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Value          float64       `json:"value"`
	SortOrder      int           `json:"sort_order"`
	ContactID      *string       `json:"contact_id,omitempty"`
	AssignedUserID *string       `json:"assigned_user_id,omitempty"`
	Tags           []TagResponse `json:"tags"`
}

type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BoardResponse is the full kanban board: the pipeline with its lanes
// and their tickets in sort order.
type BoardResponse struct {
	Pipeline PipelineResponse `json:"pipeline"`
	Lanes    []LaneResponse   `json:"lanes"`
}

func ToPipelineResponse(p *Pipeline) PipelineResponse {
	return PipelineResponse{
		ID:           p.ID,
		SubAccountID: p.SubAccountID,
		Name:         p.Name,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToPipelineResponseList(pipelines []Pipeline) []PipelineResponse {
	responses := make([]PipelineResponse, 0, len(pipelines))
	for i := range pipelines {
		responses = append(responses, ToPipelineResponse(&pipelines[i]))
	}
	return responses
}

func ToTagResponse(t *Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
}

func ToTagResponseList(tags []Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses
}
