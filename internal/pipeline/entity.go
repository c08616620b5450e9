// AngelaMos | 2026
// entity.go

package pipeline

import (
	"time"
)

// Pipeline carries a version counter that every reorder bumps. Clients
// submit the version their board was rendered from; a stale version is
// rejected instead of silently interleaving with a concurrent reorder.
type Pipeline struct {
	ID           string    `db:"id"`
	SubAccountID string    `db:"sub_account_id"`
	Name         string    `db:"name"`
	Version      int64     `db:"version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Lane orders are dense and zero-based within a pipeline; the
// repository recompacts them on delete.
type Lane struct {
	ID         string    `db:"id"`
	PipelineID string    `db:"pipeline_id"`
	Name       string    `db:"name"`
	Color      string    `db:"color"`
	SortOrder  int       `db:"sort_order"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Ticket orders are dense and zero-based within a lane.
type Ticket struct {
	ID             string    `db:"id"`
	LaneID         string    `db:"lane_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Value          float64   `db:"value"`
	SortOrder      int       `db:"sort_order"`
	ContactID      *string   `db:"contact_id"`
	AssignedUserID *string   `db:"assigned_user_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type Tag struct {
	ID           string    `db:"id"`
	SubAccountID string    `db:"sub_account_id"`
	Name         string    `db:"name"`
	Color        string    `db:"color"`
	CreatedAt    time.Time `db:"created_at"`
}
