// AngelaMos | 2026
// media.go

package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// Media is an uploaded asset reference scoped to a sub-account. The
// bytes live at the storage provider; only the link is kept here.
type Media struct {
	ID           string    `db:"id"`
	SubAccountID string    `db:"sub_account_id"`
	Name         string    `db:"name"`
	Link         string    `db:"link"`
	CreatedAt    time.Time `db:"created_at"`
}

type CreateMediaRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Link string `json:"link" validate:"required,url,max=512"`
}

type MediaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMediaResponse(m *Media) MediaResponse {
	return MediaResponse{
		ID:        m.ID,
		Name:      m.Name,
		Link:      m.Link,
		CreatedAt: m.CreatedAt,
	}
}

func ToMediaResponseList(items []Media) []MediaResponse {
	responses := make([]MediaResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToMediaResponse(&items[i]))
	}
	return responses
}

type Repository interface {
	Create(ctx context.Context, m *Media) error
	GetByID(ctx context.Context, id string) (*Media, error)
	ListBySubAccount(ctx context.Context, subAccountID string) ([]Media, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Media) error {
	query := `
		INSERT INTO media (id, sub_account_id, name, link)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &m.CreatedAt, query,
		m.ID, m.SubAccountID, m.Name, m.Link,
	)
	if err != nil {
		return fmt.Errorf("create media: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Media, error) {
	query := `
		SELECT id, sub_account_id, name, link, created_at
		FROM media
		WHERE id = $1`

	var m Media
	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get media: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}

	return &m, nil
}

func (r *repository) ListBySubAccount(
	ctx context.Context,
	subAccountID string,
) ([]Media, error) {
	query := `
		SELECT id, sub_account_id, name, link, created_at
		FROM media
		WHERE sub_account_id = $1
		ORDER BY created_at DESC`

	var items []Media
	if err := r.db.SelectContext(ctx, &items, query, subAccountID); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}

	return items, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete media: %w", core.ErrNotFound)
	}

	return nil
}

type ActivityLogger interface {
	Log(
		ctx context.Context,
		agencyID, subAccountID, actorID, description string,
	) error
}

type Service struct {
	repo     Repository
	activity ActivityLogger
}

func NewService(repo Repository, activity ActivityLogger) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Create(
	ctx context.Context,
	actorID, agencyID, subAccountID string,
	req CreateMediaRequest,
) (*Media, error) {
	m := &Media{
		ID:           uuid.New().String(),
		SubAccountID: subAccountID,
		Name:         req.Name,
		Link:         req.Link,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	//nolint:errcheck // activity log is best-effort
	_ = s.activity.Log(
		ctx, agencyID, subAccountID, actorID, "Uploaded media "+m.Name,
	)

	return m, nil
}

func (s *Service) List(
	ctx context.Context,
	subAccountID string,
) ([]Media, error) {
	return s.repo.ListBySubAccount(ctx, subAccountID)
}

func (s *Service) Delete(ctx context.Context, subAccountID, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if m.SubAccountID != subAccountID {
		return fmt.Errorf("media: %w", core.ErrNotFound)
	}

	return s.repo.Delete(ctx, id)
}
