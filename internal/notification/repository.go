// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"fmt"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByAgency(
		ctx context.Context,
		agencyID string,
		page, pageSize int,
	) ([]Notification, int, error)
	ListBySubAccount(
		ctx context.Context,
		subAccountID string,
		page, pageSize int,
	) ([]Notification, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, agency_id, sub_account_id, user_id, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &n.CreatedAt, query,
		n.ID,
		n.AgencyID,
		n.SubAccountID,
		n.UserID,
		n.Text,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *repository) ListByAgency(
	ctx context.Context,
	agencyID string,
	page, pageSize int,
) ([]Notification, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM notifications WHERE agency_id = $1`,
		agencyID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := `
		SELECT id, agency_id, sub_account_id, user_id, text, created_at
		FROM notifications
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var notifications []Notification
	err = r.db.SelectContext(ctx, &notifications, query,
		agencyID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, total, nil
}

func (r *repository) ListBySubAccount(
	ctx context.Context,
	subAccountID string,
	page, pageSize int,
) ([]Notification, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM notifications WHERE sub_account_id = $1`,
		subAccountID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := `
		SELECT id, agency_id, sub_account_id, user_id, text, created_at
		FROM notifications
		WHERE sub_account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var notifications []Notification
	err = r.db.SelectContext(ctx, &notifications, query,
		subAccountID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, total, nil
}
