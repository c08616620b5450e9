// AngelaMos | 2026
// repository.go

package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	UpsertPermission(ctx context.Context, perm *Permission) error
	GetPermission(
		ctx context.Context,
		email, subAccountID string,
	) (*Permission, error)
	ListPermissionsByEmail(
		ctx context.Context,
		email string,
	) ([]Permission, error)
	HasAccess(ctx context.Context, email, subAccountID string) (bool, error)

	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetPendingInvitationByEmail(
		ctx context.Context,
		email string,
	) (*Invitation, error)
	ListInvitationsByAgency(
		ctx context.Context,
		agencyID string,
	) ([]Invitation, error)
	MarkInvitation(ctx context.Context, id, status string) error
	DeleteInvitation(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertPermission(
	ctx context.Context,
	perm *Permission,
) error {
	query := `
		INSERT INTO permissions (id, email, sub_account_id, access)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, sub_account_id)
		DO UPDATE SET access = EXCLUDED.access, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, perm, query,
		perm.ID,
		perm.Email,
		perm.SubAccountID,
		perm.Access,
	)
	if err != nil {
		return fmt.Errorf("upsert permission: %w", err)
	}

	return nil
}

func (r *repository) GetPermission(
	ctx context.Context,
	email, subAccountID string,
) (*Permission, error) {
	query := `
		SELECT id, email, sub_account_id, access, created_at, updated_at
		FROM permissions
		WHERE email = $1 AND sub_account_id = $2`

	var perm Permission
	err := r.db.GetContext(ctx, &perm, query, email, subAccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}

	return &perm, nil
}

func (r *repository) ListPermissionsByEmail(
	ctx context.Context,
	email string,
) ([]Permission, error) {
	query := `
		SELECT id, email, sub_account_id, access, created_at, updated_at
		FROM permissions
		WHERE email = $1
		ORDER BY created_at ASC`

	var perms []Permission
	if err := r.db.SelectContext(ctx, &perms, query, email); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	return perms, nil
}

func (r *repository) HasAccess(
	ctx context.Context,
	email, subAccountID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM permissions
			WHERE email = $1 AND sub_account_id = $2 AND access = TRUE
		)`

	var granted bool
	err := r.db.GetContext(ctx, &granted, query, email, subAccountID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}

	return granted, nil
}

func (r *repository) CreateInvitation(
	ctx context.Context,
	inv *Invitation,
) error {
	query := `
		INSERT INTO invitations (id, email, agency_id, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, inv, query,
		inv.ID,
		inv.Email,
		inv.AgencyID,
		inv.Role,
		inv.Status,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create invitation: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

func (r *repository) GetPendingInvitationByEmail(
	ctx context.Context,
	email string,
) (*Invitation, error) {
	query := `
		SELECT id, email, agency_id, role, status, created_at, updated_at
		FROM invitations
		WHERE email = $1 AND status = 'PENDING'`

	var inv Invitation
	err := r.db.GetContext(ctx, &inv, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invitation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &inv, nil
}

func (r *repository) ListInvitationsByAgency(
	ctx context.Context,
	agencyID string,
) ([]Invitation, error) {
	query := `
		SELECT id, email, agency_id, role, status, created_at, updated_at
		FROM invitations
		WHERE agency_id = $1
		ORDER BY created_at DESC`

	var invs []Invitation
	if err := r.db.SelectContext(ctx, &invs, query, agencyID); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invs, nil
}

func (r *repository) MarkInvitation(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE invitations
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("mark invitation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark invitation: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark invitation: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteInvitation(ctx context.Context, id string) error {
	query := `DELETE FROM invitations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete invitation: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	type coder interface{ SQLState() string }

	var pgErr coder
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}

	return false
}
