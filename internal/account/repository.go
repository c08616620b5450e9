// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/agencyhub/internal/core"
)

// Seed captures everything a fresh sub-account starts with: a
// permission grant for the agency owner, a default pipeline, and the
// sidebar entries.
type Seed struct {
	OwnerPermissionID string
	OwnerEmail        string
	PipelineID        string
	PipelineName      string
	SidebarOptions    []SidebarOption
}

type Repository interface {
	CreateWithDefaults(
		ctx context.Context,
		account *SubAccount,
		seed Seed,
	) error
	Update(ctx context.Context, account *SubAccount) error
	GetByID(ctx context.Context, id string) (*SubAccount, error)
	ListByAgency(ctx context.Context, agencyID string) ([]SubAccount, error)
	Delete(ctx context.Context, id string) error
	ListSidebarOptions(
		ctx context.Context,
		subAccountID string,
	) ([]SidebarOption, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithDefaults inserts the sub-account together with its seeded
// rows in one transaction. Either the whole workspace exists or none of
// it does.
func (r *repository) CreateWithDefaults(
	ctx context.Context,
	account *SubAccount,
	seed Seed,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO sub_accounts (
				id, agency_id, name, company_email, company_phone, logo,
				address, city, zip_code, state, country, goal
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
			)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, account, query,
			account.ID,
			account.AgencyID,
			account.Name,
			account.CompanyEmail,
			account.CompanyPhone,
			account.Logo,
			account.Address,
			account.City,
			account.ZipCode,
			account.State,
			account.Country,
			account.Goal,
		)
		if err != nil {
			return fmt.Errorf("create sub account: %w", err)
		}

		permQuery := `
			INSERT INTO permissions (id, email, sub_account_id, access)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (email, sub_account_id)
			DO UPDATE SET access = TRUE`

		if _, err := tx.ExecContext(ctx, permQuery,
			seed.OwnerPermissionID,
			seed.OwnerEmail,
			account.ID,
		); err != nil {
			return fmt.Errorf("seed owner permission: %w", err)
		}

		pipeQuery := `
			INSERT INTO pipelines (id, sub_account_id, name, version)
			VALUES ($1, $2, $3, 1)`

		if _, err := tx.ExecContext(ctx, pipeQuery,
			seed.PipelineID,
			account.ID,
			seed.PipelineName,
		); err != nil {
			return fmt.Errorf("seed pipeline: %w", err)
		}

		optQuery := `
			INSERT INTO subaccount_sidebar_options (
				id, sub_account_id, name, icon, link
			) VALUES ($1, $2, $3, $4, $5)`

		for _, opt := range seed.SidebarOptions {
			if _, err := tx.ExecContext(ctx, optQuery,
				opt.ID,
				opt.SubAccountID,
				opt.Name,
				opt.Icon,
				opt.Link,
			); err != nil {
				return fmt.Errorf("seed sidebar option: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) Update(ctx context.Context, account *SubAccount) error {
	query := `
		UPDATE sub_accounts
		SET name = $2, company_email = $3, company_phone = $4, logo = $5,
		    address = $6, city = $7, zip_code = $8, state = $9,
		    country = $10, goal = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &account.UpdatedAt, query,
		account.ID,
		account.Name,
		account.CompanyEmail,
		account.CompanyPhone,
		account.Logo,
		account.Address,
		account.City,
		account.ZipCode,
		account.State,
		account.Country,
		account.Goal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update sub account: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update sub account: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*SubAccount, error) {
	query := `
		SELECT id, agency_id, name, company_email, company_phone, logo,
		       address, city, zip_code, state, country, goal,
		       connect_account_id, created_at, updated_at
		FROM sub_accounts
		WHERE id = $1`

	var account SubAccount
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get sub account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get sub account: %w", err)
	}

	return &account, nil
}

func (r *repository) ListByAgency(
	ctx context.Context,
	agencyID string,
) ([]SubAccount, error) {
	query := `
		SELECT id, agency_id, name, company_email, company_phone, logo,
		       address, city, zip_code, state, country, goal,
		       connect_account_id, created_at, updated_at
		FROM sub_accounts
		WHERE agency_id = $1
		ORDER BY created_at ASC`

	var accounts []SubAccount
	if err := r.db.SelectContext(ctx, &accounts, query, agencyID); err != nil {
		return nil, fmt.Errorf("list sub accounts: %w", err)
	}

	return accounts, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sub_accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete sub account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sub account: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete sub account: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListSidebarOptions(
	ctx context.Context,
	subAccountID string,
) ([]SidebarOption, error) {
	query := `
		SELECT id, sub_account_id, name, icon, link, created_at
		FROM subaccount_sidebar_options
		WHERE sub_account_id = $1
		ORDER BY created_at ASC`

	var options []SidebarOption
	err := r.db.SelectContext(ctx, &options, query, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("list sidebar options: %w", err)
	}

	return options, nil
}
