// AngelaMos | 2026
// repository.go

package agency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	CreateWithDefaults(
		ctx context.Context,
		agency *Agency,
		options []SidebarOption,
	) error
	Update(ctx context.Context, agency *Agency) error
	GetByID(ctx context.Context, id string) (*Agency, error)
	GetByCustomerID(ctx context.Context, customerID string) (*Agency, error)
	SetCustomerID(ctx context.Context, id, customerID string) error
	UpdateGoal(ctx context.Context, id string, goal int) error
	Delete(ctx context.Context, id string) error
	ListSidebarOptions(
		ctx context.Context,
		agencyID string,
	) ([]SidebarOption, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithDefaults inserts the agency and its seeded sidebar options
// in one transaction so a half-created tenant can never be observed.
func (r *repository) CreateWithDefaults(
	ctx context.Context,
	agency *Agency,
	options []SidebarOption,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO agencies (
				id, name, company_email, company_phone, logo, white_label,
				address, city, zip_code, state, country, goal
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
			)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, agency, query,
			agency.ID,
			agency.Name,
			agency.CompanyEmail,
			agency.CompanyPhone,
			agency.Logo,
			agency.WhiteLabel,
			agency.Address,
			agency.City,
			agency.ZipCode,
			agency.State,
			agency.Country,
			agency.Goal,
		)
		if err != nil {
			return fmt.Errorf("create agency: %w", err)
		}

		optQuery := `
			INSERT INTO agency_sidebar_options (id, agency_id, name, icon, link)
			VALUES ($1, $2, $3, $4, $5)`

		for _, opt := range options {
			if _, err := tx.ExecContext(ctx, optQuery,
				opt.ID,
				opt.AgencyID,
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

func (r *repository) Update(ctx context.Context, agency *Agency) error {
	query := `
		UPDATE agencies
		SET name = $2, company_email = $3, company_phone = $4, logo = $5,
		    white_label = $6, address = $7, city = $8, zip_code = $9,
		    state = $10, country = $11, goal = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &agency.UpdatedAt, query,
		agency.ID,
		agency.Name,
		agency.CompanyEmail,
		agency.CompanyPhone,
		agency.Logo,
		agency.WhiteLabel,
		agency.Address,
		agency.City,
		agency.ZipCode,
		agency.State,
		agency.Country,
		agency.Goal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update agency: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update agency: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Agency, error) {
	query := `
		SELECT id, name, company_email, company_phone, logo, white_label,
		       address, city, zip_code, state, country, goal, customer_id,
		       connect_account_id, created_at, updated_at
		FROM agencies
		WHERE id = $1`

	var agency Agency
	err := r.db.GetContext(ctx, &agency, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get agency: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get agency: %w", err)
	}

	return &agency, nil
}

func (r *repository) GetByCustomerID(
	ctx context.Context,
	customerID string,
) (*Agency, error) {
	query := `
		SELECT id, name, company_email, company_phone, logo, white_label,
		       address, city, zip_code, state, country, goal, customer_id,
		       connect_account_id, created_at, updated_at
		FROM agencies
		WHERE customer_id = $1`

	var agency Agency
	err := r.db.GetContext(ctx, &agency, query, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get agency by customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get agency by customer: %w", err)
	}

	return &agency, nil
}

func (r *repository) SetCustomerID(
	ctx context.Context,
	id, customerID string,
) error {
	query := `
		UPDATE agencies
		SET customer_id = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, customerID)
	if err != nil {
		return fmt.Errorf("set customer id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set customer id: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set customer id: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateGoal(
	ctx context.Context,
	id string,
	goal int,
) error {
	query := `
		UPDATE agencies
		SET goal = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, goal)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update goal: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM agencies WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete agency: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete agency: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete agency: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListSidebarOptions(
	ctx context.Context,
	agencyID string,
) ([]SidebarOption, error) {
	query := `
		SELECT id, agency_id, name, icon, link, created_at
		FROM agency_sidebar_options
		WHERE agency_id = $1
		ORDER BY created_at ASC`

	var options []SidebarOption
	if err := r.db.SelectContext(ctx, &options, query, agencyID); err != nil {
		return nil, fmt.Errorf("list sidebar options: %w", err)
	}

	return options, nil
}
