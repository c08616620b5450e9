// AngelaMos | 2026
// contact.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/agencyhub/internal/core"
)

// Contact is a lead captured under a sub-account, usually by a funnel
// contact form. TicketValue aggregates the values of tickets linked to
// the contact.
type Contact struct {
	ID           string    `db:"id"`
	SubAccountID string    `db:"sub_account_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	CreatedAt    time.Time `db:"created_at"`
	TicketValue  float64   `db:"ticket_value"`
}

type UpsertContactRequest struct {
	ID    string `json:"id"    validate:"omitempty,uuid"`
	Name  string `json:"name"  validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type ContactResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TicketValue float64   `json:"ticket_value"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToContactResponse(c *Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		TicketValue: c.TicketValue,
		CreatedAt:   c.CreatedAt,
	}
}

func ToContactResponseList(contacts []Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses
}

type Repository interface {
	Upsert(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id string) (*Contact, error)
	ListBySubAccount(
		ctx context.Context,
		subAccountID string,
	) ([]Contact, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (id, sub_account_id, name, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query,
		c.ID, c.SubAccountID, c.Name, c.Email,
	)
	if err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Contact, error) {
	query := `
		SELECT id, sub_account_id, name, email, created_at,
		       0::numeric AS ticket_value
		FROM contacts
		WHERE id = $1`

	var c Contact
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &c, nil
}

func (r *repository) ListBySubAccount(
	ctx context.Context,
	subAccountID string,
) ([]Contact, error) {
	query := `
		SELECT c.id, c.sub_account_id, c.name, c.email, c.created_at,
		       COALESCE(SUM(t.value), 0) AS ticket_value
		FROM contacts c
		LEFT JOIN tickets t ON t.contact_id = c.id
		WHERE c.sub_account_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	var contacts []Contact
	err := r.db.SelectContext(ctx, &contacts, query, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete contact: %w", core.ErrNotFound)
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

func (s *Service) Upsert(
	ctx context.Context,
	actorID, agencyID, subAccountID string,
	req UpsertContactRequest,
) (*Contact, error) {
	created := req.ID == ""

	if req.ID != "" {
		existing, err := s.repo.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.SubAccountID != subAccountID {
			return nil, fmt.Errorf(
				"contact belongs to another sub account: %w", core.ErrForbidden,
			)
		}
		created = existing == nil
	}

	c := &Contact{
		ID:           req.ID,
		SubAccountID: subAccountID,
		Name:         req.Name,
		Email:        req.Email,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	if created {
		//nolint:errcheck // activity log is best-effort
		_ = s.activity.Log(
			ctx, agencyID, subAccountID, actorID,
			"Created contact "+c.Name,
		)
	}

	return c, nil
}

func (s *Service) List(
	ctx context.Context,
	subAccountID string,
) ([]Contact, error) {
	return s.repo.ListBySubAccount(ctx, subAccountID)
}

func (s *Service) Delete(ctx context.Context, subAccountID, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if c.SubAccountID != subAccountID {
		return fmt.Errorf("contact: %w", core.ErrNotFound)
	}

	return s.repo.Delete(ctx, id)
}
