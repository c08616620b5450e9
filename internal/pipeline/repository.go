// AngelaMos | 2026
// repository.go

package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	CreatePipeline(ctx context.Context, p *Pipeline) error
	UpdatePipeline(ctx context.Context, id, name string) error
	GetPipeline(ctx context.Context, id string) (*Pipeline, error)
	ListPipelines(ctx context.Context, subAccountID string) ([]Pipeline, error)
	DeletePipeline(ctx context.Context, id string) error

	CreateLane(ctx context.Context, lane *Lane) error
	UpdateLane(ctx context.Context, lane *Lane) error
	GetLane(ctx context.Context, id string) (*Lane, error)
	ListLanes(ctx context.Context, pipelineID string) ([]Lane, error)
	DeleteLane(ctx context.Context, id string) error
	ReorderLanes(
		ctx context.Context,
		pipelineID string,
		baseVersion int64,
		orderedIDs []string,
	) (int64, error)

	CreateTicket(ctx context.Context, ticket *Ticket, tagIDs []string) error
	UpdateTicket(ctx context.Context, ticket *Ticket, tagIDs []string) error
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	ListTickets(ctx context.Context, pipelineID string) ([]Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	ReorderTickets(
		ctx context.Context,
		pipelineID string,
		baseVersion int64,
		lanes []LaneTicketOrder,
	) (int64, error)

	UpsertTag(ctx context.Context, tag *Tag) error
	ListTags(ctx context.Context, subAccountID string) ([]Tag, error)
	DeleteTag(ctx context.Context, subAccountID, id string) error
	ListTicketTags(
		ctx context.Context,
		pipelineID string,
	) (map[string][]Tag, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// lockPipeline takes the row lock every ordering mutation serializes
// on, and returns the current version.
func lockPipeline(
	ctx context.Context,
	tx *sqlx.Tx,
	pipelineID string,
) (int64, error) {
	var version int64
	err := tx.GetContext(ctx, &version,
		`SELECT version FROM pipelines WHERE id = $1 FOR UPDATE`,
		pipelineID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lock pipeline: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("lock pipeline: %w", err)
	}

	return version, nil
}

func bumpVersion(
	ctx context.Context,
	tx *sqlx.Tx,
	pipelineID string,
) (int64, error) {
	var version int64
	err := tx.GetContext(ctx, &version, `
		UPDATE pipelines
		SET version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING version`,
		pipelineID,
	)
	if err != nil {
		return 0, fmt.Errorf("bump pipeline version: %w", err)
	}

	return version, nil
}

func (r *repository) CreatePipeline(ctx context.Context, p *Pipeline) error {
	query := `
		INSERT INTO pipelines (id, sub_account_id, name, version)
		VALUES ($1, $2, $3, 1)
		RETURNING version, created_at, updated_at`

	err := r.db.GetContext(ctx, p, query, p.ID, p.SubAccountID, p.Name)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	return nil
}

func (r *repository) UpdatePipeline(
	ctx context.Context,
	id, name string,
) error {
	query := `
		UPDATE pipelines
		SET name = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, name)
	if err != nil {
		return fmt.Errorf("update pipeline: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pipeline: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update pipeline: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetPipeline(
	ctx context.Context,
	id string,
) (*Pipeline, error) {
	query := `
		SELECT id, sub_account_id, name, version, created_at, updated_at
		FROM pipelines
		WHERE id = $1`

	var p Pipeline
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get pipeline: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pipeline: %w", err)
	}

	return &p, nil
}

func (r *repository) ListPipelines(
	ctx context.Context,
	subAccountID string,
) ([]Pipeline, error) {
	query := `
		SELECT id, sub_account_id, name, version, created_at, updated_at
		FROM pipelines
		WHERE sub_account_id = $1
		ORDER BY created_at ASC`

	var pipelines []Pipeline
	err := r.db.SelectContext(ctx, &pipelines, query, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}

	return pipelines, nil
}

func (r *repository) DeletePipeline(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM pipelines WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete pipeline: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pipeline: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete pipeline: %w", core.ErrNotFound)
	}

	return nil
}

// CreateLane appends the lane at the end of the pipeline. The position
// is computed under the pipeline row lock so two concurrent appends
// cannot claim the same slot.
func (r *repository) CreateLane(ctx context.Context, lane *Lane) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := lockPipeline(ctx, tx, lane.PipelineID); err != nil {
			return err
		}

		query := `
			INSERT INTO lanes (id, pipeline_id, name, color, sort_order)
			SELECT $1, $2, $3, $4, COALESCE(MAX(sort_order) + 1, 0)
			FROM lanes
			WHERE pipeline_id = $2
			RETURNING sort_order, created_at, updated_at`

		err := tx.GetContext(ctx, lane, query,
			lane.ID, lane.PipelineID, lane.Name, lane.Color,
		)
		if err != nil {
			return fmt.Errorf("create lane: %w", err)
		}

		return nil
	})
}

func (r *repository) UpdateLane(ctx context.Context, lane *Lane) error {
	query := `
		UPDATE lanes
		SET name = $2, color = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING sort_order, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		lane.ID, lane.Name, lane.Color,
	).Scan(&lane.SortOrder, &lane.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update lane: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update lane: %w", err)
	}

	return nil
}

func (r *repository) GetLane(ctx context.Context, id string) (*Lane, error) {
	query := `
		SELECT id, pipeline_id, name, color, sort_order,
		       created_at, updated_at
		FROM lanes
		WHERE id = $1`

	var lane Lane
	err := r.db.GetContext(ctx, &lane, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lane: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lane: %w", err)
	}

	return &lane, nil
}

func (r *repository) ListLanes(
	ctx context.Context,
	pipelineID string,
) ([]Lane, error) {
	query := `
		SELECT id, pipeline_id, name, color, sort_order,
		       created_at, updated_at
		FROM lanes
		WHERE pipeline_id = $1
		ORDER BY sort_order ASC`

	var lanes []Lane
	if err := r.db.SelectContext(ctx, &lanes, query, pipelineID); err != nil {
		return nil, fmt.Errorf("list lanes: %w", err)
	}

	return lanes, nil
}

// DeleteLane removes the lane (and, via cascade, its tickets) and
// closes the gap in the remaining lane orders.
func (r *repository) DeleteLane(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var pipelineID string
		err := tx.GetContext(ctx, &pipelineID,
			`SELECT pipeline_id FROM lanes WHERE id = $1`, id,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete lane: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete lane: %w", err)
		}

		if _, err := lockPipeline(ctx, tx, pipelineID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM lanes WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete lane: %w", err)
		}

		if err := recompactLanes(ctx, tx, pipelineID); err != nil {
			return err
		}

		return nil
	})
}

// ReorderLanes applies a full permutation of the pipeline's lanes. The
// submitted base version must match the current one; anything else
// means the client reordered a board that has since changed.
func (r *repository) ReorderLanes(
	ctx context.Context,
	pipelineID string,
	baseVersion int64,
	orderedIDs []string,
) (int64, error) {
	var newVersion int64

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		version, err := lockPipeline(ctx, tx, pipelineID)
		if err != nil {
			return err
		}

		if version != baseVersion {
			return fmt.Errorf(
				"pipeline version is %d, reorder based on %d: %w",
				version, baseVersion, core.ErrConflict,
			)
		}

		var currentIDs []string
		if err := tx.SelectContext(ctx, &currentIDs,
			`SELECT id FROM lanes WHERE pipeline_id = $1`, pipelineID,
		); err != nil {
			return fmt.Errorf("list lane ids: %w", err)
		}

		if !sameIDSet(currentIDs, orderedIDs) {
			return fmt.Errorf(
				"submitted lanes do not match the pipeline: %w",
				core.ErrInvalidInput,
			)
		}

		for position, laneID := range orderedIDs {
			if _, err := tx.ExecContext(ctx,
				`UPDATE lanes SET sort_order = $2, updated_at = NOW()
				 WHERE id = $1`,
				laneID, position,
			); err != nil {
				return fmt.Errorf("reorder lane: %w", err)
			}
		}

		newVersion, err = bumpVersion(ctx, tx, pipelineID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return newVersion, nil
}

// CreateTicket appends the ticket at the end of its lane under the
// pipeline lock, then attaches its tags.
func (r *repository) CreateTicket(
	ctx context.Context,
	ticket *Ticket,
	tagIDs []string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var pipelineID string
		err := tx.GetContext(ctx, &pipelineID,
			`SELECT pipeline_id FROM lanes WHERE id = $1`, ticket.LaneID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("create ticket: lane: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}

		if _, err := lockPipeline(ctx, tx, pipelineID); err != nil {
			return err
		}

		query := `
			INSERT INTO tickets (
				id, lane_id, name, description, value, sort_order,
				contact_id, assigned_user_id
			)
			SELECT $1, $2, $3, $4, $5, COALESCE(MAX(sort_order) + 1, 0),
			       $6, $7
			FROM tickets
			WHERE lane_id = $2
			RETURNING sort_order, created_at, updated_at`

		err = tx.GetContext(ctx, ticket, query,
			ticket.ID,
			ticket.LaneID,
			ticket.Name,
			ticket.Description,
			ticket.Value,
			ticket.ContactID,
			ticket.AssignedUserID,
		)
		if err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}

		return setTicketTags(ctx, tx, ticket.ID, tagIDs)
	})
}

func (r *repository) UpdateTicket(
	ctx context.Context,
	ticket *Ticket,
	tagIDs []string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE tickets
			SET name = $2, description = $3, value = $4,
			    contact_id = $5, assigned_user_id = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING lane_id, sort_order, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			ticket.ID,
			ticket.Name,
			ticket.Description,
			ticket.Value,
			ticket.ContactID,
			ticket.AssignedUserID,
		).Scan(&ticket.LaneID, &ticket.SortOrder, &ticket.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update ticket: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}

		return setTicketTags(ctx, tx, ticket.ID, tagIDs)
	})
}

func (r *repository) GetTicket(
	ctx context.Context,
	id string,
) (*Ticket, error) {
	query := `
		SELECT id, lane_id, name, description, value, sort_order,
		       contact_id, assigned_user_id, created_at, updated_at
		FROM tickets
		WHERE id = $1`

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ticket: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	return &ticket, nil
}

func (r *repository) ListTickets(
	ctx context.Context,
	pipelineID string,
) ([]Ticket, error) {
	query := `
		SELECT t.id, t.lane_id, t.name, t.description, t.value,
		       t.sort_order, t.contact_id, t.assigned_user_id,
		       t.created_at, t.updated_at
		FROM tickets t
		JOIN lanes l ON l.id = t.lane_id
		WHERE l.pipeline_id = $1
		ORDER BY t.lane_id, t.sort_order ASC`

	var tickets []Ticket
	if err := r.db.SelectContext(ctx, &tickets, query, pipelineID); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return tickets, nil
}

// DeleteTicket removes the ticket and recompacts its lane.
func (r *repository) DeleteTicket(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var laneID, pipelineID string
		err := tx.QueryRowxContext(ctx, `
			SELECT t.lane_id, l.pipeline_id
			FROM tickets t
			JOIN lanes l ON l.id = t.lane_id
			WHERE t.id = $1`,
			id,
		).Scan(&laneID, &pipelineID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete ticket: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete ticket: %w", err)
		}

		if _, err := lockPipeline(ctx, tx, pipelineID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tickets WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete ticket: %w", err)
		}

		return recompactTickets(ctx, tx, laneID)
	})
}

// ReorderTickets applies the submitted per-lane orders, covering both
// same-lane reorders and cross-lane moves. The union of submitted
// tickets must exactly match the tickets currently in those lanes.
func (r *repository) ReorderTickets(
	ctx context.Context,
	pipelineID string,
	baseVersion int64,
	lanes []LaneTicketOrder,
) (int64, error) {
	var newVersion int64

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		version, err := lockPipeline(ctx, tx, pipelineID)
		if err != nil {
			return err
		}

		if version != baseVersion {
			return fmt.Errorf(
				"pipeline version is %d, reorder based on %d: %w",
				version, baseVersion, core.ErrConflict,
			)
		}

		laneIDs := make([]string, 0, len(lanes))
		var submitted []string
		for _, lane := range lanes {
			laneIDs = append(laneIDs, lane.LaneID)
			submitted = append(submitted, lane.TicketIDs...)
		}

		var laneCount int
		query, args, err := sqlx.In(`
			SELECT COUNT(*) FROM lanes
			WHERE pipeline_id = ? AND id IN (?)`,
			pipelineID, laneIDs,
		)
		if err != nil {
			return fmt.Errorf("reorder tickets: %w", err)
		}
		if err := tx.GetContext(
			ctx, &laneCount, tx.Rebind(query), args...,
		); err != nil {
			return fmt.Errorf("reorder tickets: %w", err)
		}
		if laneCount != len(laneIDs) {
			return fmt.Errorf(
				"submitted lanes do not belong to the pipeline: %w",
				core.ErrInvalidInput,
			)
		}

		var current []string
		query, args, err = sqlx.In(
			`SELECT id FROM tickets WHERE lane_id IN (?)`, laneIDs,
		)
		if err != nil {
			return fmt.Errorf("reorder tickets: %w", err)
		}
		if err := tx.SelectContext(
			ctx, &current, tx.Rebind(query), args...,
		); err != nil {
			return fmt.Errorf("reorder tickets: %w", err)
		}

		if !sameIDSet(current, submitted) {
			return fmt.Errorf(
				"submitted tickets do not match the affected lanes: %w",
				core.ErrInvalidInput,
			)
		}

		for _, lane := range lanes {
			for position, ticketID := range lane.TicketIDs {
				if _, err := tx.ExecContext(ctx, `
					UPDATE tickets
					SET lane_id = $2, sort_order = $3, updated_at = NOW()
					WHERE id = $1`,
					ticketID, lane.LaneID, position,
				); err != nil {
					return fmt.Errorf("reorder ticket: %w", err)
				}
			}
		}

		newVersion, err = bumpVersion(ctx, tx, pipelineID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return newVersion, nil
}

func (r *repository) UpsertTag(ctx context.Context, tag *Tag) error {
	// The conflict branch only fires for the tag's own sub-account;
	// colliding with a foreign tenant's id returns no row.
	query := `
		INSERT INTO tags (id, sub_account_id, name, color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
		WHERE tags.sub_account_id = EXCLUDED.sub_account_id
		RETURNING created_at`

	err := r.db.GetContext(ctx, &tag.CreatedAt, query,
		tag.ID, tag.SubAccountID, tag.Name, tag.Color,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(
			"tag belongs to another sub account: %w", core.ErrForbidden,
		)
	}
	if err != nil {
		return fmt.Errorf("upsert tag: %w", err)
	}

	return nil
}

func (r *repository) ListTags(
	ctx context.Context,
	subAccountID string,
) ([]Tag, error) {
	query := `
		SELECT id, sub_account_id, name, color, created_at
		FROM tags
		WHERE sub_account_id = $1
		ORDER BY name ASC`

	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, query, subAccountID); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

func (r *repository) DeleteTag(
	ctx context.Context,
	subAccountID, id string,
) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id = $1 AND sub_account_id = $2`,
		id, subAccountID,
	)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tag: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListTicketTags(
	ctx context.Context,
	pipelineID string,
) (map[string][]Tag, error) {
	query := `
		SELECT tt.ticket_id, g.id, g.sub_account_id, g.name, g.color,
		       g.created_at
		FROM ticket_tags tt
		JOIN tags g ON g.id = tt.tag_id
		JOIN tickets t ON t.id = tt.ticket_id
		JOIN lanes l ON l.id = t.lane_id
		WHERE l.pipeline_id = $1`

	rows, err := r.db.QueryxContext(ctx, query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list ticket tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Tag)
	for rows.Next() {
		var ticketID string
		var tag Tag
		if err := rows.Scan(
			&ticketID, &tag.ID, &tag.SubAccountID, &tag.Name,
			&tag.Color, &tag.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list ticket tags: %w", err)
		}
		out[ticketID] = append(out[ticketID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ticket tags: %w", err)
	}

	return out, nil
}

func setTicketTags(
	ctx context.Context,
	tx *sqlx.Tx,
	ticketID string,
	tagIDs []string,
) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM ticket_tags WHERE ticket_id = $1`, ticketID,
	); err != nil {
		return fmt.Errorf("set ticket tags: %w", err)
	}

	// A tag attaches only within its own sub-account: the insert
	// resolves the ticket's tenant and filters the tag against it.
	query := `
		INSERT INTO ticket_tags (ticket_id, tag_id)
		SELECT tk.id, g.id
		FROM tickets tk
		JOIN lanes l ON l.id = tk.lane_id
		JOIN pipelines p ON p.id = l.pipeline_id
		JOIN tags g ON g.sub_account_id = p.sub_account_id
		WHERE tk.id = $1 AND g.id = $2`

	for _, tagID := range tagIDs {
		result, err := tx.ExecContext(ctx, query, ticketID, tagID)
		if err != nil {
			return fmt.Errorf("set ticket tags: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("set ticket tags: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf(
				"unknown tag %s: %w", tagID, core.ErrInvalidInput,
			)
		}
	}

	return nil
}

func recompactLanes(
	ctx context.Context,
	tx *sqlx.Tx,
	pipelineID string,
) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE lanes l
		SET sort_order = sub.rn - 1
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order) AS rn
			FROM lanes
			WHERE pipeline_id = $1
		) sub
		WHERE l.id = sub.id AND l.sort_order <> sub.rn - 1`,
		pipelineID,
	)
	if err != nil {
		return fmt.Errorf("recompact lanes: %w", err)
	}

	return nil
}

func recompactTickets(ctx context.Context, tx *sqlx.Tx, laneID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE tickets t
		SET sort_order = sub.rn - 1
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order) AS rn
			FROM tickets
			WHERE lane_id = $1
		) sub
		WHERE t.id = sub.id AND t.sort_order <> sub.rn - 1`,
		laneID,
	)
	if err != nil {
		return fmt.Errorf("recompact tickets: %w", err)
	}

	return nil
}

// sameIDSet reports whether the two slices contain exactly the same
// ids, with no duplicates in the submitted slice.
func sameIDSet(current, submitted []string) bool {
	if len(current) != len(submitted) {
		return false
	}

	seen := make(map[string]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}

	used := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		if !seen[id] || used[id] {
			return false
		}
		used[id] = true
	}

	return true
}
