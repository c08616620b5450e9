// AngelaMos | 2026
// repository.go

package funnel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/agencyhub/internal/core"
)

type Repository interface {
	UpsertFunnel(ctx context.Context, f *Funnel) error
	GetFunnel(ctx context.Context, id string) (*Funnel, error)
	ListFunnels(ctx context.Context, subAccountID string) ([]Funnel, error)
	SetPublished(ctx context.Context, id string, published bool) error
	SetLiveProducts(ctx context.Context, id, products string) error
	DeleteFunnel(ctx context.Context, id string) error

	CreatePage(ctx context.Context, page *Page) error
	UpdatePage(ctx context.Context, page *Page) error
	UpdatePageContent(ctx context.Context, id, content string) error
	GetPage(ctx context.Context, id string) (*Page, error)
	ListPages(ctx context.Context, funnelID string) ([]Page, error)
	DeletePage(ctx context.Context, id string) error
	ReorderPages(
		ctx context.Context,
		funnelID string,
		orderedIDs []string,
	) error
	IncrementVisits(ctx context.Context, pageID string) error

	ResolvePage(ctx context.Context, subdomain, path string) (*Page, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertFunnel(ctx context.Context, f *Funnel) error {
	query := `
		INSERT INTO funnels (
			id, sub_account_id, name, description, sub_domain_name, favicon
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			sub_domain_name = EXCLUDED.sub_domain_name,
			favicon = EXCLUDED.favicon,
			updated_at = NOW()
		RETURNING published, live_products, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID,
		f.SubAccountID,
		f.Name,
		f.Description,
		f.SubDomainName,
		f.Favicon,
	).Scan(&f.Published, &f.LiveProducts, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf(
				"subdomain already taken: %w", core.ErrDuplicateKey,
			)
		}
		return fmt.Errorf("upsert funnel: %w", err)
	}

	return nil
}

func (r *repository) GetFunnel(
	ctx context.Context,
	id string,
) (*Funnel, error) {
	query := `
		SELECT id, sub_account_id, name, description, published,
		       COALESCE(sub_domain_name, '') AS sub_domain_name,
		       favicon, live_products, created_at, updated_at
		FROM funnels
		WHERE id = $1`

	var f Funnel
	err := r.db.GetContext(ctx, &f, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get funnel: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get funnel: %w", err)
	}

	return &f, nil
}

func (r *repository) ListFunnels(
	ctx context.Context,
	subAccountID string,
) ([]Funnel, error) {
	query := `
		SELECT id, sub_account_id, name, description, published,
		       COALESCE(sub_domain_name, '') AS sub_domain_name,
		       favicon, live_products, created_at, updated_at
		FROM funnels
		WHERE sub_account_id = $1
		ORDER BY created_at ASC`

	var funnels []Funnel
	err := r.db.SelectContext(ctx, &funnels, query, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("list funnels: %w", err)
	}

	return funnels, nil
}

func (r *repository) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) error {
	return r.execOne(ctx, "set published", `
		UPDATE funnels
		SET published = $2, updated_at = NOW()
		WHERE id = $1`,
		id, published,
	)
}

func (r *repository) SetLiveProducts(
	ctx context.Context,
	id, products string,
) error {
	return r.execOne(ctx, "set live products", `
		UPDATE funnels
		SET live_products = $2, updated_at = NOW()
		WHERE id = $1`,
		id, products,
	)
}

func (r *repository) DeleteFunnel(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete funnel",
		`DELETE FROM funnels WHERE id = $1`, id,
	)
}

// CreatePage appends the page at the end of the funnel under the
// funnel row lock.
func (r *repository) CreatePage(ctx context.Context, page *Page) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockFunnel(ctx, tx, page.FunnelID); err != nil {
			return err
		}

		query := `
			INSERT INTO funnel_pages (
				id, funnel_id, name, path_name, content, sort_order,
				preview_image
			)
			SELECT $1, $2, $3, $4, $5, COALESCE(MAX(sort_order) + 1, 0), $6
			FROM funnel_pages
			WHERE funnel_id = $2
			RETURNING sort_order, visits, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			page.ID,
			page.FunnelID,
			page.Name,
			page.PathName,
			page.Content,
			page.PreviewImage,
		).Scan(
			&page.SortOrder, &page.Visits, &page.CreatedAt, &page.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create page: %w", err)
		}

		return nil
	})
}

func (r *repository) UpdatePage(ctx context.Context, page *Page) error {
	query := `
		UPDATE funnel_pages
		SET name = $2, path_name = $3, preview_image = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING sort_order, visits, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		page.ID, page.Name, page.PathName, page.PreviewImage,
	).Scan(&page.SortOrder, &page.Visits, &page.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update page: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}

	return nil
}

func (r *repository) UpdatePageContent(
	ctx context.Context,
	id, content string,
) error {
	return r.execOne(ctx, "update page content", `
		UPDATE funnel_pages
		SET content = $2, updated_at = NOW()
		WHERE id = $1`,
		id, content,
	)
}

func (r *repository) GetPage(ctx context.Context, id string) (*Page, error) {
	query := `
		SELECT id, funnel_id, name, path_name, content, sort_order,
		       visits, preview_image, created_at, updated_at
		FROM funnel_pages
		WHERE id = $1`

	var page Page
	err := r.db.GetContext(ctx, &page, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get page: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}

	return &page, nil
}

func (r *repository) ListPages(
	ctx context.Context,
	funnelID string,
) ([]Page, error) {
	query := `
		SELECT id, funnel_id, name, path_name, content, sort_order,
		       visits, preview_image, created_at, updated_at
		FROM funnel_pages
		WHERE funnel_id = $1
		ORDER BY sort_order ASC`

	var pages []Page
	if err := r.db.SelectContext(ctx, &pages, query, funnelID); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	return pages, nil
}

// DeletePage removes the page and closes the order gap.
func (r *repository) DeletePage(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var funnelID string
		err := tx.GetContext(ctx, &funnelID,
			`SELECT funnel_id FROM funnel_pages WHERE id = $1`, id,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete page: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}

		if err := lockFunnel(ctx, tx, funnelID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM funnel_pages WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE funnel_pages p
			SET sort_order = sub.rn - 1
			FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order) AS rn
				FROM funnel_pages
				WHERE funnel_id = $1
			) sub
			WHERE p.id = sub.id AND p.sort_order <> sub.rn - 1`,
			funnelID,
		)
		if err != nil {
			return fmt.Errorf("recompact pages: %w", err)
		}

		return nil
	})
}

// ReorderPages applies a full permutation of the funnel's pages.
func (r *repository) ReorderPages(
	ctx context.Context,
	funnelID string,
	orderedIDs []string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockFunnel(ctx, tx, funnelID); err != nil {
			return err
		}

		var currentIDs []string
		if err := tx.SelectContext(ctx, &currentIDs,
			`SELECT id FROM funnel_pages WHERE funnel_id = $1`, funnelID,
		); err != nil {
			return fmt.Errorf("list page ids: %w", err)
		}

		if !sameIDSet(currentIDs, orderedIDs) {
			return fmt.Errorf(
				"submitted pages do not match the funnel: %w",
				core.ErrInvalidInput,
			)
		}

		for position, pageID := range orderedIDs {
			if _, err := tx.ExecContext(ctx, `
				UPDATE funnel_pages
				SET sort_order = $2, updated_at = NOW()
				WHERE id = $1`,
				pageID, position,
			); err != nil {
				return fmt.Errorf("reorder page: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) IncrementVisits(
	ctx context.Context,
	pageID string,
) error {
	return r.execOne(ctx, "increment visits", `
		UPDATE funnel_pages
		SET visits = visits + 1
		WHERE id = $1`,
		pageID,
	)
}

// ResolvePage maps an incoming public request to a published funnel
// page. An empty path lands on the funnel's first page.
func (r *repository) ResolvePage(
	ctx context.Context,
	subdomain, path string,
) (*Page, error) {
	var page Page
	var err error

	if path == "" {
		err = r.db.GetContext(ctx, &page, `
			SELECT p.id, p.funnel_id, p.name, p.path_name, p.content,
			       p.sort_order, p.visits, p.preview_image,
			       p.created_at, p.updated_at
			FROM funnel_pages p
			JOIN funnels f ON f.id = p.funnel_id
			WHERE f.sub_domain_name = $1 AND f.published = TRUE
			  AND p.sort_order = 0`,
			subdomain,
		)
	} else {
		err = r.db.GetContext(ctx, &page, `
			SELECT p.id, p.funnel_id, p.name, p.path_name, p.content,
			       p.sort_order, p.visits, p.preview_image,
			       p.created_at, p.updated_at
			FROM funnel_pages p
			JOIN funnels f ON f.id = p.funnel_id
			WHERE f.sub_domain_name = $1 AND f.published = TRUE
			  AND p.path_name = $2`,
			subdomain, path,
		)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve page: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve page: %w", err)
	}

	return &page, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func lockFunnel(ctx context.Context, tx *sqlx.Tx, funnelID string) error {
	var id string
	err := tx.GetContext(ctx, &id,
		`SELECT id FROM funnels WHERE id = $1 FOR UPDATE`, funnelID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock funnel: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock funnel: %w", err)
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

// sameIDSet reports whether the two slices hold exactly the same ids,
// with no duplicates in the submitted slice.
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
