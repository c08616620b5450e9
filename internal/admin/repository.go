// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/angelamos/agencyhub/internal/core"
)

type PlatformCounts struct {
	Agencies    int64 `db:"agencies"     json:"agencies"`
	SubAccounts int64 `db:"sub_accounts" json:"sub_accounts"`
	Users       int64 `db:"users"        json:"users"`
	Funnels     int64 `db:"funnels"      json:"funnels"`
	Pipelines   int64 `db:"pipelines"    json:"pipelines"`
}

type Counter interface {
	CountAll(ctx context.Context) (PlatformCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Counter {
	return &repository{db: db}
}

func (r *repository) CountAll(ctx context.Context) (PlatformCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM agencies)     AS agencies,
			(SELECT COUNT(*) FROM sub_accounts) AS sub_accounts,
			(SELECT COUNT(*) FROM users)        AS users,
			(SELECT COUNT(*) FROM funnels)      AS funnels,
			(SELECT COUNT(*) FROM pipelines)    AS pipelines`

	var counts PlatformCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return PlatformCounts{}, fmt.Errorf("count platform rows: %w", err)
	}

	return counts, nil
}
