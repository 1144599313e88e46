package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workup/datenorm/internal/model"
	embedsql "github.com/workup/datenorm/internal/sql"
)

// MonthlyCounts returns per-kind, per-month record counts for loaded files
// whose normalized start date falls in year.
func MonthlyCounts(ctx context.Context, pool *pgxpool.Pool, year int) ([]model.MonthCount, error) {
	rows, err := pool.Query(ctx, embedsql.MonthlyActivity, year)
	if err != nil {
		return nil, fmt.Errorf("query monthly activity: %w", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MonthCount, error) {
		var c model.MonthCount
		err := row.Scan(&c.Kind, &c.MonthIndex, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan monthly activity: %w", err)
	}
	return counts, nil
}
