package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRow is the normalized, DB-ready representation of one record.
// Dates are UTC midnight of the normalized calendar date, or nil when the
// raw value could not be parsed. The raw text is kept next to each date.
type ActivityRow struct {
	LoadBatchID  uuid.UUID
	SourceFileID int64

	SourceRowNumber int64
	SourceRowHash   []byte

	Kind       string
	ExternalID *string
	Title      string
	Regime     *string
	Tags       []string

	StartRaw    *string
	StartDate   *time.Time
	EndRaw      *string
	EndDate     *time.Time
	CreatedRaw  *string
	CreatedDate *time.Time
}

// ActivityColumns returns the ordered column names for COPY into activity.records.
func ActivityColumns() []string {
	return []string{
		"load_batch_id",
		"source_file_id",
		"source_row_number",
		"source_row_hash",
		"kind",
		"external_id",
		"title",
		"regime",
		"tags",
		"start_raw",
		"start_date",
		"end_raw",
		"end_date",
		"created_raw",
		"created_date",
	}
}

// CopyValues returns the row values in the same order as ActivityColumns(),
// suitable for pgx CopyFromSource.
func (r *ActivityRow) CopyValues() []any {
	return []any{
		r.LoadBatchID,
		r.SourceFileID,
		r.SourceRowNumber,
		r.SourceRowHash,
		r.Kind,
		r.ExternalID,
		r.Title,
		r.Regime,
		r.Tags,
		r.StartRaw,
		r.StartDate,
		r.EndRaw,
		r.EndDate,
		r.CreatedRaw,
		r.CreatedDate,
	}
}

// MonthCount is one cell of the monthly activity aggregate read back from
// the database.
type MonthCount struct {
	Kind       string
	MonthIndex int // 0-11
	Count      int64
}
