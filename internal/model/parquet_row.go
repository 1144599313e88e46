package model

// ActivityParquetRow mirrors the Parquet schema for an activity export.
// Date columns hold the raw text; they get normalized during staging.
type ActivityParquetRow struct {
	Kind   string  `parquet:"kind"`
	ID     *string `parquet:"id,optional"`
	Title  string  `parquet:"title"`
	Regime *string `parquet:"regime,optional"`
	Tags   *string `parquet:"tags,optional"` // comma-separated

	StartDate *string `parquet:"start_date,optional"`
	EndDate   *string `parquet:"end_date,optional"`
	CreatedAt *string `parquet:"created_at,optional"`
}

// DateColumns returns the Parquet column names holding raw dates.
func DateColumns() []string {
	return []string{"start_date", "end_date", "created_at"}
}

// Record converts the row into the format-independent ActivityRecord.
// Missing optional columns become nil, not empty strings.
func (r *ActivityParquetRow) Record() ActivityRecord {
	rec := ActivityRecord{
		Kind:    r.Kind,
		Title:   r.Title,
		Tags:    optAny(r.Tags),
		Start:   optAny(r.StartDate),
		End:     optAny(r.EndDate),
		Created: optAny(r.CreatedAt),
	}
	if r.ID != nil {
		rec.ID = *r.ID
	}
	if r.Regime != nil {
		rec.Regime = *r.Regime
	}
	return rec
}

func optAny(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
