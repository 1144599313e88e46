package model

import "time"

// LoadSummary captures metrics from a single file load run.
type LoadSummary struct {
	FilePath      string
	FileSHA256    string
	SourceFileID  int64
	LoadBatchID   string
	ReferenceYear int
	AlreadyLoaded bool

	RowsRead     int64
	RowsStaged   int64
	RowsRejected int64
	RowsSkipped  int64 // kind not selected in config
	DatesAbsent  int64 // raw date present but unparseable

	DurationStage    time.Duration
	DurationFinalize time.Duration
	DurationTotal    time.Duration
}
