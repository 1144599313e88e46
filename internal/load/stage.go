package load

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/workup/datenorm/internal/db"
	"github.com/workup/datenorm/internal/model"
	"github.com/workup/datenorm/internal/normalize"
	"github.com/workup/datenorm/internal/source"
	embedsql "github.com/workup/datenorm/internal/sql"
)

const readBatchSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead     int64
	RowsStaged   int64
	RowsRejected int64
	RowsSkipped  int64
	DatesAbsent  int64
	Duration     time.Duration
}

// Stage streams records from the source file, normalizes them, and COPY-loads
// them into activity.records via a channel-backed CopyFromSource. Records
// whose kind is not selected are skipped; invalid records are rejected.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, parser *normalize.Parser, selected func(kind string) bool) (*StageResult, error) {
	start := time.Now()

	reader, err := source.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.ActivityRow, readBatchSize)
	errCh := make(chan error, 1)

	var res StageResult

	// Producer goroutine: read source → normalize → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.ActivityRecord, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				res.RowsRead++

				row, normErr := normalize.ToActivityRow(&buf[i], pf.LoadBatchID, pf.SourceFileID, rowNum, parser, pf.ReferenceYear)
				if normErr != nil {
					res.RowsRejected++
					log.Warn().Err(normErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}
				if !selected(row.Kind) {
					res.RowsSkipped++
					continue
				}
				res.DatesAbsent += normalize.AbsentDates(row)

				select {
				case ch <- row:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read source at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into activity.records
	rowsStaged, copyErr := pool.CopyFrom(ctx, db.RecordsTable, model.ActivityColumns(), db.NewChannelSource(ch))
	if copyErr != nil {
		// Unblock the producer if COPY gave up early.
		cancel()
	}

	prodErr := <-errCh
	if copyErr != nil {
		return nil, fmt.Errorf("stage copy: %w", copyErr)
	}
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}

	res.RowsStaged = rowsStaged
	res.Duration = time.Since(start)
	log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_staged", res.RowsStaged).
		Int64("rows_rejected", res.RowsRejected).
		Int64("rows_skipped", res.RowsSkipped).
		Str("duration", res.Duration.String()).
		Float64("rows_per_sec", float64(res.RowsStaged)/res.Duration.Seconds()).
		Msg("staging complete")

	return &res, nil
}

// UpdateStatus updates the source file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, sourceFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateSourceStatus, sourceFileID, status)
	return err
}
