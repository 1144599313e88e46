package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/workup/datenorm/internal/config"
	"github.com/workup/datenorm/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full load pipeline: preflight → stage → finalize.
// referenceYear fills in dates written without a year.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, referenceYear int) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Int("reference_year", referenceYear).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, referenceYear, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("source_file_id", pf.SourceFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to reload)")
		return &model.LoadSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			SourceFileID:  pf.SourceFileID,
			LoadBatchID:   pf.LoadBatchID.String(),
			ReferenceYear: referenceYear,
			AlreadyLoaded: true,
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, "staging"); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	parser := cfg.NewParser(log)
	stageResult, err := Stage(ctx, pool, log, pf, parser, cfg.KindSelected)
	if err != nil {
		if cerr := Cleanup(context.WithoutCancel(ctx), pool, log, pf.LoadBatchID); cerr != nil {
			log.Warn().Err(cerr).Msg("batch cleanup failed (non-fatal)")
		}
		_ = UpdateStatus(context.WithoutCancel(ctx), pool, pf.SourceFileID, "failed")
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 3: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf.SourceFileID)
	if err != nil {
		_ = UpdateStatus(context.WithoutCancel(ctx), pool, pf.SourceFileID, "failed")
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.LoadSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		SourceFileID:     pf.SourceFileID,
		LoadBatchID:      pf.LoadBatchID.String(),
		ReferenceYear:    referenceYear,
		RowsRead:         stageResult.RowsRead,
		RowsStaged:       stageResult.RowsStaged,
		RowsRejected:     stageResult.RowsRejected,
		RowsSkipped:      stageResult.RowsSkipped,
		DatesAbsent:      stageResult.DatesAbsent,
		DurationStage:    stageResult.Duration,
		DurationFinalize: finalizeDur,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_staged", summary.RowsStaged).
		Int64("rows_rejected", summary.RowsRejected).
		Int64("rows_skipped", summary.RowsSkipped).
		Int64("dates_absent", summary.DatesAbsent).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}
