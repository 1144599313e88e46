package load

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/workup/datenorm/internal/normalize"
	"github.com/workup/datenorm/internal/source"
	embedsql "github.com/workup/datenorm/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// SourceFileID is the activity.source_files key for this file, inserted
	// or looked up by SHA-256.
	SourceFileID int64
	// LoadBatchID tags every row written by this run so a failed run can be
	// removed without touching earlier loads.
	LoadBatchID uuid.UUID
	// ReferenceYear is the year given to dates written without one.
	ReferenceYear int
	// NumRows is the row count reported by the source.
	NumRows int64
	// AlreadyLoaded is true when the file's SHA-256 is already loaded and
	// force mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the file, validates it as a source, and registers it.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, referenceYear int, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := source.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := reader.Validate(); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}
	numRows := reader.NumRows()

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", numRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	sourceFileID, alreadyLoaded, err := registerSourceFile(ctx, pool, log, filepath.Base(filePath), sha, stat.Size(), referenceYear, force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		SourceFileID:  sourceFileID,
		LoadBatchID:   uuid.New(),
		ReferenceYear: referenceYear,
		NumRows:       numRows,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerSourceFile(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, name, sha string, size int64, referenceYear int, force bool) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, embedsql.RegisterSourceFile, name, sha, size, referenceYear).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("register source file: %w", err)
	}

	// Already registered (ON CONFLICT DO NOTHING returned no rows)
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupSourceFile, sha).Scan(&id, &status); err != nil {
		return 0, false, fmt.Errorf("lookup existing source file: %w", err)
	}
	if status == "loaded" && !force {
		return id, true, nil
	}

	// Reload: drop rows from earlier runs, then reset status.
	tag, err := pool.Exec(ctx, embedsql.DeleteSourceRecords, id)
	if err != nil {
		return 0, false, fmt.Errorf("delete previous records: %w", err)
	}
	log.Info().Int64("source_file_id", id).Int64("rows_deleted", tag.RowsAffected()).Msg("previous load removed")

	if _, err := pool.Exec(ctx, embedsql.ResetSourceFile, id, referenceYear); err != nil {
		return 0, false, fmt.Errorf("reset source file: %w", err)
	}
	return id, false, nil
}
