// Package source reads activity exports in the formats the loader accepts.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/workup/datenorm/internal/model"
)

// Reader streams ActivityRecords in batches. Read returns io.EOF once the
// source is exhausted, possibly together with a final non-empty batch.
type Reader interface {
	NumRows() int64
	Read(records []model.ActivityRecord) (int, error)
	Validate() error
	Close() error
}

// Open picks a reader by file extension: .json or .parquet.
func Open(path string) (Reader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		r, err := OpenJSON(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	case ".parquet":
		r, err := OpenParquet(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported source format %q", ext)
	}
}

// ReadAll drains r into a slice.
func ReadAll(r Reader) ([]model.ActivityRecord, error) {
	var all []model.ActivityRecord
	buf := make([]model.ActivityRecord, 256)
	for {
		n, err := r.Read(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return all, err
		}
	}
}
