package source

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/workup/datenorm/internal/model"
)

// ParquetReader wraps a parquet GenericReader for streaming activity rows.
type ParquetReader struct {
	file   *os.File
	reader *parquet.GenericReader[model.ActivityParquetRow]
	buf    []model.ActivityParquetRow
}

// OpenParquet opens a Parquet file and returns a streaming reader.
func OpenParquet(path string) (*ParquetReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.ActivityParquetRow](pf)
	return &ParquetReader{file: f, reader: r}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (r *ParquetReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(records) rows and converts them to records.
// Returns the number of records read and io.EOF when done.
func (r *ParquetReader) Read(records []model.ActivityRecord) (int, error) {
	if cap(r.buf) < len(records) {
		r.buf = make([]model.ActivityParquetRow, len(records))
	}
	buf := r.buf[:len(records)]
	n, err := r.reader.Read(buf)
	for i := 0; i < n; i++ {
		records[i] = buf[i].Record()
	}
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// Validate checks the file schema.
func (r *ParquetReader) Validate() error {
	return ValidateSchema(r.reader.Schema())
}

// Close releases all resources.
func (r *ParquetReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
