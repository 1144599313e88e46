package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/workup/datenorm/internal/model"
)

// JSONReader serves records from a JSON array export, as returned by the
// platform's /api/projetos and /api/eventos endpoints.
type JSONReader struct {
	records []model.ActivityRecord
	pos     int
}

// OpenJSON reads and decodes the whole file.
func OpenJSON(path string) (*JSONReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open json file: %w", err)
	}
	var records []model.ActivityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode json records: %w", err)
	}
	return &JSONReader{records: records}, nil
}

// NumRows returns the number of records in the file.
func (r *JSONReader) NumRows() int64 {
	return int64(len(r.records))
}

// Read copies up to len(records) records. Returns io.EOF with the final batch.
func (r *JSONReader) Read(records []model.ActivityRecord) (int, error) {
	n := copy(records, r.records[r.pos:])
	r.pos += n
	if r.pos >= len(r.records) {
		return n, io.EOF
	}
	return n, nil
}

// Validate is a no-op: JSON records are validated one by one.
func (r *JSONReader) Validate() error {
	return nil
}

// Close releases the decoded records.
func (r *JSONReader) Close() error {
	r.records = nil
	return nil
}
