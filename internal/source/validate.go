package source

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/workup/datenorm/internal/model"
)

// ValidateSchema checks that the Parquet schema contains all required columns
// and at least one date column.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	required := []string{"kind", "title"}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	dateCols := model.DateColumns()
	for _, col := range dateCols {
		if columns[col] {
			return nil
		}
	}
	return fmt.Errorf("no date columns found; need at least one of: %s",
		strings.Join(dateCols, ", "))
}
