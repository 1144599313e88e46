package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/workup/datenorm/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("activitykind", func(fl validator.FieldLevel) bool {
		_, ok := model.KindByName(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateRecord checks the record's required fields and kind.
func ValidateRecord(rec *model.ActivityRecord) error {
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return nil
}

// ToActivityRow validates a record and converts it into a normalized
// ActivityRow. Dates that cannot be parsed are stored as nil next to their
// raw text; only validation failures return an error.
func ToActivityRow(rec *model.ActivityRecord, batchID uuid.UUID, sourceFileID int64, rowNum int64, p *Parser, referenceYear int) (*model.ActivityRow, error) {
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}
	kind, _ := model.KindByName(rec.Kind)

	r := &model.ActivityRow{
		LoadBatchID:     batchID,
		SourceFileID:    sourceFileID,
		SourceRowNumber: rowNum,

		Kind:       kind.Name,
		ExternalID: NormalizeName(rec.ID),
		Title:      CollapseSpace(rec.Title),
		Regime:     NormalizeName(rec.Regime),
		Tags:       ParseTags(rec.Tags),

		StartRaw:    RawText(rec.Start),
		StartDate:   p.Parse(rec.Start, referenceYear).TimePtr(),
		EndRaw:      RawText(rec.End),
		EndDate:     p.Parse(rec.End, referenceYear).TimePtr(),
		CreatedRaw:  RawText(rec.Created),
		CreatedDate: p.Parse(rec.Created, referenceYear).TimePtr(),
	}

	title := r.Title
	r.SourceRowHash = RowHash(rowNum, &r.Kind, r.ExternalID, &title, r.StartRaw, r.EndRaw, r.CreatedRaw)
	return r, nil
}

// AbsentDates counts the dates of r whose raw value was present but did
// not parse.
func AbsentDates(r *model.ActivityRow) int64 {
	var n int64
	if r.StartRaw != nil && r.StartDate == nil {
		n++
	}
	if r.EndRaw != nil && r.EndDate == nil {
		n++
	}
	if r.CreatedRaw != nil && r.CreatedDate == nil {
		n++
	}
	return n
}

// RawText renders a raw date value for storage: strings are trimmed, other
// values are JSON-encoded ([2025,3,12]). Blank or nil input returns nil.
func RawText(v any) *string {
	v = unwrap(v)
	if v == nil {
		return nil
	}
	var s string
	if str, ok := v.(string); ok {
		s = strings.TrimSpace(str)
	} else {
		b, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprint(v)
		} else {
			s = string(b)
		}
	}
	if s == "" {
		return nil
	}
	return &s
}
