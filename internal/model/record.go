package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActivityRecord is a project or event as exported by the platform backend.
// Date fields keep whatever shape the backend produced: Java LocalDate
// arrays, ISO strings, DD/MM text or free text like "12 de março".
type ActivityRecord struct {
	Kind    string `json:"kind" validate:"activitykind"`
	ID      string `json:"id"`
	Title   string `json:"title" validate:"notblank,max=300"`
	Regime  string `json:"regime"`
	Tags    any    `json:"tags"`
	Start   any    `json:"start"`
	End     any    `json:"end"`
	Created any    `json:"created"`
}

// jsonRecord accepts both the English field names and the backend's
// Portuguese ones (projects use nome/dataInicio/dataFim/dataCriacao,
// events use title/date).
type jsonRecord struct {
	Kind        string `json:"kind"`
	Tipo        string `json:"tipo"`
	ID          any    `json:"id"`
	Title       string `json:"title"`
	Nome        string `json:"nome"`
	Regime      string `json:"regime"`
	Tags        any    `json:"tags"`
	Start       any    `json:"start"`
	DataInicio  any    `json:"dataInicio"`
	Date        any    `json:"date"`
	End         any    `json:"end"`
	DataFim     any    `json:"dataFim"`
	Created     any    `json:"created"`
	DataCriacao any    `json:"dataCriacao"`
}

// UnmarshalJSON decodes a record, resolving field aliases. Numbers are kept
// as json.Number so integer date parts survive intact. When no kind is
// given, records carrying only a "date" are events and records with
// nome/dataInicio are projects.
func (r *ActivityRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jr jsonRecord
	if err := dec.Decode(&jr); err != nil {
		return fmt.Errorf("decode activity record: %w", err)
	}

	*r = ActivityRecord{
		Kind:    firstString(jr.Kind, jr.Tipo),
		Title:   firstString(jr.Title, jr.Nome),
		Regime:  jr.Regime,
		Tags:    jr.Tags,
		Start:   firstValue(jr.Start, jr.DataInicio, jr.Date),
		End:     firstValue(jr.End, jr.DataFim),
		Created: firstValue(jr.Created, jr.DataCriacao),
	}
	if jr.ID != nil {
		r.ID = fmt.Sprint(jr.ID)
	}

	if r.Kind == "" {
		switch {
		case jr.Nome != "" || jr.DataInicio != nil:
			r.Kind = KindProject.Name
		case jr.Date != nil:
			r.Kind = KindEvent.Name
		}
	}
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstValue(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
