package normalize

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/workup/datenorm/internal/model"
)

func TestToActivityRow_Project(t *testing.T) {
	rec := &model.ActivityRecord{
		Kind:    "Projeto",
		ID:      " 42 ",
		Title:   "  App   de estágio ",
		Regime:  "Remoto",
		Tags:    "Go, React,, SQL ",
		Start:   []any{json.Number("2025"), json.Number("3"), json.Number("12")},
		End:     "12/09/2025",
		Created: "ontem",
	}
	batch := uuid.New()
	row, err := ToActivityRow(rec, batch, 7, 3, NewParser(), refYear)
	if err != nil {
		t.Fatalf("ToActivityRow: %v", err)
	}

	if row.Kind != "projeto" {
		t.Errorf("kind = %q", row.Kind)
	}
	if row.Title != "App de estágio" {
		t.Errorf("title = %q", row.Title)
	}
	if row.ExternalID == nil || *row.ExternalID != "42" {
		t.Errorf("external id = %v", row.ExternalID)
	}
	if !reflect.DeepEqual(row.Tags, []string{"Go", "React", "SQL"}) {
		t.Errorf("tags = %v", row.Tags)
	}
	if row.StartDate == nil || row.StartDate.Format("2006-01-02") != "2025-03-12" {
		t.Errorf("start date = %v", row.StartDate)
	}
	if row.StartRaw == nil || *row.StartRaw != "[2025,3,12]" {
		t.Errorf("start raw = %v", row.StartRaw)
	}
	if row.EndDate == nil || row.EndDate.Format("2006-01-02") != "2025-09-12" {
		t.Errorf("end date = %v", row.EndDate)
	}
	if row.CreatedDate != nil {
		t.Errorf("created date should be absent, got %v", row.CreatedDate)
	}
	if row.CreatedRaw == nil || *row.CreatedRaw != "ontem" {
		t.Errorf("created raw = %v", row.CreatedRaw)
	}
	if n := AbsentDates(row); n != 1 {
		t.Errorf("AbsentDates = %d, want 1", n)
	}
	if row.LoadBatchID != batch || row.SourceFileID != 7 || row.SourceRowNumber != 3 {
		t.Errorf("identity fields not copied: %+v", row)
	}
	if len(row.SourceRowHash) != 32 {
		t.Errorf("row hash length = %d", len(row.SourceRowHash))
	}
	if got := len(row.CopyValues()); got != len(model.ActivityColumns()) {
		t.Errorf("CopyValues has %d values for %d columns", got, len(model.ActivityColumns()))
	}
}

func TestToActivityRow_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rec  model.ActivityRecord
	}{
		{"unknown kind", model.ActivityRecord{Kind: "vaga", Title: "x"}},
		{"missing kind", model.ActivityRecord{Title: "x"}},
		{"blank title", model.ActivityRecord{Kind: "evento", Title: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToActivityRow(&tt.rec, uuid.Nil, 1, 1, NewParser(), refYear); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestToActivityRow_HashIsStable(t *testing.T) {
	rec := &model.ActivityRecord{Kind: "evento", Title: "Feira", Start: "12 mar"}
	a, err := ToActivityRow(rec, uuid.New(), 1, 9, NewParser(), refYear)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ToActivityRow(rec, uuid.New(), 2, 9, NewParser(), refYear)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.SourceRowHash, b.SourceRowHash) {
		t.Error("same content and row number should hash the same")
	}
	c, _ := ToActivityRow(rec, uuid.New(), 1, 10, NewParser(), refYear)
	if bytes.Equal(a.SourceRowHash, c.SourceRowHash) {
		t.Error("different row numbers should hash differently")
	}
}

func TestActivityRecord_UnmarshalAliases(t *testing.T) {
	data := `[
		{"id": 1, "nome": "Portal", "dataInicio": [2025, 2, 1], "dataFim": "2025-06-30", "dataCriacao": "2025-01-15", "tags": ["Go", " Vue "]},
		{"title": "Hackathon", "date": "12 de março"}
	]`
	var recs []model.ActivityRecord
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}

	p := recs[0]
	if p.Kind != "projeto" || p.Title != "Portal" || p.ID != "1" {
		t.Errorf("project decoded as %+v", p)
	}
	if d := ParseDate(p.Start, refYear); d == nil || d.ISO() != "2025-02-01" {
		t.Errorf("project start = %v", d)
	}
	if !reflect.DeepEqual(ParseTags(p.Tags), []string{"Go", "Vue"}) {
		t.Errorf("project tags = %v", ParseTags(p.Tags))
	}

	e := recs[1]
	if e.Kind != "evento" || e.Title != "Hackathon" {
		t.Errorf("event decoded as %+v", e)
	}
	if d := ParseDate(e.Start, refYear); d == nil || d.ISO() != "2024-03-12" {
		t.Errorf("event start = %v", d)
	}
}

func TestFoldText(t *testing.T) {
	tests := map[string]string{
		"  Março ":       "marco",
		"12  DE\tAGOSTO": "12 de agosto",
		"São João":       "sao joao",
		"":               "",
	}
	for in, want := range tests {
		if got := FoldText(in); got != want {
			t.Errorf("FoldText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRawText(t *testing.T) {
	if RawText(nil) != nil || RawText("  ") != nil {
		t.Error("blank values should have no raw text")
	}
	if s := RawText([]int{2025, 3, 12}); s == nil || *s != "[2025,3,12]" {
		t.Errorf("RawText(array) = %v", s)
	}
	if s := RawText(" 12 mar "); s == nil || *s != "12 mar" {
		t.Errorf("RawText(string) = %v", s)
	}
}
