package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeConfig(t, "kinds:\n  - Evento\nreference_year: 2023\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Kinds) != 1 || c.Kinds[0] != "evento" {
		t.Errorf("unexpected kinds: %v", c.Kinds)
	}
	if c.ReferenceYear != 2023 {
		t.Errorf("reference year = %d", c.ReferenceYear)
	}
	if len(c.Locale.Months) != 12 || c.Locale.Months[1] != "fev" {
		t.Errorf("expected default months, got %v", c.Locale.Months)
	}
	if !c.KindSelected("evento") || c.KindSelected("projeto") {
		t.Errorf("KindSelected disagrees with kinds %v", c.Kinds)
	}
}

func TestLoadFromFile_FlagYearWins(t *testing.T) {
	path := writeConfig(t, "reference_year: 2023\n")

	c := Config{ReferenceYear: 2021}
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.ReferenceYear != 2021 {
		t.Errorf("reference year = %d, want flag value 2021", c.ReferenceYear)
	}
}

func TestLoadFromFile_UnknownKind(t *testing.T) {
	path := writeConfig(t, "kinds:\n  - projeto\n  - vaga\n")

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestLoadFromFile_EmptyDefaults(t *testing.T) {
	path := writeConfig(t, "kinds: []\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(c.Kinds) != 2 {
		t.Errorf("expected 2 default kinds, got %d: %v", len(c.Kinds), c.Kinds)
	}
}

func TestLoadFromFile_Locale(t *testing.T) {
	path := writeConfig(t, `locale:
  months: [jan, feb, mar, apr, may, jun, jul, aug, sep, oct, nov, dec]
  connectives: [of]
`)
	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	p := c.NewParser(zerolog.Nop())
	if d := p.Parse("5 of december", 2024); d == nil || d.ISO() != "2024-12-05" {
		t.Errorf("english locale parse = %v", d)
	}
}

func TestLoadFromFile_BadLocale(t *testing.T) {
	path := writeConfig(t, "locale:\n  months: [jan, fev]\n")

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for short month list")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveReferenceYear(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	var c Config
	if y := c.ResolveReferenceYear(now); y != 2026 {
		t.Errorf("unset reference year = %d, want 2026", y)
	}
	c.ReferenceYear = 2020
	if y := c.ResolveReferenceYear(now); y != 2020 {
		t.Errorf("set reference year = %d, want 2020", y)
	}
}

func TestValidate_RequiresFile(t *testing.T) {
	var c Config
	if err := c.Validate(); err == nil {
		t.Fatal("expected error without --file")
	}
	c.FilePath = writeConfig(t, "")
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error without DSN")
	}
	c.DSN = "postgres://localhost/test"
	if err := c.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}
}
