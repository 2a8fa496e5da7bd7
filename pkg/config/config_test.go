package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Records != alumni.DefaultCount {
		t.Errorf("expected %d records, got %d", alumni.DefaultCount, cfg.Records)
	}
	if !cfg.Source().IsZero() {
		t.Errorf("expected built-in dataset source, got %+v", cfg.Source())
	}
	if opts := cfg.GeneratorOptions(); len(opts) != 0 {
		t.Errorf("expected no generator options, got %d", len(opts))
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	content := `data_file: ./alumni.yaml
data_url: https://example.org/alumni.yaml
records: 50
seed: 42
names:
  first: [Asha, Ravi]
  last: [Rao]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		DataFile: "./alumni.yaml",
		DataURL:  "https://example.org/alumni.yaml",
		Records:  50,
		Seed:     42,
		Names:    Names{First: []string{"Asha", "Ravi"}, Last: []string{"Rao"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Source(); got != (distribution.Source{FilePath: "./alumni.yaml", URL: "https://example.org/alumni.yaml"}) {
		t.Errorf("unexpected source %+v", got)
	}
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse("seed: 7\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Records != alumni.DefaultCount {
		t.Errorf("expected default records, got %d", cfg.Records)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse("records: 10\ncolour: blue\n")
	if err == nil {
		t.Fatal("expected error for unknown fields (KnownFields=true), got nil")
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("records: -1\nnames:\n  first: [\"\"]\n  last: [\" \"]\n")
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{"records", "names.first", "names.last"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got %q", want, err.Error())
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGeneratorOptions_Deterministic(t *testing.T) {
	cfg, err := Parse("seed: 99\nnames:\n  first: [Asha]\n  last: [Rao]\n")
	if err != nil {
		t.Fatal(err)
	}
	ds := distribution.Default()

	a := alumni.NewGenerator(ds, cfg.GeneratorOptions()...).Generate(20)
	b := alumni.NewGenerator(ds, cfg.GeneratorOptions()...).Generate(20)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different records (-a +b):\n%s", diff)
	}
	for _, r := range a {
		if r.Name != "Asha Rao" {
			t.Errorf("expected configured name pool, got %q", r.Name)
		}
	}
}
