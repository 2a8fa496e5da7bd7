package distribution

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const minimalDataset = `
summary:
  total_alumni: 10
  total_batches: 2
  batch_range: "Batch 1 to 2"
  active_professionals: 6
  mentoring_willing: 8
  placement_supporters: 7
program_track: {"ABC": 6, "THC": 4}
work_status: {"Intrapreneur": 6, "Entrepreneur": 4}
geography: {"Bihar ": 5, "Assam": 5}
batch:
  1: 3
  2: 7
mentoring: {"Yes": 8, "No": 2}
placement_support: {"Yes": 7, "No": 3}
`

func TestDefaultDataset(t *testing.T) {
	ds := Default()

	if ds.Summary.TotalAlumni != 2235 {
		t.Errorf("expected 2235 alumni, got %d", ds.Summary.TotalAlumni)
	}
	if got := ds.Batch.Total(); got != ds.Summary.TotalAlumni {
		t.Errorf("expected batch total %d, got %d", ds.Summary.TotalAlumni, got)
	}
	if _, ok := ds.Batch.Count("13"); ok {
		t.Error("batch 13 should not be present")
	}
	if ds.Batch.Len() != ds.Summary.TotalBatches {
		t.Errorf("expected %d batches, got %d", ds.Summary.TotalBatches, ds.Batch.Len())
	}

	wantStatuses := []string{"Intrapreneur", "Not working presently", "Entrepreneur", "Higher Studies", "Freelancer/Consultant"}
	if diff := cmp.Diff(wantStatuses, ds.WorkStatus.Labels()); diff != "" {
		t.Errorf("work status labels mismatch (-want +got):\n%s", diff)
	}

	if ds.Geography.Labels()[0] != "Uttar Pradesh " {
		t.Errorf("expected geography labels verbatim, got %q", ds.Geography.Labels()[0])
	}
	if n, _ := ds.Mentoring.Count("yes"); n != 21 {
		t.Errorf("expected lower-case yes to stay a separate category, got %d", n)
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.WorkStatus.Entries[0].Count = 0

	b := Default()
	if n, _ := b.WorkStatus.Count("Intrapreneur"); n != 1263 {
		t.Errorf("mutating one dataset leaked into another: got %d", n)
	}
}

func TestParseKeepsOrder(t *testing.T) {
	ds, err := Parse([]byte(minimalDataset))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2"}, ds.Batch.Labels()); diff != "" {
		t.Errorf("batch labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Entry{{"Bihar ", 5}, {"Assam", 5}}, ds.Geography.Entries); diff != "" {
		t.Errorf("geography mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(minimalDataset + "\nregion: {\"North\": 1}\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestParseRejectsBadCounts(t *testing.T) {
	doc := strings.Replace(minimalDataset, `"ABC": 6`, `"ABC": many`, 1)
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "ABC") {
		t.Fatalf("expected count error naming the label, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	ds, err := Parse([]byte(minimalDataset))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ds.ProgramTrack = New(Entry{"ABC", 1}, Entry{"ABC", 2})
	ds.WorkStatus = New(Entry{"Intrapreneur", -1})
	ds.Geography = Distribution{}
	ds.Batch = New(Entry{" ", 1})

	err = ds.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		`program_track: duplicate label "ABC"`,
		`work_status: negative count -1`,
		`geography: no categories`,
		`batch: empty label`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alumni.yaml")
	if err := os.WriteFile(path, []byte(minimalDataset), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ds, err := Load(context.Background(), Source{FilePath: path, URL: "http://127.0.0.1:0/ignored"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Summary.TotalAlumni != 10 {
		t.Errorf("expected 10 alumni, got %d", ds.Summary.TotalAlumni)
	}
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alumni.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(minimalDataset))
	}))
	defer srv.Close()

	ds, err := Load(context.Background(), Source{URL: srv.URL + "/alumni.yaml"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.ProgramTrack.Total() != 10 {
		t.Errorf("expected program track total 10, got %d", ds.ProgramTrack.Total())
	}

	if _, err := Load(context.Background(), Source{URL: srv.URL + "/missing.yaml"}); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestLoadFromURLTimesOut(t *testing.T) {
	defer func(d time.Duration) { fetchTimeout = d }(fetchTimeout)
	fetchTimeout = 50 * time.Millisecond

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := Load(context.Background(), Source{URL: srv.URL + "/alumni.yaml"})
	if err == nil {
		t.Fatal("expected error from a server that never answers")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("load took %v, expected it to give up after the fetch timeout", elapsed)
	}
}

func TestLoadRequiresSource(t *testing.T) {
	if !(Source{}).IsZero() {
		t.Fatal("empty source should be zero")
	}
	if _, err := Load(context.Background(), Source{}); err == nil {
		t.Fatal("expected error without file or url")
	}
}
