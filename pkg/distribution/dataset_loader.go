package distribution

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

//go:embed data/alumni.yaml
var defaultData []byte

// fetchTimeout bounds a dataset download, body included.
var fetchTimeout = 30 * time.Second

// Source tells Load where to read a dataset from. FilePath wins when both
// are set.
type Source struct {
	FilePath string
	URL      string
}

// IsZero reports whether neither location is set.
func (s Source) IsZero() bool {
	return strings.TrimSpace(s.FilePath) == "" && strings.TrimSpace(s.URL) == ""
}

// Default returns the built-in reference dataset.
func Default() *Dataset {
	ds, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset is invalid: %v", err))
	}
	return ds
}

// Load reads, parses and validates a dataset.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	log := klog.FromContext(ctx)

	raw, err := readSource(ctx, src.FilePath, src.URL)
	if err != nil {
		return nil, fmt.Errorf("load data source: %w", err)
	}

	ds, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	log.V(2).Info("dataset loaded", "file", src.FilePath, "url", src.URL, "alumni", ds.Summary.TotalAlumni)
	return ds, nil
}

// Parse decodes a YAML dataset document and validates it. Unknown fields are
// rejected.
func Parse(raw []byte) (*Dataset, error) {
	var ds Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &ds, nil
}

// Validate reports every structural problem with the dataset. Totals are not
// checked against the summary.
func (ds *Dataset) Validate() error {
	var errs []error
	for _, dim := range Dimensions() {
		d, _ := ds.Dimension(dim)
		if d.Len() == 0 {
			errs = append(errs, fmt.Errorf("%s: no categories", dim))
			continue
		}
		seen := make(map[string]struct{}, d.Len())
		for _, e := range d.Entries {
			if strings.TrimSpace(e.Label) == "" {
				errs = append(errs, fmt.Errorf("%s: empty label", dim))
			}
			if e.Count < 0 {
				errs = append(errs, fmt.Errorf("%s: negative count %d for %q", dim, e.Count, e.Label))
			}
			if _, ok := seen[e.Label]; ok {
				errs = append(errs, fmt.Errorf("%s: duplicate label %q", dim, e.Label))
			}
			seen[e.Label] = struct{}{}
		}
	}
	return errors.Join(errs...)
}

func readSource(ctx context.Context, filePath, url string) ([]byte, error) {
	switch {
	case filePath != "":
		return os.ReadFile(filePath)
	case url != "":
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		return nil, errors.New("either file or url must be provided")
	}
}
