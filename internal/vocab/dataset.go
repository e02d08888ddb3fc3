package vocab

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"golang.org/x/mod/semver"
)

// FormatVersion is the dataset format written by Build.
const FormatVersion = "v1.0.0"

var (
	// ErrUnsupportedFormat is returned for datasets with an incompatible
	// major format version.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrDuplicateID is returned when two items share an ID.
	ErrDuplicateID = errors.New("duplicate item id")
)

//go:embed data/starter.json
var starterJSON []byte

// Counts summarizes the dataset size per category.
type Counts struct {
	Words        int `json:"words"`
	PhrasalVerbs int `json:"phrasalVerbs"`
	Total        int `json:"total"`
}

// Dataset is the on-disk learning content.
type Dataset struct {
	FormatVersion string         `json:"formatVersion,omitempty"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Counts        Counts         `json:"counts"`
	Items         []LearningItem `json:"items"`
}

// Decode reads a dataset from r and keeps only items in known categories.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := checkFormat(ds.FormatVersion); err != nil {
		return nil, err
	}

	ds.Items = lo.Filter(ds.Items, func(item LearningItem, _ int) bool {
		return item.Category == CategoryWords || item.Category == CategoryPhrasalVerbs
	})

	seen := make(map[string]struct{}, len(ds.Items))
	for _, item := range ds.Items {
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return &ds, nil
}

// Load reads a dataset file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Default returns the embedded starter dataset.
func Default() (*Dataset, error) {
	ds, err := Decode(bytes.NewReader(starterJSON))
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return ds, nil
}

// Write encodes the dataset as indented JSON with a trailing newline.
func (ds *Dataset) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// Build assembles a dataset from parsed words and phrasal verbs.
func Build(words, phrasal []LearningItem, now time.Time) *Dataset {
	items := make([]LearningItem, 0, len(words)+len(phrasal))
	items = append(items, words...)
	items = append(items, phrasal...)
	return &Dataset{
		FormatVersion: FormatVersion,
		GeneratedAt:   now.UTC(),
		Counts: Counts{
			Words:        len(words),
			PhrasalVerbs: len(phrasal),
			Total:        len(items),
		},
		Items: items,
	}
}

// checkFormat accepts an empty version (files written before versioning)
// and any version with the same major as FormatVersion.
func checkFormat(version string) error {
	if version == "" {
		return nil
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("%w: invalid version %q", ErrUnsupportedFormat, version)
	}
	if semver.Major(version) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, version, semver.Major(FormatVersion))
	}
	return nil
}
