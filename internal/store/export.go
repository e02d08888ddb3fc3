package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wordloop/wordloop/internal/spacedrep"
)

// ProgressExport is the JSON document written by ExportProgress.
type ProgressExport struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exportedAt"`
	Mode       string                `json:"mode,omitempty"`
	Category   string                `json:"category,omitempty"`
	Progress   spacedrep.ProgressMap `json:"progress"`
}

// ExportProgress writes the progress map, mode and category as indented JSON.
func ExportProgress(w io.Writer, data SnapshotData, now time.Time) error {
	doc := ProgressExport{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC(),
		Mode:       data.Mode,
		Category:   data.Category,
		Progress:   data.Progress,
	}
	if doc.Progress == nil {
		doc.Progress = spacedrep.ProgressMap{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return nil
}

// ImportProgress reads a document written by ExportProgress. A bare
// id-to-state object is accepted as well. Entries that do not decode are
// replaced by default states and listed in SnapshotData.Recovered.
func ImportProgress(r io.Reader) (SnapshotData, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return SnapshotData{}, fmt.Errorf("decode progress: %w", err)
	}

	data := SnapshotData{Version: SnapshotVersion}
	entries := raw

	if body, ok := raw["progress"]; ok {
		entries = nil
		if err := json.Unmarshal(body, &entries); err != nil {
			return SnapshotData{}, fmt.Errorf("decode progress entries: %w", err)
		}
		for key, dest := range map[string]*string{"mode": &data.Mode, "category": &data.Category} {
			if v, ok := raw[key]; ok {
				if err := json.Unmarshal(v, dest); err != nil {
					return SnapshotData{}, fmt.Errorf("decode %s: %w", key, err)
				}
			}
		}
	}

	data.Progress, data.Recovered = decodeProgress(entries)
	if data.Progress == nil {
		data.Progress = spacedrep.ProgressMap{}
	}
	return data, nil
}
