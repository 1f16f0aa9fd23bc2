// Package output serializes records to JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ukaji3/tabload-go/pkg/tabload/models"
)

// RecordView is the JSON shape of a record.
type RecordView struct {
	// Provenance is where the record came from.
	Provenance string `json:"provenance"`
	// Blank is true for rows without data.
	Blank bool `json:"blank,omitempty"`
	// Fields maps header names, or positions when no alias exists, to values.
	Fields map[string]any `json:"fields"`
}

// View converts a record, naming positional keys through aliases.
func View(rec *models.Record, aliases models.Aliases) RecordView {
	names := make(map[int]string, len(aliases))
	for _, a := range aliases {
		names[a.Index] = a.Name
	}

	fields := make(map[string]any, rec.Len())
	for _, k := range rec.Keys() {
		key := fmt.Sprint(k)
		if i, ok := k.(int); ok {
			if name, ok := names[i]; ok {
				key = name
			}
		}
		fields[key] = rec.Value(k)
	}
	return RecordView{
		Provenance: rec.Provenance,
		Blank:      rec.Blank,
		Fields:     fields,
	}
}

// ToJSON serializes records as a JSON array.
func ToJSON(records []*models.Record, aliases models.Aliases, pretty bool) ([]byte, error) {
	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, View(rec, aliases))
	}
	if pretty {
		return json.MarshalIndent(views, "", "  ")
	}
	return json.Marshal(views)
}

// JSONLines writes one JSON object per record. It collects aliases as they
// are published so later records are keyed by header name.
type JSONLines struct {
	enc     *json.Encoder
	aliases models.Aliases
}

// NewJSONLines creates a JSONLines writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

func (j *JSONLines) AddAlias(name string, index int) {
	j.aliases = append(j.aliases, models.Alias{Name: name, Index: index})
}

func (j *JSONLines) Record(rec *models.Record) error {
	return j.enc.Encode(View(rec, j.aliases))
}
