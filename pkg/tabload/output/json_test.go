package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ukaji3/tabload-go/pkg/tabload/models"
)

func TestView(t *testing.T) {
	rec := models.FromValues("Alice", "30", "extra")
	rec.Provenance = "people.csv line 2"
	aliases := models.AliasesFromHeader([]string{"Name", "Age"})

	view := View(rec, aliases)
	if view.Provenance != "people.csv line 2" || view.Blank {
		t.Errorf("Unexpected metadata %+v", view)
	}
	if view.Fields["Name"] != "Alice" || view.Fields["Age"] != "30" || view.Fields["3"] != "extra" {
		t.Errorf("Fields = %v", view.Fields)
	}
}

func TestToJSON(t *testing.T) {
	rec := models.FromValues("x")
	rec.Provenance = "a.csv line 1"

	data, err := ToJSON([]*models.Record{rec}, nil, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	expected := `[{"provenance":"a.csv line 1","fields":{"1":"x"}}]`
	if string(data) != expected {
		t.Errorf("ToJSON = %s, expected %s", data, expected)
	}

	pretty, err := ToJSON([]*models.Record{rec}, nil, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Errorf("Expected indented output, got %s", pretty)
	}

	empty, _ := ToJSON(nil, nil, false)
	if string(empty) != "[]" {
		t.Errorf("Expected [], got %s", empty)
	}
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLines(&buf)
	w.AddAlias("Name", 1)

	for _, name := range []string{"Alice", "Bob"} {
		if err := w.Record(models.FromValues(name)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	var view RecordView
	if err := json.Unmarshal([]byte(lines[1]), &view); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if view.Fields["Name"] != "Bob" {
		t.Errorf("Expected Bob, got %v", view.Fields)
	}
}
