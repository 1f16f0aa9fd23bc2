package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("# note\nName,Age\nAlice,30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--skip-prefix", "#", path)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var views []struct {
		Provenance string         `json:"provenance"`
		Fields     map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("Invalid JSON output %q: %v", out, err)
	}
	if len(views) != 1 || views[0].Fields["Name"] != "Alice" || views[0].Fields["Age"] != "30" {
		t.Errorf("Unexpected output %+v", views)
	}
	if !strings.HasSuffix(views[0].Provenance, "line 3") {
		t.Errorf("Provenance = %q", views[0].Provenance)
	}
}

func TestRunLinesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.txt")
	if err := os.WriteFile(path, []byte("a|b\nc|d\n"), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.jsonl")

	if _, err := execute(t, "--comma", "|", "--no-header", "--lines", "-o", outPath, path); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("Expected 2 lines, got %d: %s", n, data)
	}
}

func TestRunInvalidFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{"--format", "pdf", path},
		{"--comma", "ab", path},
		{"--log-level", "loud", path},
		{"--log-format", "xml", path},
		{filepath.Join(t.TempDir(), "missing.csv")},
		{},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("Expected error for args %v", args)
		}
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRunReportsWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("Name\nAlice\n"), 0644); err != nil {
		t.Fatal(err)
	}

	diskFull := errors.New("no space left on device")
	for _, args := range [][]string{
		{path},
		{"--lines", path},
	} {
		cmd := newRootCmd()
		cmd.SetOut(failingWriter{err: diskFull})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.Execute(); !errors.Is(err, diskFull) {
			t.Errorf("Args %v: expected write error, got %v", args, err)
		}
	}
}
