package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// LoadBlueprint reads a fixture file and parses it into a Blueprint. Testing
// helpers fail the test on error to keep contract tests concise.
func LoadBlueprint(t *testing.T, path string) blueprint.Blueprint {
	t.Helper()

	bp, err := LoadBlueprintFromPath(path)
	if err != nil {
		t.Fatalf("load blueprint: %v", err)
	}
	return bp
}

// LoadBlueprintFromPath parses a blueprint fixture without requiring
// testing.T, so callers can wire fixtures in setup functions.
func LoadBlueprintFromPath(path string) (blueprint.Blueprint, error) {
	if path == "" {
		return blueprint.Blueprint{}, errors.New("testsupport: blueprint path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("testsupport: read blueprint: %w", err)
	}
	bp, err := blueprint.Parse(data)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("testsupport: parse blueprint: %w", err)
	}
	return bp, nil
}

// LoadDocument reads a fixture and wraps it in a Document with a file source.
func LoadDocument(t *testing.T, path string) blueprint.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	doc, err := blueprint.NewDocument(blueprint.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
