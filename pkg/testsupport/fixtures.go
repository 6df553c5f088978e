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

	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// ColumnFixture is the JSON shape of a column in testdata files. Type holds
// the declared database type and is mapped through schema.TypeFromDatabase.
type ColumnFixture struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Default  *string `json:"default"`
	Nullable bool    `json:"nullable"`
	Comment  string  `json:"comment"`
}

// LoadColumns reads a column fixture. Testing helpers fail the test on error
// to keep table-driven tests concise.
func LoadColumns(t *testing.T, path string) []schema.Column {
	t.Helper()

	columns, err := LoadColumnsFromPath(path)
	if err != nil {
		t.Fatalf("load columns: %v", err)
	}
	return columns
}

// LoadColumnsFromPath returns the columns of a fixture without requiring
// testing.T.
func LoadColumnsFromPath(path string) ([]schema.Column, error) {
	if path == "" {
		return nil, errors.New("testsupport: columns path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read columns: %w", err)
	}
	var fixtures []ColumnFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal columns: %w", err)
	}

	columns := make([]schema.Column, 0, len(fixtures))
	for _, fixture := range fixtures {
		columns = append(columns, schema.Column{
			Name:     fixture.Name,
			Type:     schema.TypeFromDatabase(fixture.Type),
			Default:  fixture.Default,
			RawType:  fixture.Type,
			Nullable: fixture.Nullable,
			Comment:  fixture.Comment,
		})
	}
	return columns, nil
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

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("output mismatch for %s (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
