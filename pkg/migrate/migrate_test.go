package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestDirFor(t *testing.T) {
	if got := DirFor("", "postgres"); got != filepath.Join(DefaultDir, "postgres") {
		t.Fatalf("unexpected postgres dir %q", got)
	}
	if got := DirFor("db", "mysql"); got != filepath.Join("db", "mysql") {
		t.Fatalf("unexpected mysql dir %q", got)
	}
	if got := DirFor("db", ""); got != filepath.Join("db", "mysql") {
		t.Fatalf("empty driver should fall back to mysql, got %q", got)
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := Run(t.Context(), nil, "mysql", "dir", "up"); err == nil {
		t.Fatal("expected error without db")
	}
}

func TestMigrateToVersionRejectsBadVersion(t *testing.T) {
	if err := MigrateToVersion(t.Context(), nil, "mysql", "dir", ""); err == nil {
		t.Fatal("expected error for empty version")
	}
	if err := MigrateToVersion(t.Context(), nil, "mysql", "dir", "abc"); err == nil {
		t.Fatal("expected error for non-numeric version")
	}
}

func TestCreateSQLMigrationWritesEveryDialect(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

	paths, err := CreateSQLMigration(base, "Add Index to Products!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(paths) != len(Dialects) {
		t.Fatalf("expected one file per dialect, got %v", paths)
	}
	for i, dialect := range Dialects {
		want := filepath.Join(base, dialect, "20260402103000_add_index_to_products.sql")
		if paths[i] != want {
			t.Fatalf("expected %q, got %q", want, paths[i])
		}
		body, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(body), "("+dialect+")") {
			t.Fatalf("expected %s template, got %s", dialect, body)
		}
	}
	if err := ValidateTree(base); err != nil {
		t.Fatalf("validate generated tree: %v", err)
	}

	if _, err := CreateSQLMigration(base, "add index to products", now); err == nil {
		t.Fatal("expected an error when the version already exists")
	}
	if _, err := CreateSQLMigration(base, "!!!", now); err == nil {
		t.Fatal("expected an error for a name with nothing usable")
	}
}

func TestScanDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "bad-name.sql", "-- +goose Up\n-- +goose Down\n")
	if _, err := scanDir(dir); err == nil {
		t.Fatal("expected filename error")
	}

	dir = t.TempDir()
	writeMigration(t, dir, "20260101000000_no_down.sql", "-- +goose Up\n")
	if _, err := scanDir(dir); err == nil {
		t.Fatal("expected missing down marker error")
	}

	dir = t.TempDir()
	writeMigration(t, dir, "20260101000000_swapped.sql", "-- +goose Down\n-- +goose Up\n")
	if _, err := scanDir(dir); err == nil {
		t.Fatal("expected down-before-up error")
	}
}

func TestScanDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "bad-name.sql", "")
	writeMigration(t, dir, "20260101000000_no_down.sql", "-- +goose Up\n")

	_, err := scanDir(dir)
	if err == nil {
		t.Fatal("expected errors")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", got, err)
	}
}

func TestValidateTreeRequiresMatchingVersions(t *testing.T) {
	base := t.TempDir()
	ok := "-- +goose Up\n-- +goose Down\n"
	writeMigration(t, filepath.Join(base, "mysql"), "20260101000000_create_faqs.sql", ok)
	writeMigration(t, filepath.Join(base, "postgres"), "20260101000000_create_faqs.sql", ok)
	writeMigration(t, filepath.Join(base, "mysql"), "20260102000000_add_brand_logo.sql", ok)

	err := ValidateTree(base)
	if err == nil {
		t.Fatal("expected missing postgres migration to fail")
	}
	if !strings.Contains(err.Error(), "20260102000000 exists for mysql but not for postgres") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
