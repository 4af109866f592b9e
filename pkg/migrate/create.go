package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
)

// Dialects lists the driver subdirectories every migration must exist in.
var Dialects = []string{config.DriverMySQL, config.DriverPostgres}

const versionLayout = "20060102150405"

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s (%[2]s)
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s (%[2]s)
-- +goose StatementEnd
`

// CreateSQLMigration writes <base>/<dialect>/<version>_<name>.sql for every
// dialect with the same version, so the MySQL and Postgres trees never drift
// apart. Nothing is written if any target already exists.
func CreateSQLMigration(base, name string, now time.Time) ([]string, error) {
	if base == "" {
		return nil, errors.New("migrations root is required")
	}
	safe := sanitizeName(name)
	if safe == "" {
		return nil, fmt.Errorf("migration name %q is empty once sanitized", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.UTC().Format(versionLayout), safe)
	paths := make([]string, 0, len(Dialects))
	for _, dialect := range Dialects {
		path := filepath.Join(base, dialect, filename)
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("migration already exists: %s", path)
		}
		paths = append(paths, path)
	}

	for i, path := range paths {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %q: %w", filepath.Dir(path), err)
		}
		body := fmt.Sprintf(migrationTemplate, safe, Dialects[i])
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return nil, fmt.Errorf("write migration %q: %w", path, err)
		}
	}
	return paths, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
