package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

const (
	markerUp   = "-- +goose Up"
	markerDown = "-- +goose Down"
)

// ValidateTree validates every dialect under base and requires each dialect
// to ship exactly the same migration versions.
func ValidateTree(base string) error {
	if base == "" {
		return errors.New("migrations root is required")
	}

	var errs error
	versions := make(map[string][]string, len(Dialects))
	for _, dialect := range Dialects {
		found, err := scanDir(filepath.Join(base, dialect))
		errs = multierr.Append(errs, err)
		versions[dialect] = found
	}

	reference := Dialects[0]
	for _, dialect := range Dialects[1:] {
		for _, v := range versions[reference] {
			if !slices.Contains(versions[dialect], v) {
				errs = multierr.Append(errs, fmt.Errorf("migration %s exists for %s but not for %s", v, reference, dialect))
			}
		}
		for _, v := range versions[dialect] {
			if !slices.Contains(versions[reference], v) {
				errs = multierr.Append(errs, fmt.Errorf("migration %s exists for %s but not for %s", v, dialect, reference))
			}
		}
	}
	return errs
}

// scanDir checks one dialect directory (file names, unique versions, Up
// before Down) and returns its versions in file-name order. Every problem is
// reported, not just the first. An empty directory is valid.
func scanDir(dir string) ([]string, error) {
	if dir == "" {
		return nil, errors.New("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var (
		errs     error
		versions []string
		seen     = map[string]string{}
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", dir, name))
			continue
		}
		version := m[1]
		if prev, ok := seen[version]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate migration version %s in %q and %q", dir, version, prev, name))
			continue
		}
		seen[version] = name
		versions = append(versions, version)

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read migration %q: %w", name, err))
			continue
		}
		errs = multierr.Append(errs, checkSections(name, string(b)))
	}
	return versions, errs
}

func checkSections(name, txt string) error {
	up := strings.Index(txt, markerUp)
	down := strings.Index(txt, markerDown)
	switch {
	case up < 0:
		return fmt.Errorf("migration %q missing %q", name, markerUp)
	case down < 0:
		return fmt.Errorf("migration %q missing %q", name, markerDown)
	case down < up:
		return fmt.Errorf("migration %q has its Down section before Up", name)
	}
	return nil
}
