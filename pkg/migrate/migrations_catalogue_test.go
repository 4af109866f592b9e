package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/migrate"
)

func readMigration(t *testing.T, dialect, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", dialect, "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration found for %s", dialect, suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCatalogueMigrationsContainConstraints(t *testing.T) {
	cases := map[string][]string{
		"create_taxonomy_tables": {
			"CREATE TABLE IF NOT EXISTS categories",
			"CREATE TABLE IF NOT EXISTS subcategories",
			"CREATE TABLE IF NOT EXISTS manufacturers",
			"CREATE TABLE IF NOT EXISTS brands",
			"CREATE TABLE IF NOT EXISTS models",
			"REFERENCES manufacturers(id)",
			"REFERENCES brands(id)",
			"REFERENCES categories(id)",
			"DROP TABLE IF EXISTS categories",
		},
		"create_products_table": {
			"CREATE TABLE IF NOT EXISTS products",
			"uq_products_sku",
			"currency CHAR(3) NOT NULL DEFAULT 'MXN'",
			"DROP TABLE IF EXISTS products",
		},
		"create_quotes_tables": {
			"CREATE TABLE IF NOT EXISTS quotes",
			"uq_quotes_quote_number",
			"REFERENCES quotes(id) ON DELETE CASCADE",
			"DROP TABLE IF EXISTS quote_items",
		},
		"create_support_tables": {
			"CREATE TABLE IF NOT EXISTS faqs",
			"CREATE TABLE IF NOT EXISTS contact_submissions",
			"uq_contact_submissions_ticket",
		},
		"create_admin_tables": {
			"CREATE TABLE IF NOT EXISTS admin_users",
			"uq_admin_users_email",
			"CREATE TABLE IF NOT EXISTS admin_sessions",
			"REFERENCES admin_users(id) ON DELETE CASCADE",
		},
	}

	for _, dialect := range []string{"mysql", "postgres"} {
		for suffix, checks := range cases {
			content := readMigration(t, dialect, suffix)
			for _, sub := range checks {
				if !strings.Contains(content, sub) {
					t.Errorf("%s/%s: missing expected statement %q", dialect, suffix, sub)
				}
			}
		}
	}
}

func TestSubcategorySlugIsUniquePerCategory(t *testing.T) {
	if content := readMigration(t, "mysql", "create_taxonomy_tables"); !strings.Contains(content, "UNIQUE KEY uq_subcategories_category_slug (category_id, slug)") {
		t.Fatalf("mysql subcategories missing composite unique key")
	}
	if content := readMigration(t, "postgres", "create_taxonomy_tables"); !strings.Contains(content, "CONSTRAINT uq_subcategories_category_slug UNIQUE (category_id, slug)") {
		t.Fatalf("postgres subcategories missing composite unique constraint")
	}
}

func TestDialectDirectoriesShareVersions(t *testing.T) {
	versions := func(dialect string) []string {
		entries, err := os.ReadDir(filepath.Join("migrations", dialect))
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		out := []string{}
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	mysql := versions("mysql")
	postgres := versions("postgres")
	if len(mysql) != len(postgres) {
		t.Fatalf("dialects out of sync: mysql=%v postgres=%v", mysql, postgres)
	}
	for i := range mysql {
		if mysql[i] != postgres[i] {
			t.Errorf("migration %d differs: %s vs %s", i, mysql[i], postgres[i])
		}
	}
}

func TestShippedMigrationsValidate(t *testing.T) {
	if err := migrate.ValidateTree("migrations"); err != nil {
		t.Fatal(err)
	}
}
