package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

//go:embed *.cql
var migrationFiles embed.FS

// Apply runs the embedded CQL files in filename order. Each file may hold several
// statements separated by ';'. The keyspace itself is provisioned out of band.
func Apply(ctx context.Context, session *gocql.Session) error {
	entries, err := migrationFiles.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if err := session.Query(`
CREATE TABLE IF NOT EXISTS schema_migrations (
	name text PRIMARY KEY,
	applied_at timestamp
)`).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, name := range names {
		var applied string
		err := session.Query(`SELECT name FROM schema_migrations WHERE name = ?`, name).WithContext(ctx).Scan(&applied)
		if err == nil {
			continue
		}
		if !errors.Is(err, gocql.ErrNotFound) {
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		raw, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		for _, stmt := range Statements(string(raw)) {
			if err := session.Query(stmt).WithContext(ctx).Exec(); err != nil {
				return fmt.Errorf("exec migration %s: %w", name, err)
			}
		}
		if err := session.Query(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, name, time.Now().UTC()).
			WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

// Statements splits a CQL script on ';' and drops blanks.
func Statements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
