package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	got := Statements("CREATE TABLE a (id int PRIMARY KEY);\n\n  CREATE TABLE b (id int PRIMARY KEY);\n")
	assert.Equal(t, []string{
		"CREATE TABLE a (id int PRIMARY KEY)",
		"CREATE TABLE b (id int PRIMARY KEY)",
	}, got)
	assert.Empty(t, Statements(" ; \n;"))
}

func TestEmbeddedMigrationsParse(t *testing.T) {
	entries, err := migrationFiles.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		raw, err := migrationFiles.ReadFile(e.Name())
		require.NoError(t, err)
		stmts := Statements(string(raw))
		assert.NotEmpty(t, stmts, e.Name())
		for _, s := range stmts {
			assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS", e.Name())
		}
	}
}
