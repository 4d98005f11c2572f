package db

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

func TestMigrationURL(t *testing.T) {
	got, err := migrationURL("postgres://u:p@localhost:5432/app?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@localhost:5432/app?sslmode=disable", got)

	got, err = migrationURL("postgresql://localhost/app")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://localhost/app", got)

	_, err = migrationURL("mysql://localhost/app")
	assert.Error(t, err)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	for name := range names {
		if up, ok := strings.CutSuffix(name, ".up.sql"); ok {
			assert.True(t, names[up+".down.sql"], "missing down migration for %s", name)
		}
	}
	assert.True(t, names["0001_init.up.sql"])
	assert.True(t, names["0002_normalize_enum_tags.up.sql"])
}

func TestRepairEnumTags(t *testing.T) {
	db, mock := newMock(t)

	stmts := repairStatements()
	mock.ExpectBegin()
	for i := range stmts {
		affected := int64(0)
		if i == 0 {
			affected = 3
		}
		mock.ExpectExec(regexp.QuoteMeta(stmts[i])).WillReturnResult(sqlmock.NewResult(0, affected))
	}
	mock.ExpectCommit()

	n, err := RepairEnumTags(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepairEnumTagsRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE meal_logs").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := RepairEnumTags(context.Background(), db)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepairStatementsCoverTagLists(t *testing.T) {
	joined := ""
	for _, s := range repairStatements() {
		joined += s + "\n"
	}
	for _, col := range []string{"medical_conditions", "allergies", "preferred_sports"} {
		assert.Contains(t, joined, "jsonb_array_elements_text("+col+")")
	}
	assert.Contains(t, joined, "UPDATE meal_components SET unit")
}

func TestEnsureSuperuserExisting(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id FROM users WHERE email").
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	created, err := EnsureSuperuser(context.Background(), db, "admin@example.com", "Adm1n!pass")
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSuperuserCreates(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id FROM users WHERE email").
		WithArgs("admin@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("admin@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := EnsureSuperuser(context.Background(), db, "admin@example.com", "Adm1n!pass")
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedKnowledgeCategories(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM knowledge_categories")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	for range knowledgeCategories {
		mock.ExpectExec("INSERT INTO knowledge_categories").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	n, err := SeedKnowledgeCategories(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedKnowledgeCategoriesSkipsWhenPopulated(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM knowledge_categories")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectRollback()

	n, err := SeedKnowledgeCategories(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
