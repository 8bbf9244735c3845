package database

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_PostgresUsesSchemaArgument(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mk.ExpectQuery(regexp.QuoteMeta(Postgres.TablesQuery)).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"tablename"}).AddRow("posts").AddRow("users"))
	mk.ExpectQuery(regexp.QuoteMeta(Postgres.ColumnsQuery)).
		WithArgs("public", "posts").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("user_id"))

	in := NewInspector(db, Postgres, "", nil)
	ctx := context.Background()

	tables, err := in.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "users"}, tables)

	cols, err := in.ListColumns(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_id"}, cols)

	require.NoError(t, mk.ExpectationsWereMet())
}

func TestInspector_MySQLBindsTableOnly(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mk.ExpectQuery(regexp.QuoteMeta(MySQL.ColumnsQuery)).
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("customer_id"))

	in := NewInspector(db, MySQL, "", nil)
	cols, err := in.ListColumns(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "customer_id"}, cols)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestInspector_SQLServerCustomSchema(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mk.ExpectQuery(regexp.QuoteMeta(SQLServer.TablesQuery)).
		WithArgs("sales").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("regions2"))

	in := NewInspector(db, SQLServer, "sales", nil)
	ok, err := in.TableExists(context.Background(), "regions2")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestInspector_QueryErrorIsWrapped(t *testing.T) {
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mk.ExpectQuery(regexp.QuoteMeta(SQLite.TablesQuery)).
		WillReturnError(sql.ErrConnDone)

	in := NewInspector(db, SQLite, "", nil)
	_, err = in.ListTables(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.Contains(t, err.Error(), "list tables")
}

func TestInspector_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER, title TEXT)`,
	} {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	in := NewInspector(db, SQLite, "", nil)

	tables, err := in.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "users"}, tables)

	cols, err := in.ListColumns(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_id", "title"}, cols)

	ok, err := in.TableExists(ctx, "comments")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]string{
		"postgres":  "postgres",
		"pgx":       "postgres",
		"mysql":     "mysql",
		"sqlite":    "sqlite",
		"sqlserver": "sqlserver",
	} {
		d, err := DialectFor(driver)
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.Name)
	}

	_, err := DialectFor("oracle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))
}

func TestStaticSchema(t *testing.T) {
	s := NewStaticSchema([]Table{
		{Name: "users", Columns: []Column{{Name: "id"}}},
		{Name: "posts", Columns: []Column{{Name: "id"}, {Name: "user_id"}}},
	})
	ctx := context.Background()

	tables, err := s.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "posts"}, tables)

	cols, err := s.ListColumns(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "user_id"}, cols)

	_, err = s.ListColumns(ctx, "missing")
	assert.True(t, errors.Is(err, ErrTableNotFound))
}
