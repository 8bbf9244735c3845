package database

import (
	"context"
	"database/sql"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// Dialect описывает запросы интроспекции для конкретной СУБД
type Dialect struct {
	Name          string
	TablesQuery   string
	ColumnsQuery  string
	DefaultSchema string
	// schemaBound: запросы принимают имя схемы первым аргументом
	schemaBound bool
}

var (
	Postgres = Dialect{
		Name:          "postgres",
		TablesQuery:   `SELECT tablename FROM pg_tables WHERE schemaname = $1 ORDER BY tablename`,
		ColumnsQuery:  `SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`,
		DefaultSchema: "public",
		schemaBound:   true,
	}
	MySQL = Dialect{
		Name:         "mysql",
		TablesQuery:  `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name`,
		ColumnsQuery: `SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position`,
	}
	SQLite = Dialect{
		Name:         "sqlite",
		TablesQuery:  `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		ColumnsQuery: `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
	}
	SQLServer = Dialect{
		Name:          "sqlserver",
		TablesQuery:   `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA = @p1 ORDER BY TABLE_NAME`,
		ColumnsQuery:  `SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`,
		DefaultSchema: "dbo",
		schemaBound:   true,
	}
)

// DialectFor сопоставляет имя драйвера database/sql с диалектом
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite":
		return SQLite, nil
	case "sqlserver":
		return SQLServer, nil
	default:
		return Dialect{}, errors.WithHint(
			errors.Wrapf(ErrUnsupportedSchema, "driver %q", driver),
			"supported drivers: postgres, pgx, mysql, sqlite, sqlserver",
		)
	}
}

// Inspector читает схему через database/sql
type Inspector struct {
	db      *sql.DB
	dialect Dialect
	schema  string
	logger  *zap.Logger
}

// NewInspector создаёт инспектор. Пустое имя схемы заменяется значением диалекта.
func NewInspector(db *sql.DB, dialect Dialect, schemaName string, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schemaName == "" {
		schemaName = dialect.DefaultSchema
	}
	return &Inspector{db: db, dialect: dialect, schema: schemaName, logger: logger}
}

// Open открывает соединение и проверяет его
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if _, err := DialectFor(driver); err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connect to %s", driver)
	}
	return db, nil
}

// ListTables возвращает пользовательские таблицы
func (i *Inspector) ListTables(ctx context.Context) ([]string, error) {
	var args []any
	if i.dialect.schemaBound {
		args = append(args, i.schema)
	}
	tables, err := i.queryNames(ctx, i.dialect.TablesQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	i.logger.Debug("Listed tables",
		zap.String("dialect", i.dialect.Name),
		zap.Int("count", len(tables)))
	return tables, nil
}

// TableExists проверяет таблицу по списку таблиц
func (i *Inspector) TableExists(ctx context.Context, name string) (bool, error) {
	tables, err := i.ListTables(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(tables, name), nil
}

// ListColumns возвращает колонки в порядке объявления
func (i *Inspector) ListColumns(ctx context.Context, table string) ([]string, error) {
	args := []any{table}
	if i.dialect.schemaBound {
		args = []any{i.schema, table}
	}
	cols, err := i.queryNames(ctx, i.dialect.ColumnsQuery, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "list columns of %s", table)
	}
	return cols, nil
}

func (i *Inspector) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate")
	}
	return names, nil
}
