// Package sqlite loads recipe records from a SQLite table using the pure-Go
// modernc.org/sqlite driver.
//
// The table needs three columns: id, cuisine and ingredients, where
// ingredients holds a JSON array of strings.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"recipematch/internal/corpus"
	"recipematch/internal/domain"
)

// DefaultTable is used when no table name is configured.
const DefaultTable = "recipes"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const schema = `
CREATE TABLE IF NOT EXISTS %s (
    id TEXT,
    cuisine TEXT,
    ingredients TEXT
);
`

// Open opens a SQLite database. Pass a file path or ":memory:".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// EnsureSchema creates table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("sqlite: invalid table name %q", table)
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(schema, table))
	return err
}

// Insert stores records in table inside one transaction.
func Insert(ctx context.Context, db *sql.DB, table string, records []domain.Record) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("sqlite: invalid table name %q", table)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(id, cuisine, ingredients) VALUES(?, ?, ?)`, table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		ingredients := r.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		data, err := json.Marshal(ingredients)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Label, string(data)); err != nil {
			return fmt.Errorf("sqlite: insert %q: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Source reads every row of one table in rowid order.
type Source struct {
	dsn   string
	table string
}

// New creates a source. An empty table selects DefaultTable.
func New(dsn, table string) *Source {
	if table == "" {
		table = DefaultTable
	}
	return &Source{dsn: dsn, table: table}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "sqlite:" + s.dsn + "#" + s.table }

// Load opens the database, reads all rows and closes it again.
func (s *Source) Load(ctx context.Context) ([]domain.Record, error) {
	if !tableName.MatchString(s.table) {
		return nil, fmt.Errorf("sqlite: invalid table name %q", s.table)
	}
	db, err := Open(s.dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", s.dsn, err)
	}
	defer db.Close()
	return Read(ctx, db, s.table)
}

// Read loads all records of table from an open database.
func Read(ctx context.Context, db *sql.DB, table string) ([]domain.Record, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sqlite: invalid table name %q", table)
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT id, cuisine, ingredients FROM %s ORDER BY rowid`, table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", table, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var id, cuisine, ingredients sql.NullString
		if err := rows.Scan(&id, &cuisine, &ingredients); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		row := map[string]any{"id": id.String, "cuisine": cuisine.String}
		if ingredients.Valid && ingredients.String != "" {
			var list []any
			if err := json.Unmarshal([]byte(ingredients.String), &list); err != nil {
				return nil, fmt.Errorf("sqlite: row %d ingredients: %w", len(records), err)
			}
			row["ingredients"] = list
		}
		rec, err := corpus.DecodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("sqlite: row %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return records, nil
}

// Import creates table in the database at dsn if needed and appends records to it.
func Import(ctx context.Context, dsn, table string, records []domain.Record) error {
	if table == "" {
		table = DefaultTable
	}
	db, err := Open(dsn)
	if err != nil {
		return fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}
	defer db.Close()
	if err := EnsureSchema(ctx, db, table); err != nil {
		return err
	}
	return Insert(ctx, db, table, records)
}
