package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/provesql/provesql/internal/coltype"
)

// SQLiteAccessor derives table schemas from a SQLite database via
// PRAGMA table_info. It lets the compiler run against an existing
// database file instead of a hand-written schema catalog.
type SQLiteAccessor struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database at the given path in read-only use.
// The connection pool is pinned to a single connection: schema lookups
// are cheap and SQLite rewards the simplicity.
func OpenSQLite(path string) (*SQLiteAccessor, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: connect: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &SQLiteAccessor{db: db}, nil
}

// Close releases the database connection.
func (a *SQLiteAccessor) Close() error {
	return a.db.Close()
}

// LookupSchema implements SchemaAccessor. Unknown tables yield an empty
// schema: PRAGMA table_info returns no rows rather than an error.
func (a *SQLiteAccessor) LookupSchema(ref TableRef) ([]Field, error) {
	rows, err := a.db.Query("SELECT name, type FROM pragma_table_info(?) ORDER BY cid", NormalizeIdent(ref.Name))
	if err != nil {
		return nil, fmt.Errorf("catalog: table_info %s: %w", ref, err)
	}
	defer rows.Close()

	var fields []Field
	for rows.Next() {
		var name, declType string
		if err := rows.Scan(&name, &declType); err != nil {
			return nil, fmt.Errorf("catalog: table_info %s: %w", ref, err)
		}
		typ, err := mapDeclType(declType)
		if err != nil {
			return nil, fmt.Errorf("catalog: table %s column %q: %w", ref, name, err)
		}
		fields = append(fields, Field{Name: NormalizeIdent(name), Type: typ})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: table_info %s: %w", ref, err)
	}
	return fields, nil
}

// mapDeclType converts a SQLite declared column type to a provable column
// type. Declarations the catalog spells natively (decimal(p,s), smallint)
// pass through ParseType; bare SQLite affinities fall back to the widest
// matching provable type.
func mapDeclType(decl string) (coltype.Type, error) {
	if typ, err := ParseType(decl); err == nil {
		return typ, nil
	}
	switch upper := strings.ToUpper(strings.TrimSpace(decl)); {
	case strings.Contains(upper, "INT"):
		return coltype.BigInt(), nil
	case strings.Contains(upper, "CHAR"), strings.Contains(upper, "CLOB"), strings.Contains(upper, "TEXT"):
		return coltype.VarChar(), nil
	case upper == "" || strings.Contains(upper, "BLOB"):
		return coltype.VarBinary(), nil
	default:
		return coltype.Type{}, fmt.Errorf("unmappable declared type %q", decl)
	}
}
