package catalog

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provesql/provesql/internal/coltype"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE orders (
		id BIGINT,
		region TEXT,
		amount "decimal(10,2)",
		note VARCHAR(40),
		payload BLOB
	)`)
	require.NoError(t, err)
	return path
}

func TestSQLiteAccessor_LookupSchema(t *testing.T) {
	acc, err := OpenSQLite(newTestDB(t))
	require.NoError(t, err)
	defer acc.Close()

	fields, err := acc.LookupSchema(TableRef{Name: "orders"})
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Name: "id", Type: coltype.BigInt()},
		{Name: "region", Type: coltype.VarChar()},
		{Name: "amount", Type: coltype.MustDecimal(10, 2)},
		{Name: "note", Type: coltype.VarChar()},
		{Name: "payload", Type: coltype.VarBinary()},
	}, fields)
}

func TestSQLiteAccessor_UnknownTableYieldsEmptySchema(t *testing.T) {
	acc, err := OpenSQLite(newTestDB(t))
	require.NoError(t, err)
	defer acc.Close()

	fields, err := acc.LookupSchema(TableRef{Name: "missing"})
	require.NoError(t, err)
	assert.Empty(t, fields)
}
