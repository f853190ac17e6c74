// Package catalog provides schema lookup for the plan compiler: given a
// table reference, an accessor returns the table's ordered column list.
// The compiler performs no caching here; accessors are free to memoize.
package catalog

import (
	"golang.org/x/text/unicode/norm"

	"github.com/provesql/provesql/internal/coltype"
)

// TableRef identifies a physical table, optionally qualified by a schema.
type TableRef struct {
	Schema string `json:"schema,omitempty"`
	Name   string `json:"name"`
}

// String renders the reference as "schema.name" or "name".
func (r TableRef) String() string {
	if r.Schema != "" {
		return r.Schema + "." + r.Name
	}
	return r.Name
}

// Field is one named, typed column in a schema. Field order matches the
// physical column order of the table.
type Field struct {
	Name string       `json:"name"`
	Type coltype.Type `json:"type"`
}

// SchemaAccessor resolves a table reference to its ordered column list.
//
// An unknown table yields an empty schema rather than an error; the
// compiler reports the miss as a column-not-found at the first lookup
// against the empty schema. Accessors return errors only for genuine
// lookup failures (I/O, malformed metadata).
type SchemaAccessor interface {
	LookupSchema(ref TableRef) ([]Field, error)
}

// NormalizeIdent puts an identifier into NFC so that visually identical
// column and table names compare equal regardless of how the client
// composed them. Case is preserved: names match exactly.
func NormalizeIdent(ident string) string {
	return norm.NFC.String(ident)
}

// MapAccessor is an in-memory SchemaAccessor backed by a map. It is the
// accessor used by tests and by the CLI after loading a schema catalog
// from CUE files.
type MapAccessor struct {
	tables map[string][]Field
}

// NewMapAccessor creates an empty in-memory accessor.
func NewMapAccessor() *MapAccessor {
	return &MapAccessor{tables: make(map[string][]Field)}
}

// AddTable registers a table schema. Identifiers are normalized on the
// way in so lookups with NFC-equivalent spellings succeed.
func (a *MapAccessor) AddTable(ref TableRef, fields []Field) {
	normalized := make([]Field, len(fields))
	for i, f := range fields {
		normalized[i] = Field{Name: NormalizeIdent(f.Name), Type: f.Type}
	}
	a.tables[normalizeRef(ref)] = normalized
}

// LookupSchema implements SchemaAccessor. Unknown tables yield an empty
// schema and no error.
func (a *MapAccessor) LookupSchema(ref TableRef) ([]Field, error) {
	fields, ok := a.tables[normalizeRef(ref)]
	if !ok {
		return nil, nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out, nil
}

func normalizeRef(ref TableRef) string {
	return TableRef{Schema: NormalizeIdent(ref.Schema), Name: NormalizeIdent(ref.Name)}.String()
}
