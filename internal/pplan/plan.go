// Package pplan defines provable plans: the closed set of relational plan
// shapes the downstream proof system can generate and verify a proof
// against. Plans are immutable trees built once per query by the compiler;
// every node's output schema is derivable from its children.
package pplan

import (
	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/pexpr"
)

// Plan is a sealed interface over provable plan nodes.
type Plan interface {
	planNode() // Marker method - seals interface to this package

	// Schema returns the node's ordered, named, typed output columns.
	Schema() []catalog.Field
}

// AliasedExpr pairs a provable expression with its output column name.
type AliasedExpr struct {
	Expr  pexpr.Expr
	Alias string
}

// Empty is the plan of an empty relation: no rows, no columns.
type Empty struct{}

func (*Empty) planNode() {}

// Schema implements Plan.
func (*Empty) Schema() []catalog.Field { return nil }

// Table reads every row of one physical table. It is one of the two leaf
// shapes; its schema is the table's full column list.
type Table struct {
	Ref     catalog.TableRef
	Columns []catalog.Field
}

func (*Table) planNode() {}

// Schema implements Plan.
func (t *Table) Schema() []catalog.Field { return t.Columns }

// Projection evaluates one aliased expression per output column over its
// input.
type Projection struct {
	Input Plan
	Exprs []AliasedExpr
}

func (*Projection) planNode() {}

// Schema implements Plan.
func (p *Projection) Schema() []catalog.Field {
	return aliasedSchema(p.Exprs)
}

// Filter keeps the rows of a table satisfying Where and evaluates the
// aliased projection list on them. The projection list belongs to the
// filter itself: there is no separate Projection node above it.
type Filter struct {
	Exprs []AliasedExpr
	Table *Table
	Where pexpr.Expr
}

func (*Filter) planNode() {}

// Schema implements Plan.
func (f *Filter) Schema() []catalog.Field {
	return aliasedSchema(f.Exprs)
}

// GroupBy groups the filtered rows of a table by the group columns, sums
// the Sums expressions per group, and counts the group sizes. The output
// is the group columns, then the sums, then the count - the positional
// convention the proof system verifies against.
type GroupBy struct {
	Table      *Table
	Where      pexpr.Expr
	GroupCols  []AliasedExpr
	Sums       []AliasedExpr
	CountAlias string
}

func (*GroupBy) planNode() {}

// Schema implements Plan.
func (g *GroupBy) Schema() []catalog.Field {
	fields := make([]catalog.Field, 0, len(g.GroupCols)+len(g.Sums)+1)
	fields = append(fields, aliasedSchema(g.GroupCols)...)
	fields = append(fields, aliasedSchema(g.Sums)...)
	fields = append(fields, catalog.Field{Name: g.CountAlias, Type: coltype.BigInt()})
	return fields
}

// Slice discards Skip rows from the front of its input and yields at most
// Fetch rows; a nil Fetch means unbounded.
type Slice struct {
	Input Plan
	Skip  int64
	Fetch *int64
}

func (*Slice) planNode() {}

// Schema implements Plan.
func (s *Slice) Schema() []catalog.Field { return s.Input.Schema() }

// Union concatenates its inputs under a unified schema. UNION ALL
// semantics only: no de-duplication.
type Union struct {
	Inputs  []Plan
	Columns []catalog.Field
}

func (*Union) planNode() {}

// Schema implements Plan.
func (u *Union) Schema() []catalog.Field { return u.Columns }

// SortMergeJoin joins two plans on the equality of positionally paired
// columns: LeftIdx[i] in the left schema joins RightIdx[i] in the right
// schema. ColumnNames carries the full output name list: the join keys
// once, then the remaining left columns, then the remaining right
// columns.
type SortMergeJoin struct {
	Left        Plan
	Right       Plan
	LeftIdx     []int
	RightIdx    []int
	ColumnNames []string
}

func (*SortMergeJoin) planNode() {}

// Schema implements Plan.
func (j *SortMergeJoin) Schema() []catalog.Field {
	left := j.Left.Schema()
	right := j.Right.Schema()

	leftKeys := make(map[int]bool, len(j.LeftIdx))
	for _, idx := range j.LeftIdx {
		leftKeys[idx] = true
	}
	rightKeys := make(map[int]bool, len(j.RightIdx))
	for _, idx := range j.RightIdx {
		rightKeys[idx] = true
	}

	types := make([]coltype.Type, 0, len(j.ColumnNames))
	for _, idx := range j.LeftIdx {
		types = append(types, left[idx].Type)
	}
	for i, f := range left {
		if !leftKeys[i] {
			types = append(types, f.Type)
		}
	}
	for i, f := range right {
		if !rightKeys[i] {
			types = append(types, f.Type)
		}
	}

	fields := make([]catalog.Field, len(j.ColumnNames))
	for i, name := range j.ColumnNames {
		fields[i] = catalog.Field{Name: name, Type: types[i]}
	}
	return fields
}

func aliasedSchema(exprs []AliasedExpr) []catalog.Field {
	fields := make([]catalog.Field, len(exprs))
	for i, ae := range exprs {
		fields[i] = catalog.Field{Name: ae.Alias, Type: ae.Expr.ResultType()}
	}
	return fields
}
