// Package logical models the relational plan the upstream SQL analyzer
// delivers: an already name-resolved, schema-annotated tree. This package
// defines shapes only; the compiler decides which shapes are provable.
package logical

import "github.com/provesql/provesql/internal/catalog"

// Plan is a sealed interface over the analyzer's relational plan nodes.
// Only types in this package implement it, which keeps compiler type
// switches exhaustive.
type Plan interface {
	planNode() // Marker method - seals interface to this package
}

// EmptyRelation is a relation with no rows and no columns.
type EmptyRelation struct{}

func (*EmptyRelation) planNode() {}

// TableScan reads a table, keeping the columns named by Projection
// (indices into the full table schema), optionally filtered and limited.
//
// Names, when present, gives the declared output name for each projected
// column positionally; when nil the source column names are kept.
type TableScan struct {
	Table      catalog.TableRef
	Projection []int
	Names      []string
	Filters    []Expr
	Fetch      *int64
}

func (*TableScan) planNode() {}

// Projection evaluates one expression per output column over its input.
// Names, when present, gives the declared output names positionally.
type Projection struct {
	Input Plan
	Exprs []Expr
	Names []string
}

func (*Projection) planNode() {}

// Aggregate groups its input by the GroupBy expressions and evaluates the
// aggregate calls per group.
type Aggregate struct {
	Input      Plan
	GroupBy    []Expr
	Aggregates []Expr
}

func (*Aggregate) planNode() {}

// OutputNames returns the aggregate's output column names: group-by
// display names followed by aggregate display names, in order.
func (a *Aggregate) OutputNames() []string {
	names := make([]string, 0, len(a.GroupBy)+len(a.Aggregates))
	for _, expr := range a.GroupBy {
		names = append(names, expr.String())
	}
	for _, expr := range a.Aggregates {
		names = append(names, expr.String())
	}
	return names
}

// Limit discards Skip rows from the front of its input and then yields at
// most Fetch rows; a nil Fetch means unbounded.
type Limit struct {
	Input Plan
	Skip  int64
	Fetch *int64
}

func (*Limit) planNode() {}

// Union concatenates two or more inputs with a unified output schema
// (UNION ALL semantics). Names, when present, gives the unified column
// names; when nil the first input's names are kept.
type Union struct {
	Inputs []Plan
	Names  []string
}

func (*Union) planNode() {}

// JoinKind enumerates the analyzer's join kinds. Only inner joins are
// provable.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinLeftSemi
	JoinLeftAnti
)

// String renders the join kind.
func (k JoinKind) String() string {
	switch k {
	case JoinInner:
		return "INNER"
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinFull:
		return "FULL"
	case JoinLeftSemi:
		return "LEFT SEMI"
	case JoinLeftAnti:
		return "LEFT ANTI"
	default:
		return "?"
	}
}

// JoinPair is one equality conjunct of an ON clause: left side against
// right side.
type JoinPair struct {
	Left  Expr
	Right Expr
}

// Join combines two inputs. On carries the equality conjuncts of the ON
// clause; Filter carries any residual non-equality condition.
type Join struct {
	Left   Plan
	Right  Plan
	Kind   JoinKind
	On     []JoinPair
	Filter Expr
}

func (*Join) planNode() {}

// Distinct removes duplicate rows. Duplicate elimination is outside the
// provable subset; the compiler rejects it.
type Distinct struct {
	Input Plan
}

func (*Distinct) planNode() {}
