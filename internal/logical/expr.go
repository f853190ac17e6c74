package logical

import "fmt"

// Expr is a sealed interface over the expression shapes the upstream
// analyzer can deliver. The set is deliberately wider than the provable
// subset: shapes outside it compile to typed errors, never to partial
// output.
//
// String renders the analyzer's canonical display form. Display names
// matter: aggregate output aliasing is keyed by them.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
	String() string
}

// Column references a column by name in the schema active at this point
// of the plan. Name resolution already happened upstream; the compiler
// only re-resolves against the per-node schema to attach types.
type Column struct {
	Name string
}

func (*Column) exprNode() {}

func (c *Column) String() string { return c.Name }

// Literal is a constant value.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

func (l *Literal) String() string { return l.Value.String() }

// Alias attaches an output name to an expression. Aliases are transparent
// to expression compilation; the plan compiler consumes them at
// projection boundaries.
type Alias struct {
	Expr Expr
	Name string
}

func (*Alias) exprNode() {}

func (a *Alias) String() string { return a.Name }

// Cast converts an expression to a declared destination type.
type Cast struct {
	Expr Expr
	To   DataType
}

func (*Cast) exprNode() {}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Expr, c.To) }

// BinaryOp enumerates the analyzer's binary operators. Only a subset is
// provable; the rest compile to UNSUPPORTED_BINARY_OPERATOR.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
)

// String renders the operator's SQL spelling.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	case OpEq:
		return "="
	case OpNotEq:
		return "<>"
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// Binary applies a binary operator to two subexpressions.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}

func (b *Binary) String() string { return fmt.Sprintf("%s %s %s", b.Left, b.Op, b.Right) }

// Not is boolean negation.
type Not struct {
	Expr Expr
}

func (*Not) exprNode() {}

func (n *Not) String() string { return fmt.Sprintf("NOT %s", n.Expr) }

// Negate is arithmetic negation.
type Negate struct {
	Expr Expr
}

func (*Negate) exprNode() {}

func (n *Negate) String() string { return fmt.Sprintf("-%s", n.Expr) }

// Placeholder is a prepared-statement parameter: "$1", "$2", … with an
// optional declared type. An untyped placeholder is only compilable when
// wrapped in a Cast that supplies its type.
type Placeholder struct {
	ID   string
	Type *DataType
}

func (*Placeholder) exprNode() {}

func (p *Placeholder) String() string { return p.ID }

// AggFunc enumerates aggregate functions the analyzer can deliver.
type AggFunc int

const (
	AggSum AggFunc = iota
	AggCount
	AggAvg
	AggMin
	AggMax
)

// String renders the function's canonical lowercase name.
func (f AggFunc) String() string {
	switch f {
	case AggSum:
		return "sum"
	case AggCount:
		return "count"
	case AggAvg:
		return "avg"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	default:
		return "?"
	}
}

// AggregateCall applies an aggregate function to one argument. Its String
// form ("sum(b)") is the canonical display name used to key output
// aliasing.
type AggregateCall struct {
	Func AggFunc
	Arg  Expr
}

func (*AggregateCall) exprNode() {}

func (a *AggregateCall) String() string { return fmt.Sprintf("%s(%s)", a.Func, a.Arg) }

// Wildcard is SELECT *. It never reaches a provable expression; the
// compiler rejects it.
type Wildcard struct{}

func (*Wildcard) exprNode() {}

func (*Wildcard) String() string { return "*" }
