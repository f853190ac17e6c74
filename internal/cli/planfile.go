package cli

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/logical"
)

// Plan files are YAML renditions of the analyzer's relational plan,
// one node kind per mapping key:
//
//	plan:
//	  limit:
//	    skip: 1
//	    fetch: 2
//	    input:
//	      scan:
//	        table: orders
//	        columns: [0, 2]
//	        filters:
//	          - binary: {op: ">", left: {column: amount}, right: {literal: {bigint: 100}}}
//
// The decoder builds the logical tree only; whether the plan is provable
// is the compiler's call.

type planFile struct {
	Plan *planNode `yaml:"plan"`
}

type planNode struct {
	Empty      *struct{}     `yaml:"empty"`
	Scan       *scanNode     `yaml:"scan"`
	Projection *projNode     `yaml:"projection"`
	Aggregate  *aggNode      `yaml:"aggregate"`
	Limit      *limitNode    `yaml:"limit"`
	Union      *unionNode    `yaml:"union"`
	Join       *joinNode     `yaml:"join"`
	Distinct   *distinctNode `yaml:"distinct"`
}

type scanNode struct {
	Table   string     `yaml:"table"`
	Columns []int      `yaml:"columns"`
	Names   []string   `yaml:"names"`
	Filters []exprNode `yaml:"filters"`
	Fetch   *int64     `yaml:"fetch"`
}

type projNode struct {
	Input *planNode  `yaml:"input"`
	Exprs []exprNode `yaml:"exprs"`
	Names []string   `yaml:"names"`
}

type aggNode struct {
	Input      *planNode  `yaml:"input"`
	GroupBy    []exprNode `yaml:"group_by"`
	Aggregates []exprNode `yaml:"aggregates"`
}

type limitNode struct {
	Input *planNode `yaml:"input"`
	Skip  int64     `yaml:"skip"`
	Fetch *int64    `yaml:"fetch"`
}

type unionNode struct {
	Inputs []planNode `yaml:"inputs"`
	Names  []string   `yaml:"names"`
}

type joinNode struct {
	Left   *planNode      `yaml:"left"`
	Right  *planNode      `yaml:"right"`
	Kind   string         `yaml:"kind"`
	On     []joinPairNode `yaml:"on"`
	Filter *exprNode      `yaml:"filter"`
}

type joinPairNode struct {
	Left  exprNode `yaml:"left"`
	Right exprNode `yaml:"right"`
}

type distinctNode struct {
	Input *planNode `yaml:"input"`
}

type exprNode struct {
	Column      *string          `yaml:"column"`
	Literal     *literalNode     `yaml:"literal"`
	Alias       *aliasNode       `yaml:"alias"`
	Cast        *castNode        `yaml:"cast"`
	Binary      *binaryNode      `yaml:"binary"`
	Not         *exprNode        `yaml:"not"`
	Negate      *exprNode        `yaml:"negate"`
	Placeholder *placeholderNode `yaml:"placeholder"`
	Aggregate   *aggCallNode     `yaml:"agg"`
	Wildcard    *struct{}        `yaml:"wildcard"`
}

type literalNode struct {
	Boolean   *bool         `yaml:"boolean"`
	Uint8     *uint8        `yaml:"uint8"`
	TinyInt   *int8         `yaml:"tinyint"`
	SmallInt  *int16        `yaml:"smallint"`
	Int       *int32        `yaml:"int"`
	BigInt    *int64        `yaml:"bigint"`
	Int128    *string       `yaml:"int128"`
	Decimal   *decimalLit   `yaml:"decimal"`
	VarChar   *string       `yaml:"varchar"`
	VarBinary *string       `yaml:"varbinary"` // hex
	Timestamp *timestampLit `yaml:"timestamp"`
	Float     *float64      `yaml:"float"`
	Null      *struct{}     `yaml:"null"`
}

type decimalLit struct {
	Value     string `yaml:"value"`
	Precision int    `yaml:"precision"`
	Scale     int    `yaml:"scale"`
}

type timestampLit struct {
	Unit  string `yaml:"unit"`
	Zone  string `yaml:"zone"`
	Value int64  `yaml:"value"`
}

type aliasNode struct {
	Expr exprNode `yaml:"expr"`
	Name string   `yaml:"name"`
}

type castNode struct {
	Expr exprNode `yaml:"expr"`
	To   string   `yaml:"to"`
}

type binaryNode struct {
	Op    string   `yaml:"op"`
	Left  exprNode `yaml:"left"`
	Right exprNode `yaml:"right"`
}

type placeholderNode struct {
	ID   string  `yaml:"id"`
	Type *string `yaml:"type"`
}

type aggCallNode struct {
	Func string   `yaml:"func"`
	Arg  exprNode `yaml:"arg"`
}

// DecodePlan parses a YAML plan file into the analyzer's plan tree.
func DecodePlan(data []byte) (logical.Plan, error) {
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Code: ErrCodeBadPlan, Message: fmt.Sprintf("parsing plan file: %v", err)}
	}
	if file.Plan == nil {
		return nil, &LoadError{Code: ErrCodeBadPlan, Message: "plan file has no plan key"}
	}
	plan, err := buildPlan(file.Plan)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadPlan, Message: err.Error()}
	}
	return plan, nil
}

func buildPlan(node *planNode) (logical.Plan, error) {
	switch {
	case node == nil:
		return nil, fmt.Errorf("missing plan node")
	case node.Empty != nil:
		return &logical.EmptyRelation{}, nil
	case node.Scan != nil:
		return buildScan(node.Scan)
	case node.Projection != nil:
		return buildProjection(node.Projection)
	case node.Aggregate != nil:
		return buildAggregate(node.Aggregate)
	case node.Limit != nil:
		input, err := buildPlan(node.Limit.Input)
		if err != nil {
			return nil, err
		}
		return &logical.Limit{Input: input, Skip: node.Limit.Skip, Fetch: node.Limit.Fetch}, nil
	case node.Union != nil:
		return buildUnion(node.Union)
	case node.Join != nil:
		return buildJoin(node.Join)
	case node.Distinct != nil:
		input, err := buildPlan(node.Distinct.Input)
		if err != nil {
			return nil, err
		}
		return &logical.Distinct{Input: input}, nil
	default:
		return nil, fmt.Errorf("plan node declares no kind")
	}
}

func buildScan(node *scanNode) (logical.Plan, error) {
	if node.Table == "" {
		return nil, fmt.Errorf("scan is missing a table name")
	}
	filters := make([]logical.Expr, 0, len(node.Filters))
	for i := range node.Filters {
		expr, err := buildExpr(&node.Filters[i])
		if err != nil {
			return nil, fmt.Errorf("scan filter %d: %w", i, err)
		}
		filters = append(filters, expr)
	}
	return &logical.TableScan{
		Table:      parseTableName(node.Table),
		Projection: node.Columns,
		Names:      node.Names,
		Filters:    filters,
		Fetch:      node.Fetch,
	}, nil
}

func buildProjection(node *projNode) (logical.Plan, error) {
	input, err := buildPlan(node.Input)
	if err != nil {
		return nil, err
	}
	exprs := make([]logical.Expr, 0, len(node.Exprs))
	for i := range node.Exprs {
		expr, err := buildExpr(&node.Exprs[i])
		if err != nil {
			return nil, fmt.Errorf("projection expr %d: %w", i, err)
		}
		exprs = append(exprs, expr)
	}
	return &logical.Projection{Input: input, Exprs: exprs, Names: node.Names}, nil
}

func buildAggregate(node *aggNode) (logical.Plan, error) {
	input, err := buildPlan(node.Input)
	if err != nil {
		return nil, err
	}
	groupBy := make([]logical.Expr, 0, len(node.GroupBy))
	for i := range node.GroupBy {
		expr, err := buildExpr(&node.GroupBy[i])
		if err != nil {
			return nil, fmt.Errorf("group_by %d: %w", i, err)
		}
		groupBy = append(groupBy, expr)
	}
	aggs := make([]logical.Expr, 0, len(node.Aggregates))
	for i := range node.Aggregates {
		expr, err := buildExpr(&node.Aggregates[i])
		if err != nil {
			return nil, fmt.Errorf("aggregate %d: %w", i, err)
		}
		aggs = append(aggs, expr)
	}
	return &logical.Aggregate{Input: input, GroupBy: groupBy, Aggregates: aggs}, nil
}

func buildUnion(node *unionNode) (logical.Plan, error) {
	inputs := make([]logical.Plan, 0, len(node.Inputs))
	for i := range node.Inputs {
		input, err := buildPlan(&node.Inputs[i])
		if err != nil {
			return nil, fmt.Errorf("union input %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return &logical.Union{Inputs: inputs, Names: node.Names}, nil
}

func buildJoin(node *joinNode) (logical.Plan, error) {
	left, err := buildPlan(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := buildPlan(node.Right)
	if err != nil {
		return nil, err
	}
	kind, err := parseJoinKind(node.Kind)
	if err != nil {
		return nil, err
	}
	on := make([]logical.JoinPair, 0, len(node.On))
	for i := range node.On {
		l, err := buildExpr(&node.On[i].Left)
		if err != nil {
			return nil, fmt.Errorf("join pair %d: %w", i, err)
		}
		r, err := buildExpr(&node.On[i].Right)
		if err != nil {
			return nil, fmt.Errorf("join pair %d: %w", i, err)
		}
		on = append(on, logical.JoinPair{Left: l, Right: r})
	}
	var filter logical.Expr
	if node.Filter != nil {
		filter, err = buildExpr(node.Filter)
		if err != nil {
			return nil, fmt.Errorf("join filter: %w", err)
		}
	}
	return &logical.Join{Left: left, Right: right, Kind: kind, On: on, Filter: filter}, nil
}

func parseJoinKind(s string) (logical.JoinKind, error) {
	switch s {
	case "", "inner":
		return logical.JoinInner, nil
	case "left":
		return logical.JoinLeft, nil
	case "right":
		return logical.JoinRight, nil
	case "full":
		return logical.JoinFull, nil
	case "left_semi":
		return logical.JoinLeftSemi, nil
	case "left_anti":
		return logical.JoinLeftAnti, nil
	default:
		return 0, fmt.Errorf("unknown join kind %q", s)
	}
}

func buildExpr(node *exprNode) (logical.Expr, error) {
	switch {
	case node.Column != nil:
		return &logical.Column{Name: *node.Column}, nil
	case node.Literal != nil:
		value, err := buildLiteral(node.Literal)
		if err != nil {
			return nil, err
		}
		return &logical.Literal{Value: value}, nil
	case node.Alias != nil:
		inner, err := buildExpr(&node.Alias.Expr)
		if err != nil {
			return nil, err
		}
		return &logical.Alias{Expr: inner, Name: node.Alias.Name}, nil
	case node.Cast != nil:
		inner, err := buildExpr(&node.Cast.Expr)
		if err != nil {
			return nil, err
		}
		to, err := parseDataType(node.Cast.To)
		if err != nil {
			return nil, err
		}
		return &logical.Cast{Expr: inner, To: to}, nil
	case node.Binary != nil:
		op, err := parseBinaryOp(node.Binary.Op)
		if err != nil {
			return nil, err
		}
		left, err := buildExpr(&node.Binary.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(&node.Binary.Right)
		if err != nil {
			return nil, err
		}
		return &logical.Binary{Op: op, Left: left, Right: right}, nil
	case node.Not != nil:
		inner, err := buildExpr(node.Not)
		if err != nil {
			return nil, err
		}
		return &logical.Not{Expr: inner}, nil
	case node.Negate != nil:
		inner, err := buildExpr(node.Negate)
		if err != nil {
			return nil, err
		}
		return &logical.Negate{Expr: inner}, nil
	case node.Placeholder != nil:
		ph := &logical.Placeholder{ID: node.Placeholder.ID}
		if node.Placeholder.Type != nil {
			typ, err := parseDataType(*node.Placeholder.Type)
			if err != nil {
				return nil, err
			}
			ph.Type = &typ
		}
		return ph, nil
	case node.Aggregate != nil:
		fn, err := parseAggFunc(node.Aggregate.Func)
		if err != nil {
			return nil, err
		}
		arg, err := buildExpr(&node.Aggregate.Arg)
		if err != nil {
			return nil, err
		}
		return &logical.AggregateCall{Func: fn, Arg: arg}, nil
	case node.Wildcard != nil:
		return &logical.Wildcard{}, nil
	default:
		return nil, fmt.Errorf("expression node declares no kind")
	}
}

func buildLiteral(node *literalNode) (logical.Value, error) {
	switch {
	case node.Boolean != nil:
		return logical.BoolValue(*node.Boolean), nil
	case node.Uint8 != nil:
		return logical.Uint8Value(*node.Uint8), nil
	case node.TinyInt != nil:
		return logical.Int8Value(*node.TinyInt), nil
	case node.SmallInt != nil:
		return logical.Int16Value(*node.SmallInt), nil
	case node.Int != nil:
		return logical.Int32Value(*node.Int), nil
	case node.BigInt != nil:
		return logical.Int64Value(*node.BigInt), nil
	case node.Int128 != nil:
		v, ok := new(big.Int).SetString(*node.Int128, 10)
		if !ok {
			return nil, fmt.Errorf("bad int128 literal %q", *node.Int128)
		}
		return logical.Int128Value{Value: v}, nil
	case node.Decimal != nil:
		v, err := decimal.NewFromString(node.Decimal.Value)
		if err != nil {
			return nil, fmt.Errorf("bad decimal literal %q: %v", node.Decimal.Value, err)
		}
		return logical.DecimalValue{
			Value:     v,
			Precision: node.Decimal.Precision,
			Scale:     node.Decimal.Scale,
		}, nil
	case node.VarChar != nil:
		return logical.VarCharValue(*node.VarChar), nil
	case node.VarBinary != nil:
		raw, err := hex.DecodeString(*node.VarBinary)
		if err != nil {
			return nil, fmt.Errorf("bad varbinary literal: %v", err)
		}
		return logical.VarBinaryValue(raw), nil
	case node.Timestamp != nil:
		typ, err := catalog.ParseType(fmt.Sprintf("timestamp(%s,%s)", node.Timestamp.Unit, node.Timestamp.Zone))
		if err != nil {
			return nil, err
		}
		return logical.TimestampValue{Unit: typ.Unit, Zone: typ.Zone, Value: node.Timestamp.Value}, nil
	case node.Float != nil:
		return logical.Float64Value(*node.Float), nil
	case node.Null != nil:
		return logical.NullValue{}, nil
	default:
		return nil, fmt.Errorf("literal node declares no kind")
	}
}

func parseBinaryOp(s string) (logical.BinaryOp, error) {
	switch s {
	case "+":
		return logical.OpAdd, nil
	case "-":
		return logical.OpSubtract, nil
	case "*":
		return logical.OpMultiply, nil
	case "/":
		return logical.OpDivide, nil
	case "%":
		return logical.OpModulo, nil
	case "=":
		return logical.OpEq, nil
	case "<>", "!=":
		return logical.OpNotEq, nil
	case "<":
		return logical.OpLt, nil
	case "<=":
		return logical.OpLtEq, nil
	case ">":
		return logical.OpGt, nil
	case ">=":
		return logical.OpGtEq, nil
	case "and":
		return logical.OpAnd, nil
	case "or":
		return logical.OpOr, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", s)
	}
}

func parseAggFunc(s string) (logical.AggFunc, error) {
	switch s {
	case "sum":
		return logical.AggSum, nil
	case "count":
		return logical.AggCount, nil
	case "avg":
		return logical.AggAvg, nil
	case "min":
		return logical.AggMin, nil
	case "max":
		return logical.AggMax, nil
	default:
		return 0, fmt.Errorf("unknown aggregate function %q", s)
	}
}

// parseDataType maps a column-type spelling onto the analyzer's type
// system. Plan files use the same spellings as schema catalogs.
func parseDataType(s string) (logical.DataType, error) {
	typ, err := catalog.ParseType(s)
	if err != nil {
		return logical.DataType{}, err
	}
	switch typ.Kind {
	case coltype.KindBoolean:
		return logical.DataType{Kind: logical.DataBoolean}, nil
	case coltype.KindUint8:
		return logical.DataType{Kind: logical.DataUint8}, nil
	case coltype.KindTinyInt:
		return logical.DataType{Kind: logical.DataInt8}, nil
	case coltype.KindSmallInt:
		return logical.DataType{Kind: logical.DataInt16}, nil
	case coltype.KindInt:
		return logical.DataType{Kind: logical.DataInt32}, nil
	case coltype.KindBigInt:
		return logical.DataType{Kind: logical.DataInt64}, nil
	case coltype.KindInt128:
		return logical.DataType{Kind: logical.DataInt128}, nil
	case coltype.KindDecimal75:
		return logical.DataType{Kind: logical.DataDecimal, Precision: typ.Precision, Scale: typ.Scale}, nil
	case coltype.KindScalar:
		return logical.DataType{Kind: logical.DataScalar}, nil
	case coltype.KindVarChar:
		return logical.DataType{Kind: logical.DataUtf8}, nil
	case coltype.KindVarBinary:
		return logical.DataType{Kind: logical.DataBinary}, nil
	case coltype.KindTimestampTZ:
		return logical.DataType{Kind: logical.DataTimestamp, Unit: typ.Unit, Zone: typ.Zone}, nil
	default:
		return logical.DataType{}, fmt.Errorf("unmappable type %q", s)
	}
}
