// Package compiler translates analyzer plans and expressions into
// provable plans and expressions. Compilation is a single recursive
// descent with one structural match per node; the first mismatch aborts
// the whole query with a typed error, and no partial plan is ever
// produced.
package compiler

import (
	"fmt"

	"github.com/provesql/provesql/internal/catalog"
	"github.com/provesql/provesql/internal/logical"
	"github.com/provesql/provesql/internal/pexpr"
	"github.com/provesql/provesql/internal/pplan"
)

// CompilePlan translates one analyzer plan into a provable plan,
// resolving table schemas through lookup.
func CompilePlan(plan logical.Plan, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	switch node := plan.(type) {
	case *logical.EmptyRelation:
		return &pplan.Empty{}, nil

	case *logical.TableScan:
		return compileTableScan(node, lookup)

	case *logical.Projection:
		if agg, ok := node.Input.(*logical.Aggregate); ok {
			aliases, err := aggregateAliases(node, agg)
			if err != nil {
				return nil, err
			}
			return compileAggregate(agg, aliases, lookup)
		}
		return compileProjection(node, lookup)

	case *logical.Aggregate:
		// A bare aggregate keeps its own display names as output names.
		aliases := make(map[string]string)
		for _, name := range node.OutputNames() {
			aliases[name] = name
		}
		return compileAggregate(node, aliases, lookup)

	case *logical.Limit:
		input, err := CompilePlan(node.Input, lookup)
		if err != nil {
			return nil, err
		}
		return &pplan.Slice{Input: input, Skip: node.Skip, Fetch: node.Fetch}, nil

	case *logical.Union:
		return compileUnion(node, lookup)

	case *logical.Join:
		return compileJoin(node, lookup)

	default:
		return nil, compileErr(CodeUnsupportedLogicalPlan, fmt.Sprintf("%T", plan),
			"plan shape is outside the provable subset")
	}
}

// compileTableScan builds the two provable leaf shapes: a projection over
// a table when the scan carries no filters, and a filter owning both the
// projection list and the folded predicate when it does. A row limit on
// either shape wraps the result in a slice.
func compileTableScan(scan *logical.TableScan, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	schema, err := lookup.LookupSchema(scan.Table)
	if err != nil {
		return nil, err
	}
	table := &pplan.Table{Ref: scan.Table, Columns: schema}

	exprs, err := projectIndices(scan, schema)
	if err != nil {
		return nil, err
	}

	var out pplan.Plan
	if len(scan.Filters) == 0 {
		out = &pplan.Projection{Input: table, Exprs: exprs}
	} else {
		where, err := foldFilters(scan.Filters, schema)
		if err != nil {
			return nil, err
		}
		out = &pplan.Filter{Exprs: exprs, Table: table, Where: where}
	}

	if scan.Fetch != nil {
		out = &pplan.Slice{Input: out, Skip: 0, Fetch: scan.Fetch}
	}
	return out, nil
}

// projectIndices resolves a scan's projected column indices against the
// full table schema, pairing each with its declared output name.
func projectIndices(scan *logical.TableScan, schema []catalog.Field) ([]pplan.AliasedExpr, error) {
	exprs := make([]pplan.AliasedExpr, 0, len(scan.Projection))
	for pos, idx := range scan.Projection {
		if idx < 0 || idx >= len(schema) {
			return nil, compileErr(CodeColumnNotFound,
				fmt.Sprintf("%s[%d]", scan.Table, idx),
				"projected column index is out of range")
		}
		field := schema[idx]
		alias := field.Name
		if scan.Names != nil {
			if pos >= len(scan.Names) {
				return nil, compileErr(CodeUnsupportedLogicalPlan, scan.Table.String(),
					"scan declares fewer output names than projected columns")
			}
			alias = scan.Names[pos]
		}
		exprs = append(exprs, pplan.AliasedExpr{
			Expr:  pexpr.NewColumn(field.Name, field.Type),
			Alias: alias,
		})
	}
	return exprs, nil
}

// foldFilters compiles every filter expression against the schema and
// folds them left to right with AND. An empty list yields literal TRUE.
func foldFilters(filters []logical.Expr, schema []catalog.Field) (pexpr.Expr, error) {
	if len(filters) == 0 {
		return pexpr.NewLiteral(pexpr.BoolValue(true)), nil
	}
	where, err := CompileExpr(filters[0], schema)
	if err != nil {
		return nil, err
	}
	for _, filter := range filters[1:] {
		next, err := CompileExpr(filter, schema)
		if err != nil {
			return nil, err
		}
		where, err = pexpr.NewAnd(where, next)
		if err != nil {
			return nil, err
		}
	}
	return where, nil
}

// aggregateAliases validates that a projection over an aggregate is
// identity-or-rename over the aggregate's own outputs and builds the
// display-name to output-alias map from it. Anything beyond a bare column
// or an alias of one rejects the whole plan.
func aggregateAliases(proj *logical.Projection, agg *logical.Aggregate) (map[string]string, error) {
	produced := make(map[string]bool)
	for _, name := range agg.OutputNames() {
		produced[name] = true
	}

	aliases := make(map[string]string, len(proj.Exprs))
	for pos, expr := range proj.Exprs {
		var source string
		switch e := expr.(type) {
		case *logical.Column:
			source = e.Name
		case *logical.Alias:
			col, ok := e.Expr.(*logical.Column)
			if !ok {
				return nil, compileErr(CodeUnsupportedLogicalPlan, expr.String(),
					"projection over an aggregate must be identity or rename")
			}
			source = col.Name
		default:
			return nil, compileErr(CodeUnsupportedLogicalPlan, expr.String(),
				"projection over an aggregate must be identity or rename")
		}
		if !produced[source] {
			return nil, compileErr(CodeColumnNotFound, source,
				"projected column is not an aggregate output")
		}
		alias := expr.String()
		if proj.Names != nil && pos < len(proj.Names) {
			alias = proj.Names[pos]
		}
		aliases[source] = alias
	}
	return aliases, nil
}

// compileAggregate builds a GroupBy. The input must be a limit-free table
// scan; the aggregate list must be zero or more SUMs followed by exactly
// one COUNT, last. Output aliases come from the caller's display-name
// map.
func compileAggregate(agg *logical.Aggregate, aliases map[string]string, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	scan, ok := agg.Input.(*logical.TableScan)
	if !ok || scan.Fetch != nil {
		return nil, compileErr(CodeUnsupportedLogicalPlan, fmt.Sprintf("%T", agg.Input),
			"aggregation input must be a limit-free table scan")
	}
	schema, err := lookup.LookupSchema(scan.Table)
	if err != nil {
		return nil, err
	}
	table := &pplan.Table{Ref: scan.Table, Columns: schema}

	where, err := foldFilters(scan.Filters, schema)
	if err != nil {
		return nil, err
	}

	groupCols := make([]pplan.AliasedExpr, 0, len(agg.GroupBy))
	for _, key := range agg.GroupBy {
		col, ok := key.(*logical.Column)
		if !ok {
			return nil, compileErr(CodeUnsupportedLogicalPlan, key.String(),
				"group-by key must be a bare column")
		}
		compiled, err := resolveColumn(col.Name, schema)
		if err != nil {
			return nil, err
		}
		alias := col.Name
		if mapped, ok := aliases[col.Name]; ok {
			alias = mapped
		}
		groupCols = append(groupCols, pplan.AliasedExpr{Expr: compiled, Alias: alias})
	}

	if len(agg.Aggregates) == 0 {
		return nil, compileErr(CodeUnsupportedLogicalPlan, "aggregate",
			"aggregate argument list is empty")
	}

	var sums []pplan.AliasedExpr
	var countAlias string
	for pos, expr := range agg.Aggregates {
		call, ok := expr.(*logical.AggregateCall)
		if !ok {
			return nil, compileErr(CodeUnsupportedLogicalPlan, expr.String(),
				"aggregate argument must be an aggregate call")
		}
		alias, ok := aliases[call.String()]
		if !ok {
			return nil, compileErr(CodeUnsupportedLogicalPlan, call.String(),
				"aggregate output has no alias mapping")
		}
		last := pos == len(agg.Aggregates)-1
		switch {
		case call.Func == logical.AggCount && last:
			countAlias = alias
		case call.Func == logical.AggSum && !last:
			arg, err := CompileExpr(call.Arg, schema)
			if err != nil {
				return nil, err
			}
			sums = append(sums, pplan.AliasedExpr{Expr: arg, Alias: alias})
		default:
			return nil, compileErr(CodeUnsupportedLogicalPlan, call.String(),
				"aggregate arguments must be zero or more SUMs followed by one COUNT")
		}
	}

	return &pplan.GroupBy{
		Table:      table,
		Where:      where,
		GroupCols:  groupCols,
		Sums:       sums,
		CountAlias: countAlias,
	}, nil
}

func compileProjection(proj *logical.Projection, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	input, err := CompilePlan(proj.Input, lookup)
	if err != nil {
		return nil, err
	}
	schema := input.Schema()

	exprs := make([]pplan.AliasedExpr, 0, len(proj.Exprs))
	for pos, expr := range proj.Exprs {
		compiled, err := CompileExpr(expr, schema)
		if err != nil {
			return nil, err
		}
		alias := expr.String()
		if proj.Names != nil && pos < len(proj.Names) {
			alias = proj.Names[pos]
		}
		exprs = append(exprs, pplan.AliasedExpr{Expr: compiled, Alias: alias})
	}
	return &pplan.Projection{Input: input, Exprs: exprs}, nil
}

func compileUnion(union *logical.Union, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	if len(union.Inputs) < 2 {
		return nil, compileErr(CodeUnsupportedLogicalPlan, "union",
			"union needs at least two inputs")
	}
	inputs := make([]pplan.Plan, 0, len(union.Inputs))
	for _, in := range union.Inputs {
		compiled, err := CompilePlan(in, lookup)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, compiled)
	}

	// Unified columns: the first input's types under the declared names.
	columns := inputs[0].Schema()
	if union.Names != nil {
		if len(union.Names) != len(columns) {
			return nil, compileErr(CodeUnsupportedLogicalPlan, "union",
				"union declares %d names for %d columns", len(union.Names), len(columns))
		}
		renamed := make([]catalog.Field, len(columns))
		for i, field := range columns {
			renamed[i] = catalog.Field{Name: union.Names[i], Type: field.Type}
		}
		columns = renamed
	}
	return &pplan.Union{Inputs: inputs, Columns: columns}, nil
}

// compileJoin builds a SortMergeJoin from an inner equi-join. Equality
// pairs must reference a column with the same name on both sides; pairs
// that do not are dropped from the key set rather than erroring. The
// output name list is the accepted key names once, then the remaining
// left names, then the remaining right names.
func compileJoin(join *logical.Join, lookup catalog.SchemaAccessor) (pplan.Plan, error) {
	if join.Kind != logical.JoinInner {
		return nil, compileErr(CodeUnsupportedLogicalPlan, join.Kind.String(),
			"only inner joins are provable")
	}
	if join.Filter != nil {
		return nil, compileErr(CodeUnsupportedLogicalPlan, join.Filter.String(),
			"join carries a residual non-equality condition")
	}

	left, err := CompilePlan(join.Left, lookup)
	if err != nil {
		return nil, err
	}
	right, err := CompilePlan(join.Right, lookup)
	if err != nil {
		return nil, err
	}
	leftSchema := left.Schema()
	rightSchema := right.Schema()

	var leftIdx, rightIdx []int
	var keyNames []string
	for _, pair := range join.On {
		lcol, lok := pair.Left.(*logical.Column)
		rcol, rok := pair.Right.(*logical.Column)
		if !lok || !rok {
			continue
		}
		if catalog.NormalizeIdent(lcol.Name) != catalog.NormalizeIdent(rcol.Name) {
			continue
		}
		li, err := fieldIndex(leftSchema, lcol.Name)
		if err != nil {
			return nil, err
		}
		ri, err := fieldIndex(rightSchema, rcol.Name)
		if err != nil {
			return nil, err
		}
		leftIdx = append(leftIdx, li)
		rightIdx = append(rightIdx, ri)
		keyNames = append(keyNames, leftSchema[li].Name)
	}

	names := make([]string, 0, len(leftSchema)+len(rightSchema)-len(keyNames))
	names = append(names, keyNames...)
	names = append(names, restNames(leftSchema, leftIdx)...)
	names = append(names, restNames(rightSchema, rightIdx)...)

	return &pplan.SortMergeJoin{
		Left:        left,
		Right:       right,
		LeftIdx:     leftIdx,
		RightIdx:    rightIdx,
		ColumnNames: names,
	}, nil
}

func fieldIndex(schema []catalog.Field, name string) (int, error) {
	want := catalog.NormalizeIdent(name)
	for i, field := range schema {
		if catalog.NormalizeIdent(field.Name) == want {
			return i, nil
		}
	}
	return 0, compileErr(CodeColumnNotFound, name,
		"join key is not in the side's output schema")
}

func restNames(schema []catalog.Field, keys []int) []string {
	used := make(map[int]bool, len(keys))
	for _, idx := range keys {
		used[idx] = true
	}
	var names []string
	for i, field := range schema {
		if !used[i] {
			names = append(names, field.Name)
		}
	}
	return names
}
