package pplan

import "encoding/json"

// JSON serialization for provable plans, matching the structural style of
// pexpr: node kind under "plan", children under fixed keys. The CLI
// emits this form and golden tests compare it byte for byte.

// MarshalJSON implements json.Marshaler.
func (*Empty) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"plan": "empty"})
}

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":    "table",
		"table":   t.Ref,
		"columns": t.Columns,
	})
}

// MarshalJSON implements json.Marshaler.
func (ae AliasedExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"alias": ae.Alias,
		"expr":  ae.Expr,
	})
}

// MarshalJSON implements json.Marshaler.
func (p *Projection) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":  "projection",
		"exprs": p.Exprs,
		"input": p.Input,
	})
}

// MarshalJSON implements json.Marshaler.
func (f *Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":  "filter",
		"exprs": f.Exprs,
		"table": f.Table,
		"where": f.Where,
	})
}

// MarshalJSON implements json.Marshaler.
func (g *GroupBy) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":        "group_by",
		"table":       g.Table,
		"where":       g.Where,
		"group_cols":  g.GroupCols,
		"sums":        g.Sums,
		"count_alias": g.CountAlias,
	})
}

// MarshalJSON implements json.Marshaler.
func (s *Slice) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"plan":  "slice",
		"skip":  s.Skip,
		"input": s.Input,
	}
	if s.Fetch != nil {
		out["fetch"] = *s.Fetch
	}
	return json.Marshal(out)
}

// MarshalJSON implements json.Marshaler.
func (u *Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":    "union",
		"columns": u.Columns,
		"inputs":  u.Inputs,
	})
}

// MarshalJSON implements json.Marshaler.
func (j *SortMergeJoin) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"plan":         "sort_merge_join",
		"left":         j.Left,
		"right":        j.Right,
		"left_idx":     j.LeftIdx,
		"right_idx":    j.RightIdx,
		"column_names": j.ColumnNames,
	})
}
