package pexpr

import "encoding/json"

// JSON serialization for provable expressions. The encoding is purely
// structural and deterministic: node kind under "expr", operands under
// fixed keys. Golden tests and the CLI rely on byte-stable output.

// MarshalJSON implements json.Marshaler.
func (c *Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":        "column",
		"name":        c.Name,
		"column_type": c.Type,
	})
}

// MarshalJSON implements json.Marshaler.
func (l *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":  "literal",
		"value": l.Value,
	})
}

func marshalBinary(kind string, lhs, rhs Expr) ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr": kind,
		"lhs":  lhs,
		"rhs":  rhs,
	})
}

// MarshalJSON implements json.Marshaler.
func (a *Add) MarshalJSON() ([]byte, error) { return marshalBinary("add", a.Lhs, a.Rhs) }

// MarshalJSON implements json.Marshaler.
func (s *Subtract) MarshalJSON() ([]byte, error) { return marshalBinary("subtract", s.Lhs, s.Rhs) }

// MarshalJSON implements json.Marshaler.
func (m *Multiply) MarshalJSON() ([]byte, error) { return marshalBinary("multiply", m.Lhs, m.Rhs) }

// MarshalJSON implements json.Marshaler.
func (a *And) MarshalJSON() ([]byte, error) { return marshalBinary("and", a.Lhs, a.Rhs) }

// MarshalJSON implements json.Marshaler.
func (o *Or) MarshalJSON() ([]byte, error) { return marshalBinary("or", o.Lhs, o.Rhs) }

// MarshalJSON implements json.Marshaler.
func (e *Equals) MarshalJSON() ([]byte, error) { return marshalBinary("equals", e.Lhs, e.Rhs) }

// MarshalJSON implements json.Marshaler.
func (i *Inequality) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":  "inequality",
		"lhs":   i.Lhs,
		"rhs":   i.Rhs,
		"is_lt": i.IsLT,
	})
}

// MarshalJSON implements json.Marshaler.
func (n *Not) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":    "not",
		"operand": n.Operand,
	})
}

// MarshalJSON implements json.Marshaler.
func (n *Negate) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":    "negate",
		"operand": n.Operand,
	})
}

// MarshalJSON implements json.Marshaler.
func (c *Cast) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":    "cast",
		"operand": c.Operand,
		"to":      c.To,
	})
}

// MarshalJSON implements json.Marshaler.
func (c *ScalingCast) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":    "scaling_cast",
		"operand": c.Operand,
		"to":      c.To,
	})
}

// MarshalJSON implements json.Marshaler.
func (p *Placeholder) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"expr":        "placeholder",
		"index":       p.Index,
		"column_type": p.Type,
	})
}
