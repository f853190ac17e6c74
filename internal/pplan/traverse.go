package pplan

import "github.com/provesql/provesql/internal/catalog"

// Tables returns every table reference the plan reads, in first-use
// order with duplicates collapsed. Proof generation uses this to fetch
// commitments before walking the tree.
func Tables(p Plan) []catalog.TableRef {
	var refs []catalog.TableRef
	seen := make(map[string]bool)
	collectTables(p, seen, &refs)
	return refs
}

func collectTables(p Plan, seen map[string]bool, refs *[]catalog.TableRef) {
	switch node := p.(type) {
	case *Empty:
	case *Table:
		key := node.Ref.String()
		if !seen[key] {
			seen[key] = true
			*refs = append(*refs, node.Ref)
		}
	case *Projection:
		collectTables(node.Input, seen, refs)
	case *Filter:
		collectTables(node.Table, seen, refs)
	case *GroupBy:
		collectTables(node.Table, seen, refs)
	case *Slice:
		collectTables(node.Input, seen, refs)
	case *Union:
		for _, input := range node.Inputs {
			collectTables(input, seen, refs)
		}
	case *SortMergeJoin:
		collectTables(node.Left, seen, refs)
		collectTables(node.Right, seen, refs)
	}
}
