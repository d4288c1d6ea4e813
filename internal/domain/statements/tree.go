package statements

import "sort"

// Node is one account's position in the display forest.
type Node[T any] struct {
	Code     string
	Row      T
	Children []*Node[T]
}

// BuildForest arranges flat report rows into a display forest. A row whose
// parent code does not resolve to another row in the set becomes a root;
// everything else attaches under its parent. Roots and children are ordered
// by code. The forest orders display only; amounts are never rolled up
// through it, each row keeps whatever figure the report computed for its own
// code.
func BuildForest[T any](rows []T, code func(T) string, parent func(T) *string) []*Node[T] {
	nodes := make(map[string]*Node[T], len(rows))
	order := make([]*Node[T], 0, len(rows))
	for _, r := range rows {
		n := &Node[T]{Code: code(r), Row: r}
		if _, dup := nodes[n.Code]; dup {
			continue
		}
		nodes[n.Code] = n
		order = append(order, n)
	}

	var roots []*Node[T]
	for _, n := range order {
		p := parent(nodes[n.Code].Row)
		if p == nil {
			roots = append(roots, n)
			continue
		}
		parentNode, ok := nodes[*p]
		if !ok || parentNode == n {
			roots = append(roots, n)
			continue
		}
		parentNode.Children = append(parentNode.Children, n)
	}

	sortForest(roots)
	return roots
}

// Flatten walks the forest depth-first, each parent immediately followed by
// its descendants, and returns the rows in display order.
func Flatten[T any](forest []*Node[T]) []T {
	var out []T
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		out = append(out, n.Row)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, root := range forest {
		walk(root)
	}
	return out
}

func sortForest[T any](nodes []*Node[T]) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		sortForest(n.Children)
	}
}
