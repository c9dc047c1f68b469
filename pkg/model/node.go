package model

// Node is one category in the folded hierarchy: a name plus ordered
// children. The root node has an empty name and holds the top-level
// categories. Child order is first-seen order across the input rows and
// is the display order everywhere downstream. Sibling names are unique;
// EnsureChild is the only way the tree grows, so the type itself keeps
// both invariants.
type Node struct {
	Name     string
	Children []*Node

	byName map[string]*Node
}

// NewRoot returns an empty tree.
func NewRoot() *Node {
	return &Node{}
}

// IsRoot returns true for the synthetic top node. Category names are
// never empty, so the empty name identifies the root.
func (n *Node) IsRoot() bool {
	return n.Name == ""
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n.byName != nil {
		return n.byName[name]
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// EnsureChild returns the direct child with the given name, creating and
// appending it if absent. Re-encountering a name reuses the existing
// child, which is what de-duplicates repeated ancestor paths during the
// fold.
func (n *Node) EnsureChild(name string) *Node {
	if c := n.Child(name); c != nil {
		return c
	}
	c := &Node{Name: name}
	if n.byName == nil {
		n.byName = make(map[string]*Node)
	}
	n.byName[name] = c
	n.Children = append(n.Children, c)
	return c
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.Children)
}

// Count returns the total number of descendants (the node itself is not
// counted, so Count on the root is the number of categories in the tree).
func (n *Node) Count() int {
	total := 0
	for _, c := range n.Children {
		total += 1 + c.Count()
	}
	return total
}

// MaxDepth returns the number of levels below the node: 0 for a leaf,
// at most NumLevels for a fully populated root.
func (n *Node) MaxDepth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := 1 + c.MaxDepth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Walk visits every descendant depth-first in stored order, calling fn
// with the node and its depth (0 for direct children of n). The node
// itself is not visited.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	for _, c := range n.Children {
		fn(c, depth)
		c.walk(fn, depth+1)
	}
}

// WalkPaths visits every descendant depth-first in stored order, calling
// fn with the full path from the root (path[len(path)-1] is the node's
// own name). The slice is reused between calls; copy it if it escapes.
func (n *Node) WalkPaths(fn func(node *Node, path []string)) {
	path := make([]string, 0, NumLevels)
	n.walkPaths(fn, path)
}

func (n *Node) walkPaths(fn func(node *Node, path []string), path []string) {
	for _, c := range n.Children {
		path = append(path, c.Name)
		fn(c, path)
		c.walkPaths(fn, path)
		path = path[:len(path)-1]
	}
}
