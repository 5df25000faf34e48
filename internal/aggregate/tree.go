package aggregate

import "langtagger/internal/library"

// Node is one item in a hierarchy tree.
type Node struct {
	Item     *library.Item
	Children []*Node
}

// NewLeaf wraps a video item.
func NewLeaf(item library.Item) *Node {
	return &Node{Item: &item}
}

// NewContainer wraps a container item and its children.
func NewContainer(item library.Item, children ...*Node) *Node {
	return &Node{Item: &item, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
