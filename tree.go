// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jsonc

// NodeType describes the syntactic species of a tree node.
type NodeType byte

// Constants defining the valid NodeType values.
const (
	NullNode NodeType = iota
	BoolNode
	NumberNode
	StringNode
	PropertyNode
	ObjectNode
	ArrayNode
)

var nodeTypeStr = [...]string{
	NullNode:     "null",
	BoolNode:     "boolean",
	NumberNode:   "number",
	StringNode:   "string",
	PropertyNode: "property",
	ObjectNode:   "object",
	ArrayNode:    "array",
}

func (t NodeType) String() string {
	v := int(t)
	if v >= len(nodeTypeStr) {
		return "<invalid>"
	}
	return nodeTypeStr[v]
}

// A Node is one element of the concrete syntax tree of a document.  The
// span [Offset, Offset+Length) of each node is contained in its parent's
// span, and sibling spans are disjoint and increasing.
//
// An ObjectNode's children are PropertyNodes in document order.  An
// ArrayNode's children are value nodes in document order.  A
// PropertyNode's children are its key (a StringNode) and, when the parse
// was not truncated, its value.  Leaf nodes carry the decoded Value.
type Node struct {
	Type   NodeType
	Offset int
	Length int

	// ColonOffset is the offset of the ":" token of a PropertyNode, or -1
	// if the property has no colon.
	ColonOffset int

	Parent   *Node
	Children []*Node
	Value    any
}

// End returns the offset just past the end of the node's span.
func (n *Node) End() int { return n.Offset + n.Length }

// contains reports whether offset falls within n's span.
func (n *Node) contains(offset int, includeRightBound bool) bool {
	return (offset >= n.Offset && offset < n.End()) ||
		(includeRightBound && offset == n.End())
}

func typeOfValue(value any) NodeType {
	switch value.(type) {
	case bool:
		return BoolNode
	case float64:
		return NumberNode
	case string:
		return StringNode
	default:
		return NullNode
	}
}

// ParseTree parses text into a concrete syntax tree, along with any
// recoverable errors encountered.  The result is nil when no value could
// be parsed, as for an empty document.  Missing pieces of malformed input are omitted from the tree:
// a property whose value is missing has a single child.
func ParseTree(text string, opts *ParseOptions) (*Node, []ParseError) {
	var errs []ParseError
	current := &Node{Type: ArrayNode, Offset: -1, Length: -1} // artificial root

	// A property node stays current until its value arrives or its
	// member ends; this closes it and restores its object.
	ensurePropertyComplete := func(endOffset int) {
		if current.Type == PropertyNode {
			current.Length = endOffset - current.Offset
			current = current.Parent
		}
	}
	onValue := func(n *Node) *Node {
		current.Children = append(current.Children, n)
		return n
	}

	v := &Visitor{
		ObjectBegin: func(sp Span, _ PathFunc) bool {
			current = onValue(&Node{Type: ObjectNode, Offset: sp.Offset, Length: -1, ColonOffset: -1, Parent: current})
			return true
		},
		ObjectProperty: func(name string, sp Span, _ PathFunc) {
			current = onValue(&Node{Type: PropertyNode, Offset: sp.Offset, Length: -1, ColonOffset: -1, Parent: current})
			current.Children = append(current.Children, &Node{
				Type: StringNode, Offset: sp.Offset, Length: sp.Length, ColonOffset: -1,
				Parent: current, Value: name,
			})
		},
		ObjectEnd: func(sp Span) {
			ensurePropertyComplete(sp.Offset) // a property missing its value is still open
			current.Length = sp.End() - current.Offset
			current = current.Parent
			ensurePropertyComplete(sp.End())
		},
		ArrayBegin: func(sp Span, _ PathFunc) bool {
			current = onValue(&Node{Type: ArrayNode, Offset: sp.Offset, Length: -1, ColonOffset: -1, Parent: current})
			return true
		},
		ArrayEnd: func(sp Span) {
			current.Length = sp.End() - current.Offset
			current = current.Parent
			ensurePropertyComplete(sp.End())
		},
		Literal: func(value any, sp Span, _ PathFunc) {
			onValue(&Node{
				Type: typeOfValue(value), Offset: sp.Offset, Length: sp.Length, ColonOffset: -1,
				Parent: current, Value: value,
			})
			ensurePropertyComplete(sp.End())
		},
		Separator: func(ch byte, sp Span) {
			if current.Type == PropertyNode {
				switch ch {
				case ':':
					current.ColonOffset = sp.Offset
				case ',':
					ensurePropertyComplete(sp.Offset)
				}
			}
		},
		Error: func(code ErrorCode, sp Span) {
			errs = append(errs, ParseError{Code: code, Span: sp})
		},
	}
	Visit(text, v, opts)

	if len(current.Children) == 0 {
		return nil, errs
	}
	root := current.Children[0]
	root.Parent = nil
	return root, errs
}

// FindNodeAtLocation returns the node at the given path under root, or
// nil if no such node exists.
func FindNodeAtLocation(root *Node, path Path) *Node {
	if root == nil {
		return nil
	}
	node := root
	for _, segment := range path {
		switch seg := segment.(type) {
		case string:
			if node.Type != ObjectNode {
				return nil
			}
			var value *Node
			for _, prop := range node.Children {
				if len(prop.Children) == 2 && prop.Children[0].Value == seg {
					value = prop.Children[1]
					break
				}
			}
			if value == nil {
				return nil
			}
			node = value
		case int:
			if node.Type != ArrayNode || seg < 0 || seg >= len(node.Children) {
				return nil
			}
			node = node.Children[seg]
		default:
			return nil
		}
	}
	return node
}

// FindNodeAtOffset returns the innermost node whose span contains the
// given offset, or nil if the offset is outside the tree.  If
// includeRightBound is true, a node's closing boundary offset is treated
// as inside the node.
func FindNodeAtOffset(node *Node, offset int, includeRightBound bool) *Node {
	if node == nil || !node.contains(offset, includeRightBound) {
		return nil
	}
	for _, c := range node.Children {
		if c.Offset > offset {
			break
		}
		if found := FindNodeAtOffset(c, offset, includeRightBound); found != nil {
			return found
		}
	}
	return node
}

// GetNodePath returns the path of node within its tree.  The root has an
// empty path.
func GetNodePath(node *Node) Path {
	if node.Parent == nil {
		return Path{}
	}
	path := GetNodePath(node.Parent)
	switch node.Parent.Type {
	case PropertyNode:
		path = append(path, node.Parent.Children[0].Value.(string))
	case ArrayNode:
		for i, c := range node.Parent.Children {
			if c == node {
				path = append(path, i)
				break
			}
		}
	}
	return path
}

// GetNodeValue returns the JSON value denoted by the subtree at node,
// using the same representation as Parse.
func GetNodeValue(node *Node) any {
	switch node.Type {
	case ArrayNode:
		vs := make([]any, len(node.Children))
		for i, c := range node.Children {
			vs[i] = GetNodeValue(c)
		}
		return vs
	case ObjectNode:
		m := make(map[string]any, len(node.Children))
		for _, prop := range node.Children {
			if len(prop.Children) == 2 {
				m[prop.Children[0].Value.(string)] = GetNodeValue(prop.Children[1])
			}
		}
		return m
	default:
		return node.Value
	}
}
