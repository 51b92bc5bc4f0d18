package dispatch

import (
	"net"
	"strings"
	"sync"

	"github.com/brask/goosc/osc"
)

// Callback is invoked for each message matching a registered address
// pattern, together with the network address the datagram arrived from.
type Callback func(msg *osc.Message, source net.Addr)

// Tree is an OSC address space: a trie of address parts guarding sets of
// callbacks, safe for concurrent registration and dispatch.
//
// Dispatch never mutates the tree, so a reader-writer lock lets any number
// of lookups run alongside each other; registration and removal take the
// write side.
type Tree struct {
	mu     sync.RWMutex
	root   *Node
	nextID CallbackID
}

// NewTree returns an empty address tree.
func NewTree() *Tree {
	return &Tree{root: newNode("", nil)}
}

// Root returns the tree's root node, representing the empty path.
func (t *Tree) Root() *Node {
	return t.root
}

// splitPath decomposes an address into its parts, dropping the leading
// empty component produced by the initial '/'.
func splitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// validatePart reports whether an address part is acceptable at
// registration time: it must not contain a space, '#', ',' or '/'.
func validatePart(part string) error {
	if strings.ContainsAny(part, " #,/") {
		return ErrInvalidAddressPart
	}
	return nil
}

// AddCallback registers cb at path, creating any missing nodes along the
// way, and returns an ID that later identifies this specific registration.
func (t *Tree) AddCallback(path string, cb Callback) (CallbackID, error) {
	parts := splitPath(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, part := range parts {
		if err := validatePart(part); err != nil {
			return 0, err
		}

		child, ok := node.children[part]
		if !ok {
			child = newNode(part, node)
			node.children[part] = child
			if hasWildcard(part) {
				if node.wildcards == nil {
					node.wildcards = make(map[string]struct{})
				}
				node.wildcards[part] = struct{}{}
			}
		}
		node = child
	}

	t.nextID++
	id := t.nextID

	if node.callbacks == nil {
		node.callbacks = make(map[CallbackID]Callback)
	}
	node.callbacks[id] = cb

	return id, nil
}

// RemoveCallback removes the registration identified by id from path,
// pruning nodes left with no callbacks and no children.
func (t *Tree) RemoveCallback(path string, id CallbackID) error {
	parts := splitPath(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, part := range parts {
		child, ok := node.children[part]
		if !ok {
			return ErrNoSuchPath
		}
		node = child
	}

	if _, ok := node.callbacks[id]; !ok {
		return ErrNoSuchCallback
	}
	delete(node.callbacks, id)

	t.pruneUpward(node)

	return nil
}

// RemoveAllCallbacks removes every callback registered at the exact literal
// path, pruning the node and its now-leafless ancestors.
func (t *Tree) RemoveAllCallbacks(path string) error {
	parts := splitPath(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, part := range parts {
		child, ok := node.children[part]
		if !ok {
			return ErrNoSuchPath
		}
		node = child
	}

	node.callbacks = nil
	t.pruneUpward(node)

	return nil
}

// pruneUpward removes node and its leafless ancestors from the tree. The
// root is never removed.
func (t *Tree) pruneUpward(node *Node) {
	for node.parent != nil && node.isLeafless() {
		parent := node.parent
		delete(parent.children, node.label)
		if parent.wildcards != nil {
			delete(parent.wildcards, node.label)
		}
		node = parent
	}
}

// match implements the core address-tree lookup: it interprets wildcards on
// either side, the stored child labels and the query path components, and
// returns every terminal node the query reaches.
func match(node *Node, path []string, deep bool) []*Node {
	if deep || len(path) == 0 {
		if deep {
			return gatherDeep(node)
		}
		return []*Node{node}
	}

	part := path[0]
	rest := path[1:]

	var out []*Node

	if hasWildcard(part) {
		for label, child := range node.children {
			if hasWildcard(label) {
				continue
			}
			if Glob(label, part) {
				childDeep := part == "*"
				out = append(out, match(child, rest, childDeep)...)
			}
		}
	} else {
		for label := range node.wildcards {
			if !Glob(part, label) {
				continue
			}
			child := node.children[label]
			childDeep := strings.HasSuffix(label, "*") && len(child.children) == 0
			out = append(out, match(child, rest, childDeep)...)
		}
	}

	if child, ok := node.children[part]; ok {
		out = append(out, match(child, rest, false)...)
	}

	return out
}

// GetCallbacks returns the union of callback sets of every node pattern
// reaches, keyed by registration ID.
func (t *Tree) GetCallbacks(pattern string) map[CallbackID]Callback {
	parts := splitPath(pattern)

	t.mu.RLock()
	defer t.mu.RUnlock()

	nodes := match(t.root, parts, false)

	out := make(map[CallbackID]Callback)
	for _, n := range nodes {
		for id, cb := range n.callbacks {
			out[id] = cb
		}
	}

	return out
}

// MatchCallbacks is GetCallbacks applied to a message's address.
func (t *Tree) MatchCallbacks(msg *osc.Message) map[CallbackID]Callback {
	return t.GetCallbacks(msg.Address)
}

// Node looks up the node at an exact literal path, without any wildcard
// interpretation, for use with AddNode, SetName and SetParent.
func (t *Tree) Node(path string) (*Node, error) {
	parts := splitPath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for _, part := range parts {
		child, ok := node.children[part]
		if !ok {
			return nil, ErrNoSuchPath
		}
		node = child
	}

	return node, nil
}

// AddNode detaches subtree from its current parent, if any, and installs it
// as parent's child under label.
func (t *Tree) AddNode(parent *Node, label string, subtree *Node) error {
	if err := validatePart(label); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	oldParent := subtree.parent
	if oldParent != nil {
		delete(oldParent.children, subtree.label)
		if oldParent.wildcards != nil {
			delete(oldParent.wildcards, subtree.label)
		}
	}

	subtree.label = label
	subtree.parent = parent
	parent.children[label] = subtree

	if hasWildcard(label) {
		if parent.wildcards == nil {
			parent.wildcards = make(map[string]struct{})
		}
		parent.wildcards[label] = struct{}{}
	}

	// Prune only once subtree is installed, so a new parent that is an
	// ancestor of the old one still has a child and is kept.
	if oldParent != nil {
		t.pruneUpward(oldParent)
	}

	return nil
}

// SetName renames node within its parent's children map, updating the
// parent's wildcard-label bookkeeping to match.
func (t *Tree) SetName(node *Node, label string) error {
	if err := validatePart(label); err != nil {
		return err
	}
	if node.parent == nil {
		return ErrNoSuchPath
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	parent := node.parent
	delete(parent.children, node.label)
	if parent.wildcards != nil {
		delete(parent.wildcards, node.label)
	}

	node.label = label
	parent.children[label] = node

	if hasWildcard(label) {
		if parent.wildcards == nil {
			parent.wildcards = make(map[string]struct{})
		}
		parent.wildcards[label] = struct{}{}
	}

	return nil
}

// SetParent detaches node from its current parent and re-attaches it under
// parent, keeping its existing label.
func (t *Tree) SetParent(node *Node, parent *Node) error {
	return t.AddNode(parent, node.label, node)
}
