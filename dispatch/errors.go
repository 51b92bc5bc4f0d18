// Package dispatch implements an OSC address space: a hierarchical tree of
// address nodes that callbacks can be registered against, and that incoming
// message addresses are matched against using OSC 1.1's glob-style address
// patterns.
package dispatch

import "errors"

var (
	// ErrNoSuchPath is returned when an operation addresses a node that does
	// not exist in the tree.
	ErrNoSuchPath = errors.New("dispatch: no such path")

	// ErrNoSuchCallback is returned by RemoveCallback when the given
	// CallbackID is not registered at the given path.
	ErrNoSuchCallback = errors.New("dispatch: no such callback")

	// ErrInvalidAddressPart is returned when an address component contains
	// a space, '#', ',' or '/' — characters OSC reserves and that would
	// make the part ambiguous with the path separator or a type-tag
	// string. Glob metacharacters are not rejected here: registering a
	// pattern like "/foo/*" is how trailing-wildcard nodes are created.
	ErrInvalidAddressPart = errors.New("dispatch: invalid address part")
)
