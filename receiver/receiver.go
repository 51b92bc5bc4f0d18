// Package receiver implements the pure facade between a decoded datagram and
// the address tree: it discriminates packet type, walks bundle structure,
// and invokes matched callbacks. It does not open sockets or read from the
// network itself; see the transport package for that.
package receiver

import (
	"net"

	"github.com/charmbracelet/log"

	"github.com/brask/goosc/dispatch"
	"github.com/brask/goosc/osc"
)

// Receiver dispatches decoded OSC packets against an address tree.
type Receiver struct {
	tree *dispatch.Tree
}

// New returns a Receiver that dispatches against tree.
func New(tree *dispatch.Tree) *Receiver {
	return &Receiver{tree: tree}
}

// Tree returns the address tree this receiver dispatches against, so
// callers can register and remove callbacks on it directly.
func (r *Receiver) Tree() *dispatch.Tree {
	return r.tree
}

// OnDatagram decodes a single datagram and dispatches every message it
// contains, in declared order, to whatever callbacks match. A decoding
// failure aborts this datagram but has no effect on subsequent calls. A
// callback that panics does not prevent the remaining matched callbacks
// from running.
func (r *Receiver) OnDatagram(data []byte, source net.Addr) error {
	packet, _, err := osc.DecodePacket(data)
	if err != nil {
		log.Debug("dropping malformed datagram", "source", source, "err", err)
		return err
	}

	var messages []*osc.Message
	switch p := packet.(type) {
	case *osc.Message:
		messages = []*osc.Message{p}
	case *osc.Bundle:
		messages = p.Messages()
	}

	for _, msg := range messages {
		r.dispatch(msg, source)
	}

	return nil
}

func (r *Receiver) dispatch(msg *osc.Message, source net.Addr) {
	for _, cb := range r.tree.MatchCallbacks(msg) {
		r.invoke(cb, msg, source)
	}
}

// invoke runs cb with panic recovery so that one misbehaving handler cannot
// take down dispatch for the other callbacks matched by this message.
func (r *Receiver) invoke(cb dispatch.Callback, msg *osc.Message, source net.Addr) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("callback panicked", "address", msg.Address, "recovered", rec)
		}
	}()

	cb(msg, source)
}
