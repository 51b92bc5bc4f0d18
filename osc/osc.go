// Package osc implements the Open Sound Control 1.1 wire format: a bit-exact
// binary codec for OSC messages and bundles.
//
// The package only deals with encoding and decoding. It does not open
// sockets, run a dispatch loop, or schedule anything at a bundle's time tag;
// see the sibling dispatch, receiver and transport packages for that.
package osc

import "bytes"

// bundlePrefix is the padded-string encoding of the literal "#bundle" that
// begins every OSC bundle.
var bundlePrefix = []byte("#bundle\x00")

// IsBundle reports whether buf begins with the OSC bundle identifier. A
// packet is a bundle iff it begins with "#bundle\x00"; otherwise it is a
// message.
func IsBundle(buf []byte) bool {
	return bytes.HasPrefix(buf, bundlePrefix)
}

// Packet is either a Message or a Bundle, the two shapes an OSC packet can
// take on the wire.
type Packet interface {
	// Encode serializes the packet into its wire representation.
	Encode() ([]byte, error)

	isPacket()
}

// DecodePacket decodes a single packet from buf, discriminating between a
// message and a bundle by its first bytes, and returns whatever bytes
// remain after it.
func DecodePacket(buf []byte) (Packet, []byte, error) {
	if len(buf) == 0 {
		return nil, nil, ErrTruncated
	}

	if IsBundle(buf) {
		return DecodeBundle(buf)
	}

	return DecodeMessage(buf)
}
