package osc

import (
	"fmt"
	"reflect"
)

// Bundle is an OSC bundle: a time tag plus an ordered list of elements,
// each of which is itself either a Message or a nested Bundle.
type Bundle struct {
	TimeTag  TimeTag
	Elements []Packet
}

var _ Packet = (*Bundle)(nil)

func (*Bundle) isPacket() {}

// NewBundle returns an empty bundle carrying the given time tag.
func NewBundle(tt TimeTag) *Bundle {
	return &Bundle{TimeTag: tt}
}

// Add appends a message or nested bundle to the bundle's elements.
func (b *Bundle) Add(p Packet) {
	b.Elements = append(b.Elements, p)
}

// Messages flattens the bundle into the ordered set of messages it
// contains, recursing depth-first into any nested bundles.
func (b *Bundle) Messages() []*Message {
	var out []*Message

	for _, elem := range b.Elements {
		switch e := elem.(type) {
		case *Message:
			out = append(out, e)
		case *Bundle:
			out = append(out, e.Messages()...)
		}
	}

	return out
}

// Encode implements Packet: "#bundle", the time tag, then each element
// preceded by its own 32-bit big-endian byte length.
func (b *Bundle) Encode() ([]byte, error) {
	buf := EncodePaddedString("#bundle")
	buf = append(buf, b.TimeTag.Encode()...)

	for _, elem := range b.Elements {
		encoded, err := elem.Encode()
		if err != nil {
			return nil, err
		}

		buf = append(buf, encodeInt32Raw(int32(len(encoded)))...)
		buf = append(buf, encoded...)
	}

	return buf, nil
}

// EncodeBundle is a free-function alias for (*Bundle).Encode.
func EncodeBundle(b *Bundle) ([]byte, error) {
	return b.Encode()
}

// DecodeBundle decodes a bundle from the start of buf and returns whatever
// bytes remain.
func DecodeBundle(buf []byte) (*Bundle, []byte, error) {
	ident, rest, err := DecodePaddedString(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("osc: decoding bundle identifier: %w", err)
	}
	if ident != "#bundle" {
		return nil, nil, ErrNotABundle
	}

	tt, rest, err := DecodeTimeTag(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("osc: decoding bundle time tag: %w", err)
	}

	var elements []Packet
	for len(rest) > 0 {
		length, newRest, err := decodeInt32Raw(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("osc: decoding element length: %w", err)
		}
		if length < 0 || int(length) > len(newRest) {
			return nil, nil, ErrTruncated
		}

		sub := newRest[:length]

		var elem Packet
		if IsBundle(sub) {
			elem, _, err = DecodeBundle(sub)
		} else {
			elem, _, err = DecodeMessage(sub)
		}
		if err != nil {
			return nil, nil, err
		}

		elements = append(elements, elem)
		rest = newRest[length:]
	}

	return &Bundle{TimeTag: tt, Elements: elements}, rest, nil
}

// Equal reports whether b and other have equal time tags and structurally
// equal elements.
func (b *Bundle) Equal(other *Bundle) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.TimeTag != other.TimeTag {
		return false
	}
	if len(b.Elements) != len(other.Elements) {
		return false
	}

	for i, elem := range b.Elements {
		switch e := elem.(type) {
		case *Message:
			o, ok := other.Elements[i].(*Message)
			if !ok || !e.Equal(o) {
				return false
			}
		case *Bundle:
			o, ok := other.Elements[i].(*Bundle)
			if !ok || !e.Equal(o) {
				return false
			}
		default:
			if !reflect.DeepEqual(elem, other.Elements[i]) {
				return false
			}
		}
	}

	return true
}
