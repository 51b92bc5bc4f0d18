package osc

import (
	"fmt"
	"reflect"
	"strings"
)

// Message is a single OSC message: an address pattern plus an ordered list
// of arguments.
type Message struct {
	Address   string
	Arguments []Argument
}

var _ Packet = (*Message)(nil)

func (*Message) isPacket() {}

// NewMessage builds a Message from an address and a list of arguments.
func NewMessage(address string, args ...Argument) *Message {
	return &Message{Address: address, Arguments: args}
}

// TypeTags returns the message's type-tag string: a comma followed by one
// character per argument, in order.
func (m *Message) TypeTags() string {
	var sb strings.Builder
	sb.WriteByte(',')

	for _, arg := range m.Arguments {
		sb.WriteByte(arg.TypeTag())
	}

	return sb.String()
}

// AddressParts splits the message address on '/', dropping the leading
// empty component produced by the initial slash.
func (m *Message) AddressParts() []string {
	trimmed := strings.TrimPrefix(m.Address, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

// String implements fmt.Stringer.
func (m *Message) String() string {
	return fmt.Sprintf("Message %q %q %v", m.Address, m.TypeTags(), m.Arguments)
}

// Encode implements Packet, serializing the message to its wire form:
// the address, the type-tag string, then each argument's payload in order.
func (m *Message) Encode() ([]byte, error) {
	buf := EncodePaddedString(m.Address)
	buf = append(buf, EncodePaddedString(m.TypeTags())...)

	var err error
	for _, arg := range m.Arguments {
		buf, err = arg.Append(buf)
		if err != nil {
			return nil, fmt.Errorf("osc: encoding argument %c: %w", arg.TypeTag(), err)
		}
	}

	return buf, nil
}

// EncodeMessage is a free-function alias for (*Message).Encode, matching
// the package's encode_message(msg) -> bytes surface.
func EncodeMessage(m *Message) ([]byte, error) {
	return m.Encode()
}

// DecodeMessage decodes a message from the start of buf and returns
// whatever bytes remain.
func DecodeMessage(buf []byte) (*Message, []byte, error) {
	address, rest, err := DecodePaddedString(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("osc: decoding address: %w", err)
	}

	typeTags, rest, err := DecodePaddedString(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("osc: decoding type tags: %w", err)
	}
	if len(typeTags) == 0 || typeTags[0] != ',' {
		return nil, nil, ErrBadTypeTag
	}

	args := make([]Argument, 0, len(typeTags)-1)
	for i := 1; i < len(typeTags); i++ {
		var arg Argument

		arg, rest, err = decodeArgument(typeTags[i], rest)
		if err != nil {
			return nil, nil, fmt.Errorf("osc: decoding argument %d (%c): %w", i-1, typeTags[i], err)
		}

		args = append(args, arg)
	}

	return &Message{Address: address, Arguments: args}, rest, nil
}

// Equal reports whether m and other have equal addresses, type-tag
// strings, and argument values.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m.Address == other.Address &&
		m.TypeTags() == other.TypeTags() &&
		reflect.DeepEqual(m.Arguments, other.Arguments)
}
