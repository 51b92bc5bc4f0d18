package osc

import "math"

// Argument is a single typed OSC argument value: a tagged variant carrying
// a one-byte type tag and its payload. Each concrete type below is one
// variant of that sum type; the dataless tags (T F N I) contribute only
// their tag character to a message's type-tag string.
type Argument interface {
	// TypeTag returns the one-character OSC type tag for this argument.
	TypeTag() byte

	// Append encodes the argument's binary payload and appends it to b.
	Append(b []byte) ([]byte, error)
}

// IntArgument is the OSC 32-bit integer argument, tag 'i'.
//
// It is backed by an int64 so that values outside the signed 32-bit range
// can be constructed and rejected with ErrOverflow at encode time, rather
// than silently wrapping the way a bare int32 would.
type IntArgument int64

// TypeTag implements Argument.
func (a IntArgument) TypeTag() byte { return 'i' }

// Append implements Argument.
func (a IntArgument) Append(b []byte) ([]byte, error) {
	if a > math.MaxInt32 || a < math.MinInt32 {
		return nil, ErrOverflow
	}

	return append(b, encodeInt32Raw(int32(a))...), nil
}

// FloatArgument is the OSC 32-bit IEEE-754 float argument, tag 'f'.
type FloatArgument float32

// TypeTag implements Argument.
func (a FloatArgument) TypeTag() byte { return 'f' }

// Append implements Argument.
func (a FloatArgument) Append(b []byte) ([]byte, error) {
	return append(b, encodeFloat32Raw(float32(a))...), nil
}

// StringArgument is the OSC padded-string argument, tag 's'.
type StringArgument string

// TypeTag implements Argument.
func (a StringArgument) TypeTag() byte { return 's' }

// Append implements Argument.
func (a StringArgument) Append(b []byte) ([]byte, error) {
	return append(b, EncodePaddedString(string(a))...), nil
}

// BlobArgument is the OSC length-prefixed binary blob argument, tag 'b'.
type BlobArgument []byte

// TypeTag implements Argument.
func (a BlobArgument) TypeTag() byte { return 'b' }

// Append implements Argument.
func (a BlobArgument) Append(b []byte) ([]byte, error) {
	return append(b, EncodeBlob(a)...), nil
}

// TimeTagArgument is the OSC 64-bit NTP time tag argument, tag 't',
// expressed as a real-valued count of seconds since the NTP epoch.
type TimeTagArgument float64

// TypeTag implements Argument.
func (a TimeTagArgument) TypeTag() byte { return 't' }

// Append implements Argument.
func (a TimeTagArgument) Append(b []byte) ([]byte, error) {
	return append(b, NewTimeTag(float64(a)).Encode()...), nil
}

// TrueArgument is the dataless OSC boolean-true argument, tag 'T'.
type TrueArgument struct{}

// TypeTag implements Argument.
func (TrueArgument) TypeTag() byte { return 'T' }

// Append implements Argument.
func (TrueArgument) Append(b []byte) ([]byte, error) { return b, nil }

// FalseArgument is the dataless OSC boolean-false argument, tag 'F'.
type FalseArgument struct{}

// TypeTag implements Argument.
func (FalseArgument) TypeTag() byte { return 'F' }

// Append implements Argument.
func (FalseArgument) Append(b []byte) ([]byte, error) { return b, nil }

// NullArgument is the dataless OSC nil argument, tag 'N'.
type NullArgument struct{}

// TypeTag implements Argument.
func (NullArgument) TypeTag() byte { return 'N' }

// Append implements Argument.
func (NullArgument) Append(b []byte) ([]byte, error) { return b, nil }

// ImpulseArgument is the dataless OSC impulse ("bang") argument, tag 'I'.
type ImpulseArgument struct{}

// TypeTag implements Argument.
func (ImpulseArgument) TypeTag() byte { return 'I' }

// Append implements Argument.
func (ImpulseArgument) Append(b []byte) ([]byte, error) { return b, nil }

// BoolArgument is a convenience constructor returning TrueArgument or
// FalseArgument for a Go bool, matching the pair of dataless tags OSC uses
// for booleans instead of a single tagged-value encoding.
func BoolArgument(v bool) Argument {
	if v {
		return TrueArgument{}
	}

	return FalseArgument{}
}

// decodeArgument decodes a single argument of the given type tag from the
// start of buf.
func decodeArgument(tag byte, buf []byte) (Argument, []byte, error) {
	switch tag {
	case 'i':
		v, rest, err := decodeInt32Raw(buf)
		return IntArgument(v), rest, err
	case 'f':
		v, rest, err := decodeFloat32Raw(buf)
		return FloatArgument(v), rest, err
	case 's':
		v, rest, err := DecodePaddedString(buf)
		return StringArgument(v), rest, err
	case 'b':
		v, rest, err := DecodeBlob(buf)
		return BlobArgument(v), rest, err
	case 't':
		v, rest, err := DecodeTimeTag(buf)
		return TimeTagArgument(v.Seconds64()), rest, err
	case 'T':
		return TrueArgument{}, buf, nil
	case 'F':
		return FalseArgument{}, buf, nil
	case 'N':
		return NullArgument{}, buf, nil
	case 'I':
		return ImpulseArgument{}, buf, nil
	default:
		return nil, nil, UnknownTypeTagError{Tag: tag}
	}
}
