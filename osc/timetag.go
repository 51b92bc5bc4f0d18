package osc

import (
	"encoding/binary"
	"time"
)

// ntpEpochOffset is the number of seconds between the NTP epoch
// (1900-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const ntpEpochOffset = 2208988800

// immediate is the wire value of a time tag meaning "execute immediately".
const immediate uint64 = 1

// TimeTag is a 64-bit NTP-style time tag: a uint32 count of seconds since
// the NTP epoch and a uint32 fractional part. The value
// 0x0000000000000001 is reserved to mean "immediately".
type TimeTag struct {
	Seconds uint32
	Frac    uint32
}

// Immediate is the reserved TimeTag meaning "execute immediately".
var Immediate = TimeTag{Seconds: 0, Frac: 1}

// IsImmediate reports whether t is the reserved "immediately" value.
func (t TimeTag) IsImmediate() bool {
	return t == Immediate
}

// NewTimeTag splits a real-valued count of seconds since the NTP epoch into
// a TimeTag's integer and fractional fields.
func NewTimeTag(secondsSinceNTPEpoch float64) TimeTag {
	sec := uint32(uint64(secondsSinceNTPEpoch))
	frac := secondsSinceNTPEpoch - float64(sec)

	return TimeTag{
		Seconds: sec,
		Frac:    uint32(frac*(1<<32) + 0.5),
	}
}

// FromTime converts a Go time.Time into a TimeTag.
func FromTime(t time.Time) TimeTag {
	secs := t.Unix() + ntpEpochOffset
	frac := float64(t.Nanosecond()) / 1e9

	return TimeTag{
		Seconds: uint32(secs),
		Frac:    uint32(frac * (1 << 32)),
	}
}

// Time converts a TimeTag back into a Go time.Time, in UTC. The result is
// meaningless for the Immediate value.
func (t TimeTag) Time() time.Time {
	secs := int64(t.Seconds) - ntpEpochOffset
	nanos := int64(float64(t.Frac) / (1 << 32) * 1e9)

	return time.Unix(secs, nanos).UTC()
}

// Seconds64 returns the time tag as a real-valued count of seconds since
// the NTP epoch, with precision limited by the 32-bit fractional field.
func (t TimeTag) Seconds64() float64 {
	return float64(t.Seconds) + float64(t.Frac)/(1<<32)
}

// Encode serializes the time tag to its 8-byte wire form.
func (t TimeTag) Encode() []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], t.Seconds)
	binary.BigEndian.PutUint32(buf[4:8], t.Frac)

	return buf
}

// DecodeTimeTag reads an 8-byte time tag from the start of buf.
func DecodeTimeTag(buf []byte) (TimeTag, []byte, error) {
	if len(buf) < 8 {
		return TimeTag{}, nil, ErrTruncated
	}

	t := TimeTag{
		Seconds: binary.BigEndian.Uint32(buf[0:4]),
		Frac:    binary.BigEndian.Uint32(buf[4:8]),
	}

	return t, buf[8:], nil
}
