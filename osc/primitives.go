package osc

import (
	"bytes"
	"encoding/binary"
	"math"
)

// round4 rounds n up to the next multiple of 4.
func round4(n int) int {
	return (n + 3) &^ 3
}

// EncodePaddedString encodes s as an OSC-string: the bytes of s, a
// terminating NUL, and 0-3 further NULs so the total length is a multiple
// of four.
func EncodePaddedString(s string) []byte {
	total := round4(len(s) + 1)
	out := make([]byte, total)
	copy(out, s)
	return out
}

// DecodePaddedString reads an OSC-string from the start of buf, returning
// the string and whatever bytes follow its padding.
func DecodePaddedString(buf []byte) (string, []byte, error) {
	idx := bytes.IndexByte(buf, 0)
	if idx == -1 {
		return "", nil, ErrTruncated
	}

	total := round4(idx + 1)
	if len(buf) < total {
		return "", nil, ErrTruncated
	}

	return string(buf[:idx]), buf[total:], nil
}

// EncodeBlob encodes data as an OSC-blob: a 32-bit length prefix followed by
// the raw bytes, then 1-4 NULs so the total is a multiple of four — the same
// minimum-one-byte pad EncodePaddedString applies to strings.
func EncodeBlob(data []byte) []byte {
	total := 4 + round4(len(data)+1)
	out := make([]byte, total)
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	copy(out[4:], data)

	return out
}

// DecodeBlob reads an OSC-blob from the start of buf.
func DecodeBlob(buf []byte) ([]byte, []byte, error) {
	n, rest, err := decodeInt32Raw(buf)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 {
		return nil, nil, ErrTruncated
	}

	length := int(n)
	total := round4(length + 1)
	if len(rest) < total {
		return nil, nil, ErrTruncated
	}

	data := make([]byte, length)
	copy(data, rest[:length])

	return data, rest[total:], nil
}

func decodeInt32Raw(buf []byte) (int32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, ErrTruncated
	}

	return int32(binary.BigEndian.Uint32(buf[:4])), buf[4:], nil
}

func encodeInt32Raw(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))

	return b
}

func decodeFloat32Raw(buf []byte) (float32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, ErrTruncated
	}

	return math.Float32frombits(binary.BigEndian.Uint32(buf[:4])), buf[4:], nil
}

func encodeFloat32Raw(v float32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, math.Float32bits(v))

	return b
}
