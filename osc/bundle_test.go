package osc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brask/goosc/osc"
)

func TestBundleMessagesFlattensNested(t *testing.T) {
	inner := osc.NewBundle(osc.Immediate)
	inner.Add(osc.NewMessage("/inner/1"))
	inner.Add(osc.NewMessage("/inner/2"))

	outer := osc.NewBundle(osc.Immediate)
	outer.Add(osc.NewMessage("/outer/1"))
	outer.Add(inner)
	outer.Add(osc.NewMessage("/outer/2"))

	got := outer.Messages()
	require.Len(t, got, 4)
	assert.Equal(t, "/outer/1", got[0].Address)
	assert.Equal(t, "/inner/1", got[1].Address)
	assert.Equal(t, "/inner/2", got[2].Address)
	assert.Equal(t, "/outer/2", got[3].Address)
}

func TestBundleEncodeDecodeRoundTrip(t *testing.T) {
	b := osc.NewBundle(osc.NewTimeTag(1234.5))
	b.Add(osc.NewMessage("/foo", osc.IntArgument(1)))

	inner := osc.NewBundle(osc.Immediate)
	inner.Add(osc.NewMessage("/bar", osc.StringArgument("baz")))
	b.Add(inner)

	encoded, err := b.Encode()
	require.NoError(t, err)
	assert.Zero(t, len(encoded)%4)

	decoded, rest, err := osc.DecodeBundle(encoded)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.True(t, b.Equal(decoded))
}

func TestIsBundle(t *testing.T) {
	msg, err := osc.NewMessage("/foo").Encode()
	require.NoError(t, err)
	assert.False(t, osc.IsBundle(msg))

	bundle, err := osc.NewBundle(osc.Immediate).Encode()
	require.NoError(t, err)
	assert.True(t, osc.IsBundle(bundle))
}

func TestDecodeBundleNotABundle(t *testing.T) {
	msg, err := osc.NewMessage("/foo").Encode()
	require.NoError(t, err)

	_, _, err = osc.DecodeBundle(msg)
	assert.ErrorIs(t, err, osc.ErrNotABundle)
}

func TestDecodePacketDiscriminates(t *testing.T) {
	msgBytes, err := osc.NewMessage("/foo", osc.IntArgument(1)).Encode()
	require.NoError(t, err)

	pkt, _, err := osc.DecodePacket(msgBytes)
	require.NoError(t, err)
	_, ok := pkt.(*osc.Message)
	assert.True(t, ok)

	b := osc.NewBundle(osc.Immediate)
	b.Add(osc.NewMessage("/bar"))
	bundleBytes, err := b.Encode()
	require.NoError(t, err)

	pkt, _, err = osc.DecodePacket(bundleBytes)
	require.NoError(t, err)
	_, ok = pkt.(*osc.Bundle)
	assert.True(t, ok)
}
