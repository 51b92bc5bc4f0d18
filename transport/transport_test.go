package transport_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brask/goosc/osc"
	"github.com/brask/goosc/transport"
)

func TestUDPClientServerRoundTrip(t *testing.T) {
	server, err := transport.ListenUDP("127.0.0.1:0", transport.BufSizeMaxMTU)
	require.NoError(t, err)
	defer server.Close()

	received := make(chan []byte, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, func(_ net.Addr, raw []byte) error {
			buf := make([]byte, len(raw))
			copy(buf, raw)
			received <- buf
			return nil
		})
	}()

	client, err := transport.NewUDPClient(server.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	msg := osc.NewMessage("/foo", osc.IntArgument(1))
	require.NoError(t, client.Send(msg))

	select {
	case raw := <-received:
		decoded, _, err := osc.DecodeMessage(raw)
		require.NoError(t, err)
		assert.True(t, msg.Equal(decoded))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Serve to return")
	}
}

func TestSendTo(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	reply, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer reply.Close()

	msg := osc.NewMessage("/pong")
	require.NoError(t, transport.SendTo(reply, msg, conn.LocalAddr()))

	buf := make([]byte, transport.BufSizeMaxMTU)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)

	decoded, _, err := osc.DecodeMessage(buf[:n])
	require.NoError(t, err)
	assert.True(t, msg.Equal(decoded))
}
