// Package transport is the UDP collaborator around the core codec and
// dispatch packages: it owns the socket and the run loop, and hands each
// inbound datagram to a receiver.Receiver. Nothing in the core depends on
// this package; it depends on the core.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Buffer sizes suitable for NewUDPServer, named after the traffic pattern
// they're sized for.
const (
	// BufSizeMaxMTU is the Ethernet II MTU: the best choice when senders
	// don't fragment, since the OS can deliver a whole packet per read.
	BufSizeMaxMTU = 1536

	// BufSizeLarge covers most bundles comfortably.
	BufSizeLarge = 16384

	// BufSizeHuge is the largest a UDP payload can be.
	BufSizeHuge = 65535
)

// DatagramHandler processes one received datagram. raw is a view into the
// server's internal, reused read buffer; implementations that need to keep
// the bytes past the call must copy them.
type DatagramHandler func(source net.Addr, raw []byte) error

// UDPServer reads OSC datagrams from a UDP socket and hands each to a
// handler, reusing an internal buffer across reads to avoid per-datagram
// allocation.
type UDPServer struct {
	conn net.PacketConn
	buf  []byte
}

// NewUDPServer wraps an already-bound connection. Prefer one of the
// BufSize constants above for bufSize, sized to the largest datagram
// callers expect to receive.
func NewUDPServer(conn net.PacketConn, bufSize int) *UDPServer {
	return &UDPServer{
		conn: conn,
		buf:  make([]byte, bufSize),
	}
}

// ListenUDP opens a UDP socket on addr and wraps it in a UDPServer.
func ListenUDP(addr string, bufSize int) (*UDPServer, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen udp: %w", err)
	}

	return NewUDPServer(conn, bufSize), nil
}

// LocalAddr returns the address the server is bound to.
func (s *UDPServer) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Close closes the underlying socket, causing a running Serve to return.
func (s *UDPServer) Close() error {
	return s.conn.Close()
}

// Serve reads datagrams until ctx is cancelled or the socket is closed,
// invoking handler for each one. It returns nil on a clean shutdown
// triggered by ctx or Close, and any other read error otherwise.
func (s *UDPServer) Serve(ctx context.Context, handler DatagramHandler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		<-ctx.Done()
		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		// Once reading stops for any reason, release the closer above.
		defer cancel()
		for {
			n, addr, err := s.conn.ReadFrom(s.buf)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return fmt.Errorf("transport: read udp: %w", err)
			}

			if err := handler(addr, s.buf[:n]); err != nil {
				log.Error("datagram handler failed", "source", addr, "err", err)
			}
		}
	})

	return group.Wait()
}
