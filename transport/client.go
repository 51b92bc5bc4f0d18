package transport

import (
	"fmt"
	"net"

	"github.com/brask/goosc/osc"
)

// UDPClient sends OSC packets over UDP to the fixed destination established
// at construction time. To send to an explicit address per call, use the
// package-level SendTo with an unconnected net.PacketConn.
type UDPClient struct {
	conn *net.UDPConn
}

// NewUDPClient dials addr ("host:port") and returns a client bound to it.
func NewUDPClient(addr string) (*UDPClient, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve udp addr: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial udp: %w", err)
	}

	return &UDPClient{conn: conn}, nil
}

// Close releases the client's underlying socket.
func (c *UDPClient) Close() error {
	return c.conn.Close()
}

// Send encodes p and writes it to the client's connected destination.
func (c *UDPClient) Send(p osc.Packet) error {
	data, err := p.Encode()
	if err != nil {
		return fmt.Errorf("transport: encode packet: %w", err)
	}

	_, err = c.conn.Write(data)
	if err != nil {
		return fmt.Errorf("transport: write udp: %w", err)
	}

	return nil
}

// SendTo encodes p and writes it over conn to an explicit destination; it
// does not use a UDPClient. Useful for a server replying to whatever
// address a datagram arrived from.
func SendTo(conn net.PacketConn, p osc.Packet, addr net.Addr) error {
	data, err := p.Encode()
	if err != nil {
		return fmt.Errorf("transport: encode packet: %w", err)
	}

	_, err = conn.WriteTo(data, addr)
	if err != nil {
		return fmt.Errorf("transport: write udp: %w", err)
	}

	return nil
}
