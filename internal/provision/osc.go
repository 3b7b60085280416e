package provision

import (
	"context"
	"fmt"
	"net"

	"github.com/hypebeast/go-osc/osc"
)

// OSC addresses understood by the node firmware.
const (
	AddrStart   = "/startprog"
	AddrSend    = "/send"
	AddrReceive = "/receive"
	AddrCommit  = "/commit"
	AddrEnd     = "/endprog"
)

// Session is an open datagram path to one node. Sends are fire-and-forget:
// an error only means the local socket refused the write.
type Session interface {
	Send(address string, args ...int32) error
	Close() error
}

// Dialer opens sessions. addr is host:port.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Session, error)
}

// UDPDialer opens OSC-over-UDP sessions.
type UDPDialer struct {
	net.Dialer
}

func (d *UDPDialer) Dial(ctx context.Context, addr string) (Session, error) {
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open session to %s: %w", addr, err)
	}
	return &oscSession{conn: conn}, nil
}

type oscSession struct {
	conn net.Conn
}

// Encode builds the OSC packet for one message with int32 arguments.
func Encode(address string, args ...int32) ([]byte, error) {
	msg := osc.NewMessage(address)
	for _, a := range args {
		msg.Append(a)
	}
	return msg.MarshalBinary()
}

func (s *oscSession) Send(address string, args ...int32) error {
	data, err := Encode(address, args...)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", address, err)
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send %s: %w", address, err)
	}
	return nil
}

func (s *oscSession) Close() error {
	return s.conn.Close()
}
