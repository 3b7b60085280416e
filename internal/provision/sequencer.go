// Package provision pushes a compiled routing table to the nodes.
package provision

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"sbconf/internal/logger"
	"sbconf/internal/metrics"
	"sbconf/internal/netif"
	"sbconf/internal/routes"
	"sbconf/internal/transcript"
)

// Defaults of the node firmware.
const (
	DefaultPort   = 12000
	DefaultSettle = 500 * time.Millisecond
)

// State is the position of a node in its provisioning sequence.
type State int

const (
	StateIdle State = iota
	StateSessionOpen
	StateStarted
	StateSendingRoutes
	StateSendingReceives
	StateCommitted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSessionOpen:
		return "session-open"
	case StateStarted:
		return "started"
	case StateSendingRoutes:
		return "sending-routes"
	case StateSendingReceives:
		return "sending-receives"
	case StateCommitted:
		return "committed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config is what a deployment needs to know about the network.
type Config struct {
	Prefix string        // Subnet prefix, see netif.ParsePrefix.
	Port   int           // Node service port.
	Settle time.Duration // Pause after every message.
}

// SleepFunc waits d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customises a Sequencer.
type Option func(*Sequencer)

// WithDialer replaces the UDP dialer.
func WithDialer(d Dialer) Option {
	return func(s *Sequencer) { s.dialer = d }
}

// WithSleep replaces the settle wait.
func WithSleep(fn SleepFunc) Option {
	return func(s *Sequencer) { s.sleep = fn }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Sequencer) { s.log = l }
}

func WithTranscript(t transcript.Transcript) Option {
	return func(s *Sequencer) { s.transcript = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) { s.metrics = m }
}

// WithObserver is called on every state change of every node.
func WithObserver(fn func(id routes.NodeID, st State)) Option {
	return func(s *Sequencer) { s.observe = fn }
}

// Sequencer deploys tables node by node, in ascending ID order, one message
// at a time with a settle pause after each.
type Sequencer struct {
	prefix string
	port   int
	settle time.Duration

	dialer     Dialer
	sleep      SleepFunc
	log        logger.Logger
	transcript transcript.Transcript
	metrics    *metrics.Metrics
	observe    func(id routes.NodeID, st State)
}

// New validates cfg and returns a Sequencer. A zero Port means DefaultPort.
func New(cfg Config, opts ...Option) (*Sequencer, error) {
	prefix, err := netif.ParsePrefix(cfg.Prefix)
	if err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.Settle < 0 {
		return nil, fmt.Errorf("negative settle interval %s", cfg.Settle)
	}

	s := &Sequencer{
		prefix:     prefix,
		port:       cfg.Port,
		settle:     cfg.Settle,
		dialer:     &UDPDialer{},
		sleep:      sleepCtx,
		log:        logger.Discard(),
		transcript: transcript.Discard,
		observe:    func(routes.NodeID, State) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Prefix returns the normalised subnet prefix.
func (s *Sequencer) Prefix() string {
	return s.prefix
}

// Address returns host:port of a node.
func (s *Sequencer) Address(id routes.NodeID) string {
	return net.JoinHostPort(netif.Address(s.prefix, uint8(id)), strconv.Itoa(s.port))
}

// Deploy sends the table to every node it names. It returns when the last
// node's sequence is done, when a session cannot be opened, or when ctx is
// cancelled between two messages.
func (s *Sequencer) Deploy(ctx context.Context, t *routes.Table) error {
	s.transcript.Println("")
	s.transcript.Println("Uploading...")

	for _, id := range t.Order() {
		if err := s.deployNode(ctx, t, id); err != nil {
			return err
		}
	}

	s.transcript.Println("")
	s.transcript.Println("Uploaded... OK.")
	return nil
}

func (s *Sequencer) deployNode(ctx context.Context, t *routes.Table, id routes.NodeID) (err error) {
	log := s.log.With(logger.Fields{"module": "provision", "node": int(id)})
	addr := s.Address(id)

	s.transcript.Println("")
	s.transcript.Println(fmt.Sprintf("%d: %s", id, netif.Address(s.prefix, uint8(id))))

	s.observe(id, StateIdle)
	sess, err := s.dialer.Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warnf("failed to close session: %v", cerr)
		}
		if err == nil {
			s.observe(id, StateClosed)
		}
	}()
	s.observe(id, StateSessionOpen)
	log.Debugf("session open to %s, %d messages", addr, t.Messages(id))

	if err = s.send(ctx, log, sess, AddrStart, 0); err != nil {
		return err
	}
	s.observe(id, StateStarted)

	if recs := t.SendRoutes(id); len(recs) > 0 {
		s.observe(id, StateSendingRoutes)
		for _, rec := range recs {
			s.transcript.Println(fmt.Sprintf("send: %v", rec.Ints()))
			if err = s.send(ctx, log, sess, AddrSend, rec.Ints()...); err != nil {
				return err
			}
		}
	}

	if recs := t.ReceiveRoutes(id); len(recs) > 0 {
		s.observe(id, StateSendingReceives)
		for _, rec := range recs {
			s.transcript.Println(fmt.Sprintf("receive: %v", rec.Ints()))
			if err = s.send(ctx, log, sess, AddrReceive, rec.Ints()...); err != nil {
				return err
			}
		}
	}

	if err = s.send(ctx, log, sess, AddrCommit, 0); err != nil {
		return err
	}
	s.observe(id, StateCommitted)

	if err = s.send(ctx, log, sess, AddrEnd, 0); err != nil {
		return err
	}

	s.metrics.NodeProvisioned()
	log.Info("node provisioned")
	return nil
}

// send writes one message and settles. Socket errors are logged and the
// sequence goes on: the node never acknowledges, so there is nothing to
// retry against.
func (s *Sequencer) send(ctx context.Context, log *logger.Log, sess Session, address string, args ...int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wire := make([]int32, len(args))
	for i, a := range args {
		wire[i] = int32(a)
	}

	if err := sess.Send(address, wire...); err != nil {
		s.metrics.SendFailed()
		log.Warnf("%v", err)
	} else {
		s.metrics.MessageSent(address)
		log.Debugf("sent %s %v", address, args)
	}

	return s.sleep(ctx, s.settle)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
