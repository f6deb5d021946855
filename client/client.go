// Package client issues typed lendq requests over a caller-supplied
// transport and checks that every reply is a legal answer.
package client

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"github.com/gear6io/lendq/server/protocol"
)

// Transport delivers one request frame and returns the matching reply frame.
// The request frame is only valid until RoundTrip returns.
type Transport interface {
	RoundTrip(ctx context.Context, frame []byte) ([]byte, error)
}

// TransportFunc adapts a function, such as (*dispatch.Handler).Serve, to
// Transport.
type TransportFunc func(ctx context.Context, frame []byte) ([]byte, error)

func (f TransportFunc) RoundTrip(ctx context.Context, frame []byte) ([]byte, error) {
	return f(ctx, frame)
}

// Options configure a Client.
type Options struct {
	Logger zerolog.Logger
}

// Client is safe for concurrent use if its Transport is.
type Client struct {
	transport Transport
	logger    zerolog.Logger
	frames    sync.Pool
}

// New creates a client over transport.
func New(transport Transport, opts Options) (*Client, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}
	return &Client{
		transport: transport,
		logger:    opts.Logger.With().Str("component", "client").Logger(),
		frames: sync.Pool{
			New: func() any {
				b := make([]byte, 0, 256)
				return &b
			},
		},
	}, nil
}

// Lease is an entry handed out by Lend.
type Lease struct {
	LendKey uint64
	Key     protocol.Key
	Value   protocol.Value
}

// Outcome is the engine's answer to Repay and Heartbeat.
type Outcome int

const (
	// Done means the lease was repaid or extended.
	Done Outcome = iota
	// NotFound means the key is no longer queued.
	NotFound
	// Skipped means the lease had already expired or been superseded.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case NotFound:
		return "not_found"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func (c *Client) Ping(ctx context.Context) error {
	rep, err := c.do(ctx, protocol.PingRequest{})
	if err != nil {
		return err
	}
	if _, ok := rep.(protocol.PongReply); !ok {
		return unexpected(protocol.PingRequest{}, rep)
	}
	return nil
}

// Count returns the number of queued entries.
func (c *Client) Count(ctx context.Context) (uint32, error) {
	rep, err := c.do(ctx, protocol.CountRequest{})
	if err != nil {
		return 0, err
	}
	counted, ok := rep.(protocol.CountedReply)
	if !ok {
		return 0, unexpected(protocol.CountRequest{}, rep)
	}
	return counted.Count, nil
}

// Add enqueues value under key. It reports false when the key was already
// present and has been kept as is.
func (c *Client) Add(ctx context.Context, key protocol.Key, value protocol.Value, mode protocol.AddMode) (bool, error) {
	if !mode.Valid() {
		return false, errors.Wrapf(ErrInvalidArgument, "add mode %s", mode)
	}
	req := protocol.AddRequest{Key: key, Value: value, Mode: mode}
	rep, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	switch rep.(type) {
	case protocol.AddedReply:
		return true, nil
	case protocol.KeptReply:
		return false, nil
	default:
		return false, unexpected(req, rep)
	}
}

// Update replaces the value under key. It reports false when key is absent.
func (c *Client) Update(ctx context.Context, key protocol.Key, value protocol.Value) (bool, error) {
	req := protocol.UpdateRequest{Key: key, Value: value}
	rep, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	switch rep.(type) {
	case protocol.UpdatedReply:
		return true, nil
	case protocol.NotFoundReply:
		return false, nil
	default:
		return false, unexpected(req, rep)
	}
}

// Lookup returns the value under key and whether it was found.
func (c *Client) Lookup(ctx context.Context, key protocol.Key) (protocol.Value, bool, error) {
	req := protocol.LookupRequest{Key: key}
	rep, err := c.do(ctx, req)
	if err != nil {
		return nil, false, err
	}
	switch r := rep.(type) {
	case protocol.ValueFoundReply:
		return r.Value, true, nil
	case protocol.ValueNotFoundReply:
		return nil, false, nil
	default:
		return nil, false, unexpected(req, rep)
	}
}

// Remove deletes key and reports whether it was present.
func (c *Client) Remove(ctx context.Context, key protocol.Key) (bool, error) {
	req := protocol.RemoveRequest{Key: key}
	rep, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	switch rep.(type) {
	case protocol.RemovedReply:
		return true, nil
	case protocol.NotRemovedReply:
		return false, nil
	default:
		return false, unexpected(req, rep)
	}
}

// Lend takes the head entry. ok is false when the queue is empty.
func (c *Client) Lend(ctx context.Context, timeout uint64, mode protocol.LendMode) (lease Lease, ok bool, err error) {
	if !mode.Valid() {
		return Lease{}, false, errors.Wrapf(ErrInvalidArgument, "lend mode %s", mode)
	}
	req := protocol.LendRequest{Timeout: timeout, Mode: mode}
	rep, err := c.do(ctx, req)
	if err != nil {
		return Lease{}, false, err
	}
	switch r := rep.(type) {
	case protocol.LentReply:
		return Lease{LendKey: r.LendKey, Key: r.Key, Value: r.Value}, true, nil
	case protocol.QueueEmptyReply:
		return Lease{}, false, nil
	default:
		return Lease{}, false, unexpected(req, rep)
	}
}

// Repay hands a lent entry back with value and status.
func (c *Client) Repay(ctx context.Context, lease Lease, value protocol.Value, status protocol.RepayStatus) (Outcome, error) {
	if !status.Valid() {
		return 0, errors.Wrapf(ErrInvalidArgument, "repay status %s", status)
	}
	req := protocol.RepayRequest{LendKey: lease.LendKey, Key: lease.Key, Value: value, Status: status}
	rep, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	switch rep.(type) {
	case protocol.RepaidReply:
		return Done, nil
	default:
		return leaseOutcome(req, rep)
	}
}

// Heartbeat extends a lease by timeout.
func (c *Client) Heartbeat(ctx context.Context, lease Lease, timeout uint64) (Outcome, error) {
	req := protocol.HeartbeatRequest{LendKey: lease.LendKey, Key: lease.Key, Timeout: timeout}
	rep, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	switch rep.(type) {
	case protocol.HeartbeatenReply:
		return Done, nil
	default:
		return leaseOutcome(req, rep)
	}
}

func leaseOutcome(req protocol.Request, rep protocol.Reply) (Outcome, error) {
	switch rep.(type) {
	case protocol.NotFoundReply:
		return NotFound, nil
	case protocol.SkippedReply:
		return Skipped, nil
	default:
		return 0, unexpected(req, rep)
	}
}

// Stats returns the server's per-operation counters.
func (c *Client) Stats(ctx context.Context) (protocol.StatsGotReply, error) {
	rep, err := c.do(ctx, protocol.StatsRequest{})
	if err != nil {
		return protocol.StatsGotReply{}, err
	}
	stats, ok := rep.(protocol.StatsGotReply)
	if !ok {
		return protocol.StatsGotReply{}, unexpected(protocol.StatsRequest{}, rep)
	}
	return stats, nil
}

// Flush removes every entry.
func (c *Client) Flush(ctx context.Context) error {
	rep, err := c.do(ctx, protocol.FlushRequest{})
	if err != nil {
		return err
	}
	if _, ok := rep.(protocol.FlushedReply); !ok {
		return unexpected(protocol.FlushRequest{}, rep)
	}
	return nil
}

// Terminate asks the server to shut down.
func (c *Client) Terminate(ctx context.Context) error {
	rep, err := c.do(ctx, protocol.TerminateRequest{})
	if err != nil {
		return err
	}
	if _, ok := rep.(protocol.TerminatedReply); !ok {
		return unexpected(protocol.TerminateRequest{}, rep)
	}
	return nil
}

// do sends req and decodes the reply. An Error reply is returned as its
// *protocol.ProtoError.
func (c *Client) do(ctx context.Context, req protocol.Request) (protocol.Reply, error) {
	name := protocol.MessageName(req)

	bufp := c.frames.Get().(*[]byte)
	frame := protocol.AppendPack((*bufp)[:0], req)
	resp, err := c.transport.RoundTrip(ctx, frame)
	*bufp = frame[:0]
	c.frames.Put(bufp)
	if err != nil {
		return nil, errors.Wrapf(err, "%s round trip", name)
	}
	if len(resp) == 0 {
		return nil, errors.Wrapf(ErrEmptyReply, "%s", name)
	}

	rep, rest, err := protocol.DecodeReply(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s reply", name)
	}
	if len(rest) > 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%s reply followed by %d bytes", protocol.MessageName(rep), len(rest))
	}

	c.logger.Debug().
		Str("request", name).
		Str("reply", protocol.MessageName(rep)).
		Msg("Round trip")

	if er, ok := rep.(protocol.ErrorReply); ok {
		return nil, er.Err
	}
	return rep, nil
}

func unexpected(req protocol.Request, rep protocol.Reply) error {
	return errors.Wrapf(ErrUnexpectedReply, "%s answered with %s", protocol.MessageName(req), protocol.MessageName(rep))
}
