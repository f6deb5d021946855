// Package dispatch sits between a transport and the queue engine: it turns
// one request frame into one reply frame.
package dispatch

import (
	"context"
	stderrors "errors"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/config"
	"github.com/gear6io/lendq/server/protocol"
	"github.com/gear6io/lendq/utils"
	"github.com/rs/zerolog"
)

// Engine executes decoded requests. Returning a *protocol.ProtoError (for
// example DbQueueOutOfSync) sends it to the client as an Error reply; any
// other error is reported to the caller of Serve.
type Engine interface {
	Handle(ctx context.Context, req protocol.Request) (protocol.Reply, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, req protocol.Request) (protocol.Reply, error)

func (f EngineFunc) Handle(ctx context.Context, req protocol.Request) (protocol.Reply, error) {
	return f(ctx, req)
}

// Handler decodes request frames, runs them through an Engine and encodes the
// replies. It is safe for concurrent use.
type Handler struct {
	engine   Engine
	config   config.DispatchConfig
	logger   zerolog.Logger
	counters counters
}

// NewHandler creates a new dispatch handler
func NewHandler(engine Engine, cfg config.DispatchConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("component", "dispatch").Logger(),
	}
}

// Serve handles one complete request frame and returns the encoded reply.
//
// A frame that does not decode is answered with an Error reply carrying the
// decode failure. An error is returned only when no reply can be produced:
// the frame is over the size limit, has trailing bytes while those are
// rejected, the context is done, or the engine failed without a ProtoError.
func (h *Handler) Serve(ctx context.Context, frame []byte) ([]byte, error) {
	logger := h.logger.With().
		Str("frame_id", utils.GenerateULIDString()).
		Int("frame_bytes", len(frame)).
		Logger()

	if len(frame) > h.config.MaxFrameBytes {
		logger.Warn().Int("max_frame_bytes", h.config.MaxFrameBytes).Msg("Frame too large")
		return nil, errors.Newf(ErrFrameTooLarge, "frame of %d bytes exceeds limit of %d", len(frame), h.config.MaxFrameBytes)
	}

	req, rest, err := protocol.DecodeRequest(frame)
	if err != nil {
		var perr *protocol.ProtoError
		if !stderrors.As(err, &perr) {
			return nil, errors.Wrap(errors.CommonInternal, err, "request decode failed")
		}
		logger.Debug().Str("error", perr.Error()).Bool("truncated", perr.Truncated()).Msg("Rejected malformed request")
		return h.reply(logger, protocol.ErrorReply{Err: perr}), nil
	}

	name := protocol.MessageName(req)
	logger = logger.With().Str("request", name).Logger()

	if len(rest) > 0 {
		if h.config.RejectTrailingBytes {
			logger.Warn().Int("trailing_bytes", len(rest)).Msg("Rejected frame with trailing bytes")
			return nil, errors.Newf(ErrTrailingBytes, "%d bytes after %s request", len(rest), name)
		}
		logger.Debug().Int("trailing_bytes", len(rest)).Msg("Ignoring trailing bytes")
	}

	h.counters.record(req)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(ErrCanceled, err, "request canceled before dispatch").AddContext("request", name)
	}

	rep, err := h.engine.Handle(ctx, req)
	if err != nil {
		var perr *protocol.ProtoError
		if stderrors.As(err, &perr) {
			logger.Debug().Str("error", perr.Error()).Msg("Engine reported protocol error")
			return h.reply(logger, protocol.ErrorReply{Err: perr}), nil
		}
		logger.Error().Err(err).Msg("Engine failed")
		return nil, errors.Wrap(ErrEngineFailed, err, "engine failed to handle request").AddContext("request", name)
	}

	if rep == nil {
		return nil, errors.New(ErrNilReply, "engine returned no reply", nil).AddContext("request", name)
	}
	if er, ok := rep.(protocol.ErrorReply); ok && er.Err == nil {
		return nil, errors.New(ErrNilReply, "engine returned an error reply without an error", nil).AddContext("request", name)
	}

	return h.reply(logger, rep), nil
}

func (h *Handler) reply(logger zerolog.Logger, rep protocol.Reply) []byte {
	out := protocol.Pack(rep)
	logger.Debug().
		Str("reply", protocol.MessageName(rep)).
		Int("reply_bytes", len(out)).
		Msg("Frame served")
	return out
}

// Counters returns the number of requests decoded so far per operation, in
// the form a Stats request is answered with.
func (h *Handler) Counters() protocol.StatsGotReply {
	return h.counters.snapshot()
}
