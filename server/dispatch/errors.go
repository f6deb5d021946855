package dispatch

import "github.com/gear6io/lendq/pkg/errors"

// Dispatch-specific error codes
var (
	ErrFrameTooLarge = errors.MustNewCode("dispatch.frame_too_large")
	ErrTrailingBytes = errors.MustNewCode("dispatch.trailing_bytes")
	ErrEngineFailed  = errors.MustNewCode("dispatch.engine_failed")
	ErrNilReply      = errors.MustNewCode("dispatch.nil_reply")
	ErrCanceled      = errors.MustNewCode("dispatch.canceled")
)
