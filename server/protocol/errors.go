package protocol

import "github.com/gear6io/lendq/pkg/errors"

// Protocol-specific error codes
var (
	ErrNotEnoughData  = errors.MustNewCode("protocol.not_enough_data")
	ErrInvalidTag     = errors.MustNewCode("protocol.invalid_tag")
	ErrQueueOutOfSync = errors.MustNewCode("protocol.queue_out_of_sync")
	ErrUnknownCode    = errors.MustNewCode("protocol.unknown_code")
	ErrUnknownKind    = errors.MustNewCode("protocol.unknown_kind")
	ErrUnknownMessage = errors.MustNewCode("protocol.unknown_message")
	ErrDuplicateTag   = errors.MustNewCode("protocol.duplicate_tag")
	ErrInvalidValue   = errors.MustNewCode("protocol.invalid_value")
)
