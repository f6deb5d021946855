package client

import "github.com/go-faster/errors"

var (
	ErrNilTransport    = errors.New("lendq: client transport is nil")
	ErrUnexpectedReply = errors.New("lendq: reply is not a valid answer to the request")
	ErrTrailingBytes   = errors.New("lendq: reply frame has bytes after the reply")
	ErrEmptyReply      = errors.New("lendq: transport returned an empty reply frame")
	ErrInvalidArgument = errors.New("lendq: invalid request argument")
)
