package cli

import "github.com/gear6io/lendq/pkg/errors"

// CLI-specific error codes
var (
	ErrInvalidDocument = errors.MustNewCode("cli.invalid_document")
	ErrInvalidHex      = errors.MustNewCode("cli.invalid_hex")
	ErrInputRead       = errors.MustNewCode("cli.input_read_failed")
	ErrDecodeFailed    = errors.MustNewCode("cli.decode_failed")
	ErrTrailingInput   = errors.MustNewCode("cli.trailing_input")
	ErrInvalidFlag     = errors.MustNewCode("cli.invalid_flag")
	ErrConfigExists    = errors.MustNewCode("cli.config_exists")
)
