package protocol

import (
	"fmt"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
)

// Key identifies a queue entry. The codec treats it as opaque bytes.
type Key []byte

// Value is the payload stored under a Key.
type Value []byte

// Kind names one of the three message sets.
type Kind int

const (
	KindRequest Kind = iota + 1
	KindReply
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindReply:
		return "reply"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseKind accepts the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "request", "req":
		return KindRequest, nil
	case "reply", "rep":
		return KindReply, nil
	case "error", "err":
		return KindError, nil
	default:
		return 0, errors.Newf(ErrUnknownKind, "unknown message kind %q", s)
	}
}

// Message is implemented by every request, reply and *ProtoError.
type Message interface {
	// Kind returns the message set the value belongs to.
	Kind() Kind

	// Tag returns the leading discriminant byte.
	Tag() byte

	// Size returns the exact number of bytes Put writes.
	Size() int

	// Put encodes the message into the front of area and returns the rest
	// of area. area must hold at least Size() bytes; a shorter area is a
	// programming error and panics. Mode and status fields must be Valid and
	// an ErrorReply must carry a non-nil Err: Put writes an invalid mode as
	// is, which the decoder then rejects, and panics on a nil Err.
	Put(area []byte) []byte
}

// AddMode selects which end of the queue Add inserts at.
type AddMode uint8

const (
	AddHead AddMode = 1
	AddTail AddMode = 2
)

func (m AddMode) Valid() bool {
	return m == AddHead || m == AddTail
}

func (m AddMode) String() string {
	switch m {
	case AddHead:
		return "head"
	case AddTail:
		return "tail"
	default:
		return fmt.Sprintf("AddMode(%d)", uint8(m))
	}
}

// LendMode selects whether Lend waits for an entry when the queue is empty.
type LendMode uint8

const (
	LendBlock LendMode = 1
	LendPoll  LendMode = 2
)

func (m LendMode) Valid() bool {
	return m == LendBlock || m == LendPoll
}

func (m LendMode) String() string {
	switch m {
	case LendBlock:
		return "block"
	case LendPoll:
		return "poll"
	default:
		return fmt.Sprintf("LendMode(%d)", uint8(m))
	}
}

// RepayStatus is the outcome reported when a lent entry is handed back.
type RepayStatus uint8

const (
	RepayPenalty RepayStatus = 1
	RepayReward  RepayStatus = 2
	RepayFront   RepayStatus = 3
	RepayDrop    RepayStatus = 4
)

func (s RepayStatus) Valid() bool {
	return s >= RepayPenalty && s <= RepayDrop
}

func (s RepayStatus) String() string {
	switch s {
	case RepayPenalty:
		return "penalty"
	case RepayReward:
		return "reward"
	case RepayFront:
		return "front"
	case RepayDrop:
		return "drop"
	default:
		return fmt.Sprintf("RepayStatus(%d)", uint8(s))
	}
}

// ParseAddMode, ParseLendMode and ParseRepayStatus accept the String forms.

func ParseAddMode(s string) (AddMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "head":
		return AddHead, nil
	case "tail":
		return AddTail, nil
	default:
		return 0, errors.Newf(ErrInvalidValue, "unknown add mode %q", s)
	}
}

func ParseLendMode(s string) (LendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return LendBlock, nil
	case "poll":
		return LendPoll, nil
	default:
		return 0, errors.Newf(ErrInvalidValue, "unknown lend mode %q", s)
	}
}

func ParseRepayStatus(s string) (RepayStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "penalty":
		return RepayPenalty, nil
	case "reward":
		return RepayReward, nil
	case "front":
		return RepayFront, nil
	case "drop":
		return RepayDrop, nil
	default:
		return 0, errors.Newf(ErrInvalidValue, "unknown repay status %q", s)
	}
}
