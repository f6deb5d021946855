package protocol

import (
	"fmt"
	"slices"

	"github.com/gear6io/lendq/pkg/errors"
)

// Pack encodes m into a new buffer of exactly m.Size() bytes.
func Pack(m Message) []byte {
	buf := make([]byte, m.Size())
	if rest := m.Put(buf); len(rest) != 0 {
		panic(fmt.Sprintf("protocol: %T.Size() reported %d bytes but Put left %d unused", m, len(buf), len(rest)))
	}
	return buf
}

// AppendPack appends the encoding of m to dst, growing it by exactly
// m.Size() bytes, and returns the extended slice. It lets callers reuse a
// pooled buffer across frames.
func AppendPack(dst []byte, m Message) []byte {
	n := m.Size()
	dst = slices.Grow(dst, n)
	start := len(dst)
	dst = dst[:start+n]
	if rest := m.Put(dst[start:]); len(rest) != 0 {
		panic(fmt.Sprintf("protocol: %T.Size() reported %d bytes but Put left %d unused", m, n, len(rest)))
	}
	return dst
}

// Decode decodes one message of the given kind from the front of data.
// Codec failures are returned as *ProtoError; an unknown kind is a coded
// protocol.unknown_kind error.
func Decode(kind Kind, data []byte) (Message, []byte, error) {
	switch kind {
	case KindRequest:
		req, rest, perr := decodeRequest(data)
		if perr != nil {
			return nil, nil, perr
		}
		return req, rest, nil
	case KindReply:
		rep, rest, perr := decodeReply(data)
		if perr != nil {
			return nil, nil, perr
		}
		return rep, rest, nil
	case KindError:
		pe, rest, perr := decodeProtoError(data)
		if perr != nil {
			return nil, nil, perr
		}
		return pe, rest, nil
	default:
		return nil, nil, errors.Newf(ErrUnknownKind, "unknown message kind %d", int(kind))
	}
}
