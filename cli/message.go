package cli

import (
	"encoding/hex"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/protocol"
)

// messageDoc is the YAML/JSON form of one message, used both as encode input
// and decode output. Binary keys and values use the *_hex fields.
type messageDoc struct {
	Kind     string    `yaml:"kind" json:"kind"`
	Type     string    `yaml:"type" json:"type"`
	Tag      int       `yaml:"tag,omitempty" json:"tag,omitempty"`
	Key      *string   `yaml:"key,omitempty" json:"key,omitempty"`
	KeyHex   string    `yaml:"key_hex,omitempty" json:"key_hex,omitempty"`
	Value    *string   `yaml:"value,omitempty" json:"value,omitempty"`
	ValueHex string    `yaml:"value_hex,omitempty" json:"value_hex,omitempty"`
	Mode     string    `yaml:"mode,omitempty" json:"mode,omitempty"`
	Status   string    `yaml:"status,omitempty" json:"status,omitempty"`
	LendKey  *uint64   `yaml:"lend_key,omitempty" json:"lend_key,omitempty"`
	Timeout  *uint64   `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Count    *uint32   `yaml:"count,omitempty" json:"count,omitempty"`
	Stats    *statsDoc `yaml:"stats,omitempty" json:"stats,omitempty"`
	Error    *errorDoc `yaml:"error,omitempty" json:"error,omitempty"`

	// Set by decode only.
	Size      int    `yaml:"size,omitempty" json:"size,omitempty"`
	Remaining string `yaml:"remaining_hex,omitempty" json:"remaining_hex,omitempty"`
}

type statsDoc struct {
	Ping      uint64 `yaml:"ping" json:"ping"`
	Count     uint64 `yaml:"count" json:"count"`
	Add       uint64 `yaml:"add" json:"add"`
	Update    uint64 `yaml:"update" json:"update"`
	Lookup    uint64 `yaml:"lookup" json:"lookup"`
	Remove    uint64 `yaml:"remove" json:"remove"`
	Lend      uint64 `yaml:"lend" json:"lend"`
	Repay     uint64 `yaml:"repay" json:"repay"`
	Heartbeat uint64 `yaml:"heartbeat" json:"heartbeat"`
	Stats     uint64 `yaml:"stats" json:"stats"`
}

// errorDoc describes a ProtoError. Code is the case name; WireCode its tag.
type errorDoc struct {
	Code       string  `yaml:"code" json:"code"`
	WireCode   int     `yaml:"wire_code,omitempty" json:"wire_code,omitempty"`
	Location   string  `yaml:"location,omitempty" json:"location,omitempty"`
	Required   *int64  `yaml:"required,omitempty" json:"required,omitempty"`
	Given      *int64  `yaml:"given,omitempty" json:"given,omitempty"`
	InvalidTag *int    `yaml:"invalid_tag,omitempty" json:"invalid_tag,omitempty"`
	Key        *string `yaml:"key,omitempty" json:"key,omitempty"`
	KeyHex     string  `yaml:"key_hex,omitempty" json:"key_hex,omitempty"`
}

// toMessage builds the message a document describes.
func (d *messageDoc) toMessage() (protocol.Message, error) {
	kind, err := protocol.ParseKind(d.Kind)
	if err != nil {
		return nil, errors.New(ErrInvalidDocument, "invalid kind", err).AddContext("kind", d.Kind)
	}

	if kind == protocol.KindError {
		if d.Error == nil {
			d.Error = &errorDoc{}
		}
		if d.Error.Code == "" {
			d.Error.Code = d.Type
		}
		return d.Error.toProtoError()
	}

	info, err := protocol.DefaultRegistry.ByName(kind, d.Type)
	if err != nil {
		return nil, errors.New(ErrInvalidDocument, "unknown message type", err).AddContext("type", d.Type)
	}

	if kind == protocol.KindRequest {
		return d.toRequest(protocol.RequestTag(info.Tag))
	}
	return d.toReply(protocol.ReplyTag(info.Tag))
}

func (d *messageDoc) toRequest(tag protocol.RequestTag) (protocol.Message, error) {
	key, err := bytesField("key", d.Key, d.KeyHex)
	if err != nil {
		return nil, err
	}
	value, err := bytesField("value", d.Value, d.ValueHex)
	if err != nil {
		return nil, err
	}

	switch tag {
	case protocol.RequestPing:
		return protocol.PingRequest{}, nil
	case protocol.RequestCount:
		return protocol.CountRequest{}, nil
	case protocol.RequestStats:
		return protocol.StatsRequest{}, nil
	case protocol.RequestFlush:
		return protocol.FlushRequest{}, nil
	case protocol.RequestTerminate:
		return protocol.TerminateRequest{}, nil
	case protocol.RequestAdd:
		mode, err := protocol.ParseAddMode(defaultString(d.Mode, "tail"))
		if err != nil {
			return nil, errors.New(ErrInvalidDocument, "invalid add mode", err)
		}
		return protocol.AddRequest{Key: key, Value: value, Mode: mode}, nil
	case protocol.RequestUpdate:
		return protocol.UpdateRequest{Key: key, Value: value}, nil
	case protocol.RequestLookup:
		return protocol.LookupRequest{Key: key}, nil
	case protocol.RequestRemove:
		return protocol.RemoveRequest{Key: key}, nil
	case protocol.RequestLend:
		mode, err := protocol.ParseLendMode(defaultString(d.Mode, "block"))
		if err != nil {
			return nil, errors.New(ErrInvalidDocument, "invalid lend mode", err)
		}
		return protocol.LendRequest{Timeout: uint64Field(d.Timeout), Mode: mode}, nil
	case protocol.RequestRepay:
		status, err := protocol.ParseRepayStatus(d.Status)
		if err != nil {
			return nil, errors.New(ErrInvalidDocument, "invalid repay status", err)
		}
		return protocol.RepayRequest{LendKey: uint64Field(d.LendKey), Key: key, Value: value, Status: status}, nil
	case protocol.RequestHeartbeat:
		return protocol.HeartbeatRequest{LendKey: uint64Field(d.LendKey), Key: key, Timeout: uint64Field(d.Timeout)}, nil
	}
	return nil, errors.Newf(ErrInvalidDocument, "unsupported request tag %d", byte(tag))
}

func (d *messageDoc) toReply(tag protocol.ReplyTag) (protocol.Message, error) {
	key, err := bytesField("key", d.Key, d.KeyHex)
	if err != nil {
		return nil, err
	}
	value, err := bytesField("value", d.Value, d.ValueHex)
	if err != nil {
		return nil, err
	}

	switch tag {
	case protocol.ReplyPong:
		return protocol.PongReply{}, nil
	case protocol.ReplyAdded:
		return protocol.AddedReply{}, nil
	case protocol.ReplyKept:
		return protocol.KeptReply{}, nil
	case protocol.ReplyUpdated:
		return protocol.UpdatedReply{}, nil
	case protocol.ReplyNotFound:
		return protocol.NotFoundReply{}, nil
	case protocol.ReplyValueNotFound:
		return protocol.ValueNotFoundReply{}, nil
	case protocol.ReplyRemoved:
		return protocol.RemovedReply{}, nil
	case protocol.ReplyNotRemoved:
		return protocol.NotRemovedReply{}, nil
	case protocol.ReplyQueueEmpty:
		return protocol.QueueEmptyReply{}, nil
	case protocol.ReplyRepaid:
		return protocol.RepaidReply{}, nil
	case protocol.ReplyHeartbeaten:
		return protocol.HeartbeatenReply{}, nil
	case protocol.ReplySkipped:
		return protocol.SkippedReply{}, nil
	case protocol.ReplyFlushed:
		return protocol.FlushedReply{}, nil
	case protocol.ReplyTerminated:
		return protocol.TerminatedReply{}, nil
	case protocol.ReplyCounted:
		var count uint32
		if d.Count != nil {
			count = *d.Count
		}
		return protocol.CountedReply{Count: count}, nil
	case protocol.ReplyValueFound:
		return protocol.ValueFoundReply{Value: value}, nil
	case protocol.ReplyLent:
		return protocol.LentReply{LendKey: uint64Field(d.LendKey), Key: key, Value: value}, nil
	case protocol.ReplyStatsGot:
		var s statsDoc
		if d.Stats != nil {
			s = *d.Stats
		}
		return protocol.StatsGotReply{
			Ping: s.Ping, Count: s.Count, Add: s.Add, Update: s.Update, Lookup: s.Lookup,
			Remove: s.Remove, Lend: s.Lend, Repay: s.Repay, Heartbeat: s.Heartbeat, Stats: s.Stats,
		}, nil
	case protocol.ReplyError:
		if d.Error == nil {
			return nil, errors.New(ErrInvalidDocument, "Error reply needs an error section", nil)
		}
		pe, err := d.Error.toProtoError()
		if err != nil {
			return nil, err
		}
		return protocol.ErrorReply{Err: pe}, nil
	}
	return nil, errors.Newf(ErrInvalidDocument, "unsupported reply tag %d", byte(tag))
}

func (e *errorDoc) toProtoError() (*protocol.ProtoError, error) {
	info, err := protocol.DefaultRegistry.ByName(protocol.KindError, e.Code)
	if err != nil {
		return nil, errors.New(ErrInvalidDocument, "unknown error code", err).AddContext("code", e.Code)
	}
	code := protocol.ErrorCode(info.Tag)

	switch code.Shape() {
	case protocol.ShapeNotEnoughData:
		required, err := uint32Field("required", e.Required)
		if err != nil {
			return nil, err
		}
		given, err := uint32Field("given", e.Given)
		if err != nil {
			return nil, err
		}
		return protocol.NewNotEnoughData(code, required, given), nil
	case protocol.ShapeInvalidTag:
		tag := intField(e.InvalidTag)
		if tag < 0 || tag > 255 {
			return nil, errors.Newf(ErrInvalidDocument, "invalid_tag %d does not fit in a byte", tag)
		}
		return protocol.NewInvalidTag(code, byte(tag)), nil
	default:
		key, err := bytesField("error key", e.Key, e.KeyHex)
		if err != nil {
			return nil, err
		}
		return protocol.NewDbQueueOutOfSync(key), nil
	}
}

// newMessageDoc describes m.
func newMessageDoc(m protocol.Message) *messageDoc {
	d := &messageDoc{
		Kind: m.Kind().String(),
		Type: protocol.MessageName(m),
		Tag:  int(m.Tag()),
	}

	switch v := m.(type) {
	case protocol.AddRequest:
		d.setKey(v.Key)
		d.setValue(v.Value)
		d.Mode = v.Mode.String()
	case protocol.UpdateRequest:
		d.setKey(v.Key)
		d.setValue(v.Value)
	case protocol.LookupRequest:
		d.setKey(v.Key)
	case protocol.RemoveRequest:
		d.setKey(v.Key)
	case protocol.LendRequest:
		d.Timeout = &v.Timeout
		d.Mode = v.Mode.String()
	case protocol.RepayRequest:
		d.LendKey = &v.LendKey
		d.setKey(v.Key)
		d.setValue(v.Value)
		d.Status = v.Status.String()
	case protocol.HeartbeatRequest:
		d.LendKey = &v.LendKey
		d.setKey(v.Key)
		d.Timeout = &v.Timeout
	case protocol.CountedReply:
		d.Count = &v.Count
	case protocol.ValueFoundReply:
		d.setValue(v.Value)
	case protocol.LentReply:
		d.LendKey = &v.LendKey
		d.setKey(v.Key)
		d.setValue(v.Value)
	case protocol.StatsGotReply:
		d.Stats = &statsDoc{
			Ping: v.Ping, Count: v.Count, Add: v.Add, Update: v.Update, Lookup: v.Lookup,
			Remove: v.Remove, Lend: v.Lend, Repay: v.Repay, Heartbeat: v.Heartbeat, Stats: v.Stats,
		}
	case protocol.ErrorReply:
		d.Error = newErrorDoc(v.Err)
	case *protocol.ProtoError:
		d.Error = newErrorDoc(v)
	}
	return d
}

func newErrorDoc(pe *protocol.ProtoError) *errorDoc {
	e := &errorDoc{
		Code:     pe.Code.String(),
		WireCode: int(pe.Code),
		Location: pe.Code.Location(),
	}
	switch pe.Code.Shape() {
	case protocol.ShapeNotEnoughData:
		required, given := int64(pe.Required), int64(pe.Given)
		e.Required, e.Given = &required, &given
	case protocol.ShapeInvalidTag:
		tag := int(pe.BadTag)
		e.InvalidTag = &tag
	case protocol.ShapeKey:
		e.Key, e.KeyHex = textOrHex(pe.Key)
	}
	return e
}

func (d *messageDoc) setKey(k protocol.Key) {
	d.Key, d.KeyHex = textOrHex(k)
}

func (d *messageDoc) setValue(v protocol.Value) {
	d.Value, d.ValueHex = textOrHex(v)
}

// textOrHex returns b as text when it is printable UTF-8, else as hex.
func textOrHex(b []byte) (*string, string) {
	if utf8.Valid(b) && !strings.ContainsFunc(string(b), isControl) {
		s := string(b)
		return &s, ""
	}
	return nil, hex.EncodeToString(b)
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

func bytesField(name string, text *string, hexText string) ([]byte, error) {
	if text != nil && hexText != "" {
		return nil, errors.Newf(ErrInvalidDocument, "%s and %s_hex are mutually exclusive", name, name)
	}
	if hexText != "" {
		b, err := parseHex(hexText)
		if err != nil {
			return nil, errors.New(ErrInvalidDocument, "invalid "+name+"_hex", err)
		}
		return b, nil
	}
	if text != nil {
		return []byte(*text), nil
	}
	return []byte{}, nil
}

// parseHex accepts hex with optional 0x prefix and whitespace, colon or comma
// separators.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':', ',':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.New(ErrInvalidHex, "invalid hex input", err)
	}
	return b, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func uint64Field(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}

// uint32Field reads a u32 wire field, rejecting values the wire cannot carry.
func uint32Field(name string, v *int64) (uint32, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 || *v > math.MaxUint32 {
		return 0, errors.Newf(ErrInvalidDocument, "%s %d does not fit in a u32", name, *v)
	}
	return uint32(*v), nil
}

func intField(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
