package protocol

import (
	"fmt"
	"strconv"

	"github.com/gear6io/lendq/pkg/errors"
)

// ProtoError is the closed set of codec failures plus DbQueueOutOfSync, the
// one engine condition carried over the wire. Code selects the case; only
// the fields of its shape are meaningful:
//
//	ShapeNotEnoughData: Required, Given
//	ShapeInvalidTag:    BadTag
//	ShapeKey:           Key
//
// The constructors below are the only supported way to build one.
type ProtoError struct {
	Code     ErrorCode
	Required uint32
	Given    uint32
	BadTag   byte
	Key      Key
}

// NewNotEnoughData reports that required bytes were needed at code's
// location but only given were available.
func NewNotEnoughData(code ErrorCode, required, given uint32) *ProtoError {
	return &ProtoError{Code: code, Required: required, Given: given}
}

// NewInvalidTag reports an unrecognised discriminant byte at code's location.
func NewInvalidTag(code ErrorCode, tag byte) *ProtoError {
	return &ProtoError{Code: code, BadTag: tag}
}

// NewDbQueueOutOfSync reports that the engine's index and queue disagree
// about key.
func NewDbQueueOutOfSync(key Key) *ProtoError {
	return &ProtoError{Code: DbQueueOutOfSync, Key: key}
}

func (e *ProtoError) Error() string {
	switch e.Code.Shape() {
	case ShapeNotEnoughData:
		return fmt.Sprintf("%s{required: %d, given: %d}", e.Code, e.Required, e.Given)
	case ShapeInvalidTag:
		return fmt.Sprintf("%s(%d)", e.Code, e.BadTag)
	case ShapeKey:
		return fmt.Sprintf("%s(%q)", e.Code, []byte(e.Key))
	default:
		return "ProtoError(" + strconv.Itoa(int(e.Code)) + ")"
	}
}

// Truncated reports whether the input ended before a field was complete.
func (e *ProtoError) Truncated() bool {
	return e.Code.Shape() == ShapeNotEnoughData
}

// InvalidTag reports whether a discriminant byte was out of range.
func (e *ProtoError) InvalidTag() bool {
	return e.Code.Shape() == ShapeInvalidTag
}

// Domain reports whether e is an engine condition rather than a decode
// failure.
func (e *ProtoError) Domain() bool {
	return e.Code.Shape() == ShapeKey
}

func (e *ProtoError) Kind() Kind { return KindError }

func (e *ProtoError) Tag() byte { return byte(e.Code) }

func (e *ProtoError) Size() int {
	switch e.Code.Shape() {
	case ShapeNotEnoughData:
		return sizeU8 + sizeU32 + sizeU32
	case ShapeInvalidTag:
		return sizeU8 + sizeU8
	case ShapeKey:
		return sizeU8 + vectorSize(e.Key)
	default:
		return sizeU8
	}
}

// Put writes the code and the payload of its shape. An unassigned code is
// written as the bare tag, which DecodeProtoError rejects.
func (e *ProtoError) Put(area []byte) []byte {
	area = putUint8(area, byte(e.Code))
	switch e.Code.Shape() {
	case ShapeNotEnoughData:
		area = putUint32(area, e.Required)
		area = putUint32(area, e.Given)
	case ShapeInvalidTag:
		area = putUint8(area, e.BadTag)
	case ShapeKey:
		area = putVector(area, e.Key)
	}
	return area
}

// DecodeProtoError decodes one error from the front of data and returns it
// with the bytes that follow.
func DecodeProtoError(data []byte) (*ProtoError, []byte, error) {
	pe, rest, perr := decodeProtoError(data)
	if perr != nil {
		return nil, nil, perr
	}
	return pe, rest, nil
}

func decodeProtoError(data []byte) (*ProtoError, []byte, *ProtoError) {
	tag, rest, perr := readUint8(data, NotEnoughDataForProtoErrorTag)
	if perr != nil {
		return nil, nil, perr
	}
	code := ErrorCode(tag)

	switch code.Shape() {
	case ShapeNotEnoughData:
		required, rest, perr := readUint32(rest, NotEnoughDataForProtoErrorRequired)
		if perr != nil {
			return nil, nil, perr
		}
		given, rest, perr := readUint32(rest, NotEnoughDataForProtoErrorGiven)
		if perr != nil {
			return nil, nil, perr
		}
		return NewNotEnoughData(code, required, given), rest, nil

	case ShapeInvalidTag:
		bad, rest, perr := readUint8(rest, NotEnoughDataForProtoErrorInvalidTag)
		if perr != nil {
			return nil, nil, perr
		}
		return NewInvalidTag(code, bad), rest, nil

	case ShapeKey:
		key, rest, perr := readVector(rest,
			NotEnoughDataForProtoErrorDbQueueOutOfSyncKeyLen,
			NotEnoughDataForProtoErrorDbQueueOutOfSyncKey)
		if perr != nil {
			return nil, nil, perr
		}
		return NewDbQueueOutOfSync(key), rest, nil

	default:
		return nil, nil, NewInvalidTag(InvalidProtoErrorTag, tag)
	}
}

// Transform converts e into a coded error carrying its wire code and
// location as context.
func (e *ProtoError) Transform() *errors.Error {
	var out *errors.Error
	switch e.Code.Shape() {
	case ShapeNotEnoughData:
		out = errors.New(ErrNotEnoughData, e.Error(), nil).
			AddContext("required", strconv.FormatUint(uint64(e.Required), 10)).
			AddContext("given", strconv.FormatUint(uint64(e.Given), 10))
	case ShapeInvalidTag:
		out = errors.New(ErrInvalidTag, e.Error(), nil).
			AddContext("tag", strconv.Itoa(int(e.BadTag)))
	case ShapeKey:
		out = errors.New(ErrQueueOutOfSync, e.Error(), nil).
			AddContext("key", string(e.Key))
	default:
		out = errors.New(ErrUnknownCode, e.Error(), nil)
	}
	return out.
		AddContext("wire_code", strconv.Itoa(int(e.Code))).
		AddContext("location", e.Code.Location())
}
