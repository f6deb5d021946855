package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Field widths in bytes.
const (
	sizeU8     = 1
	sizeU16    = 2
	sizeU32    = 4
	sizeU64    = 8
	sizeVecLen = sizeU32
)

// The read helpers check that buf holds the field and report code with
// required = field width and given = len(buf) when it does not. On success
// they return the value and the bytes after it.

// given is len(buf) as carried in a NotEnoughData error, saturated at the
// u32 wire width.
func given(buf []byte) uint32 {
	if uint64(len(buf)) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(buf))
}

func readUint8(buf []byte, code ErrorCode) (uint8, []byte, *ProtoError) {
	if len(buf) < sizeU8 {
		return 0, nil, NewNotEnoughData(code, sizeU8, given(buf))
	}
	return buf[0], buf[sizeU8:], nil
}

func readUint16(buf []byte, code ErrorCode) (uint16, []byte, *ProtoError) {
	if len(buf) < sizeU16 {
		return 0, nil, NewNotEnoughData(code, sizeU16, given(buf))
	}
	return binary.BigEndian.Uint16(buf), buf[sizeU16:], nil
}

func readUint32(buf []byte, code ErrorCode) (uint32, []byte, *ProtoError) {
	if len(buf) < sizeU32 {
		return 0, nil, NewNotEnoughData(code, sizeU32, given(buf))
	}
	return binary.BigEndian.Uint32(buf), buf[sizeU32:], nil
}

func readUint64(buf []byte, code ErrorCode) (uint64, []byte, *ProtoError) {
	if len(buf) < sizeU64 {
		return 0, nil, NewNotEnoughData(code, sizeU64, given(buf))
	}
	return binary.BigEndian.Uint64(buf), buf[sizeU64:], nil
}

// readVector reads a u32 length and that many bytes. A short length prefix
// is reported as lenCode, a short payload as dataCode with required = the
// declared length. The returned slice is a copy.
func readVector(buf []byte, lenCode, dataCode ErrorCode) ([]byte, []byte, *ProtoError) {
	n, buf, perr := readUint32(buf, lenCode)
	if perr != nil {
		return nil, nil, perr
	}
	if uint64(len(buf)) < uint64(n) {
		return nil, nil, NewNotEnoughData(dataCode, n, given(buf))
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, buf[n:], nil
}

// The put helpers write big endian at the front of area and return the rest.
// They panic when area is too short.

func putUint8(area []byte, v uint8) []byte {
	area[0] = v
	return area[sizeU8:]
}

func putUint16(area []byte, v uint16) []byte {
	binary.BigEndian.PutUint16(area, v)
	return area[sizeU16:]
}

func putUint32(area []byte, v uint32) []byte {
	binary.BigEndian.PutUint32(area, v)
	return area[sizeU32:]
}

func putUint64(area []byte, v uint64) []byte {
	binary.BigEndian.PutUint64(area, v)
	return area[sizeU64:]
}

func putVector(area []byte, v []byte) []byte {
	area = putUint32(area, uint32(len(v)))
	if len(area) < len(v) {
		panic(fmt.Sprintf("protocol: encode area too small: need %d bytes, have %d", len(v), len(area)))
	}
	copy(area, v)
	return area[len(v):]
}

func vectorSize(v []byte) int {
	return sizeVecLen + len(v)
}
