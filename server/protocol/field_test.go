package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint16Field(t *testing.T) {
	area := make([]byte, 3)
	rest := putUint16(area, 0xbeef)
	assert.Len(t, rest, 1)
	assert.Equal(t, []byte{0xbe, 0xef, 0}, area)

	v, rest, perr := readUint16(area, NotEnoughDataForGlobalReqTag)
	require.Nil(t, perr)
	assert.Equal(t, uint16(0xbeef), v)
	assert.Equal(t, []byte{0}, rest)

	_, _, perr = readUint16(area[:1], NotEnoughDataForGlobalReqTag)
	assert.Equal(t, NewNotEnoughData(NotEnoughDataForGlobalReqTag, 2, 1), perr)

	assert.Panics(t, func() { putUint16(make([]byte, 1), 1) })
}

func TestFixedWidthFields(t *testing.T) {
	area := make([]byte, sizeU8+sizeU16+sizeU32+sizeU64)
	rest := putUint8(area, 0x01)
	rest = putUint16(rest, 0x0203)
	rest = putUint32(rest, 0x04050607)
	rest = putUint64(rest, 0x08090a0b0c0d0e0f)
	assert.Empty(t, rest)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, area)

	u8, buf, perr := readUint8(area, NotEnoughDataForGlobalReqTag)
	require.Nil(t, perr)
	u16, buf, perr := readUint16(buf, NotEnoughDataForGlobalReqTag)
	require.Nil(t, perr)
	u32, buf, perr := readUint32(buf, NotEnoughDataForGlobalReqTag)
	require.Nil(t, perr)
	u64, buf, perr := readUint64(buf, NotEnoughDataForGlobalReqTag)
	require.Nil(t, perr)

	assert.Equal(t, uint8(0x01), u8)
	assert.Equal(t, uint16(0x0203), u16)
	assert.Equal(t, uint32(0x04050607), u32)
	assert.Equal(t, uint64(0x08090a0b0c0d0e0f), u64)
	assert.Empty(t, buf)
}

func TestNotEnoughDataCarriesFullWireRange(t *testing.T) {
	pe := NewNotEnoughData(NotEnoughDataForGlobalReqTag, math.MaxUint32, 0)

	decoded, rest, err := DecodeProtoError(Pack(pe))
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, pe, decoded)
	assert.Equal(t, uint32(math.MaxUint32), decoded.Required)
}
