package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear6io/lendq/pkg/errors"
)

func TestAppendPack(t *testing.T) {
	key, value := dummyKeyValue()
	first := AddRequest{Key: key, Value: value, Mode: AddTail}
	second := PingRequest{}

	buf := make([]byte, 0, 4)
	buf = AppendPack(buf, first)
	require.Len(t, buf, first.Size())
	buf = AppendPack(buf, second)
	require.Len(t, buf, first.Size()+second.Size())

	req, rest, err := DecodeRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, first, req)

	req, rest, err = DecodeRequest(rest)
	require.NoError(t, err)
	assert.Equal(t, second, req)
	assert.Empty(t, rest)
}

func TestAppendPackKeepsPrefix(t *testing.T) {
	buf := AppendPack([]byte{0xFF}, CountedReply{Count: 1})
	assert.Equal(t, []byte{0xFF, 1, 0, 0, 0, 1}, buf)
}

func TestPutPanicsOnShortArea(t *testing.T) {
	key, value := dummyKeyValue()
	add := AddRequest{Key: key, Value: value, Mode: AddHead}

	assert.Panics(t, func() { add.Put(make([]byte, add.Size()-1)) })
	assert.Panics(t, func() { LendRequest{Timeout: 1, Mode: LendBlock}.Put(make([]byte, 5)) })
	assert.Panics(t, func() { PingRequest{}.Put(nil) })
	assert.NotPanics(t, func() { add.Put(make([]byte, add.Size())) })
}

func TestPutReturnsRemainder(t *testing.T) {
	area := make([]byte, 10)
	rest := PongReply{}.Put(area)
	assert.Len(t, rest, 9)
	assert.Equal(t, byte(ReplyPong), area[0])
}

func TestDecodeByKind(t *testing.T) {
	msg, rest, err := Decode(KindRequest, Pack(FlushRequest{}))
	require.NoError(t, err)
	assert.Equal(t, FlushRequest{}, msg)
	assert.Empty(t, rest)

	msg, _, err = Decode(KindReply, Pack(FlushedReply{}))
	require.NoError(t, err)
	assert.Equal(t, FlushedReply{}, msg)

	msg, _, err = Decode(KindError, Pack(NewInvalidTag(InvalidGlobalReqTag, 3)))
	require.NoError(t, err)
	assert.Equal(t, NewInvalidTag(InvalidGlobalReqTag, 3), msg)

	_, _, err = Decode(KindReply, []byte{99})
	assert.Equal(t, NewInvalidTag(InvalidGlobalRepTag, 99), err)

	_, _, err = Decode(Kind(9), []byte{1})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrUnknownKind))
}

func TestSameTagDifferentSets(t *testing.T) {
	// Tag 1 means Count as a request and Counted as a reply.
	req, _, err := DecodeRequest([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, CountRequest{}, req)

	_, _, err = DecodeReply([]byte{1})
	assert.Equal(t, NewNotEnoughData(NotEnoughDataForGlobalRepCountCount, 4, 0), err)
}
