package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertReplyRoundTrip(t *testing.T, rep Reply) {
	t.Helper()

	packed := Pack(rep)
	require.Len(t, packed, rep.Size())
	assert.Equal(t, rep.Tag(), packed[0])

	decoded, rest, err := DecodeReply(packed)
	require.NoError(t, err)
	assert.Equal(t, rep, decoded)
	assert.Empty(t, rest)
}

func sampleStats() StatsGotReply {
	return StatsGotReply{
		Ping:      77,
		Count:     177,
		Add:       277,
		Update:    377,
		Lookup:    477,
		Remove:    577,
		Lend:      677,
		Repay:     777,
		Heartbeat: 877,
		Stats:     977,
	}
}

func allReplies() []Reply {
	key, value := dummyKeyValue()
	return []Reply{
		PongReply{},
		CountedReply{Count: 97},
		AddedReply{},
		KeptReply{},
		UpdatedReply{},
		NotFoundReply{},
		ValueFoundReply{Value: value},
		ValueNotFoundReply{},
		RemovedReply{},
		NotRemovedReply{},
		LentReply{LendKey: 177, Key: key, Value: value},
		QueueEmptyReply{},
		RepaidReply{},
		HeartbeatenReply{},
		SkippedReply{},
		sampleStats(),
		FlushedReply{},
		TerminatedReply{},
		ErrorReply{Err: NewNotEnoughData(NotEnoughDataForGlobalReqTag, 177, 277)},
		ErrorReply{Err: NewInvalidTag(InvalidGlobalReqTag, 177)},
		ErrorReply{Err: NewDbQueueOutOfSync(key)},
	}
}

func TestReplyRoundTrip(t *testing.T) {
	for _, rep := range allReplies() {
		t.Run(MessageName(rep), func(t *testing.T) {
			assertReplyRoundTrip(t, rep)
		})
	}
}

func TestReplyCarriesEveryErrorCode(t *testing.T) {
	for _, code := range ErrorCodes() {
		var pe *ProtoError
		switch code.Shape() {
		case ShapeNotEnoughData:
			pe = NewNotEnoughData(code, 177, 177)
		case ShapeInvalidTag:
			pe = NewInvalidTag(code, 177)
		case ShapeKey:
			pe = NewDbQueueOutOfSync(Key("some key"))
		}
		require.NotNil(t, pe, code.String())

		t.Run(code.String(), func(t *testing.T) {
			assertReplyRoundTrip(t, ErrorReply{Err: pe})
		})
	}
}

func TestStatsGotLayout(t *testing.T) {
	stats := sampleStats()
	packed := Pack(stats)
	require.Len(t, packed, 81)
	assert.Equal(t, byte(ReplyStatsGot), packed[0])

	// Counters follow the tag in a fixed order, eight bytes each.
	want := []uint64{77, 177, 277, 377, 477, 577, 677, 777, 877, 977}
	for i, v := range want {
		off := 1 + i*8
		got, _, perr := readUint64(packed[off:], NotEnoughDataForGlobalRepStatsPing)
		require.Nil(t, perr)
		assert.Equal(t, v, got, "counter %d", i)
	}

	decoded, rest, err := DecodeReply(packed)
	require.NoError(t, err)
	assert.Equal(t, stats, decoded)
	assert.Empty(t, rest)
}

func TestStatsGotTruncation(t *testing.T) {
	packed := Pack(sampleStats())
	codes := []ErrorCode{
		NotEnoughDataForGlobalRepStatsPing,
		NotEnoughDataForGlobalRepStatsCount,
		NotEnoughDataForGlobalRepStatsAdd,
		NotEnoughDataForGlobalRepStatsUpdate,
		NotEnoughDataForGlobalRepStatsLookup,
		NotEnoughDataForGlobalRepStatsRemove,
		NotEnoughDataForGlobalRepStatsLend,
		NotEnoughDataForGlobalRepStatsRepay,
		NotEnoughDataForGlobalRepStatsHeartbeat,
		NotEnoughDataForGlobalRepStatsStats,
	}

	for i, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			cut := 1 + i*8 + 5
			_, _, err := DecodeReply(packed[:cut])
			assert.Equal(t, NewNotEnoughData(code, 8, 5), err)
		})
	}
}

func TestReplyTruncation(t *testing.T) {
	key, value := dummyKeyValue()
	counted := Pack(CountedReply{Count: 97})
	lent := Pack(LentReply{LendKey: 177, Key: key, Value: value})
	found := Pack(ValueFoundReply{Value: value})

	tests := []struct {
		name string
		data []byte
		want *ProtoError
	}{
		{"empty", []byte{}, NewNotEnoughData(NotEnoughDataForGlobalRepTag, 1, 0)},
		{"counted", counted[:3], NewNotEnoughData(NotEnoughDataForGlobalRepCountCount, 4, 2)},
		{"lent lend key", lent[:1], NewNotEnoughData(NotEnoughDataForGlobalRepLentLendKey, 8, 0)},
		{"lent key len", lent[:11], NewNotEnoughData(NotEnoughDataForGlobalRepLentKeyLen, 4, 2)},
		{"lent key", lent[:14], NewNotEnoughData(NotEnoughDataForGlobalRepLentKey, 8, 1)},
		{"lent value len", lent[:21], NewNotEnoughData(NotEnoughDataForGlobalRepLentValueLen, 4, 0)},
		{"lent value", lent[:len(lent)-2], NewNotEnoughData(NotEnoughDataForGlobalRepLentValue, 10, 8)},
		{"value found len", found[:2], NewNotEnoughData(NotEnoughDataForGlobalRepValueFoundValueLen, 4, 1)},
		{"value found", found[:7], NewNotEnoughData(NotEnoughDataForGlobalRepValueFoundValue, 10, 2)},
		{"error tag", []byte{byte(ReplyError)}, NewNotEnoughData(NotEnoughDataForProtoErrorTag, 1, 0)},
		{"error required", []byte{byte(ReplyError), 3, 0, 0}, NewNotEnoughData(NotEnoughDataForProtoErrorRequired, 4, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, rest, err := DecodeReply(tt.data)
			assert.Nil(t, rep)
			assert.Nil(t, rest)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestReplyInvalidTag(t *testing.T) {
	for _, tag := range []byte{0, 20, 177, 255} {
		_, _, err := DecodeReply([]byte{tag})
		assert.Equal(t, NewInvalidTag(InvalidGlobalRepTag, tag), err)
	}

	// A bad code inside an Error reply is reported as is, not wrapped.
	_, _, err := DecodeReply([]byte{byte(ReplyError), 177})
	assert.Equal(t, NewInvalidTag(InvalidProtoErrorTag, 177), err)
}

func TestReplyEveryPrefixIsTruncated(t *testing.T) {
	for _, rep := range allReplies() {
		packed := Pack(rep)
		for cut := 0; cut < len(packed); cut++ {
			_, _, err := DecodeReply(packed[:cut])
			var perr *ProtoError
			require.ErrorAs(t, err, &perr, "%s cut at %d", MessageName(rep), cut)
			assert.True(t, perr.Truncated(), "%s cut at %d: %v", MessageName(rep), cut, perr)
		}
	}
}

func TestReplySizeIsStable(t *testing.T) {
	for _, rep := range allReplies() {
		first := rep.Size()
		assert.Equal(t, first, rep.Size())
		assert.Equal(t, first, len(Pack(rep)))
	}
}

func TestErrorReplyRequiresErr(t *testing.T) {
	assert.PanicsWithValue(t, errNilErrorReply, func() { _ = ErrorReply{}.Size() })
	assert.PanicsWithValue(t, errNilErrorReply, func() { Pack(ErrorReply{}) })
	assert.PanicsWithValue(t, errNilErrorReply, func() { ErrorReply{}.Put(make([]byte, 16)) })
}
