package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear6io/lendq/pkg/errors"
)

func TestDefaultRegistry(t *testing.T) {
	assert.Len(t, DefaultRegistry.List(KindRequest), 12)
	assert.Len(t, DefaultRegistry.List(KindReply), 19)
	assert.Len(t, DefaultRegistry.List(KindError), 58)

	info, err := DefaultRegistry.Lookup(KindRequest, byte(RequestRepay))
	require.NoError(t, err)
	assert.Equal(t, "Repay", info.Name)
	assert.Equal(t, "lend_key u64, key, value, status u8", info.Layout)

	info, err = DefaultRegistry.Lookup(KindError, 36)
	require.NoError(t, err)
	assert.Equal(t, "DbQueueOutOfSync", info.Name)

	info, err = DefaultRegistry.ByName(KindReply, "statsgot")
	require.NoError(t, err)
	assert.Equal(t, byte(ReplyStatsGot), info.Tag)

	_, err = DefaultRegistry.Lookup(KindReply, 77)
	assert.True(t, errors.HasCode(err, ErrUnknownMessage))
}

func TestRegistryListIsOrdered(t *testing.T) {
	infos := DefaultRegistry.List(KindReply)
	for i, info := range infos {
		assert.Equal(t, byte(i+1), info.Tag)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(&MessageInfo{Kind: KindRequest, Tag: 1, Name: "Count"}))
	assert.True(t, registry.IsRegistered(KindRequest, 1))
	assert.False(t, registry.IsRegistered(KindReply, 1))

	err := registry.Register(&MessageInfo{Kind: KindRequest, Tag: 1, Name: "Other"})
	assert.True(t, errors.HasCode(err, ErrDuplicateTag))

	err = registry.Register(&MessageInfo{Kind: KindRequest, Tag: 2, Name: "COUNT"})
	assert.True(t, errors.HasCode(err, ErrDuplicateTag))

	// The same tag in another set is fine.
	require.NoError(t, registry.Register(&MessageInfo{Kind: KindReply, Tag: 1, Name: "Counted"}))

	err = registry.Register(&MessageInfo{Kind: Kind(7), Tag: 1, Name: "X"})
	assert.True(t, errors.HasCode(err, ErrUnknownKind))

	registry.Clear()
	assert.False(t, registry.IsRegistered(KindRequest, 1))
}

func TestMessageName(t *testing.T) {
	assert.Equal(t, "Heartbeat", MessageName(HeartbeatRequest{}))
	assert.Equal(t, "Heartbeaten", MessageName(HeartbeatenReply{}))
	assert.Equal(t, "InvalidGlobalRepTag", MessageName(NewInvalidTag(InvalidGlobalRepTag, 0)))
	assert.Equal(t, "error(200)", MessageName(&ProtoError{Code: 200}))
}
