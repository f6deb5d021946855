package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeTable(t *testing.T) {
	codes := ErrorCodes()
	assert.Len(t, codes, 58)

	seen := make(map[string]bool)
	for i, code := range codes {
		assert.Equal(t, ErrorCode(i+1), code)
		assert.True(t, code.Valid())
		assert.NotEqual(t, ShapeUnknown, code.Shape(), code.String())
		assert.False(t, seen[code.String()], "duplicate name %s", code)
		seen[code.String()] = true
	}

	assert.False(t, ErrorCode(0).Valid())
	assert.False(t, ErrorCode(59).Valid())
	assert.Equal(t, ShapeUnknown, ErrorCode(59).Shape())
	assert.Equal(t, "Unknown", ErrorCode(0).String())
}

func TestErrorCodeWireNumbers(t *testing.T) {
	// Spot checks against the published numbering.
	assert.Equal(t, ErrorCode(14), InvalidGlobalReqRepayRepayStatusTag)
	assert.Equal(t, ErrorCode(31), NotEnoughDataForProtoErrorTag)
	assert.Equal(t, ErrorCode(36), DbQueueOutOfSync)
	assert.Equal(t, ErrorCode(46), NotEnoughDataForGlobalReqHeartbeatTimeout)
	assert.Equal(t, ErrorCode(54), InvalidGlobalReqAddModeTag)
	assert.Equal(t, ErrorCode(55), NotEnoughDataForGlobalRepStatsPing)
	assert.Equal(t, ErrorCode(58), NotEnoughDataForGlobalReqRemoveKey)
}

func TestErrorCodeShapes(t *testing.T) {
	invalid := []ErrorCode{
		InvalidGlobalReqTag,
		InvalidGlobalReqRepayRepayStatusTag,
		InvalidGlobalRepTag,
		InvalidProtoErrorTag,
		InvalidGlobalReqLendModeTag,
		InvalidGlobalReqAddModeTag,
	}
	count := 0
	for _, code := range ErrorCodes() {
		switch code.Shape() {
		case ShapeInvalidTag:
			assert.Contains(t, invalid, code)
			count++
		case ShapeKey:
			assert.Equal(t, DbQueueOutOfSync, code)
		}
	}
	assert.Equal(t, len(invalid), count)
}

func TestErrorCodeLocation(t *testing.T) {
	assert.Equal(t, "GlobalReqAddKey", NotEnoughDataForGlobalReqAddKey.Location())
	assert.Equal(t, "GlobalReqAddMode", InvalidGlobalReqAddModeTag.Location())
	assert.Equal(t, "GlobalRep", InvalidGlobalRepTag.Location())
	assert.Equal(t, "ProtoErrorDbQueueOutOfSyncKey", NotEnoughDataForProtoErrorDbQueueOutOfSyncKey.Location())
	assert.Equal(t, "DbQueueOutOfSync", DbQueueOutOfSync.Location())
}
