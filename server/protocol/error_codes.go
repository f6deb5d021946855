package protocol

import "strings"

// ErrorCode is the wire tag of a ProtoError. Each code names the exact
// decode point that failed, or the one engine-level condition the protocol
// transports.
type ErrorCode byte

// Error codes. The numbering is part of the wire format and must not change.
const (
	NotEnoughDataForGlobalReqTag                     ErrorCode = 1
	InvalidGlobalReqTag                              ErrorCode = 2
	NotEnoughDataForGlobalReqAddKeyLen               ErrorCode = 3
	NotEnoughDataForGlobalReqAddKey                  ErrorCode = 4
	NotEnoughDataForGlobalReqAddValueLen             ErrorCode = 5
	NotEnoughDataForGlobalReqAddValue                ErrorCode = 6
	NotEnoughDataForGlobalReqLendTimeout             ErrorCode = 7
	NotEnoughDataForGlobalReqRepayLendKey            ErrorCode = 8
	NotEnoughDataForGlobalReqRepayKeyLen             ErrorCode = 9
	NotEnoughDataForGlobalReqRepayKey                ErrorCode = 10
	NotEnoughDataForGlobalReqRepayValueLen           ErrorCode = 11
	NotEnoughDataForGlobalReqRepayValue              ErrorCode = 12
	NotEnoughDataForGlobalReqRepayRepayStatus        ErrorCode = 13
	InvalidGlobalReqRepayRepayStatusTag              ErrorCode = 14
	NotEnoughDataForGlobalRepTag                     ErrorCode = 15
	InvalidGlobalRepTag                              ErrorCode = 16
	NotEnoughDataForGlobalRepCountCount              ErrorCode = 17
	NotEnoughDataForGlobalRepLentLendKey             ErrorCode = 18
	NotEnoughDataForGlobalRepLentKeyLen              ErrorCode = 19
	NotEnoughDataForGlobalRepLentKey                 ErrorCode = 20
	NotEnoughDataForGlobalRepLentValueLen            ErrorCode = 21
	NotEnoughDataForGlobalRepLentValue               ErrorCode = 22
	NotEnoughDataForGlobalRepStatsCount              ErrorCode = 23
	NotEnoughDataForGlobalRepStatsAdd                ErrorCode = 24
	NotEnoughDataForGlobalRepStatsUpdate             ErrorCode = 25
	NotEnoughDataForGlobalRepStatsLookup             ErrorCode = 26
	NotEnoughDataForGlobalRepStatsLend               ErrorCode = 27
	NotEnoughDataForGlobalRepStatsRepay              ErrorCode = 28
	NotEnoughDataForGlobalRepStatsHeartbeat          ErrorCode = 29
	NotEnoughDataForGlobalRepStatsStats              ErrorCode = 30
	NotEnoughDataForProtoErrorTag                    ErrorCode = 31
	InvalidProtoErrorTag                             ErrorCode = 32
	NotEnoughDataForProtoErrorRequired               ErrorCode = 33
	NotEnoughDataForProtoErrorGiven                  ErrorCode = 34
	NotEnoughDataForProtoErrorInvalidTag             ErrorCode = 35
	DbQueueOutOfSync                                 ErrorCode = 36
	NotEnoughDataForProtoErrorDbQueueOutOfSyncKeyLen ErrorCode = 37
	NotEnoughDataForProtoErrorDbQueueOutOfSyncKey    ErrorCode = 38
	NotEnoughDataForGlobalReqUpdateKeyLen            ErrorCode = 39
	NotEnoughDataForGlobalReqUpdateKey               ErrorCode = 40
	NotEnoughDataForGlobalReqUpdateValueLen          ErrorCode = 41
	NotEnoughDataForGlobalReqUpdateValue             ErrorCode = 42
	NotEnoughDataForGlobalReqHeartbeatLendKey        ErrorCode = 43
	NotEnoughDataForGlobalReqHeartbeatKeyLen         ErrorCode = 44
	NotEnoughDataForGlobalReqHeartbeatKey            ErrorCode = 45
	NotEnoughDataForGlobalReqHeartbeatTimeout        ErrorCode = 46
	NotEnoughDataForGlobalReqLookupKeyLen            ErrorCode = 47
	NotEnoughDataForGlobalReqLookupKey               ErrorCode = 48
	NotEnoughDataForGlobalRepValueFoundValueLen      ErrorCode = 49
	NotEnoughDataForGlobalRepValueFoundValue         ErrorCode = 50
	NotEnoughDataForGlobalReqLendMode                ErrorCode = 51
	InvalidGlobalReqLendModeTag                      ErrorCode = 52
	NotEnoughDataForGlobalReqAddMode                 ErrorCode = 53
	InvalidGlobalReqAddModeTag                       ErrorCode = 54
	NotEnoughDataForGlobalRepStatsPing               ErrorCode = 55
	NotEnoughDataForGlobalRepStatsRemove             ErrorCode = 56
	NotEnoughDataForGlobalReqRemoveKeyLen            ErrorCode = 57
	NotEnoughDataForGlobalReqRemoveKey               ErrorCode = 58

	maxErrorCode = NotEnoughDataForGlobalReqRemoveKey
)

// ErrorShape is the payload layout that follows an error code on the wire.
type ErrorShape int

const (
	ShapeUnknown ErrorShape = iota
	// ShapeNotEnoughData is u32 required, u32 given.
	ShapeNotEnoughData
	// ShapeInvalidTag is the offending tag byte.
	ShapeInvalidTag
	// ShapeKey is a length-prefixed key.
	ShapeKey
)

func (s ErrorShape) String() string {
	switch s {
	case ShapeNotEnoughData:
		return "not_enough_data"
	case ShapeInvalidTag:
		return "invalid_tag"
	case ShapeKey:
		return "key"
	default:
		return "unknown"
	}
}

type errorCodeInfo struct {
	name  string
	shape ErrorShape
}

var errorCodes = [maxErrorCode + 1]errorCodeInfo{
	NotEnoughDataForGlobalReqTag:                     {"NotEnoughDataForGlobalReqTag", ShapeNotEnoughData},
	InvalidGlobalReqTag:                              {"InvalidGlobalReqTag", ShapeInvalidTag},
	NotEnoughDataForGlobalReqAddKeyLen:               {"NotEnoughDataForGlobalReqAddKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqAddKey:                  {"NotEnoughDataForGlobalReqAddKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqAddValueLen:             {"NotEnoughDataForGlobalReqAddValueLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqAddValue:                {"NotEnoughDataForGlobalReqAddValue", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqLendTimeout:             {"NotEnoughDataForGlobalReqLendTimeout", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayLendKey:            {"NotEnoughDataForGlobalReqRepayLendKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayKeyLen:             {"NotEnoughDataForGlobalReqRepayKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayKey:                {"NotEnoughDataForGlobalReqRepayKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayValueLen:           {"NotEnoughDataForGlobalReqRepayValueLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayValue:              {"NotEnoughDataForGlobalReqRepayValue", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRepayRepayStatus:        {"NotEnoughDataForGlobalReqRepayRepayStatus", ShapeNotEnoughData},
	InvalidGlobalReqRepayRepayStatusTag:              {"InvalidGlobalReqRepayRepayStatusTag", ShapeInvalidTag},
	NotEnoughDataForGlobalRepTag:                     {"NotEnoughDataForGlobalRepTag", ShapeNotEnoughData},
	InvalidGlobalRepTag:                              {"InvalidGlobalRepTag", ShapeInvalidTag},
	NotEnoughDataForGlobalRepCountCount:              {"NotEnoughDataForGlobalRepCountCount", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepLentLendKey:             {"NotEnoughDataForGlobalRepLentLendKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepLentKeyLen:              {"NotEnoughDataForGlobalRepLentKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepLentKey:                 {"NotEnoughDataForGlobalRepLentKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepLentValueLen:            {"NotEnoughDataForGlobalRepLentValueLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepLentValue:               {"NotEnoughDataForGlobalRepLentValue", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsCount:              {"NotEnoughDataForGlobalRepStatsCount", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsAdd:                {"NotEnoughDataForGlobalRepStatsAdd", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsUpdate:             {"NotEnoughDataForGlobalRepStatsUpdate", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsLookup:             {"NotEnoughDataForGlobalRepStatsLookup", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsLend:               {"NotEnoughDataForGlobalRepStatsLend", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsRepay:              {"NotEnoughDataForGlobalRepStatsRepay", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsHeartbeat:          {"NotEnoughDataForGlobalRepStatsHeartbeat", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsStats:              {"NotEnoughDataForGlobalRepStatsStats", ShapeNotEnoughData},
	NotEnoughDataForProtoErrorTag:                    {"NotEnoughDataForProtoErrorTag", ShapeNotEnoughData},
	InvalidProtoErrorTag:                             {"InvalidProtoErrorTag", ShapeInvalidTag},
	NotEnoughDataForProtoErrorRequired:               {"NotEnoughDataForProtoErrorRequired", ShapeNotEnoughData},
	NotEnoughDataForProtoErrorGiven:                  {"NotEnoughDataForProtoErrorGiven", ShapeNotEnoughData},
	NotEnoughDataForProtoErrorInvalidTag:             {"NotEnoughDataForProtoErrorInvalidTag", ShapeNotEnoughData},
	DbQueueOutOfSync:                                 {"DbQueueOutOfSync", ShapeKey},
	NotEnoughDataForProtoErrorDbQueueOutOfSyncKeyLen: {"NotEnoughDataForProtoErrorDbQueueOutOfSyncKeyLen", ShapeNotEnoughData},
	NotEnoughDataForProtoErrorDbQueueOutOfSyncKey:    {"NotEnoughDataForProtoErrorDbQueueOutOfSyncKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqUpdateKeyLen:            {"NotEnoughDataForGlobalReqUpdateKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqUpdateKey:               {"NotEnoughDataForGlobalReqUpdateKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqUpdateValueLen:          {"NotEnoughDataForGlobalReqUpdateValueLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqUpdateValue:             {"NotEnoughDataForGlobalReqUpdateValue", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqHeartbeatLendKey:        {"NotEnoughDataForGlobalReqHeartbeatLendKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqHeartbeatKeyLen:         {"NotEnoughDataForGlobalReqHeartbeatKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqHeartbeatKey:            {"NotEnoughDataForGlobalReqHeartbeatKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqHeartbeatTimeout:        {"NotEnoughDataForGlobalReqHeartbeatTimeout", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqLookupKeyLen:            {"NotEnoughDataForGlobalReqLookupKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqLookupKey:               {"NotEnoughDataForGlobalReqLookupKey", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepValueFoundValueLen:      {"NotEnoughDataForGlobalRepValueFoundValueLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepValueFoundValue:         {"NotEnoughDataForGlobalRepValueFoundValue", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqLendMode:                {"NotEnoughDataForGlobalReqLendMode", ShapeNotEnoughData},
	InvalidGlobalReqLendModeTag:                      {"InvalidGlobalReqLendModeTag", ShapeInvalidTag},
	NotEnoughDataForGlobalReqAddMode:                 {"NotEnoughDataForGlobalReqAddMode", ShapeNotEnoughData},
	InvalidGlobalReqAddModeTag:                       {"InvalidGlobalReqAddModeTag", ShapeInvalidTag},
	NotEnoughDataForGlobalRepStatsPing:               {"NotEnoughDataForGlobalRepStatsPing", ShapeNotEnoughData},
	NotEnoughDataForGlobalRepStatsRemove:             {"NotEnoughDataForGlobalRepStatsRemove", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRemoveKeyLen:            {"NotEnoughDataForGlobalReqRemoveKeyLen", ShapeNotEnoughData},
	NotEnoughDataForGlobalReqRemoveKey:               {"NotEnoughDataForGlobalReqRemoveKey", ShapeNotEnoughData},
}

// Valid reports whether c is one of the 58 assigned codes.
func (c ErrorCode) Valid() bool {
	return c >= 1 && c <= maxErrorCode
}

// Shape returns the payload layout of c, ShapeUnknown for unassigned codes.
func (c ErrorCode) Shape() ErrorShape {
	if !c.Valid() {
		return ShapeUnknown
	}
	return errorCodes[c].shape
}

func (c ErrorCode) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return errorCodes[c].name
}

// Location is the decode point a code refers to, e.g. "GlobalReqAddKey" for
// NotEnoughDataForGlobalReqAddKey and "GlobalReqAddMode" for
// InvalidGlobalReqAddModeTag.
func (c ErrorCode) Location() string {
	name := c.String()
	switch c.Shape() {
	case ShapeNotEnoughData:
		return strings.TrimPrefix(name, "NotEnoughDataFor")
	case ShapeInvalidTag:
		return strings.TrimSuffix(strings.TrimPrefix(name, "Invalid"), "Tag")
	default:
		return name
	}
}

// ErrorCodes lists every assigned code in wire order.
func ErrorCodes() []ErrorCode {
	codes := make([]ErrorCode, 0, maxErrorCode)
	for c := ErrorCode(1); c <= maxErrorCode; c++ {
		codes = append(codes, c)
	}
	return codes
}
