package protocol

// Request is a client to engine message. The set is closed: only the types
// in this file implement it.
type Request interface {
	Message
	isRequest()
}

type (
	// PingRequest checks liveness.
	PingRequest struct{}

	// CountRequest asks for the number of queued entries.
	CountRequest struct{}

	// AddRequest enqueues Value under Key at the end of the queue given by
	// Mode. An existing key is kept.
	AddRequest struct {
		Key   Key
		Value Value
		Mode  AddMode
	}

	// UpdateRequest replaces the value stored under Key.
	UpdateRequest struct {
		Key   Key
		Value Value
	}

	// LookupRequest reads the value stored under Key.
	LookupRequest struct {
		Key Key
	}

	// RemoveRequest deletes Key.
	RemoveRequest struct {
		Key Key
	}

	// LendRequest takes the head entry under a lease that expires after
	// Timeout. Mode decides what happens when the queue is empty.
	LendRequest struct {
		Timeout uint64
		Mode    LendMode
	}

	// RepayRequest hands a lent entry back with an updated value.
	RepayRequest struct {
		LendKey uint64
		Key     Key
		Value   Value
		Status  RepayStatus
	}

	// HeartbeatRequest extends the lease identified by LendKey and Key.
	HeartbeatRequest struct {
		LendKey uint64
		Key     Key
		Timeout uint64
	}

	StatsRequest     struct{}
	FlushRequest     struct{}
	TerminateRequest struct{}
)

func (PingRequest) isRequest()      {}
func (CountRequest) isRequest()     {}
func (AddRequest) isRequest()       {}
func (UpdateRequest) isRequest()    {}
func (LookupRequest) isRequest()    {}
func (RemoveRequest) isRequest()    {}
func (LendRequest) isRequest()      {}
func (RepayRequest) isRequest()     {}
func (HeartbeatRequest) isRequest() {}
func (StatsRequest) isRequest()     {}
func (FlushRequest) isRequest()     {}
func (TerminateRequest) isRequest() {}

func (PingRequest) Kind() Kind      { return KindRequest }
func (CountRequest) Kind() Kind     { return KindRequest }
func (AddRequest) Kind() Kind       { return KindRequest }
func (UpdateRequest) Kind() Kind    { return KindRequest }
func (LookupRequest) Kind() Kind    { return KindRequest }
func (RemoveRequest) Kind() Kind    { return KindRequest }
func (LendRequest) Kind() Kind      { return KindRequest }
func (RepayRequest) Kind() Kind     { return KindRequest }
func (HeartbeatRequest) Kind() Kind { return KindRequest }
func (StatsRequest) Kind() Kind     { return KindRequest }
func (FlushRequest) Kind() Kind     { return KindRequest }
func (TerminateRequest) Kind() Kind { return KindRequest }

func (PingRequest) Tag() byte      { return byte(RequestPing) }
func (CountRequest) Tag() byte     { return byte(RequestCount) }
func (AddRequest) Tag() byte       { return byte(RequestAdd) }
func (UpdateRequest) Tag() byte    { return byte(RequestUpdate) }
func (LookupRequest) Tag() byte    { return byte(RequestLookup) }
func (RemoveRequest) Tag() byte    { return byte(RequestRemove) }
func (LendRequest) Tag() byte      { return byte(RequestLend) }
func (RepayRequest) Tag() byte     { return byte(RequestRepay) }
func (HeartbeatRequest) Tag() byte { return byte(RequestHeartbeat) }
func (StatsRequest) Tag() byte     { return byte(RequestStats) }
func (FlushRequest) Tag() byte     { return byte(RequestFlush) }
func (TerminateRequest) Tag() byte { return byte(RequestTerminate) }

func (PingRequest) Size() int      { return sizeU8 }
func (CountRequest) Size() int     { return sizeU8 }
func (StatsRequest) Size() int     { return sizeU8 }
func (FlushRequest) Size() int     { return sizeU8 }
func (TerminateRequest) Size() int { return sizeU8 }

func (r AddRequest) Size() int {
	return sizeU8 + vectorSize(r.Key) + vectorSize(r.Value) + sizeU8
}

func (r UpdateRequest) Size() int {
	return sizeU8 + vectorSize(r.Key) + vectorSize(r.Value)
}

func (r LookupRequest) Size() int { return sizeU8 + vectorSize(r.Key) }

func (r RemoveRequest) Size() int { return sizeU8 + vectorSize(r.Key) }

func (LendRequest) Size() int { return sizeU8 + sizeU64 + sizeU8 }

func (r RepayRequest) Size() int {
	return sizeU8 + sizeU64 + vectorSize(r.Key) + vectorSize(r.Value) + sizeU8
}

func (r HeartbeatRequest) Size() int {
	return sizeU8 + sizeU64 + vectorSize(r.Key) + sizeU64
}

func (r PingRequest) Put(area []byte) []byte      { return putUint8(area, r.Tag()) }
func (r CountRequest) Put(area []byte) []byte     { return putUint8(area, r.Tag()) }
func (r StatsRequest) Put(area []byte) []byte     { return putUint8(area, r.Tag()) }
func (r FlushRequest) Put(area []byte) []byte     { return putUint8(area, r.Tag()) }
func (r TerminateRequest) Put(area []byte) []byte { return putUint8(area, r.Tag()) }

func (r AddRequest) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putVector(area, r.Key)
	area = putVector(area, r.Value)
	return putUint8(area, uint8(r.Mode))
}

func (r UpdateRequest) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putVector(area, r.Key)
	return putVector(area, r.Value)
}

func (r LookupRequest) Put(area []byte) []byte {
	return putVector(putUint8(area, r.Tag()), r.Key)
}

func (r RemoveRequest) Put(area []byte) []byte {
	return putVector(putUint8(area, r.Tag()), r.Key)
}

func (r LendRequest) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putUint64(area, r.Timeout)
	return putUint8(area, uint8(r.Mode))
}

func (r RepayRequest) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putUint64(area, r.LendKey)
	area = putVector(area, r.Key)
	area = putVector(area, r.Value)
	return putUint8(area, uint8(r.Status))
}

func (r HeartbeatRequest) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putUint64(area, r.LendKey)
	area = putVector(area, r.Key)
	return putUint64(area, r.Timeout)
}

// DecodeRequest decodes one request from the front of data and returns it
// with the bytes that follow. On failure the error is a *ProtoError naming
// the exact field that could not be read.
func DecodeRequest(data []byte) (Request, []byte, error) {
	req, rest, perr := decodeRequest(data)
	if perr != nil {
		return nil, nil, perr
	}
	return req, rest, nil
}

func decodeRequest(data []byte) (Request, []byte, *ProtoError) {
	tag, rest, perr := readUint8(data, NotEnoughDataForGlobalReqTag)
	if perr != nil {
		return nil, nil, perr
	}

	switch RequestTag(tag) {
	case RequestPing:
		return PingRequest{}, rest, nil
	case RequestCount:
		return CountRequest{}, rest, nil
	case RequestStats:
		return StatsRequest{}, rest, nil
	case RequestFlush:
		return FlushRequest{}, rest, nil
	case RequestTerminate:
		return TerminateRequest{}, rest, nil
	case RequestAdd:
		return decodeAdd(rest)
	case RequestUpdate:
		return decodeUpdate(rest)
	case RequestLookup:
		key, rest, perr := readVector(rest, NotEnoughDataForGlobalReqLookupKeyLen, NotEnoughDataForGlobalReqLookupKey)
		if perr != nil {
			return nil, nil, perr
		}
		return LookupRequest{Key: key}, rest, nil
	case RequestRemove:
		key, rest, perr := readVector(rest, NotEnoughDataForGlobalReqRemoveKeyLen, NotEnoughDataForGlobalReqRemoveKey)
		if perr != nil {
			return nil, nil, perr
		}
		return RemoveRequest{Key: key}, rest, nil
	case RequestLend:
		return decodeLend(rest)
	case RequestRepay:
		return decodeRepay(rest)
	case RequestHeartbeat:
		return decodeHeartbeat(rest)
	default:
		return nil, nil, NewInvalidTag(InvalidGlobalReqTag, tag)
	}
}

func decodeAdd(buf []byte) (Request, []byte, *ProtoError) {
	key, buf, perr := readVector(buf, NotEnoughDataForGlobalReqAddKeyLen, NotEnoughDataForGlobalReqAddKey)
	if perr != nil {
		return nil, nil, perr
	}
	value, buf, perr := readVector(buf, NotEnoughDataForGlobalReqAddValueLen, NotEnoughDataForGlobalReqAddValue)
	if perr != nil {
		return nil, nil, perr
	}
	mode, buf, perr := readUint8(buf, NotEnoughDataForGlobalReqAddMode)
	if perr != nil {
		return nil, nil, perr
	}
	if !AddMode(mode).Valid() {
		return nil, nil, NewInvalidTag(InvalidGlobalReqAddModeTag, mode)
	}
	return AddRequest{Key: key, Value: value, Mode: AddMode(mode)}, buf, nil
}

func decodeUpdate(buf []byte) (Request, []byte, *ProtoError) {
	key, buf, perr := readVector(buf, NotEnoughDataForGlobalReqUpdateKeyLen, NotEnoughDataForGlobalReqUpdateKey)
	if perr != nil {
		return nil, nil, perr
	}
	value, buf, perr := readVector(buf, NotEnoughDataForGlobalReqUpdateValueLen, NotEnoughDataForGlobalReqUpdateValue)
	if perr != nil {
		return nil, nil, perr
	}
	return UpdateRequest{Key: key, Value: value}, buf, nil
}

func decodeLend(buf []byte) (Request, []byte, *ProtoError) {
	timeout, buf, perr := readUint64(buf, NotEnoughDataForGlobalReqLendTimeout)
	if perr != nil {
		return nil, nil, perr
	}
	mode, buf, perr := readUint8(buf, NotEnoughDataForGlobalReqLendMode)
	if perr != nil {
		return nil, nil, perr
	}
	if !LendMode(mode).Valid() {
		return nil, nil, NewInvalidTag(InvalidGlobalReqLendModeTag, mode)
	}
	return LendRequest{Timeout: timeout, Mode: LendMode(mode)}, buf, nil
}

func decodeRepay(buf []byte) (Request, []byte, *ProtoError) {
	lendKey, buf, perr := readUint64(buf, NotEnoughDataForGlobalReqRepayLendKey)
	if perr != nil {
		return nil, nil, perr
	}
	key, buf, perr := readVector(buf, NotEnoughDataForGlobalReqRepayKeyLen, NotEnoughDataForGlobalReqRepayKey)
	if perr != nil {
		return nil, nil, perr
	}
	value, buf, perr := readVector(buf, NotEnoughDataForGlobalReqRepayValueLen, NotEnoughDataForGlobalReqRepayValue)
	if perr != nil {
		return nil, nil, perr
	}
	status, buf, perr := readUint8(buf, NotEnoughDataForGlobalReqRepayRepayStatus)
	if perr != nil {
		return nil, nil, perr
	}
	if !RepayStatus(status).Valid() {
		return nil, nil, NewInvalidTag(InvalidGlobalReqRepayRepayStatusTag, status)
	}
	return RepayRequest{LendKey: lendKey, Key: key, Value: value, Status: RepayStatus(status)}, buf, nil
}

func decodeHeartbeat(buf []byte) (Request, []byte, *ProtoError) {
	lendKey, buf, perr := readUint64(buf, NotEnoughDataForGlobalReqHeartbeatLendKey)
	if perr != nil {
		return nil, nil, perr
	}
	key, buf, perr := readVector(buf, NotEnoughDataForGlobalReqHeartbeatKeyLen, NotEnoughDataForGlobalReqHeartbeatKey)
	if perr != nil {
		return nil, nil, perr
	}
	timeout, buf, perr := readUint64(buf, NotEnoughDataForGlobalReqHeartbeatTimeout)
	if perr != nil {
		return nil, nil, perr
	}
	return HeartbeatRequest{LendKey: lendKey, Key: key, Timeout: timeout}, buf, nil
}
