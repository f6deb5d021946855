package protocol

// Reply is an engine to client message. The set is closed: only the types in
// this file implement it.
type Reply interface {
	Message
	isReply()
}

type (
	PongReply struct{}

	// CountedReply answers Count.
	CountedReply struct {
		Count uint32
	}

	AddedReply    struct{}
	KeptReply     struct{}
	UpdatedReply  struct{}
	NotFoundReply struct{}

	// ValueFoundReply answers Lookup for a present key.
	ValueFoundReply struct {
		Value Value
	}

	ValueNotFoundReply struct{}
	RemovedReply       struct{}
	NotRemovedReply    struct{}

	// LentReply carries the entry handed out by Lend and the lease key that
	// Repay and Heartbeat must quote.
	LentReply struct {
		LendKey uint64
		Key     Key
		Value   Value
	}

	QueueEmptyReply  struct{}
	RepaidReply      struct{}
	HeartbeatenReply struct{}
	SkippedReply     struct{}

	// StatsGotReply holds per-operation counters. Field order is the wire
	// order.
	StatsGotReply struct {
		Ping      uint64
		Count     uint64
		Add       uint64
		Update    uint64
		Lookup    uint64
		Remove    uint64
		Lend      uint64
		Repay     uint64
		Heartbeat uint64
		Stats     uint64
	}

	FlushedReply    struct{}
	TerminatedReply struct{}

	// ErrorReply transports a ProtoError back to the client. Err must not be
	// nil.
	ErrorReply struct {
		Err *ProtoError
	}
)

func (PongReply) isReply()          {}
func (CountedReply) isReply()       {}
func (AddedReply) isReply()         {}
func (KeptReply) isReply()          {}
func (UpdatedReply) isReply()       {}
func (NotFoundReply) isReply()      {}
func (ValueFoundReply) isReply()    {}
func (ValueNotFoundReply) isReply() {}
func (RemovedReply) isReply()       {}
func (NotRemovedReply) isReply()    {}
func (LentReply) isReply()          {}
func (QueueEmptyReply) isReply()    {}
func (RepaidReply) isReply()        {}
func (HeartbeatenReply) isReply()   {}
func (SkippedReply) isReply()       {}
func (StatsGotReply) isReply()      {}
func (FlushedReply) isReply()       {}
func (TerminatedReply) isReply()    {}
func (ErrorReply) isReply()         {}

func (PongReply) Kind() Kind          { return KindReply }
func (CountedReply) Kind() Kind       { return KindReply }
func (AddedReply) Kind() Kind         { return KindReply }
func (KeptReply) Kind() Kind          { return KindReply }
func (UpdatedReply) Kind() Kind       { return KindReply }
func (NotFoundReply) Kind() Kind      { return KindReply }
func (ValueFoundReply) Kind() Kind    { return KindReply }
func (ValueNotFoundReply) Kind() Kind { return KindReply }
func (RemovedReply) Kind() Kind       { return KindReply }
func (NotRemovedReply) Kind() Kind    { return KindReply }
func (LentReply) Kind() Kind          { return KindReply }
func (QueueEmptyReply) Kind() Kind    { return KindReply }
func (RepaidReply) Kind() Kind        { return KindReply }
func (HeartbeatenReply) Kind() Kind   { return KindReply }
func (SkippedReply) Kind() Kind       { return KindReply }
func (StatsGotReply) Kind() Kind      { return KindReply }
func (FlushedReply) Kind() Kind       { return KindReply }
func (TerminatedReply) Kind() Kind    { return KindReply }
func (ErrorReply) Kind() Kind         { return KindReply }

func (PongReply) Tag() byte          { return byte(ReplyPong) }
func (CountedReply) Tag() byte       { return byte(ReplyCounted) }
func (AddedReply) Tag() byte         { return byte(ReplyAdded) }
func (KeptReply) Tag() byte          { return byte(ReplyKept) }
func (UpdatedReply) Tag() byte       { return byte(ReplyUpdated) }
func (NotFoundReply) Tag() byte      { return byte(ReplyNotFound) }
func (ValueFoundReply) Tag() byte    { return byte(ReplyValueFound) }
func (ValueNotFoundReply) Tag() byte { return byte(ReplyValueNotFound) }
func (RemovedReply) Tag() byte       { return byte(ReplyRemoved) }
func (NotRemovedReply) Tag() byte    { return byte(ReplyNotRemoved) }
func (LentReply) Tag() byte          { return byte(ReplyLent) }
func (QueueEmptyReply) Tag() byte    { return byte(ReplyQueueEmpty) }
func (RepaidReply) Tag() byte        { return byte(ReplyRepaid) }
func (HeartbeatenReply) Tag() byte   { return byte(ReplyHeartbeaten) }
func (SkippedReply) Tag() byte       { return byte(ReplySkipped) }
func (StatsGotReply) Tag() byte      { return byte(ReplyStatsGot) }
func (FlushedReply) Tag() byte       { return byte(ReplyFlushed) }
func (TerminatedReply) Tag() byte    { return byte(ReplyTerminated) }
func (ErrorReply) Tag() byte         { return byte(ReplyError) }

func (PongReply) Size() int          { return sizeU8 }
func (AddedReply) Size() int         { return sizeU8 }
func (KeptReply) Size() int          { return sizeU8 }
func (UpdatedReply) Size() int       { return sizeU8 }
func (NotFoundReply) Size() int      { return sizeU8 }
func (ValueNotFoundReply) Size() int { return sizeU8 }
func (RemovedReply) Size() int       { return sizeU8 }
func (NotRemovedReply) Size() int    { return sizeU8 }
func (QueueEmptyReply) Size() int    { return sizeU8 }
func (RepaidReply) Size() int        { return sizeU8 }
func (HeartbeatenReply) Size() int   { return sizeU8 }
func (SkippedReply) Size() int       { return sizeU8 }
func (FlushedReply) Size() int       { return sizeU8 }
func (TerminatedReply) Size() int    { return sizeU8 }

func (CountedReply) Size() int { return sizeU8 + sizeU32 }

func (r ValueFoundReply) Size() int { return sizeU8 + vectorSize(r.Value) }

func (r LentReply) Size() int {
	return sizeU8 + sizeU64 + vectorSize(r.Key) + vectorSize(r.Value)
}

func (StatsGotReply) Size() int { return sizeU8 + 10*sizeU64 }

func (r ErrorReply) Size() int { return sizeU8 + r.protoError().Size() }

func (r PongReply) Put(area []byte) []byte          { return putUint8(area, r.Tag()) }
func (r AddedReply) Put(area []byte) []byte         { return putUint8(area, r.Tag()) }
func (r KeptReply) Put(area []byte) []byte          { return putUint8(area, r.Tag()) }
func (r UpdatedReply) Put(area []byte) []byte       { return putUint8(area, r.Tag()) }
func (r NotFoundReply) Put(area []byte) []byte      { return putUint8(area, r.Tag()) }
func (r ValueNotFoundReply) Put(area []byte) []byte { return putUint8(area, r.Tag()) }
func (r RemovedReply) Put(area []byte) []byte       { return putUint8(area, r.Tag()) }
func (r NotRemovedReply) Put(area []byte) []byte    { return putUint8(area, r.Tag()) }
func (r QueueEmptyReply) Put(area []byte) []byte    { return putUint8(area, r.Tag()) }
func (r RepaidReply) Put(area []byte) []byte        { return putUint8(area, r.Tag()) }
func (r HeartbeatenReply) Put(area []byte) []byte   { return putUint8(area, r.Tag()) }
func (r SkippedReply) Put(area []byte) []byte       { return putUint8(area, r.Tag()) }
func (r FlushedReply) Put(area []byte) []byte       { return putUint8(area, r.Tag()) }
func (r TerminatedReply) Put(area []byte) []byte    { return putUint8(area, r.Tag()) }

func (r CountedReply) Put(area []byte) []byte {
	return putUint32(putUint8(area, r.Tag()), r.Count)
}

func (r ValueFoundReply) Put(area []byte) []byte {
	return putVector(putUint8(area, r.Tag()), r.Value)
}

func (r LentReply) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	area = putUint64(area, r.LendKey)
	area = putVector(area, r.Key)
	return putVector(area, r.Value)
}

func (r StatsGotReply) Put(area []byte) []byte {
	area = putUint8(area, r.Tag())
	for _, v := range r.counters() {
		area = putUint64(area, v)
	}
	return area
}

func (r ErrorReply) Put(area []byte) []byte {
	return r.protoError().Put(putUint8(area, r.Tag()))
}

const errNilErrorReply = "protocol: ErrorReply has a nil Err"

func (r ErrorReply) protoError() *ProtoError {
	if r.Err == nil {
		panic(errNilErrorReply)
	}
	return r.Err
}

// counters returns the values in wire order.
func (r StatsGotReply) counters() [10]uint64 {
	return [10]uint64{
		r.Ping, r.Count, r.Add, r.Update, r.Lookup,
		r.Remove, r.Lend, r.Repay, r.Heartbeat, r.Stats,
	}
}

// statsFields pairs each counter with its truncation code, in wire order.
var statsFields = [10]struct {
	code ErrorCode
	set  func(*StatsGotReply, uint64)
}{
	{NotEnoughDataForGlobalRepStatsPing, func(r *StatsGotReply, v uint64) { r.Ping = v }},
	{NotEnoughDataForGlobalRepStatsCount, func(r *StatsGotReply, v uint64) { r.Count = v }},
	{NotEnoughDataForGlobalRepStatsAdd, func(r *StatsGotReply, v uint64) { r.Add = v }},
	{NotEnoughDataForGlobalRepStatsUpdate, func(r *StatsGotReply, v uint64) { r.Update = v }},
	{NotEnoughDataForGlobalRepStatsLookup, func(r *StatsGotReply, v uint64) { r.Lookup = v }},
	{NotEnoughDataForGlobalRepStatsRemove, func(r *StatsGotReply, v uint64) { r.Remove = v }},
	{NotEnoughDataForGlobalRepStatsLend, func(r *StatsGotReply, v uint64) { r.Lend = v }},
	{NotEnoughDataForGlobalRepStatsRepay, func(r *StatsGotReply, v uint64) { r.Repay = v }},
	{NotEnoughDataForGlobalRepStatsHeartbeat, func(r *StatsGotReply, v uint64) { r.Heartbeat = v }},
	{NotEnoughDataForGlobalRepStatsStats, func(r *StatsGotReply, v uint64) { r.Stats = v }},
}

// DecodeReply decodes one reply from the front of data and returns it with
// the bytes that follow. A malformed embedded error is reported directly,
// not wrapped in an ErrorReply.
func DecodeReply(data []byte) (Reply, []byte, error) {
	rep, rest, perr := decodeReply(data)
	if perr != nil {
		return nil, nil, perr
	}
	return rep, rest, nil
}

func decodeReply(data []byte) (Reply, []byte, *ProtoError) {
	tag, rest, perr := readUint8(data, NotEnoughDataForGlobalRepTag)
	if perr != nil {
		return nil, nil, perr
	}

	switch ReplyTag(tag) {
	case ReplyPong:
		return PongReply{}, rest, nil
	case ReplyAdded:
		return AddedReply{}, rest, nil
	case ReplyKept:
		return KeptReply{}, rest, nil
	case ReplyUpdated:
		return UpdatedReply{}, rest, nil
	case ReplyNotFound:
		return NotFoundReply{}, rest, nil
	case ReplyValueNotFound:
		return ValueNotFoundReply{}, rest, nil
	case ReplyRemoved:
		return RemovedReply{}, rest, nil
	case ReplyNotRemoved:
		return NotRemovedReply{}, rest, nil
	case ReplyQueueEmpty:
		return QueueEmptyReply{}, rest, nil
	case ReplyRepaid:
		return RepaidReply{}, rest, nil
	case ReplyHeartbeaten:
		return HeartbeatenReply{}, rest, nil
	case ReplySkipped:
		return SkippedReply{}, rest, nil
	case ReplyFlushed:
		return FlushedReply{}, rest, nil
	case ReplyTerminated:
		return TerminatedReply{}, rest, nil
	case ReplyCounted:
		count, rest, perr := readUint32(rest, NotEnoughDataForGlobalRepCountCount)
		if perr != nil {
			return nil, nil, perr
		}
		return CountedReply{Count: count}, rest, nil
	case ReplyValueFound:
		value, rest, perr := readVector(rest, NotEnoughDataForGlobalRepValueFoundValueLen, NotEnoughDataForGlobalRepValueFoundValue)
		if perr != nil {
			return nil, nil, perr
		}
		return ValueFoundReply{Value: value}, rest, nil
	case ReplyLent:
		return decodeLent(rest)
	case ReplyStatsGot:
		return decodeStatsGot(rest)
	case ReplyError:
		pe, rest, perr := decodeProtoError(rest)
		if perr != nil {
			return nil, nil, perr
		}
		return ErrorReply{Err: pe}, rest, nil
	default:
		return nil, nil, NewInvalidTag(InvalidGlobalRepTag, tag)
	}
}

func decodeLent(buf []byte) (Reply, []byte, *ProtoError) {
	lendKey, buf, perr := readUint64(buf, NotEnoughDataForGlobalRepLentLendKey)
	if perr != nil {
		return nil, nil, perr
	}
	key, buf, perr := readVector(buf, NotEnoughDataForGlobalRepLentKeyLen, NotEnoughDataForGlobalRepLentKey)
	if perr != nil {
		return nil, nil, perr
	}
	value, buf, perr := readVector(buf, NotEnoughDataForGlobalRepLentValueLen, NotEnoughDataForGlobalRepLentValue)
	if perr != nil {
		return nil, nil, perr
	}
	return LentReply{LendKey: lendKey, Key: key, Value: value}, buf, nil
}

func decodeStatsGot(buf []byte) (Reply, []byte, *ProtoError) {
	var r StatsGotReply
	for _, f := range statsFields {
		var (
			v    uint64
			perr *ProtoError
		)
		v, buf, perr = readUint64(buf, f.code)
		if perr != nil {
			return nil, nil, perr
		}
		f.set(&r, v)
	}
	return r, buf, nil
}
