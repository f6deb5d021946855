package protocol

// RequestTag is the leading byte of a request.
type RequestTag byte

// Request tags. The numbering is part of the wire format.
const (
	RequestCount     RequestTag = 1
	RequestAdd       RequestTag = 2
	RequestUpdate    RequestTag = 3
	RequestLend      RequestTag = 4
	RequestRepay     RequestTag = 5
	RequestHeartbeat RequestTag = 6
	RequestStats     RequestTag = 7
	RequestTerminate RequestTag = 8
	RequestLookup    RequestTag = 9
	RequestFlush     RequestTag = 10
	RequestPing      RequestTag = 11
	RequestRemove    RequestTag = 12
)

// ReplyTag is the leading byte of a reply.
type ReplyTag byte

// Reply tags. The numbering is part of the wire format.
const (
	ReplyCounted       ReplyTag = 1
	ReplyAdded         ReplyTag = 2
	ReplyKept          ReplyTag = 3
	ReplyUpdated       ReplyTag = 4
	ReplyNotFound      ReplyTag = 5
	ReplyLent          ReplyTag = 6
	ReplyRepaid        ReplyTag = 7
	ReplyHeartbeaten   ReplyTag = 8
	ReplySkipped       ReplyTag = 9
	ReplyStatsGot      ReplyTag = 10
	ReplyError         ReplyTag = 11
	ReplyTerminated    ReplyTag = 12
	ReplyValueFound    ReplyTag = 13
	ReplyValueNotFound ReplyTag = 14
	ReplyFlushed       ReplyTag = 15
	ReplyQueueEmpty    ReplyTag = 16
	ReplyPong          ReplyTag = 17
	ReplyRemoved       ReplyTag = 18
	ReplyNotRemoved    ReplyTag = 19
)

// Names used in logs and by the CLI.
var RequestTagNames = map[RequestTag]string{
	RequestCount:     "Count",
	RequestAdd:       "Add",
	RequestUpdate:    "Update",
	RequestLend:      "Lend",
	RequestRepay:     "Repay",
	RequestHeartbeat: "Heartbeat",
	RequestStats:     "Stats",
	RequestTerminate: "Terminate",
	RequestLookup:    "Lookup",
	RequestFlush:     "Flush",
	RequestPing:      "Ping",
	RequestRemove:    "Remove",
}

var ReplyTagNames = map[ReplyTag]string{
	ReplyCounted:       "Counted",
	ReplyAdded:         "Added",
	ReplyKept:          "Kept",
	ReplyUpdated:       "Updated",
	ReplyNotFound:      "NotFound",
	ReplyLent:          "Lent",
	ReplyRepaid:        "Repaid",
	ReplyHeartbeaten:   "Heartbeaten",
	ReplySkipped:       "Skipped",
	ReplyStatsGot:      "StatsGot",
	ReplyError:         "Error",
	ReplyTerminated:    "Terminated",
	ReplyValueFound:    "ValueFound",
	ReplyValueNotFound: "ValueNotFound",
	ReplyFlushed:       "Flushed",
	ReplyQueueEmpty:    "QueueEmpty",
	ReplyPong:          "Pong",
	ReplyRemoved:       "Removed",
	ReplyNotRemoved:    "NotRemoved",
}

func (t RequestTag) String() string {
	if name, ok := RequestTagNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t ReplyTag) String() string {
	if name, ok := ReplyTagNames[t]; ok {
		return name
	}
	return "Unknown"
}
