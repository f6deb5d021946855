package dispatch

import (
	"sync/atomic"

	"github.com/gear6io/lendq/server/protocol"
)

// counters tracks decoded requests per operation. Flush and Terminate have
// no counter in StatsGot and are not tracked.
type counters struct {
	ping      atomic.Uint64
	count     atomic.Uint64
	add       atomic.Uint64
	update    atomic.Uint64
	lookup    atomic.Uint64
	remove    atomic.Uint64
	lend      atomic.Uint64
	repay     atomic.Uint64
	heartbeat atomic.Uint64
	stats     atomic.Uint64
}

func (c *counters) record(req protocol.Request) {
	switch req.(type) {
	case protocol.PingRequest:
		c.ping.Add(1)
	case protocol.CountRequest:
		c.count.Add(1)
	case protocol.AddRequest:
		c.add.Add(1)
	case protocol.UpdateRequest:
		c.update.Add(1)
	case protocol.LookupRequest:
		c.lookup.Add(1)
	case protocol.RemoveRequest:
		c.remove.Add(1)
	case protocol.LendRequest:
		c.lend.Add(1)
	case protocol.RepayRequest:
		c.repay.Add(1)
	case protocol.HeartbeatRequest:
		c.heartbeat.Add(1)
	case protocol.StatsRequest:
		c.stats.Add(1)
	}
}

func (c *counters) snapshot() protocol.StatsGotReply {
	return protocol.StatsGotReply{
		Ping:      c.ping.Load(),
		Count:     c.count.Load(),
		Add:       c.add.Load(),
		Update:    c.update.Load(),
		Lookup:    c.lookup.Load(),
		Remove:    c.remove.Load(),
		Lend:      c.lend.Load(),
		Repay:     c.repay.Load(),
		Heartbeat: c.heartbeat.Load(),
		Stats:     c.stats.Load(),
	}
}
