package protocol

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gear6io/lendq/pkg/errors"
)

// MessageInfo describes one tag of one message set.
type MessageInfo struct {
	Kind   Kind
	Tag    byte
	Name   string
	Layout string // fields after the tag, in wire order
}

// Registry maps tags to message metadata
type Registry struct {
	mu sync.RWMutex

	byTag  map[Kind]map[byte]*MessageInfo
	byName map[Kind]map[string]*MessageInfo
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.Clear()
	return r
}

// DefaultRegistry holds every request, reply and error tag.
var DefaultRegistry = newDefaultRegistry()

// Register adds info. A tag or name already present for the same kind is
// rejected.
func (r *Registry) Register(info *MessageInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags, ok := r.byTag[info.Kind]
	if !ok {
		return errors.Newf(ErrUnknownKind, "cannot register %q: unknown kind %d", info.Name, int(info.Kind))
	}
	if existing, exists := tags[info.Tag]; exists {
		return errors.Newf(ErrDuplicateTag, "%s tag %d already registered as %s", info.Kind, info.Tag, existing.Name)
	}
	name := strings.ToLower(info.Name)
	if _, exists := r.byName[info.Kind][name]; exists {
		return errors.Newf(ErrDuplicateTag, "%s name %q already registered", info.Kind, info.Name)
	}

	tags[info.Tag] = info
	r.byName[info.Kind][name] = info
	return nil
}

// Lookup returns the metadata for tag in kind's set.
func (r *Registry) Lookup(kind Kind, tag byte) (*MessageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.byTag[kind][tag]
	if !exists {
		return nil, errors.Newf(ErrUnknownMessage, "%s tag %d not registered", kind, tag)
	}
	return info, nil
}

// ByName finds a message by name, ignoring case.
func (r *Registry) ByName(kind Kind, name string) (*MessageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.byName[kind][strings.ToLower(strings.TrimSpace(name))]
	if !exists {
		return nil, errors.Newf(ErrUnknownMessage, "%s %q not registered", kind, name)
	}
	return info, nil
}

// List returns kind's messages ordered by tag.
func (r *Registry) List(kind Kind) []*MessageInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]*MessageInfo, 0, len(r.byTag[kind]))
	for _, info := range r.byTag[kind] {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Tag < infos[j].Tag })
	return infos
}

// IsRegistered returns true if tag is known in kind's set
func (r *Registry) IsRegistered(kind Kind, tag byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byTag[kind][tag]
	return exists
}

// Clear removes all registered messages (useful for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byTag = make(map[Kind]map[byte]*MessageInfo)
	r.byName = make(map[Kind]map[string]*MessageInfo)
	for _, kind := range []Kind{KindRequest, KindReply, KindError} {
		r.byTag[kind] = make(map[byte]*MessageInfo)
		r.byName[kind] = make(map[string]*MessageInfo)
	}
}

// MessageName returns the registered name of m, or a tag based fallback.
func MessageName(m Message) string {
	if info, err := DefaultRegistry.Lookup(m.Kind(), m.Tag()); err == nil {
		return info.Name
	}
	return fmt.Sprintf("%s(%d)", m.Kind(), m.Tag())
}

var requestLayouts = map[RequestTag]string{
	RequestAdd:       "key, value, mode u8",
	RequestUpdate:    "key, value",
	RequestLend:      "timeout u64, mode u8",
	RequestRepay:     "lend_key u64, key, value, status u8",
	RequestHeartbeat: "lend_key u64, key, timeout u64",
	RequestLookup:    "key",
	RequestRemove:    "key",
}

var replyLayouts = map[ReplyTag]string{
	ReplyCounted:    "count u32",
	ReplyLent:       "lend_key u64, key, value",
	ReplyStatsGot:   "ping, count, add, update, lookup, remove, lend, repay, heartbeat, stats (u64 each)",
	ReplyError:      "error",
	ReplyValueFound: "value",
}

var shapeLayouts = map[ErrorShape]string{
	ShapeNotEnoughData: "required u32, given u32",
	ShapeInvalidTag:    "tag u8",
	ShapeKey:           "key",
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for tag, name := range RequestTagNames {
		mustRegister(r, &MessageInfo{Kind: KindRequest, Tag: byte(tag), Name: name, Layout: requestLayouts[tag]})
	}
	for tag, name := range ReplyTagNames {
		mustRegister(r, &MessageInfo{Kind: KindReply, Tag: byte(tag), Name: name, Layout: replyLayouts[tag]})
	}
	for _, code := range ErrorCodes() {
		mustRegister(r, &MessageInfo{Kind: KindError, Tag: byte(code), Name: code.String(), Layout: shapeLayouts[code.Shape()]})
	}
	return r
}

func mustRegister(r *Registry, info *MessageInfo) {
	if err := r.Register(info); err != nil {
		panic(err)
	}
}
