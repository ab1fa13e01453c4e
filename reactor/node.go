package reactor

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// node is the bookkeeping shared by every tracked value: who read which key.
type node struct {
	rs      *ReactiveSystem
	id      uint64
	version uint64
	subs    map[any]mapset.Set[*subscriber]
}

func newNode(rs *ReactiveSystem) node {
	return node{
		rs:   rs,
		id:   rs.nextID(),
		subs: map[any]mapset.Set[*subscriber]{},
	}
}

func (n *node) trackedNode() *node {
	return n
}

func (n *node) isSignalAware() {}

// System returns the runtime the value belongs to.
func (n *node) System() *ReactiveSystem {
	return n.rs
}

func (n *node) track(key any) {
	n.rs.track(n, key)
}

func (n *node) subscribe(key any, s *subscriber) {
	set, ok := n.subs[key]
	if !ok {
		set = mapset.NewThreadUnsafeSet[*subscriber]()
		n.subs[key] = set
	}
	set.Add(s)
}

func (n *node) unsubscribe(key any, s *subscriber) {
	set, ok := n.subs[key]
	if !ok {
		return
	}
	set.Remove(s)
	if set.Cardinality() == 0 {
		delete(n.subs, key)
	}
}

// trigger records a mutation and notifies everyone who read one of keys.
// Subscribers are notified once even when they read several of the keys.
func (n *node) trigger(keys ...any) {
	n.version++

	seen := mapset.NewThreadUnsafeSet[*subscriber]()
	var subs []*subscriber
	for _, key := range keys {
		set, ok := n.subs[key]
		if !ok {
			continue
		}
		for _, s := range set.ToSlice() {
			if seen.Add(s) {
				subs = append(subs, s)
			}
		}
	}

	for _, s := range subs {
		s.notify()
	}
}

// triggerAll notifies every subscriber regardless of the key they read.
func (n *node) triggerAll() {
	keys := make([]any, 0, len(n.subs))
	for key := range n.subs {
		keys = append(keys, key)
	}
	n.trigger(keys...)
}

// tracked is implemented by every value whose reads are recorded.
type tracked interface {
	trackedNode() *node
	traverse(t *traversal)
}

// traversal walks a tracked graph, recording a dependency on everything it
// touches, and fingerprints the versions of the nodes it visited.
type traversal struct {
	seen   map[uint64]struct{}
	digest *xxhash.Digest
	buf    []byte
}

func newTraversal() *traversal {
	return &traversal{
		seen:   map[uint64]struct{}{},
		digest: xxhash.New(),
		buf:    make([]byte, 0, 16),
	}
}

func (t *traversal) visit(v any) {
	tn, ok := v.(tracked)
	if !ok {
		return
	}
	n := tn.trackedNode()
	if _, ok := t.seen[n.id]; ok {
		return
	}
	t.seen[n.id] = struct{}{}

	t.buf = binary.LittleEndian.AppendUint64(t.buf[:0], n.id)
	t.buf = binary.LittleEndian.AppendUint64(t.buf, n.version)
	t.digest.Write(t.buf)

	tn.traverse(t)
}

// traverse deeply reads v and returns the structural fingerprint.
func traverse(v any) uint64 {
	t := newTraversal()
	t.visit(v)
	return t.digest.Sum64()
}
