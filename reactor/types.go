package reactor

import (
	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/reactref/pkg/schedule"
	mapset "github.com/deckarep/golang-set/v2"
)

type subscriberFlags uint16

const (
	fRunning subscriberFlags = 1 << iota
	fDisposed
	fSync
	fDeep
	fBatched
)

// Kind names the computation behind a subscriber for logging and stats.
type Kind string

const (
	KindEffect   Kind = "effect"
	KindWatch    Kind = "watch"
	KindLens     Kind = "lens"
	KindSnapshot Kind = "snapshot"
)

// symbol is a path key no user key can collide with.
type symbol uint64

var (
	valueKey   = symbol(xxhash.Sum64String("value"))
	lengthKey  = symbol(xxhash.Sum64String("length"))
	iterateKey = symbol(xxhash.Sum64String("iterate"))
)

// edge records that a subscriber read key of dep during its last run.
type edge struct {
	dep *node
	key any
}

type subscriber struct {
	rs   *ReactiveSystem
	id   uint64
	kind Kind
	ref  SignalAware

	flags      subscriberFlags
	deps       mapset.Set[edge]
	collecting mapset.Set[edge]

	// forbid is the node this subscriber is deriving; reading it is a cycle.
	forbid *node

	job        func()
	generation uint64
	pending    schedule.Token
}

type ErrFn func() error

// StopFunc tears a computation down. Calling it more than once is a no-op.
type StopFunc func()

type SignalAware interface {
	isSignalAware()
}
