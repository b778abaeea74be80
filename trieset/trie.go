package trieset

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/aglyzov/go-trieset/gate"
)

const (
	// DefaultWorkers is the fan-out degree of batch operations unless changed.
	DefaultWorkers = 4
	// MaxWorkers caps the fan-out degree.
	MaxWorkers = math.MaxInt32
)

// Trie is a concurrent set of strings. All methods are safe for concurrent use.
type Trie struct {
	root *node
	size counter

	syncGate  *gate.Gate
	asyncGate *gate.Gate

	workers atomic.Int32

	log        zerolog.Logger
	onAsyncErr func(error)
}

// Option configures a Trie.
type Option func(*Trie)

// WithWorkers sets the initial fan-out degree of batch operations.
func WithWorkers(n int) Option {
	return func(t *Trie) {
		t.SetWorkers(n)
	}
}

// WithMaxWorkers sets the fan-out degree to the available parallelism.
func WithMaxWorkers() Option {
	return func(t *Trie) {
		t.SetMaxWorkers()
	}
}

// WithLogger sets a logger for async batch reporting (silent by default).
func WithLogger(l zerolog.Logger) Option {
	return func(t *Trie) {
		t.log = l
	}
}

// WithAsyncErrorHandler registers a callback receiving the *BatchError of every
// async batch that had failures. It runs on the batch goroutine after the
// async permit is released, so it may call Flush or launch more async
// batches; a Flush waiting for that batch does not wait for the callback.
func WithAsyncErrorHandler(fn func(error)) Option {
	return func(t *Trie) {
		t.onAsyncErr = fn
	}
}

// New returns an empty Trie.
func New(opts ...Option) *Trie {
	t := &Trie{
		root:      newNode(nil, 0),
		syncGate:  gate.New(),
		asyncGate: gate.New(),
		log:       zerolog.Nop(),
	}
	t.workers.Store(DefaultWorkers)

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Len returns the number of words in the set.
func (t *Trie) Len() int {
	return t.size.get()
}

// SetWorkers sets the fan-out degree of batch operations launched from now
// on. n is clamped to [1..MaxWorkers].
func (t *Trie) SetWorkers(n int) {
	n = max(1, min(n, MaxWorkers))
	t.workers.Store(int32(n))
}

// SetMaxWorkers sets the fan-out degree to the available parallelism.
func (t *Trie) SetMaxWorkers() {
	t.SetWorkers(runtime.GOMAXPROCS(0))
}

// Workers returns the current fan-out degree of batch operations.
func (t *Trie) Workers() int {
	return int(t.workers.Load())
}

// counter is the word count, locked on its own because many writers of one
// epoch flip end-of-word flags at the same time.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) dec() {
	c.mu.Lock()
	c.n--
	c.mu.Unlock()
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
