package trieset

import (
	"bytes"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-trieset/gate"
)

func TestAsync_AddThenFlush(t *testing.T) {
	t.Parallel()

	var (
		tr    = New()
		words = numbered("async", 500)
	)

	tr.AddAsync(words)
	tr.Flush()

	assert.Equal(t, len(words), tr.Len())

	found, err := tr.HasBatch(words)
	require.NoError(t, err)
	for i, ok := range found {
		assert.True(t, ok, words[i])
	}

	tr.DelAsync(words[:250])
	tr.Flush()

	assert.Equal(t, words[250:], tr.Keys())
	checkStructure(t, tr)
}

func TestAsync_PermitTakenBeforeReturn(t *testing.T) {
	t.Parallel()

	tr := New()

	// hold the sync gate as a reader so the batch cannot make progress
	tr.syncGate.StartRead()

	tr.AddAsync([]string{"x"})

	s := tr.asyncGate.Stats()
	assert.Equal(t, 1, s.WritersActive, "async permit must be held on return")

	flushed := make(chan struct{})
	go func() {
		tr.Flush()
		close(flushed)
	}()

	require.Eventually(t, func() bool {
		return tr.asyncGate.Stats().ReadersQueued == 1
	}, time.Second, time.Millisecond)

	select {
	case <-flushed:
		t.Fatal("Flush returned before the async batch ran")
	default:
	}

	tr.syncGate.EndRead()

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush did not return")
	}

	ok, err := tr.Has("x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAsync_CallerMayReuseSlice(t *testing.T) {
	t.Parallel()

	var (
		tr    = New()
		words = []string{"alpha", "beta", "gamma"}
	)

	tr.syncGate.StartRead()
	tr.AddAsync(words)

	// clobber the caller's slice while the batch is still blocked
	for i := range words {
		words[i] = "zzz"
	}
	tr.syncGate.EndRead()

	tr.Flush()

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, tr.Keys())
}

func TestAsync_ErrorReporting(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		logBuf bytes.Buffer
		errs   = make(chan error, 1)
	)

	tr := New(
		WithLogger(zerolog.New(&syncWriter{w: &logBuf, mu: &mu})),
		WithAsyncErrorHandler(func(err error) { errs <- err }),
	)

	tr.AddAsync([]string{"ok", "b\xffd", "ok"})
	tr.Flush()

	// the log record is written before the permit is released
	mu.Lock()
	assert.Contains(t, logBuf.String(), "async batch failed")
	assert.Contains(t, logBuf.String(), `"changed":1`)
	mu.Unlock()

	assert.Equal(t, []string{"ok"}, tr.Keys())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrInvalidCharacter)

		var batchErr *BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, []int{1}, failedIndexes(batchErr))
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}

func TestAsync_HandlerMayUseAsyncMethods(t *testing.T) {
	t.Parallel()

	var (
		tr   *Trie
		done = make(chan struct{})
	)

	tr = New(WithAsyncErrorHandler(func(err error) {
		tr.Flush()
		tr.AddAsync([]string{"retry"})
		tr.Flush()
		close(done)
	}))

	tr.AddAsync([]string{"\xff"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("error handler blocked on the async gate")
	}

	tr.Flush()
	assert.Equal(t, []string{"retry"}, tr.Keys())
	assert.Equal(t, gate.Stats{Epochs: tr.asyncGate.Stats().Epochs}, tr.asyncGate.Stats())
}

func TestAsync_OutlivesCaller(t *testing.T) {
	t.Parallel()

	var (
		done  = make(chan error, 1)
		words = append(numbered("orphan", 1000), "last\xff")
	)

	func() {
		tr := New(WithAsyncErrorHandler(func(err error) { done <- err }))
		tr.AddAsync(words)
	}()

	// only the batch goroutine still refers to the trie
	runtime.GC()

	select {
	case err := <-done:
		var batchErr *BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.Equal(t, len(words), batchErr.Total)
		assert.Equal(t, []int{1000}, failedIndexes(batchErr))
	case <-time.After(5 * time.Second):
		t.Fatal("async batch did not complete")
	}
}

func TestAsync_SyncChannelNotBlocked(t *testing.T) {
	t.Parallel()

	tr := New()

	// an async writer epoch in progress
	tr.asyncGate.StartWrite()
	defer tr.asyncGate.EndWrite()

	done := make(chan struct{})
	go func() {
		tr.Add("a")
		tr.Has("a")
		tr.Keys()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("synchronous calls waited for the async gate")
	}
}

func failedIndexes(e *BatchError) []int {
	idx := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		idx[i] = f.Index
	}
	return idx
}

type syncWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
