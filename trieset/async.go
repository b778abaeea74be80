package trieset

import (
	"slices"
	"time"
)

// AddAsync inserts the words in the background and returns immediately.
//
// The async write permit is taken before returning, so a later Flush waits
// for this batch. Ordinary calls (Has, Keys, Add...) are not ordered against
// it. Failures go to the logger and to the WithAsyncErrorHandler callback.
// The words slice is copied and may be reused by the caller.
func (t *Trie) AddAsync(words []string) {
	t.launch("add", words, t.AddBatch)
}

// DelAsync removes the words in the background (see AddAsync).
func (t *Trie) DelAsync(words []string) {
	t.launch("del", words, t.DelBatch)
}

// Flush blocks until every async batch launched before the call completed.
func (t *Trie) Flush() {
	t.asyncGate.StartRead()
	t.asyncGate.EndRead()
}

func (t *Trie) launch(op string, words []string, run func([]string) ([]bool, error)) {
	batch := slices.Clone(words)

	t.asyncGate.StartWrite() // released by the batch goroutine

	t.log.Debug().Str("op", op).Int("words", len(batch)).Msg("async batch launched")

	// the goroutine holds its own reference to t, keeping the whole trie
	// alive until the batch is done even if the caller drops it
	go func(t *Trie) {
		start := time.Now()
		changed, err := run(batch)

		var n int
		for _, ok := range changed {
			if ok {
				n++
			}
		}

		if err != nil {
			t.log.Warn().Err(err).Str("op", op).Int("words", len(batch)).Int("changed", n).Msg("async batch failed")
		} else {
			t.log.Debug().
				Str("op", op).
				Int("words", len(batch)).
				Int("changed", n).
				Dur("took", time.Since(start)).
				Msg("async batch done")
		}

		// the handler may Flush or launch batches itself
		t.asyncGate.EndWrite()

		if err != nil && t.onAsyncErr != nil {
			t.onAsyncErr(err)
		}
	}(t)
}
