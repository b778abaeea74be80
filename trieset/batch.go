package trieset

import "golang.org/x/sync/errgroup"

// AddBatch inserts all words under a single write permit, spreading them over
// Workers() goroutines. The result has one entry per word, true where the
// word was not in the set before. An invalid word does not stop the others:
// the returned *BatchError lists every failed element.
func (t *Trie) AddBatch(words []string) ([]bool, error) {
	added := make([]bool, len(words))
	if len(words) == 0 {
		return added, nil
	}

	t.syncGate.StartWrite()
	defer t.syncGate.EndWrite()

	err := t.forEach("add", words, func(i int, word string) (err error) {
		if word == "" {
			return nil
		}
		added[i], err = t.add(word)
		return err
	})

	return added, err
}

// HasBatch checks all words under a single read permit. The result has one
// entry per word; failed elements report false and are listed in the
// returned *BatchError.
func (t *Trie) HasBatch(words []string) ([]bool, error) {
	found := make([]bool, len(words))
	if len(words) == 0 {
		return found, nil
	}

	t.syncGate.StartRead()
	defer t.syncGate.EndRead()

	err := t.forEach("has", words, func(i int, word string) (err error) {
		found[i], err = t.has(word)
		return err
	})

	return found, err
}

// DelBatch removes all words under a single write permit. The result is true
// where the word was in the set (see AddBatch).
func (t *Trie) DelBatch(words []string) ([]bool, error) {
	removed := make([]bool, len(words))
	if len(words) == 0 {
		return removed, nil
	}

	t.syncGate.StartWrite()
	defer t.syncGate.EndWrite()

	err := t.forEach("del", words, func(i int, word string) (err error) {
		if word == "" {
			return nil
		}
		removed[i], err = t.del(word)
		return err
	})

	return removed, err
}

// forEach is a parallel for: words are split into contiguous chunks, one per
// worker, and fn is called once per element. Element errors are captured in
// place so a failure never cuts sibling work short.
func (t *Trie) forEach(op string, words []string, fn func(int, string) error) error {
	var (
		total   = len(words)
		workers = max(1, min(t.Workers(), total))
		chunk   = (total + workers - 1) / workers
		errs    = make([]error, total)
		g       errgroup.Group
	)

	g.SetLimit(workers)

	for lo := 0; lo < total; lo += chunk {
		hi := min(lo+chunk, total)

		g.Go(func() error {
			for i := lo; i < hi; i++ {
				errs[i] = fn(i, words[i])
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return an error

	var failures []ElementError

	for i, err := range errs {
		if err != nil {
			failures = append(failures, ElementError{Index: i, Word: words[i], Err: err})
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return &BatchError{Op: op, Total: total, Failures: failures}
}
