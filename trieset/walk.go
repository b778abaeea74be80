package trieset

// Add inserts a word. It returns true if the word was not in the set before.
// Adding an empty word is a no-op.
func (t *Trie) Add(word string) (bool, error) {
	if word == "" {
		return false, nil
	}

	t.syncGate.StartWrite()
	defer t.syncGate.EndWrite()

	return t.add(word)
}

// Has reports whether the word is in the set.
func (t *Trie) Has(word string) (bool, error) {
	t.syncGate.StartRead()
	defer t.syncGate.EndRead()

	return t.has(word)
}

// Del removes a word. It returns true if the word was in the set.
func (t *Trie) Del(word string) (bool, error) {
	if word == "" {
		return false, nil
	}

	t.syncGate.StartWrite()
	defer t.syncGate.EndWrite()

	return t.del(word)
}

// add runs under a write permit.
func (t *Trie) add(word string) (bool, error) {
	for {
		added, retry, err := t.tryAdd(word)
		if !retry {
			return added, err
		}
	}
}

// tryAdd walks down creating missing nodes. It gives up with retry=true if it
// runs into a node which a concurrent Del has just unlinked.
func (t *Trie) tryAdd(word string) (added, retry bool, err error) {
	var (
		cur     = t.root
		created bool
	)

	for i := 0; i < len(word); i++ {
		idx, err := charIndex(word, i)
		if err != nil {
			if created {
				// drop the dangling chain built for the valid part
				cur.mu.Lock()
				if !cur.dead {
					t.pruneLocked(cur)
				} else {
					cur.mu.Unlock()
				}
			}
			return false, false, err
		}

		cur.mu.Lock()
		if cur.dead {
			cur.mu.Unlock()
			return false, true, nil
		}
		next := cur.children[idx]
		if next == nil {
			next = newNode(cur, idx)
			cur.link(idx, next)
			created = true
		}
		cur.mu.Unlock()

		cur = next
	}

	cur.mu.Lock()
	if cur.dead {
		cur.mu.Unlock()
		return false, true, nil
	}
	added = !cur.isEnd
	cur.isEnd = true
	cur.mu.Unlock()

	if added {
		t.size.inc()
	}

	return added, false, nil
}

// find walks down without creating nodes. It returns nil if the path is absent.
func (t *Trie) find(word string) (*node, error) {
	cur := t.root

	for i := 0; i < len(word); i++ {
		idx, err := charIndex(word, i)
		if err != nil {
			return nil, err
		}

		cur.mu.Lock()
		next := cur.children[idx]
		cur.mu.Unlock()

		if next == nil {
			return nil, nil
		}
		cur = next
	}

	return cur, nil
}

// has runs under a read permit.
func (t *Trie) has(word string) (bool, error) {
	n, err := t.find(word)
	if n == nil {
		return false, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return n.isEnd && !n.dead, nil
}

// del runs under a write permit.
func (t *Trie) del(word string) (bool, error) {
	n, err := t.find(word)
	if n == nil {
		return false, err
	}

	n.mu.Lock()
	if n.dead || !n.isEnd {
		// a dead node never ends a word, and a concurrent add restarts
		// from the root, so the word is absent either way
		n.mu.Unlock()
		return false, nil
	}
	n.isEnd = false
	t.size.dec()
	t.pruneLocked(n)

	return true, nil
}

// pruneLocked unlinks n and then every ancestor left as a dead end. n must be
// locked by the caller; all locks are released on return.
//
// The child lock is held while the parent lock is taken, and the walk goes
// strictly upwards, so concurrent prunes of overlapping paths serialize on
// the shared ancestors instead of deadlocking. Downward walks never wait for a
// lock while holding one.
func (t *Trie) pruneLocked(n *node) {
	for n.garbage() {
		p := n.parent

		p.mu.Lock()
		p.unlink(n.index)
		n.dead = true
		n.mu.Unlock()

		n = p
	}
	n.mu.Unlock()
}
