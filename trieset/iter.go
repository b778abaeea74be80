package trieset

import "math/bits"

// Iter calls a handler for every word with the given prefix, in ascending
// byte order. The handler can continue the process by returning true or abort
// with false. Iter returns whether all prefixed words were visited.
//
// The handler runs while a read permit is held: it must not call Add or Del
// on the same Trie.
func (t *Trie) Iter(prefix string, handler func(string) bool) (bool, error) {
	t.syncGate.StartRead()
	defer t.syncGate.EndRead()

	start, err := t.find(prefix)
	if start == nil {
		return true, err
	}

	return iterate(start, prefix, handler), nil
}

// KeysWithPrefix returns all words starting with the prefix in a sorted order.
func (t *Trie) KeysWithPrefix(prefix string) ([]string, error) {
	keys := make([]string, 0)

	_, err := t.Iter(prefix, func(key string) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Keys returns all words in a sorted order.
func (t *Trie) Keys() []string {
	t.syncGate.StartRead()
	defer t.syncGate.EndRead()

	keys := make([]string, 0, t.Len())

	iterate(t.root, "", func(key string) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

type visit struct {
	node *node
	key  string
}

// iterate walks a subtree depth-first without function recursion.
func iterate(start *node, prefix string, h func(string) bool) bool {
	toVisit := []visit{{start, prefix}}

	for l := len(toVisit); l > 0; l = len(toVisit) {
		// pop the last item
		cur := toVisit[l-1]
		toVisit = toVisit[:l-1]

		cur.node.mu.Lock()
		isEnd := cur.node.isEnd
		// push the children largest first so the smallest pops first
		for w := len(cur.node.bitmap) - 1; w >= 0; w-- {
			for bmp := cur.node.bitmap[w]; bmp != 0; {
				hi := 63 - bits.LeadingZeros64(bmp)
				bmp &^= uint64(1) << hi

				idx := w<<6 | hi
				toVisit = append(toVisit, visit{
					node: cur.node.children[idx],
					key:  cur.key + string(rune(indexChar(idx))),
				})
			}
		}
		cur.node.mu.Unlock()

		if isEnd && !h(cur.key) {
			return false
		}
	}

	return true
}
