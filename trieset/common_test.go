package trieset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkStructure walks the whole trie (no writers may be running) and verifies
// the node invariants: the bitmap and the slots agree, back references are
// consistent, no dead or dead-end node is reachable, and the word count
// matches the size counter.
func checkStructure(t *testing.T, tr *Trie) {
	t.Helper()

	var (
		words   int
		toVisit = []*node{tr.root}
	)

	require.Nil(t, tr.root.parent)
	require.False(t, tr.root.isEnd, "root must not end a word")

	for l := len(toVisit); l > 0; l = len(toVisit) {
		n := toVisit[l-1]
		toVisit = toVisit[:l-1]

		var slots int
		for i, c := range n.children {
			bit := n.bitmap[i>>6]>>(i&0x3F)&1 == 1

			require.Equal(t, c != nil, bit, "slot %d bitmap mismatch", i)
			if c == nil {
				continue
			}
			slots++

			require.Same(t, n, c.parent, "slot %d parent mismatch", i)
			require.Equal(t, byte(i), c.index, "slot %d index mismatch", i)
			require.False(t, c.dead, "slot %d links a dead node", i)

			toVisit = append(toVisit, c)
		}
		require.Equal(t, slots, n.numChildren())

		if n != tr.root {
			require.False(t, n.garbage(), "dead-end node left behind")
		}
		if n.isEnd {
			words++
		}
	}

	require.Equal(t, words, tr.Len(), "size counter drifted")
}

// nodeAt returns the node for a path or nil (no writers may be running).
func nodeAt(tr *Trie, path string) *node {
	cur := tr.root
	for i := 0; i < len(path) && cur != nil; i++ {
		cur = cur.children[path[i]]
	}
	return cur
}

func addAll(t *testing.T, tr *Trie, words []string) []bool {
	t.Helper()
	added, err := tr.AddBatch(words)
	require.NoError(t, err)
	return added
}

func delAll(t *testing.T, tr *Trie, words []string) []bool {
	t.Helper()
	removed, err := tr.DelBatch(words)
	require.NoError(t, err)
	return removed
}

func numbered(prefix string, n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s%04d", prefix, i)
	}
	return words
}
