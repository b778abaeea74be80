// Package seqtrie is a plain, single-threaded trie set over 7-bit ASCII words.
//
// It has the same surface as trieset.Trie minus the concurrency and serves as
// a reference for behavioural comparison and benchmarks.
package seqtrie

import "fmt"

const (
	MinChar = 0
	MaxChar = 127
	Fanout  = MaxChar - MinChar + 1
)

type Node struct {
	child       [Fanout]*Node
	parent      *Node
	index       byte
	isEnd       bool
	numChildren int
}

type Trie struct {
	size int
	root *Node
}

// InvalidCharError reports a byte outside [MinChar..MaxChar].
type InvalidCharError struct {
	Pos  int
	Char byte
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf("seqtrie: invalid character 0x%02x at position %d", e.Char, e.Pos)
}

func New(words ...string) *Trie {
	t := &Trie{root: &Node{}}
	for _, w := range words {
		t.Add(w)
	}
	return t
}

// Len returns the number of words in the trie.
func (t *Trie) Len() int {
	return t.size
}

func index(word string, pos int) (byte, error) {
	if c := word[pos]; c <= MaxChar {
		return c - MinChar, nil
	}
	return 0, InvalidCharError{Pos: pos, Char: word[pos]}
}

// Add inserts a word and returns whether it was new.
func (t *Trie) Add(word string) (bool, error) {
	if word == "" {
		return false, nil
	}
	cur := t.root
	for i := 0; i < len(word); i++ {
		idx, err := index(word, i)
		if err != nil {
			t.prune(cur)
			return false, err
		}
		next := cur.child[idx]
		if next == nil {
			next = &Node{parent: cur, index: idx}
			cur.child[idx] = next
			cur.numChildren++
		}
		cur = next
	}
	if cur.isEnd {
		return false, nil
	}
	cur.isEnd = true
	t.size++
	return true, nil
}

func (t *Trie) find(word string) (*Node, error) {
	cur := t.root
	for i := 0; i < len(word); i++ {
		idx, err := index(word, i)
		if err != nil {
			return nil, err
		}
		if cur = cur.child[idx]; cur == nil {
			return nil, nil
		}
	}
	return cur, nil
}

// Has reports whether the word is in the trie.
func (t *Trie) Has(word string) (bool, error) {
	n, err := t.find(word)
	if n == nil {
		return false, err
	}
	return n.isEnd, nil
}

// Del removes a word and returns whether it was present.
func (t *Trie) Del(word string) (bool, error) {
	if word == "" {
		return false, nil
	}
	n, err := t.find(word)
	if n == nil || !n.isEnd {
		return false, err
	}
	n.isEnd = false
	t.size--
	t.prune(n)
	return true, nil
}

// prune unlinks dead-end nodes bottom-up.
// E.g. with "be" and "beta" stored, deleting "beta" drops "a" and "t".
func (t *Trie) prune(n *Node) {
	for n != t.root && n.numChildren == 0 && !n.isEnd {
		p := n.parent
		p.child[n.index] = nil
		p.numChildren--
		n = p
	}
}

// KeysWithPrefix returns all words starting with the prefix in a sorted order.
func (t *Trie) KeysWithPrefix(prefix string) ([]string, error) {
	n, err := t.find(prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0)
	if n != nil {
		keys = collect(n, prefix, keys)
	}
	return keys, nil
}

// Keys returns all words in a sorted order.
func (t *Trie) Keys() []string {
	return collect(t.root, "", make([]string, 0, t.size))
}

func collect(n *Node, key string, keys []string) []string {
	if n.isEnd {
		keys = append(keys, key)
	}
	for i, c := range n.child {
		if c != nil {
			keys = collect(c, key+string(rune(i+MinChar)), keys)
		}
	}
	return keys
}
