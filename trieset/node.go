package trieset

import (
	"sync"

	"github.com/hideo55/go-popcount"
)

const (
	MinChar = 0
	MaxChar = 127
	Fanout  = MaxChar - MinChar + 1

	bitmapWords = (Fanout + 63) >> 6
)

type node struct {
	mu sync.Mutex

	children [Fanout]*node
	// bitmap marks non-empty children slots
	bitmap [bitmapWords]uint64

	isEnd bool
	// dead is set once the node has been unlinked from its parent
	dead bool

	// parent and index never change after creation
	parent *node
	index  byte
}

func newNode(parent *node, index byte) *node {
	return &node{parent: parent, index: index}
}

func (n *node) numChildren() int {
	var num uint64
	for _, bmp := range n.bitmap {
		num += popcount.Count(bmp)
	}
	return int(num)
}

func (n *node) link(idx byte, child *node) {
	n.children[idx] = child
	n.bitmap[idx>>6] |= uint64(1) << (idx & 0x3F)
}

func (n *node) unlink(idx byte) {
	n.children[idx] = nil
	n.bitmap[idx>>6] &^= uint64(1) << (idx & 0x3F)
}

// garbage reports whether a non-root node can be unlinked (n must be locked)
func (n *node) garbage() bool {
	return n.parent != nil && !n.isEnd && n.numChildren() == 0
}

// charIndex maps the byte at pos to a child slot.
func charIndex(word string, pos int) (byte, error) {
	c := word[pos]
	if c > MaxChar {
		return 0, &CharError{Word: word, Pos: pos, Char: c}
	}
	return c - MinChar, nil
}

func indexChar(idx int) byte {
	return byte(idx + MinChar)
}
