// Package trie is a small byte-wise prefix tree for matching tag names.
package trie

// Entry is a name and the value stored at its end.
type Entry[T any] struct {
	Name  string
	Value T
}

// Node is one byte of a stored name.
type Node[T any] struct {
	children map[byte]*Node[T]
	value    T
	terminal bool
}

// Trie matches names case-insensitively. See [Lower].
type Trie[T any] struct {
	root *Node[T]
}

// New builds a trie. Later entries with the same name overwrite earlier ones.
func New[T any](entries []Entry[T]) *Trie[T] {
	root := &Node[T]{}
	for _, e := range entries {
		n := root
		for i := 0; i < len(e.Name); i++ {
			b := Lower(e.Name[i])
			child, ok := n.children[b]
			if !ok {
				if n.children == nil {
					n.children = make(map[byte]*Node[T])
				}
				child = &Node[T]{}
				n.children[b] = child
			}
			n = child
		}
		n.value = e.Value
		n.terminal = true
	}
	return &Trie[T]{root: root}
}

func (t *Trie[T]) Root() *Node[T] {
	return t.root
}

// Next advances by b, or returns nil when no stored name continues with b.
func (n *Node[T]) Next(b byte) *Node[T] {
	if n == nil {
		return nil
	}
	return n.children[Lower(b)]
}

// Value returns the value stored at n, if a name ends here.
func (n *Node[T]) Value() (T, bool) {
	if n == nil || !n.terminal {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Lookup matches the whole of s.
func (t *Trie[T]) Lookup(s string) (T, bool) {
	n := t.root
	for i := 0; i < len(s) && n != nil; i++ {
		n = n.Next(s[i])
	}
	return n.Value()
}

// Lower folds ASCII upper case letters by setting bit 0x20. Other bytes are
// returned as is, so control characters never alias '-' or '/'.
func Lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b | 0x20
	}
	return b
}
