package bitvector

import (
	"github.com/calebcase/bits"
)

// clampRange normalizes a [start, stop) search window against the vector
// length. Negative indexes count back from the end; out of range values are
// clamped rather than rejected.
func (v *BitVector) clampRange(start, stop int) (int, int) {
	if start < 0 {
		start += v.n
	}
	if stop < 0 {
		stop += v.n
	}
	if start < 0 {
		start = 0
	}
	if stop > v.n {
		stop = v.n
	}

	return start, stop
}

// matchAt reports whether sub occurs at position i.
func (v *BitVector) matchAt(sub *BitVector, i int) bool {
	for j := 0; j < sub.n; j++ {
		if v.bit(i+j) != sub.bit(j) {
			return false
		}
	}

	return true
}

// Find returns the position of the first occurrence of sub within
// [start, stop), or -1 if there is none. An empty sub matches at the start
// of the window.
func (v *BitVector) Find(sub *BitVector, start, stop int) int {
	start, stop = v.clampRange(start, stop)

	for i := start; i+sub.n <= stop; i++ {
		if v.matchAt(sub, i) {
			return i
		}
	}

	return -1
}

// RFind returns the position of the last occurrence of sub within
// [start, stop), or -1 if there is none.
func (v *BitVector) RFind(sub *BitVector, start, stop int) int {
	start, stop = v.clampRange(start, stop)

	for i := stop - sub.n; i >= start; i-- {
		if v.matchAt(sub, i) {
			return i
		}
	}

	return -1
}

// Index is Find, except that a missing sub is an error.
func (v *BitVector) Index(sub *BitVector, start, stop int) (int, error) {
	i := v.Find(sub, start, stop)
	if i < 0 {
		return 0, Error.Wrap(bits.ErrNotFound.New("bit pattern not found"))
	}

	return i, nil
}

// RIndex is RFind, except that a missing sub is an error.
func (v *BitVector) RIndex(sub *BitVector, start, stop int) (int, error) {
	i := v.RFind(sub, start, stop)
	if i < 0 {
		return 0, Error.Wrap(bits.ErrNotFound.New("bit pattern not found"))
	}

	return i, nil
}

// Count returns the number of non-overlapping occurrences of sub within
// [start, stop). An empty sub counts one match per window position plus
// one.
func (v *BitVector) Count(sub *BitVector, start, stop int) int {
	start, stop = v.clampRange(start, stop)

	if sub.n == 0 {
		if stop < start {
			return 0
		}

		return stop - start + 1
	}

	count := 0
	for i := start; i+sub.n <= stop; {
		if v.matchAt(sub, i) {
			count++
			i += sub.n
		} else {
			i++
		}
	}

	return count
}

// trie matches a set of candidate bit patterns simultaneously. Candidate
// sets are typically tiny, but a shared walk keeps multi-candidate prefix
// checks linear in the window size.
type trie struct {
	children [2]*trie
	terminal bool
}

func newTrie(subs []*BitVector, reversed bool) *trie {
	root := &trie{}
	for _, sub := range subs {
		node := root
		for j := 0; j < sub.n; j++ {
			b := sub.bit(j)
			if reversed {
				b = sub.bit(sub.n - 1 - j)
			}
			if node.children[b] == nil {
				node.children[b] = &trie{}
			}
			node = node.children[b]
		}
		node.terminal = true
	}

	return root
}

// StartsWith reports whether the window [start, stop) begins with any of the
// candidate patterns. An empty candidate matches unconditionally.
func (v *BitVector) StartsWith(subs []*BitVector, start, stop int) bool {
	start, stop = v.clampRange(start, stop)

	node := newTrie(subs, false)
	if node.terminal {
		return true
	}

	for i := start; i < stop; i++ {
		node = node.children[v.bit(i)]
		if node == nil {
			return false
		}
		if node.terminal {
			return true
		}
	}

	return false
}

// EndsWith reports whether the window [start, stop) ends with any of the
// candidate patterns. An empty candidate matches unconditionally.
func (v *BitVector) EndsWith(subs []*BitVector, start, stop int) bool {
	start, stop = v.clampRange(start, stop)

	node := newTrie(subs, true)
	if node.terminal {
		return true
	}

	for i := stop - 1; i >= start; i-- {
		node = node.children[v.bit(i)]
		if node == nil {
			return false
		}
		if node.terminal {
			return true
		}
	}

	return false
}
