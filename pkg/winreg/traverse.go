package winreg

import (
	"iter"

	"github.com/qraux/plaso/pkg/types"
)

// Traverse yields every key reachable from root exactly once, pre-order,
// parents before children, in deterministic child order. A nil root yields
// nothing. The sequence is single-use and not safe for concurrent consumers.
//
// The walk uses an explicit frame stack instead of recursion, so depth is
// bounded only by memory, never by the goroutine stack. Cycles a malformed
// source tree could introduce are broken by tracking visited key offsets:
// a key whose offset was already seen is skipped, which also enforces the
// exactly-once guarantee when two parents reference the same child record.
func Traverse(root types.Key) iter.Seq[types.Key] {
	return func(yield func(types.Key) bool) {
		if root == nil {
			return
		}
		visited := map[int64]struct{}{}
		stack := []types.Key{root}
		for len(stack) > 0 {
			key := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, seen := visited[key.Offset()]; seen {
				continue
			}
			visited[key.Offset()] = struct{}{}
			if !yield(key) {
				return
			}
			subkeys := key.Subkeys()
			// Push in reverse so the first child is popped first.
			for i := len(subkeys) - 1; i >= 0; i-- {
				stack = append(stack, subkeys[i])
			}
		}
	}
}
