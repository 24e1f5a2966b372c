package winreg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qraux/plaso/pkg/types"
)

func TestTraversePreOrder(t *testing.T) {
	root := newMemKey("ROOT",
		newMemKey("A",
			newMemKey("A1"),
			newMemKey("A2")),
		newMemKey("B"))

	var visited []string
	for k := range Traverse(root) {
		visited = append(visited, k.Name())
	}
	assert.Equal(t, []string{"ROOT", "A", "A1", "A2", "B"}, visited)
}

func TestTraverseVisitsEachKeyOnce(t *testing.T) {
	root := newMemKey("ROOT",
		newMemKey("A", newMemKey("A1"), newMemKey("A2", newMemKey("A2X"))),
		newMemKey("B", newMemKey("B1")),
		newMemKey("C"))

	index := map[string]int{}
	i := 0
	for k := range Traverse(root) {
		_, dup := index[k.Path()]
		require.False(t, dup, "key %s visited twice", k.Path())
		index[k.Path()] = i
		i++
	}
	assert.Len(t, index, 8)

	// Parents come strictly before their children.
	for path, idx := range index {
		for other, otherIdx := range index {
			if other != path && len(other) > len(path) &&
				other[:len(path)] == path {
				assert.Less(t, idx, otherIdx, "%s before %s", path, other)
			}
		}
	}
}

func TestTraverseNilRoot(t *testing.T) {
	count := 0
	for range Traverse(nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestTraverseEarlyStop(t *testing.T) {
	root := newMemKey("ROOT", newMemKey("A"), newMemKey("B"))
	var visited []string
	for k := range Traverse(root) {
		visited = append(visited, k.Name())
		if len(visited) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"ROOT", "A"}, visited)
}

// cycleKey points back at itself, modeling a malformed source tree.
type cycleKey struct{ *memKey }

func (c cycleKey) Subkeys() []types.Key { return []types.Key{c} }

func TestTraverseGuardsCyclicTrees(t *testing.T) {
	cyclic := cycleKey{newMemKey("LOOP")}

	count := 0
	for range Traverse(cyclic) {
		count++
	}
	// The visited-offset guard yields the looping key once and stops.
	assert.Equal(t, 1, count)
}

func TestTraverseVeryDeepTree(t *testing.T) {
	// A legitimate acyclic chain far deeper than any recursion limit must
	// be walked completely.
	const depth = 10000
	node := &memKey{name: "K0"}
	root := node
	for i := 1; i <= depth; i++ {
		root = &memKey{name: fmt.Sprintf("K%d", i), subkeys: []*memKey{root}}
	}
	root.renumber(`\`, 4096)

	count := 0
	var last types.Key
	for k := range Traverse(root) {
		count++
		last = k
	}
	assert.Equal(t, depth+1, count)
	assert.Equal(t, "K0", last.Name())
}
