// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bst

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	benchSize = 10_000
	seed      = 42
)

var sampleKeys = []int{4, 3, 1, 23, 9, 11}

func newTree(t testing.TB, keys ...int) *Tree {
	t.Helper()
	tree := New()
	for _, k := range keys {
		require.NoError(t, tree.Insert(k))
	}
	return tree
}

func TestSampleTraversals(t *testing.T) {
	tree := newTree(t, sampleKeys...)

	require.Equal(t, []int{1, 3, 4, 9, 11, 23}, tree.Keys(InOrder))
	require.Equal(t, []int{4, 3, 1, 23, 9, 11}, tree.Keys(PreOrder))
	// 11 hangs off 9's right, so it is emitted before 9.
	require.Equal(t, []int{1, 3, 11, 9, 23, 4}, tree.Keys(PostOrder))
	require.NoError(t, tree.Verify())
}

func TestSampleDeletions(t *testing.T) {
	tree := newTree(t, sampleKeys...)

	succ := tree.Successor(tree.Root().Right())
	require.Equal(t, 9, succ.Key())
	require.Nil(t, succ.Left())

	tests := []struct {
		name     string
		key      int
		expected []int
	}{
		{"two children", 4, []int{1, 3, 9, 11, 23}},
		{"one child", 23, []int{1, 3, 9, 11}},
		{"leaf", 1, []int{3, 9, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.Delete(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.key, got)
			require.Equal(t, tt.expected, tree.Keys(InOrder))
			require.NoError(t, tree.Verify())
		})
	}

	t.Run("already deleted", func(t *testing.T) {
		_, err := tree.Delete(1)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorContains(t, err, "1")
		require.Equal(t, []int{3, 9, 11}, tree.Keys(InOrder))
		require.Equal(t, 3, tree.Len())
	})
}

func TestTwoChildDeletionPromotesSuccessorKey(t *testing.T) {
	tree := newTree(t, sampleKeys...)
	root := tree.Root()

	_, err := tree.Delete(4)
	require.NoError(t, err)

	// the root node survives and now carries the successor's key
	require.Same(t, root, tree.Root())
	require.Equal(t, 9, tree.Root().Key())
	require.Equal(t, 11, tree.Root().Right().Left().Key())
	require.Same(t, tree.Root().Right(), tree.Root().Right().Left().Parent())
}

func TestSuccessorIsRightChild(t *testing.T) {
	// 20's right child 30 has no left child, so 30 is the successor
	tree := newTree(t, 20, 10, 30, 40)

	_, err := tree.Delete(20)
	require.NoError(t, err)
	require.Equal(t, 30, tree.Root().Key())
	require.Equal(t, 40, tree.Root().Right().Key())
	require.Equal(t, []int{10, 30, 40}, tree.Keys(InOrder))
	require.NoError(t, tree.Verify())
}

func TestInsertDuplicate(t *testing.T) {
	tree := newTree(t, sampleKeys...)
	before := tree.Keys(PreOrder)

	for _, k := range sampleKeys {
		err := tree.Insert(k)
		require.ErrorIs(t, err, ErrDuplicateKey)
	}

	require.Equal(t, before, tree.Keys(PreOrder))
	require.Equal(t, len(sampleKeys), tree.Len())
}

func TestAnchor(t *testing.T) {
	t.Run("empty tree has no anchor", func(t *testing.T) {
		l := New().Anchor(5)
		require.Nil(t, l.Node)
		require.False(t, l.Found)
	})

	tree := newTree(t, sampleKeys...)

	tests := []struct {
		key    int
		anchor int
		found  bool
	}{
		{9, 9, true},
		{2, 1, false},
		{10, 11, false},
		{12, 11, false},
		{100, 23, false},
		{-5, 1, false},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.key), func(t *testing.T) {
			l := tree.Anchor(tt.key)
			require.NotNil(t, l.Node)
			require.Equal(t, tt.anchor, l.Node.Key())
			require.Equal(t, tt.found, l.Found)
		})
	}
}

func TestFind(t *testing.T) {
	tree := newTree(t, sampleKeys...)

	n, ok := tree.Find(1)
	require.True(t, ok)
	require.Equal(t, 1, n.Key())
	require.Equal(t, 3, n.Parent().Key())
	require.True(t, n.IsLeaf())

	n, ok = tree.Find(2)
	require.False(t, ok)
	require.Nil(t, n)

	require.True(t, tree.Contains(23))
	require.False(t, New().Contains(0))
}

func TestDeleteRoot(t *testing.T) {
	t.Run("sole root", func(t *testing.T) {
		tree := newTree(t, 7)
		got, err := tree.Delete(7)
		require.NoError(t, err)
		require.Equal(t, 7, got)
		require.True(t, tree.Empty())
		require.Zero(t, tree.Len())

		// still usable afterwards
		require.NoError(t, tree.Insert(8))
		require.Equal(t, 8, tree.Root().Key())
	})

	t.Run("root with left child only", func(t *testing.T) {
		tree := newTree(t, 7, 3, 1)
		_, err := tree.Delete(7)
		require.NoError(t, err)
		require.Equal(t, 3, tree.Root().Key())
		require.Nil(t, tree.Root().Parent())
		require.NoError(t, tree.Verify())
	})

	t.Run("root with right child only", func(t *testing.T) {
		tree := newTree(t, 7, 9, 8)
		_, err := tree.Delete(7)
		require.NoError(t, err)
		require.Equal(t, 9, tree.Root().Key())
		require.Nil(t, tree.Root().Parent())
		require.NoError(t, tree.Verify())
	})

	t.Run("empty tree", func(t *testing.T) {
		_, err := New().Delete(1)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeletedNodeIsDetached(t *testing.T) {
	tree := newTree(t, 5, 3, 8)
	n, _ := tree.Find(3)

	_, err := tree.Delete(3)
	require.NoError(t, err)
	require.Nil(t, n.Parent())
	require.Nil(t, tree.Root().Left())
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(seed))
	keys := r.Perm(500)

	tree := newTree(t, keys...)
	require.Equal(t, len(keys), tree.Len())

	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		_, err := tree.Delete(k)
		require.NoError(t, err)
	}

	require.True(t, tree.Empty())
	require.Nil(t, tree.Root())
	for _, order := range []Order{InOrder, PreOrder, PostOrder} {
		require.Empty(t, tree.Keys(order), order.String())
	}
}

func TestRandomOperationsKeepInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(seed))
	tree := New()
	present := map[int]bool{}

	for i := 0; i < 5000; i++ {
		key := r.Intn(200)
		size := tree.Len()

		if r.Intn(3) == 0 {
			_, err := tree.Delete(key)
			if present[key] {
				require.NoError(t, err)
				require.Equal(t, size-1, tree.Len())
				delete(present, key)
			} else {
				require.ErrorIs(t, err, ErrNotFound)
				require.Equal(t, size, tree.Len())
			}
		} else {
			err := tree.Insert(key)
			if present[key] {
				require.ErrorIs(t, err, ErrDuplicateKey)
				require.Equal(t, size, tree.Len())
			} else {
				require.NoError(t, err)
				require.Equal(t, size+1, tree.Len())
				present[key] = true
			}
		}

		require.NoError(t, tree.Verify(), "iteration %d", i)
		keys := tree.Keys(InOrder)
		require.True(t, slices.IsSorted(keys))
		require.Len(t, keys, len(present))
	}
}

func TestSuccessorHasNoLeftChild(t *testing.T) {
	r := rand.New(rand.NewSource(seed))
	tree := newTree(t, r.Perm(300)...)

	for n := range nodes(tree.Root()) {
		if n.Left() == nil || n.Right() == nil {
			continue
		}
		s := tree.Successor(n.Right())
		require.Nil(t, s.Left())

		// the successor is the next key in sorted order
		keys := tree.Keys(InOrder)
		i, found := slices.BinarySearch(keys, n.Key())
		require.True(t, found)
		require.Equal(t, keys[i+1], s.Key())
	}

	require.Nil(t, tree.Successor(nil))
}

func TestWalk(t *testing.T) {
	tree := newTree(t, sampleKeys...)

	t.Run("restartable", func(t *testing.T) {
		seq := tree.Walk(InOrder)
		require.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("stops early", func(t *testing.T) {
		for _, order := range []Order{InOrder, PreOrder, PostOrder} {
			var got []int
			for k := range tree.Walk(order) {
				got = append(got, k)
				if len(got) == 2 {
					break
				}
			}
			require.Len(t, got, 2, order.String())
		}
	})

	t.Run("degenerate tree", func(t *testing.T) {
		sorted := newTree(t, 1, 2, 3, 4, 5)
		require.Equal(t, 5, sorted.Height())
		require.Equal(t, []int{5, 4, 3, 2, 1}, sorted.Keys(PostOrder))
		require.Equal(t, []int{1, 2, 3, 4, 5}, sorted.Keys(PreOrder))
	})
}

func TestMinMaxHeight(t *testing.T) {
	empty := New()
	_, ok := empty.Min()
	require.False(t, ok)
	_, ok = empty.Max()
	require.False(t, ok)
	require.Zero(t, empty.Height())

	tree := newTree(t, sampleKeys...)
	lo, _ := tree.Min()
	hi, _ := tree.Max()
	require.Equal(t, 1, lo)
	require.Equal(t, 23, hi)
	require.Equal(t, 4, tree.Height())

	tree.Clear()
	require.True(t, tree.Empty())
	require.Zero(t, tree.Len())
	require.NoError(t, tree.Insert(1))
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in    string
		order Order
	}{
		{"in", InOrder},
		{"InOrder", InOrder},
		{"in-order", InOrder},
		{"PRE", PreOrder},
		{"preorder", PreOrder},
		{" post-order ", PostOrder},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.order, got)
	}

	_, err := ParseOrder("level")
	require.Error(t, err)
	require.Equal(t, "post-order", PostOrder.String())
}

func TestNodeString(t *testing.T) {
	tree := newTree(t, 9, 11)
	require.Equal(t, "Node{key=9, left=nil, right=Node{key=11, left=nil, right=nil}}", tree.Root().String())
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tree := newTree(t, sampleKeys...)
	n, _ := tree.Find(11)
	n.key = 2
	require.ErrorContains(t, tree.Verify(), "not greater than ancestor")

	tree = newTree(t, sampleKeys...)
	n, _ = tree.Find(1)
	n.parent = tree.Root()
	require.ErrorContains(t, tree.Verify(), "stale parent link")

	tree = newTree(t, sampleKeys...)
	tree.size++
	require.ErrorContains(t, tree.Verify(), "Len()")
}

// nodes yields every node in pre-order.
func nodes(root *Node) func(func(*Node) bool) {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		stack := []*Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			for _, c := range []*Node{n.right, n.left} {
				if c != nil {
					stack = append(stack, c)
				}
			}
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	r := rand.New(rand.NewSource(seed))
	keys := r.Perm(benchSize)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := New()
		for _, k := range keys {
			tree.Insert(k)
		}
	}
}

func BenchmarkFind(b *testing.B) {
	r := rand.New(rand.NewSource(seed))
	tree := newTree(b, r.Perm(benchSize)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Find(i % benchSize)
	}
}

func BenchmarkDelete(b *testing.B) {
	r := rand.New(rand.NewSource(seed))
	keys := r.Perm(benchSize)

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		tree := newTree(b, keys...)
		b.StartTimer()
		for _, k := range keys {
			tree.Delete(k)
		}
	}
}
