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

// Package bst implements an unbalanced binary search tree of unique int keys.
//
// For every node, keys in its left subtree are smaller and keys in its right
// subtree are larger. The tree never rotates, so inserting keys in sorted
// order degrades it to a linked list. A Tree is not safe for concurrent use;
// callers that share one must hold a single lock around every call.
package bst

import "fmt"

// Tree is a binary search tree. The zero value is an empty tree ready to use.
type Tree struct {
	root *Node
	size int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Lookup is the result of an anchor lookup. Node is nil only when the tree
// is empty. When Found is false, Node is the node whose empty child slot is
// where the key would be attached.
type Lookup struct {
	Node  *Node
	Found bool
}

func (t *Tree) Root() *Node { return t.root }

func (t *Tree) Len() int { return t.size }

func (t *Tree) Empty() bool { return t.root == nil }

// Anchor descends from the root comparing key at each node and stops at an
// exact match or at the first node missing the child on the required side.
func (t *Tree) Anchor(key int) Lookup {
	current := t.root
	for current != nil {
		switch {
		case key < current.key:
			if current.left == nil {
				return Lookup{Node: current}
			}
			current = current.left
		case key > current.key:
			if current.right == nil {
				return Lookup{Node: current}
			}
			current = current.right
		default:
			return Lookup{Node: current, Found: true}
		}
	}
	return Lookup{}
}

// Find returns the node holding key.
func (t *Tree) Find(key int) (*Node, bool) {
	l := t.Anchor(key)
	if !l.Found {
		return nil, false
	}
	return l.Node, true
}

// Contains reports whether key is stored in the tree.
func (t *Tree) Contains(key int) bool {
	_, ok := t.Find(key)
	return ok
}

// Insert adds key to the tree. Inserting a key that is already present
// returns ErrDuplicateKey and leaves the tree untouched.
func (t *Tree) Insert(key int) error {
	l := t.Anchor(key)
	if l.Found {
		return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}

	n := &Node{key: key}
	switch {
	case l.Node == nil:
		t.root = n
	case key < l.Node.key:
		l.Node.left = n
		n.parent = l.Node
	default:
		l.Node.right = n
		n.parent = l.Node
	}
	t.size++
	return nil
}

// Successor returns the leftmost node of the subtree rooted at n. Passing a
// two-child node's right child yields that node's in-order successor, which
// never has a left child.
func (t *Tree) Successor(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// Delete removes key from the tree and returns it. A node with two children
// is not unlinked itself: it takes over its successor's key and the successor
// node is removed in its place. The returned key is always the one requested.
func (t *Tree) Delete(key int) (int, error) {
	n, ok := t.Find(key)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, key)
	}

	if n.left != nil && n.right != nil {
		s := t.Successor(n.right)
		n.key = s.key
		n = s
	}

	child := n.left
	if child == nil {
		child = n.right
	}
	t.replace(n, child)
	n.detach()
	t.size--

	return key, nil
}

// replace puts child into n's slot in n's parent, or makes it the root.
func (t *Tree) replace(n, child *Node) {
	parent := n.parent
	if child != nil {
		child.parent = parent
	}
	switch {
	case parent == nil:
		t.root = child
	case parent.left == n:
		parent.left = child
	default:
		parent.right = child
	}
}

// Min returns the smallest key.
func (t *Tree) Min() (int, bool) {
	if t.root == nil {
		return 0, false
	}
	return t.Successor(t.root).key, true
}

// Max returns the largest key.
func (t *Tree) Max() (int, bool) {
	if t.root == nil {
		return 0, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// Height counts the nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}
	type level struct {
		node  *Node
		depth int
	}
	height := 0
	stack := []level{{t.root, 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, top.depth)
		if top.node.left != nil {
			stack = append(stack, level{top.node.left, top.depth + 1})
		}
		if top.node.right != nil {
			stack = append(stack, level{top.node.right, top.depth + 1})
		}
	}
	return height
}

// Clear drops every node. The tree stays usable.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
}
