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
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Order selects a depth-first traversal.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "in-order"
	case PreOrder:
		return "pre-order"
	case PostOrder:
		return "post-order"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder accepts "in", "inorder" or "in-order" (likewise pre and post),
// ignoring case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inorder", "in-order":
		return InOrder, nil
	case "pre", "preorder", "pre-order":
		return PreOrder, nil
	case "post", "postorder", "post-order":
		return PostOrder, nil
	}
	return 0, fmt.Errorf("unknown traversal order %q", s)
}

// Walk returns the keys in the given order. The sequence is lazy and can be
// ranged over any number of times; it reflects the tree as it is when each
// iteration starts and must not be used while the tree is being mutated.
func (t *Tree) Walk(order Order) iter.Seq[int] {
	switch order {
	case PreOrder:
		return t.PreOrder()
	case PostOrder:
		return t.PostOrder()
	default:
		return t.InOrder()
	}
}

// InOrder yields keys in ascending order.
func (t *Tree) InOrder() iter.Seq[int] {
	return func(yield func(int) bool) {
		stack := []*Node{}
		current := t.root
		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key) {
				return
			}

			current = current.right
		}
	}
}

// PreOrder yields each key before the keys of its left then right subtree.
func (t *Tree) PreOrder() iter.Seq[int] {
	return func(yield func(int) bool) {
		if t.root == nil {
			return
		}
		stack := []*Node{t.root}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key) {
				return
			}

			// right first so left is popped first
			if current.right != nil {
				stack = append(stack, current.right)
			}
			if current.left != nil {
				stack = append(stack, current.left)
			}
		}
	}
}

// PostOrder yields each key after the keys of its left then right subtree.
func (t *Tree) PostOrder() iter.Seq[int] {
	return func(yield func(int) bool) {
		stack := []*Node{}
		var last *Node
		current := t.root
		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			top := stack[len(stack)-1]
			if top.right != nil && top.right != last {
				current = top.right
				continue
			}

			stack = stack[:len(stack)-1]
			if !yield(top.key) {
				return
			}
			last = top
		}
	}
}

// Keys collects a traversal into a slice.
func (t *Tree) Keys(order Order) []int {
	keys := make([]int, 0, t.size)
	return slices.AppendSeq(keys, t.Walk(order))
}
