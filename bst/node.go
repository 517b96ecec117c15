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
	"strconv"
	"strings"
)

// Node is a single key in the tree. The key is its own payload.
type Node struct {
	key         int
	left, right *Node
	parent      *Node // nil for the root
}

func (n *Node) Key() int { return n.key }

func (n *Node) Left() *Node { return n.left }

func (n *Node) Right() *Node { return n.right }

// Parent returns nil for the root and for detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// String renders the node and its subtrees, e.g.
// Node{key=9, left=nil, right=Node{key=11, left=nil, right=nil}}
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString("Node{key=")
	b.WriteString(strconv.Itoa(n.key))
	b.WriteString(", left=")
	n.left.writeTo(b)
	b.WriteString(", right=")
	n.right.writeTo(b)
	b.WriteString("}")
}

// detach clears every link so a removed node no longer pins the tree.
func (n *Node) detach() {
	n.left, n.right, n.parent = nil, nil, nil
}
