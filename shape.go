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

package main

import (
	"strconv"
	"strings"

	"github.com/cybrota/bstree/bst"
)

type edge int

const (
	edgeRoot edge = iota
	edgeRight
	edgeLeft
)

// RenderShape draws the tree sideways: right subtrees above their parent,
// left subtrees below.
//
//	┌── 23
//	│   │   ┌── 11
//	│   └── 9
//	4
//	└── 3
//	    └── 1
func RenderShape(t *bst.Tree) string {
	if t.Empty() {
		return "(empty)"
	}
	var b strings.Builder
	writeShape(&b, t.Root(), "", edgeRoot)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShape(b *strings.Builder, n *bst.Node, prefix string, e edge) {
	if n.Right() != nil {
		writeShape(b, n.Right(), childPrefix(prefix, e, edgeLeft), edgeRight)
	}

	b.WriteString(prefix)
	switch e {
	case edgeRight:
		b.WriteString("┌── ")
	case edgeLeft:
		b.WriteString("└── ")
	}
	b.WriteString(strconv.Itoa(n.Key()))
	b.WriteByte('\n')

	if n.Left() != nil {
		writeShape(b, n.Left(), childPrefix(prefix, e, edgeRight), edgeLeft)
	}
}

// childPrefix continues the vertical rule when the child sits on the far
// side of the parent's own edge.
func childPrefix(prefix string, e, ruled edge) string {
	switch e {
	case edgeRoot:
		return prefix
	case ruled:
		return prefix + "│   "
	default:
		return prefix + "    "
	}
}
