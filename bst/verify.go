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

import "fmt"

// Verify checks the ordering property, parent back pointers and the node
// count, returning the first violation found.
func (t *Tree) Verify() error {
	if t.root != nil && t.root.parent != nil {
		return fmt.Errorf("root %d has parent %d", t.root.key, t.root.parent.key)
	}

	count, err := verifySubtree(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("tree holds %d nodes but Len() is %d", count, t.size)
	}
	return nil
}

// verifySubtree checks that every key lies strictly between lo and hi (nil
// means unbounded) and that each child points back at its parent.
func verifySubtree(n *Node, lo, hi *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	if lo != nil && n.key <= *lo {
		return 0, fmt.Errorf("key %d is not greater than ancestor %d", n.key, *lo)
	}
	if hi != nil && n.key >= *hi {
		return 0, fmt.Errorf("key %d is not less than ancestor %d", n.key, *hi)
	}
	for _, child := range []*Node{n.left, n.right} {
		if child != nil && child.parent != n {
			return 0, fmt.Errorf("child %d of %d has a stale parent link", child.key, n.key)
		}
	}

	left, err := verifySubtree(n.left, lo, &n.key)
	if err != nil {
		return 0, err
	}
	right, err := verifySubtree(n.right, &n.key, hi)
	if err != nil {
		return 0, err
	}
	return left + right + 1, nil
}
