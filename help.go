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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

var version = "v0.1.0"

// helpMarkdown is the guide shown by `bstree usage` and the prompt's F1 panel.
func helpMarkdown() string {
	return fmt.Sprintf(`
**bstree %s**

An ordered, duplicate-free binary search tree of integer keys you can drive
from scripts, an interactive prompt, or a full-screen structure viewer.

Built with Go %s

# 1. Commands
* insert K... / put K...    add keys; a key that exists already is an error
* delete K... / remove K... remove keys; a missing key is an error
* find K                    show the node holding K and its neighbours
* successor K               leftmost key of K's right subtree
* traverse [in|pre|post]    list keys (inorder, preorder, postorder also work)
* len, height, min, max     tree statistics
* check                     verify ordering and parent links
* shape                     draw the tree sideways
* clear                     drop every key

Keys may be separated by spaces or commas: `+"`insert 4,3,1 23`"+`.
Lines starting with # are comments.

# 2. Deleting
* A leaf is unlinked from its parent.
* A node with one child is replaced by that child.
* A node with two children takes the key of its in-order successor (the
  leftmost node of its right subtree) and the successor node is unlinked.

Delete always reports the key you asked for.

# 3. Balance
The tree never rebalances. Inserting keys in sorted order builds a chain;
watch `+"`height`"+` grow.

# License
Licensed under the Apache License, Version 2.0
`, version, runtime.Version())
}

func getHelpMessage() string {
	result := markdown.Render(helpMarkdown(), 80, 3)
	return string(result)
}
