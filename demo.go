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
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/bstree/bst"
)

type demoStyles struct {
	section lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
}

func newDemoStyles(w io.Writer) demoStyles {
	r := lipgloss.NewRenderer(w)
	p := GetPalette()
	return demoStyles{
		section: r.NewStyle().Foreground(p.Accent).Bold(true),
		label:   r.NewStyle().Foreground(p.Muted),
		ok:      r.NewStyle().Foreground(p.Success),
		failed:  r.NewStyle().Foreground(p.Failure).Bold(true),
	}
}

// deletionCase names which of the three unlink cases key falls into.
func deletionCase(t *bst.Tree, key int) string {
	n, ok := t.Find(key)
	switch {
	case !ok:
		return "absent"
	case n.Left() != nil && n.Right() != nil:
		return "two children"
	case n.IsLeaf():
		return "leaf"
	default:
		return "one child"
	}
}

// runDemo builds a tree from cfg.Keys and walks through lookup, the three
// traversals and the configured deletions. Failed deletions are reported in
// the output and do not stop the demo.
func runDemo(w io.Writer, cfg DemoConfig) error {
	st := newDemoStyles(w)
	tree := bst.New()
	for _, k := range cfg.Keys {
		if err := tree.Insert(k); err != nil {
			return fmt.Errorf("demo keys: %w", err)
		}
	}

	section := func(title string) {
		fmt.Fprintln(w, st.section.Render(fmt.Sprintf("==================== %s ====================", title)))
	}
	line := func(label, value string) {
		trimmed := strings.TrimRight(label, " ")
		fmt.Fprintf(w, "%s%s %s\n", st.label.Render(trimmed), label[len(trimmed):], value)
	}

	fmt.Fprintf(w, "keys: %s\n\n", joinKeys(cfg.Keys))

	section("1. Find")
	if n, ok := tree.Find(cfg.Find); ok {
		line(fmt.Sprintf("find %d:", cfg.Find), n.String())
	} else {
		line(fmt.Sprintf("find %d:", cfg.Find), "not found")
	}

	section("2. Traversals")
	for _, order := range []bst.Order{bst.InOrder, bst.PreOrder, bst.PostOrder} {
		label := order.String() + ":"
		line(label+strings.Repeat(" ", len("post-order:")-len(label)), joinKeys(tree.Keys(order)))
	}
	fmt.Fprintln(w, RenderShape(tree))

	section("3. Delete")
	if root := tree.Root(); root != nil && root.Right() != nil {
		s := tree.Successor(root.Right())
		line(fmt.Sprintf("successor in right subtree of root (%d):", root.Right().Key()), s.String())
	}
	for _, k := range cfg.Delete {
		kind := deletionCase(tree, k)
		got, err := tree.Delete(k)
		if err != nil {
			line(fmt.Sprintf("delete %d (%s):", k, kind), st.failed.Render(err.Error()))
			continue
		}
		line(fmt.Sprintf("delete %d (%s):", k, kind), st.ok.Render(fmt.Sprintf("removed %d", got)))
		line("  in-order:", joinKeys(tree.Keys(bst.InOrder)))
	}

	if err := tree.Verify(); err != nil {
		return fmt.Errorf("demo tree is inconsistent: %w", err)
	}
	return nil
}
