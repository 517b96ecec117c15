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
	"strings"

	"github.com/atotto/clipboard"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	tb "github.com/nsf/termbox-go"

	"github.com/cybrota/bstree/bst"
)

// DisableMouseInput in termbox-go. This should be called after ui.Init()
func DisableMouseInput() {
	tb.SetInputMode(tb.InputEsc)
}

// nodeLabel is the value shown for one row of the structure tree.
type nodeLabel struct {
	node *bst.Node
	side string // "", "L" or "R"
}

func (l nodeLabel) String() string {
	if l.side == "" {
		return fmt.Sprint(l.node.Key())
	}
	return fmt.Sprintf("%s: %d", l.side, l.node.Key())
}

// buildViewNodes converts the subtree at root into expanded widget nodes,
// left child listed before right.
func buildViewNodes(root *bst.Node) []*widgets.TreeNode {
	if root == nil {
		return nil
	}
	return []*widgets.TreeNode{buildViewNode(root, "")}
}

func buildViewNode(n *bst.Node, side string) *widgets.TreeNode {
	tn := &widgets.TreeNode{
		Value:    nodeLabel{node: n, side: side},
		Expanded: true,
	}
	if n.Left() != nil {
		tn.Nodes = append(tn.Nodes, buildViewNode(n.Left(), "L"))
	}
	if n.Right() != nil {
		tn.Nodes = append(tn.Nodes, buildViewNode(n.Right(), "R"))
	}
	return tn
}

// describeNode is the detail panel text for the selected row.
func describeNode(t *bst.Tree, n *bst.Node) string {
	if n == nil {
		return "The tree is empty."
	}

	var path []string
	for p := n; p != nil; p = p.Parent() {
		path = append([]string{fmt.Sprint(p.Key())}, path...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[Key](fg:green): %d\n", n.Key())
	fmt.Fprintf(&b, "[Path](fg:green): %s\n", strings.Join(path, " → "))
	fmt.Fprintf(&b, "[Depth](fg:green): %d\n", len(path))
	fmt.Fprintf(&b, "[Parent](fg:green): %s\n", keyOf(n.Parent()))
	fmt.Fprintf(&b, "[Left](fg:green): %s\n", keyOf(n.Left()))
	fmt.Fprintf(&b, "[Right](fg:green): %s\n", keyOf(n.Right()))
	if n.Right() != nil {
		fmt.Fprintf(&b, "[Successor](fg:green): %d\n", t.Successor(n.Right()).Key())
	}
	fmt.Fprintf(&b, "\n[Tree](fg:green): %d keys, height %d", t.Len(), t.Height())
	return b.String()
}

func selectedBSTNode(w *widgets.Tree) *bst.Node {
	sel := w.SelectedNode()
	if sel == nil {
		return nil
	}
	if l, ok := sel.Value.(nodeLabel); ok {
		return l.node
	}
	return nil
}

// runViewer shows t in a full-screen termui tree widget until the user quits.
func runViewer(t *bst.Tree) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	DisableMouseInput()
	defer ui.Close()

	scheme := GetColorScheme()

	structure := widgets.NewTree()
	structure.Title = " Structure "
	structure.TextStyle = ui.NewStyle(scheme.Text)
	structure.SelectedRowStyle = ui.NewStyle(scheme.OnPrimary, scheme.Primary, ui.ModifierBold)
	structure.BorderStyle = StyleBorder(true)
	structure.SetNodes(buildViewNodes(t.Root()))

	details := widgets.NewParagraph()
	details.Title = " Node "
	details.WrapText = true
	details.BorderStyle = StyleBorder(false)
	details.Text = describeNode(t, selectedBSTNode(structure))

	traversals := widgets.NewParagraph()
	traversals.Title = " Traversals "
	traversals.WrapText = true
	traversals.BorderStyle = StyleBorder(false)
	traversals.Text = strings.Join([]string{
		formatWalk(t, bst.InOrder),
		formatWalk(t, bst.PreOrder),
		formatWalk(t, bst.PostOrder),
	}, "\n")

	keyboard := widgets.NewParagraph()
	keyboard.Title = " Keyboard Shortcuts "
	keyboard.BorderStyle = StyleBorder(false)
	keyboard.Text = `[<up>/<down>](fg:green) or [j/k](fg:green) -> Move selection
[<enter>](fg:green) -> Expand or collapse subtree
[E](fg:green) / [C](fg:green) -> Expand or collapse all
[<ctrl> + z](fg:green) -> Copy selected key
[q](fg:green), [<esc>](fg:green) or [<ctrl> + c](fg:green) -> Quit`

	termWidth, termHeight := ui.TerminalDimensions()
	grid := ui.NewGrid()
	grid.SetRect(0, 0, termWidth, termHeight)
	grid.Set(
		ui.NewCol(0.5, structure),
		ui.NewCol(0.5,
			ui.NewRow(0.4, details),
			ui.NewRow(0.35, traversals),
			ui.NewRow(0.25, keyboard),
		),
	)
	ui.Render(grid)

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return nil
		case "j", "<Down>":
			structure.ScrollDown()
		case "k", "<Up>":
			structure.ScrollUp()
		case "<Enter>":
			structure.ToggleExpand()
		case "E":
			structure.ExpandAll()
		case "C":
			structure.CollapseAll()
		case "g", "<Home>":
			structure.ScrollTop()
		case "G", "<End>":
			structure.ScrollBottom()
		case "<C-z>":
			if n := selectedBSTNode(structure); n != nil {
				if err := clipboard.WriteAll(fmt.Sprint(n.Key())); err != nil {
					Log.Warnf("Failed to copy key: %v", err)
				}
			}
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			grid.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
		}

		details.Text = describeNode(t, selectedBSTNode(structure))
		ui.Render(grid)
	}
}
