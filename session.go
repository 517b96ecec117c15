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
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cybrota/bstree/bst"
	"github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

var errEmptyTree = errors.New("tree is empty")

// Session runs text commands against one tree. Every command runs under a
// single lock, so a Session may be shared between the UI loop and renderers.
type Session struct {
	mu    sync.Mutex
	tree  *bst.Tree
	order bst.Order
	log   logrus.FieldLogger
}

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(s *Session, args []string) (string, error)
}

var commands map[string]*command

func init() {
	insert := &command{"insert K...", "add keys", 1, -1, (*Session).insert}
	remove := &command{"delete K...", "remove keys", 1, -1, (*Session).delete}

	commands = map[string]*command{
		"insert":    insert,
		"put":       insert,
		"delete":    remove,
		"remove":    remove,
		"find":      {"find K", "look up a key", 1, 1, (*Session).find},
		"successor": {"successor K", "leftmost key of K's right subtree", 1, 1, (*Session).successor},
		"traverse":  {"traverse [in|pre|post]", "list keys in order", 0, 1, (*Session).traverse},
		"inorder":   {"inorder", "list keys ascending", 0, 0, walkCommand(bst.InOrder)},
		"preorder":  {"preorder", "list keys node-left-right", 0, 0, walkCommand(bst.PreOrder)},
		"postorder": {"postorder", "list keys left-right-node", 0, 0, walkCommand(bst.PostOrder)},
		"len":       {"len", "number of keys", 0, 0, (*Session).length},
		"height":    {"height", "longest root-to-leaf path", 0, 0, (*Session).height},
		"min":       {"min", "smallest key", 0, 0, (*Session).min},
		"max":       {"max", "largest key", 0, 0, (*Session).max},
		"check":     {"check", "verify ordering and links", 0, 0, (*Session).check},
		"shape":     {"shape", "draw the tree", 0, 0, (*Session).shape},
		"clear":     {"clear", "drop every key", 0, 0, (*Session).clear},
		"help":      {"help", "list commands", 0, 0, (*Session).help},
	}
	commands["size"] = commands["len"]
}

// NewSession returns a session over an empty tree.
func NewSession(order bst.Order, log logrus.FieldLogger) *Session {
	return &Session{tree: bst.New(), order: order, log: log}
}

// splitCommand splits a command line into words, honouring shell quoting.
func splitCommand(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %v", line, err)
	}
	return args, nil
}

// Exec runs one command line and returns its output. Blank lines and lines
// starting with '#' produce no output.
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}

	words, err := splitCommand(line)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", nil
	}

	name := strings.ToLower(words[0])
	cmd, ok := commands[name]
	if !ok {
		return "", fmt.Errorf("unknown command %q (try \"help\")", words[0])
	}
	args := words[1:]
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return "", fmt.Errorf("usage: %s", cmd.usage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return cmd.run(s, args)
}

// RunScript executes r line by line, writing each command's output to w.
// Unless keepGoing is set it stops at the first failing line.
func (s *Session) RunScript(r io.Reader, w io.Writer, keepGoing bool) error {
	scanner := bufio.NewScanner(r)
	var failures int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		out, err := s.Exec(scanner.Text())
		if out != "" {
			fmt.Fprintln(w, out)
		}
		if err == nil {
			continue
		}
		err = fmt.Errorf("line %d: %w", lineNo, err)
		if !keepGoing {
			return err
		}
		failures++
		fmt.Fprintf(w, "%serror:%s %v\n", Error, Reset, err)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d command(s) failed", failures)
	}
	return nil
}

// Len returns the current number of keys.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

// Height returns the current tree height.
func (s *Session) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Height()
}

// Shape renders the current tree.
func (s *Session) Shape() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RenderShape(s.tree)
}

// Load inserts keys one at a time, skipping duplicates.
func (s *Session) Load(keys []int) (inserted, duplicates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted, duplicates = InsertKeys(s.tree, keys)
	s.log.WithFields(logrus.Fields{
		"op":         "load",
		"inserted":   inserted,
		"duplicates": duplicates,
		"size":       s.tree.Len(),
	}).Debug("keys loaded")
	return inserted, duplicates
}

func parseKeys(args []string) ([]int, error) {
	var keys []int
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			k, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid key %q", field)
			}
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys given")
	}
	return keys, nil
}

func (s *Session) insert(args []string) (string, error) {
	keys, err := parseKeys(args)
	if err != nil {
		return "", err
	}
	for i, k := range keys {
		if err := s.tree.Insert(k); err != nil {
			s.log.WithFields(logrus.Fields{"op": "insert", "key": k}).Debug(err)
			return "", fmt.Errorf("inserted %d of %d key(s): %w", i, len(keys), err)
		}
		s.log.WithFields(logrus.Fields{"op": "insert", "key": k, "size": s.tree.Len()}).Debug("key inserted")
	}
	return fmt.Sprintf("inserted %s, size %d", joinKeys(keys), s.tree.Len()), nil
}

func (s *Session) delete(args []string) (string, error) {
	keys, err := parseKeys(args)
	if err != nil {
		return "", err
	}
	removed := make([]int, 0, len(keys))
	for i, k := range keys {
		got, err := s.tree.Delete(k)
		if err != nil {
			s.log.WithFields(logrus.Fields{"op": "delete", "key": k}).Debug(err)
			return "", fmt.Errorf("deleted %d of %d key(s): %w", i, len(keys), err)
		}
		removed = append(removed, got)
		s.log.WithFields(logrus.Fields{"op": "delete", "key": got, "size": s.tree.Len()}).Debug("key deleted")
	}
	return fmt.Sprintf("deleted %s, size %d", joinKeys(removed), s.tree.Len()), nil
}

func (s *Session) find(args []string) (string, error) {
	keys, err := parseKeys(args)
	if err != nil {
		return "", err
	}
	n, ok := s.tree.Find(keys[0])
	if !ok {
		return fmt.Sprintf("%d not found", keys[0]), nil
	}
	return fmt.Sprintf("found %d (parent %s, left %s, right %s)",
		n.Key(), keyOf(n.Parent()), keyOf(n.Left()), keyOf(n.Right())), nil
}

func (s *Session) successor(args []string) (string, error) {
	keys, err := parseKeys(args)
	if err != nil {
		return "", err
	}
	n, ok := s.tree.Find(keys[0])
	if !ok {
		return "", fmt.Errorf("%w: %d", bst.ErrNotFound, keys[0])
	}
	if n.Right() == nil {
		return "", fmt.Errorf("%d has no right subtree", keys[0])
	}
	return fmt.Sprintf("successor of %d is %d", n.Key(), s.tree.Successor(n.Right()).Key()), nil
}

func (s *Session) traverse(args []string) (string, error) {
	order := s.order
	if len(args) == 1 {
		o, err := bst.ParseOrder(args[0])
		if err != nil {
			return "", err
		}
		order = o
	}
	return formatWalk(s.tree, order), nil
}

func walkCommand(order bst.Order) func(*Session, []string) (string, error) {
	return func(s *Session, _ []string) (string, error) {
		return formatWalk(s.tree, order), nil
	}
}

func (s *Session) length(_ []string) (string, error) {
	return strconv.Itoa(s.tree.Len()), nil
}

func (s *Session) height(_ []string) (string, error) {
	return strconv.Itoa(s.tree.Height()), nil
}

func (s *Session) min(_ []string) (string, error) {
	k, ok := s.tree.Min()
	if !ok {
		return "", errEmptyTree
	}
	return strconv.Itoa(k), nil
}

func (s *Session) max(_ []string) (string, error) {
	k, ok := s.tree.Max()
	if !ok {
		return "", errEmptyTree
	}
	return strconv.Itoa(k), nil
}

func (s *Session) check(_ []string) (string, error) {
	if err := s.tree.Verify(); err != nil {
		return "", err
	}
	return fmt.Sprintf("ok (%d keys, height %d)", s.tree.Len(), s.tree.Height()), nil
}

func (s *Session) shape(_ []string) (string, error) {
	return RenderShape(s.tree), nil
}

func (s *Session) clear(_ []string) (string, error) {
	n := s.tree.Len()
	s.tree.Clear()
	s.log.WithFields(logrus.Fields{"op": "clear", "removed": n}).Debug("tree cleared")
	return fmt.Sprintf("cleared %d key(s)", n), nil
}

func (s *Session) help(_ []string) (string, error) {
	return commandHelp(), nil
}

// commandHelp lists each command once, aliases included.
func commandHelp() string {
	aliases := map[*command][]string{}
	for name, cmd := range commands {
		aliases[cmd] = append(aliases[cmd], name)
	}

	lines := make([]string, 0, len(aliases))
	for cmd, names := range aliases {
		sort.Strings(names)
		usage := cmd.usage
		if len(names) > 1 {
			usage = fmt.Sprintf("%s (%s)", usage, strings.Join(names, ", "))
		}
		lines = append(lines, fmt.Sprintf("  %-40s %s", usage, cmd.summary))
	}
	sort.Strings(lines)
	return "commands:\n" + strings.Join(lines, "\n")
}

func formatWalk(t *bst.Tree, order bst.Order) string {
	keys := t.Keys(order)
	if len(keys) == 0 {
		return order.String() + ": (empty)"
	}
	return order.String() + ": " + joinKeys(keys)
}

func joinKeys(keys []int) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, " ")
}

func keyOf(n *bst.Node) string {
	if n == nil {
		return "nil"
	}
	return strconv.Itoa(n.Key())
}
