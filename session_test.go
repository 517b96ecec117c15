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
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cybrota/bstree/bst"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSession(bst.InOrder, logger)
}

func TestSessionExec(t *testing.T) {
	s := newTestSession()

	tests := []struct {
		line    string
		want    string
		wantErr string
	}{
		{line: "insert 4 3 1 23 9 11", want: "inserted 4 3 1 23 9 11, size 6"},
		{line: "traverse", want: "in-order: 1 3 4 9 11 23"},
		{line: "traverse pre", want: "pre-order: 4 3 1 23 9 11"},
		{line: "postorder", want: "post-order: 1 3 11 9 23 4"},
		{line: "find 9", want: "found 9 (parent 23, left nil, right 11)"},
		{line: "find 2", want: "2 not found"},
		{line: "successor 4", want: "successor of 4 is 9"},
		{line: "successor 1", wantErr: "1 has no right subtree"},
		{line: "successor 5", wantErr: "key not found: 5"},
		{line: "len", want: "6"},
		{line: "SIZE", want: "6"},
		{line: "height", want: "4"},
		{line: "min", want: "1"},
		{line: "max", want: "23"},
		{line: "insert 5,11,12", wantErr: "inserted 1 of 3 key(s): duplicate key: 11"},
		{line: "len", want: "7"},
		{line: "delete 4", want: "deleted 4, size 6"},
		{line: "remove 23 1", want: "deleted 23 1, size 4"},
		{line: "inorder", want: "in-order: 3 5 9 11"},
		{line: "delete 1", wantErr: "deleted 0 of 1 key(s): key not found: 1"},
		{line: "check", want: "ok (4 keys, height 3)"},
		{line: "  # a comment", want: ""},
		{line: "", want: ""},
		{line: "frobnicate", wantErr: `unknown command "frobnicate"`},
		{line: "find", wantErr: "usage: find K"},
		{line: "find 1 2", wantErr: "usage: find K"},
		{line: "insert x", wantErr: `invalid key "x"`},
		{line: "insert ,", wantErr: "no keys given"},
		{line: "traverse sideways", wantErr: "unknown traversal order"},
		{line: `insert "7`, wantErr: "failed to parse command"},
		{line: "clear", want: "cleared 4 key(s)"},
		{line: "min", wantErr: "tree is empty"},
		{line: "traverse post", want: "post-order: (empty)"},
		{line: "shape", want: "(empty)"},
	}

	for _, tt := range tests {
		got, err := s.Exec(tt.line)
		if tt.wantErr != "" {
			require.ErrorContains(t, err, tt.wantErr, tt.line)
			continue
		}
		require.NoError(t, err, tt.line)
		require.Equal(t, tt.want, got, tt.line)
	}
}

func TestSessionDeleteErrorIsNotFound(t *testing.T) {
	s := newTestSession()
	_, err := s.Exec("delete 3")
	require.ErrorIs(t, err, bst.ErrNotFound)

	_, err = s.Exec("insert 3 3")
	require.ErrorIs(t, err, bst.ErrDuplicateKey)
	require.Equal(t, 1, s.Len())
}

func TestSessionHelpListsEveryCommand(t *testing.T) {
	out, err := newTestSession().Exec("help")
	require.NoError(t, err)
	for name := range commands {
		require.Contains(t, out, name)
	}
	require.Contains(t, out, "insert K... (insert, put)")
}

func TestRunScript(t *testing.T) {
	script := `# build the sample tree
insert 4 3 1 23 9 11
delete 4
bogus
inorder
`

	t.Run("stops at first error", func(t *testing.T) {
		var out bytes.Buffer
		err := newTestSession().RunScript(strings.NewReader(script), &out, false)
		require.ErrorContains(t, err, "line 4: unknown command")
		require.Contains(t, out.String(), "deleted 4, size 5")
		require.NotContains(t, out.String(), "in-order")
	})

	t.Run("keep going", func(t *testing.T) {
		var out bytes.Buffer
		err := newTestSession().RunScript(strings.NewReader(script), &out, true)
		require.ErrorContains(t, err, "1 command(s) failed")
		require.Contains(t, out.String(), "line 4: unknown command")
		require.Contains(t, out.String(), "in-order: 1 3 9 11 23")
	})
}

func TestSessionLogsMutations(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := NewSession(bst.InOrder, logger)

	_, err := s.Exec("insert 2")
	require.NoError(t, err)
	_, err = s.Exec("delete 2")
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, "insert", entries[0].Data["op"])
	require.Equal(t, 2, entries[0].Data["key"])
	require.Equal(t, "delete", entries[1].Data["op"])
	require.Equal(t, 0, entries[1].Data["size"])
}

func TestSessionConcurrentExec(t *testing.T) {
	s := newTestSession()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for k := w; k < 400; k += 4 {
				s.Exec("insert " + strconv.Itoa(k))
				s.Exec("traverse")
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 400, s.Len())
	out, err := s.Exec("check")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ok (400 keys"))
}

func TestSessionLoad(t *testing.T) {
	s := newTestSession()
	inserted, dups := s.Load([]int{5, 1, 5, 9, 1})
	require.Equal(t, 3, inserted)
	require.Equal(t, 2, dups)
	require.Equal(t, 3, s.Len())
	require.Contains(t, s.Shape(), "5")
}
