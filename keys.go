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
	"os"
	"strconv"
	"strings"

	"github.com/cybrota/bstree/bst"
	"github.com/schollz/progressbar/v3"
)

// LoadKeys reads integer keys from path. Keys are separated by whitespace or
// commas and '#' starts a comment that runs to the end of the line. Files
// larger than progressThreshold bytes show a progress bar on stderr; a
// threshold of 0 disables it.
func LoadKeys(path string, progressThreshold int64) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("key file %s not found", path)
		}
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if stat, err := file.Stat(); err == nil && progressThreshold > 0 && stat.Size() > progressThreshold {
		bar := progressbar.NewOptions64(stat.Size(),
			progressbar.OptionSetDescription("🌳 Reading keys..."),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
		defer bar.Finish()
		reader := progressbar.NewReader(file, bar)
		r = &reader
	}

	keys, err := parseKeyStream(r)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return keys, nil
}

// parseKeyStream returns errors prefixed with the 1-based line number.
func parseKeyStream(r io.Reader) ([]int, error) {
	var keys []int
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, field := range fields {
			k, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%d: invalid key %q", lineNo, field)
			}
			keys = append(keys, k)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// InsertKeys inserts keys in order, counting keys that were already present
// instead of failing on them.
func InsertKeys(t *bst.Tree, keys []int) (inserted, duplicates int) {
	for _, k := range keys {
		err := t.Insert(k)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, bst.ErrDuplicateKey):
			duplicates++
		}
	}
	return inserted, duplicates
}
