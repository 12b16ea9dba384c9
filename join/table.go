// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"fmt"
	"os"
	"strings"
)

// Table is the content of a report file.
type Table struct {
	Path    string
	Header  Header
	Records []Record

	// Skipped holds the lines that could not be
	// keyed, in file order.
	Skipped []*RecordError
}

// ReadTable reads the complete report file at path. The first line is the
// header and every following line is keyed on its first two fields. Lines
// with fewer than two fields are recorded in Skipped.
func ReadTable(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return nil, err
	}
	return parseTable(path, string(b))
}

func parseTable(path, data string) (*Table, error) {
	lines := strings.Split(data, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("%w: %s has no header", ErrMissingInput, path)
	}

	t := Table{
		Path:    path,
		Header:  Header(strings.TrimRight(lines[0], "\r")),
		Records: make([]Record, 0, len(lines)-1),
	}
	for i, l := range lines[1:] {
		l = strings.TrimRight(l, "\r")
		n := i + 2
		f := strings.SplitN(l, ",", 3)
		if len(f) < 2 {
			t.Skipped = append(t.Skipped, &RecordError{Path: path, Line: n, Err: ErrMalformedRecord})
			continue
		}
		t.Records = append(t.Records, Record{Key: Key{Movie: f[0], ZMW: f[1]}, Line: l, N: n})
	}
	return &t, nil
}
