// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package join provides an outer join of PacBio read report and CCS report
// CSV exports on their shared movie and ZMW key.
//
// The CSV handling is deliberately simple: fields are separated by commas
// and no quoting is understood, so a field containing a literal comma will
// misalign the key and the placeholder width.
package join

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMissingInput is returned when a required input file is absent
	// or has no header line.
	ErrMissingInput = errors.New("join: missing input")

	// ErrAmbiguousInput is returned when more than one read report
	// is found in the input directory.
	ErrAmbiguousInput = errors.New("join: ambiguous input")

	// ErrMalformedRecord is wrapped by RecordError for data lines that
	// do not hold a movie and ZMW field.
	ErrMalformedRecord = errors.New("join: malformed record")

	// ErrHeaderMismatch is returned when a CCS report's header differs
	// from the header of the first CCS report.
	ErrHeaderMismatch = errors.New("join: header mismatch")
)

// RecordError describes a problem with a single line of an input file.
type RecordError struct {
	Path string
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Key is the join key shared by read report and CCS report rows.
type Key struct {
	Movie string
	ZMW   string
}

func (k Key) String() string { return k.Movie + "/" + k.ZMW }

// Compare returns -1, 0 or 1 depending on whether k sorts before, with or
// after o. Keys are ordered by movie and then by ZMW, numerically when both
// ZMWs are integers. Numerically equal ZMWs with different text, "01" and
// "1", are ordered lexically.
func (k Key) Compare(o Key) int {
	switch {
	case k.Movie < o.Movie:
		return -1
	case k.Movie > o.Movie:
		return 1
	}
	a, aerr := strconv.Atoi(k.ZMW)
	b, berr := strconv.Atoi(o.ZMW)
	if aerr == nil && berr == nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return strings.Compare(k.ZMW, o.ZMW)
}

// Record is a data line of a report file.
type Record struct {
	Key Key

	// Line is the raw text of the line with any
	// trailing line terminator removed.
	Line string

	// N is the 1-based line number in the file.
	N int
}

// Header is the raw header line of a report file.
type Header string

// Width returns the number of comma separated columns in h.
func (h Header) Width() int {
	return strings.Count(strings.TrimSpace(string(h)), ",") + 1
}

// CombinedHeader returns the header line of the combined output, including
// its line terminator.
func CombinedHeader(read, ccs Header) string {
	return strings.TrimSpace(string(read)) + "," + strings.TrimSpace(string(ccs)) + "\n"
}

// Row is a combined output row. A matched row holds the read report line for
// the CCS record's key. An unmatched row is rendered with a placeholder of
// Width fields.
type Row struct {
	Key     Key
	Matched bool

	// Read is the read report line of a matched row.
	Read string

	// Width is the placeholder field count of an unmatched row.
	Width int
	// NA is the placeholder token. If empty, "NA" is used.
	NA string

	CCS string
}

// Placeholder returns a line of n comma separated na tokens.
func Placeholder(na string, n int) string {
	if na == "" {
		na = "NA"
	}
	if n < 1 {
		n = 1
	}
	return strings.Repeat(na+",", n-1) + na
}

// String returns the text of the row without a line terminator.
func (r Row) String() string {
	if r.Matched {
		return r.Read + "," + r.CCS
	}
	return Placeholder(r.NA, r.Width) + "," + r.CCS
}
