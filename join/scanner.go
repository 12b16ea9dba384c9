// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"fmt"
	"log"
	"strings"
)

// Options control how CCS rows are joined against an Index.
type Options struct {
	// NA is the placeholder token for unmatched
	// rows. If empty, "NA" is used.
	NA string

	// LenientHeaders allows CCS reports with headers
	// that differ from the first report. The differing
	// headers are logged and discarded.
	LenientHeaders bool

	// Log receives progress and warning messages.
	// If nil, messages are discarded.
	Log *log.Logger
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Log != nil {
		o.Log.Printf(format, args...)
	}
}

// Scanner provides an interface for reading combined rows. Successive calls
// to Next step through the CCS records of each file in turn. A Scanner
// cannot be restarted.
type Scanner struct {
	idx   *Index
	paths []string
	opts  Options

	header Header
	file   int
	t      *Table
	pos    int

	row Row
	err error

	// Skipped holds the CCS report lines that
	// could not be keyed.
	Skipped []*RecordError
}

// Join returns a Scanner over the rows produced by joining the CCS reports
// at paths, in order, against idx. The first report is read immediately so
// that its header is available from the returned Scanner.
func Join(paths []string, idx *Index, opts Options) (*Scanner, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no CCS report", ErrMissingInput)
	}
	t, err := ReadTable(paths[0])
	if err != nil {
		return nil, err
	}
	return &Scanner{
		idx:     idx,
		paths:   paths,
		opts:    opts,
		header:  t.Header,
		t:       t,
		Skipped: t.Skipped,
	}, nil
}

// Header returns the header of the first CCS report.
func (s *Scanner) Header() Header { return s.header }

// Next advances the Scanner to the next row, which will then be available
// through the Row method. It returns false when the scan stops, either by
// reaching the end of the input or an error.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	for s.pos >= len(s.t.Records) {
		if s.file+1 >= len(s.paths) {
			return false
		}
		s.file++
		path := s.paths[s.file]
		t, err := ReadTable(path)
		if err != nil {
			s.err = err
			return false
		}
		if strings.TrimSpace(string(t.Header)) != strings.TrimSpace(string(s.header)) {
			if !s.opts.LenientHeaders {
				s.err = fmt.Errorf("%w: %s: got %q want %q", ErrHeaderMismatch, path, t.Header, s.header)
				return false
			}
			s.opts.logf("discarding differing header of %q: %q", path, t.Header)
		}
		s.Skipped = append(s.Skipped, t.Skipped...)
		s.t = t
		s.pos = 0
	}

	r := s.t.Records[s.pos]
	s.pos++
	s.row = Row{Key: r.Key, CCS: r.Line}
	if line, ok := s.idx.Lookup(r.Key); ok {
		s.row.Matched = true
		s.row.Read = line
	} else {
		s.row.Width = s.idx.Header().Width()
		s.row.NA = s.opts.NA
	}
	return true
}

// Row returns the most recent row read by a call to Next.
func (s *Scanner) Row() Row { return s.row }

// Error returns the first non-EOF error that was encountered by the Scanner.
func (s *Scanner) Error() error { return s.err }
