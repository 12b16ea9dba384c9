// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	readReportPattern = "*read_report.csv"
	ccsReportPattern  = "*ccs.csv"
	combinedSuffix    = "_combined_reads.csv"
)

// Phase is a stage of a Run.
type Phase int

const (
	Discovering Phase = iota
	Indexing
	Streaming
	Done
)

func (p Phase) String() string {
	switch p {
	case Discovering:
		return "discovering"
	case Indexing:
		return "indexing"
	case Streaming:
		return "streaming"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// RunError is returned by Run. Phase is the stage that failed.
type RunError struct {
	Phase Phase
	Err   error
}

func (e *RunError) Error() string { return fmt.Sprintf("%v failed: %v", e.Phase, e.Err) }

func (e *RunError) Unwrap() error { return e.Err }

// Inputs holds the report files found in an input directory.
type Inputs struct {
	Dir        string
	ReadReport string

	// CCS holds the CCS reports in discovery order.
	CCS []string
}

// Discover finds the read report and CCS reports in dir. Exactly one read
// report must be present and at least one CCS report.
func Discover(dir string) (Inputs, error) {
	dir = filepath.Clean(dir)
	reads, err := filepath.Glob(filepath.Join(dir, readReportPattern))
	if err != nil {
		return Inputs{}, err
	}
	switch len(reads) {
	case 0:
		return Inputs{}, fmt.Errorf("%w: no %s in %q", ErrMissingInput, readReportPattern, dir)
	case 1:
	default:
		return Inputs{}, fmt.Errorf("%w: %d read reports in %q: %v", ErrAmbiguousInput, len(reads), dir, reads)
	}
	ccs, err := filepath.Glob(filepath.Join(dir, ccsReportPattern))
	if err != nil {
		return Inputs{}, err
	}
	if len(ccs) == 0 {
		return Inputs{}, fmt.Errorf("%w: no %s in %q", ErrMissingInput, ccsReportPattern, dir)
	}
	return Inputs{Dir: dir, ReadReport: reads[0], CCS: ccs}, nil
}

// OutputPath returns the path of the combined output for in. The file name
// is the first two underscore separated tokens of the read report name
// followed by "_combined_reads.csv".
func OutputPath(in Inputs) string {
	tok := strings.Split(filepath.Base(in.ReadReport), "_")
	if len(tok) > 2 {
		tok = tok[:2]
	}
	return filepath.Join(in.Dir, strings.Join(tok, "_")+combinedSuffix)
}

// Config holds the parameters of a Run.
type Config struct {
	// Dir is the directory holding the input reports.
	Dir string

	// Out is the combined output path. If empty,
	// the path is derived by OutputPath.
	Out string

	Options
}

// MovieCount holds the join counts for a single movie.
type MovieCount struct {
	Movie     string
	Matched   int
	Unmatched int
}

// Total returns the number of CCS rows for the movie.
func (m *MovieCount) Total() int { return m.Matched + m.Unmatched }

// Stats summarises a Run.
type Stats struct {
	Inputs Inputs
	Output string

	Rows      int
	Matched   int
	Unmatched int

	// Skipped is the number of input lines that
	// could not be keyed.
	Skipped int

	// Duplicates is the number of read report lines
	// replaced by a later line with the same key.
	Duplicates int

	// Movies holds per-movie counts in the order
	// movies were first seen in the CCS reports.
	Movies []*MovieCount

	// Hit is the set of read report keys referenced
	// by at least one CCS row.
	Hit map[Key]bool

	movies map[string]*MovieCount
}

func newStats() *Stats {
	return &Stats{
		Hit:    make(map[Key]bool),
		movies: make(map[string]*MovieCount),
	}
}

func (s *Stats) add(r Row) {
	m, ok := s.movies[r.Key.Movie]
	if !ok {
		m = &MovieCount{Movie: r.Key.Movie}
		s.movies[r.Key.Movie] = m
		s.Movies = append(s.Movies, m)
	}
	s.Rows++
	if r.Matched {
		s.Matched++
		m.Matched++
		s.Hit[r.Key] = true
	} else {
		s.Unmatched++
		m.Unmatched++
	}
}

// Run joins the reports in cfg.Dir and writes the combined rows to the
// output file. The index is complete before the output file is created.
// Rows written before a failure are left in the output file.
//
// The returned Index is nil if the run fails before indexing completes.
func Run(cfg Config) (*Stats, *Index, error) {
	st := newStats()
	phase := Discovering
	fail := func(err error) error { return &RunError{Phase: phase, Err: err} }

	in, err := Discover(cfg.Dir)
	if err != nil {
		return st, nil, fail(err)
	}
	st.Inputs = in
	st.Output = cfg.Out
	if st.Output == "" {
		st.Output = OutputPath(in)
	}

	phase = Indexing
	cfg.logf("indexing %q", in.ReadReport)
	idx, err := BuildIndex(in.ReadReport)
	if err != nil {
		return st, nil, fail(err)
	}
	for _, e := range idx.Skipped {
		cfg.logf("skipping line: %v", e)
	}
	st.Skipped = len(idx.Skipped)
	st.Duplicates = idx.Duplicates
	if idx.Duplicates != 0 {
		cfg.logf("%d duplicate keys in %q: keeping last line", idx.Duplicates, in.ReadReport)
	}
	sc, err := Join(in.CCS, idx, cfg.Options)
	if err != nil {
		return st, idx, fail(err)
	}

	phase = Streaming
	cfg.logf("writing %d CCS report(s) to %q", len(in.CCS), st.Output)
	f, err := os.Create(st.Output)
	if err != nil {
		return st, idx, fail(err)
	}
	w := bufio.NewWriter(f)
	_, err = w.WriteString(CombinedHeader(idx.Header(), sc.Header()))
	for err == nil && sc.Next() {
		r := sc.Row()
		_, err = w.WriteString(r.String() + "\n")
		st.add(r)
	}
	if err == nil {
		err = sc.Error()
	}
	for _, e := range sc.Skipped {
		cfg.logf("skipping line: %v", e)
	}
	st.Skipped += len(sc.Skipped)
	ferr := w.Flush()
	cerr := f.Close()
	for _, e := range []error{err, ferr, cerr} {
		if e != nil {
			return st, idx, fail(e)
		}
	}

	cfg.logf("wrote %d rows: %d matched, %d unmatched", st.Rows, st.Matched, st.Unmatched)
	return st, idx, nil
}
