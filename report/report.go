// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes summaries of a completed read report and CCS report join.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/store/llrb"
	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/ccsjoin/join"
)

// ErrNoMovies is returned when a report is requested for a join with no rows.
var ErrNoMovies = errors.New("report: no movies")

// WriteSummary writes a tab separated table of per-movie join counts to w,
// followed by an "all" line. The fraction in the all line is the mean of the
// movie fractions weighted by each movie's CCS row count.
func WriteSummary(w io.Writer, st *join.Stats) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "movie\tccs\tmatched\tunmatched\tfraction")

	frac := make([]float64, len(st.Movies))
	weight := make([]float64, len(st.Movies))
	for i, m := range st.Movies {
		frac[i] = float64(m.Matched) / float64(m.Total())
		weight[i] = float64(m.Total())
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%.4f\n", m.Movie, m.Total(), m.Matched, m.Unmatched, frac[i])
	}
	var all float64
	if len(frac) != 0 {
		all = stat.Mean(frac, weight)
	}
	fmt.Fprintf(bw, "all\t%d\t%d\t%d\t%.4f\n", st.Rows, st.Matched, st.Unmatched, all)
	return bw.Flush()
}

type entry struct {
	key  join.Key
	line string
}

func (e entry) Compare(c llrb.Comparable) int { return e.key.Compare(c.(entry).key) }

// WriteUnmatched writes the read report header and every read report line
// in idx whose key is not in hit to w, ordered by key. It returns the number
// of lines written after the header.
func WriteUnmatched(w io.Writer, idx *join.Index, hit map[join.Key]bool) (int, error) {
	var t llrb.Tree
	idx.Do(func(k join.Key, line string) {
		if !hit[k] {
			t.Insert(entry{key: k, line: line})
		}
	})

	bw := bufio.NewWriter(w)
	_, err := fmt.Fprintln(bw, strings.TrimSpace(string(idx.Header())))
	if err != nil {
		return 0, err
	}
	t.Do(func(c llrb.Comparable) (done bool) {
		_, err = fmt.Fprintln(bw, c.(entry).line)
		return err != nil
	})
	if err != nil {
		return 0, err
	}
	return t.Len(), bw.Flush()
}
