// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(dir)
	assert.True(t, errors.Is(err, ErrMissingInput), "unexpected error: %v", err)

	read := writeFile(t, dir, "m0_p0_read_report.csv", "movie,zmw\n")
	_, err = Discover(dir)
	assert.True(t, errors.Is(err, ErrMissingInput), "unexpected error: %v", err)

	b := writeFile(t, dir, "m0_b.ccs.csv", "movie,zmw\n")
	a := writeFile(t, dir, "m0_a.ccs.csv", "movie,zmw\n")
	in, err := Discover(dir + string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, Inputs{Dir: dir, ReadReport: read, CCS: []string{a, b}}, in)

	writeFile(t, dir, "m1_p0_read_report.csv", "movie,zmw\n")
	_, err = Discover(dir)
	assert.True(t, errors.Is(err, ErrAmbiguousInput), "unexpected error: %v", err)
}

func TestOutputPath(t *testing.T) {
	for _, test := range []struct {
		read string
		want string
	}{
		{read: "m141008_p1_s1_read_report.csv", want: "m141008_p1_combined_reads.csv"},
		{read: "run_read_report.csv", want: "run_read_combined_reads.csv"},
		{read: "read_report.csv", want: "read_report.csv_combined_reads.csv"},
	} {
		in := Inputs{Dir: "data", ReadReport: filepath.Join("data", test.read)}
		assert.Equal(t, filepath.Join("data", test.want), OutputPath(in))
	}
}

func TestRunExample(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie1_run_read_report.csv", "movie,zmw,qv\nmovie1,1,30.5\n")
	writeFile(t, dir, "ccs.csv", "movie,zmw,seq\nmovie1,1,ACGT\nmovie1,2,TTTT\n")

	var buf bytes.Buffer
	st, idx, err := Run(Config{Dir: dir, Options: Options{Log: log.New(&buf, "", 0)}})
	require.NoError(t, err)
	require.NotNil(t, idx)

	out := filepath.Join(dir, "movie1_run_combined_reads.csv")
	assert.Equal(t, out, st.Output)
	assert.Equal(t, []string{
		"movie,zmw,qv,movie,zmw,seq",
		"movie1,1,30.5,movie1,1,ACGT",
		"NA,NA,NA,movie1,2,TTTT",
	}, readLines(t, out))

	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 1, st.Matched)
	assert.Equal(t, 1, st.Unmatched)
	assert.Equal(t, map[Key]bool{{"movie1", "1"}: true}, st.Hit)
	require.Len(t, st.Movies, 1)
	assert.Equal(t, MovieCount{Movie: "movie1", Matched: 1, Unmatched: 1}, *st.Movies[0])
	assert.Contains(t, buf.String(), "wrote 2 rows")
}

func TestRunOrderAndPlaceholderWidth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m_p_read_report.csv",
		"movie,zmw,a,b,c,d,e,f\n"+
			"m2,5,1,2,3,4,5,6\n"+
			"m1,9,old,2,3,4,5,6\n"+
			"m1,9,new,2,3,4,5,6\n")
	writeFile(t, dir, "z.ccs.csv", "movie,zmw,len\nm1,9,100\n")
	writeFile(t, dir, "a.ccs.csv", "movie,zmw,len\nm2,5,50\nm3,1,7\n")

	out := filepath.Join(t.TempDir(), "combined.csv")
	st, _, err := Run(Config{Dir: dir, Out: out})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Duplicates)
	assert.Equal(t, []string{
		"movie,zmw,a,b,c,d,e,f,movie,zmw,len",
		"m2,5,1,2,3,4,5,6,m2,5,50",
		"NA,NA,NA,NA,NA,NA,NA,NA,m3,1,7",
		"m1,9,new,2,3,4,5,6,m1,9,100",
	}, readLines(t, out))

	var movies []string
	for _, m := range st.Movies {
		movies = append(movies, m.Movie)
	}
	assert.Equal(t, []string{"m2", "m3", "m1"}, movies)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	_, idx, err := Run(Config{Dir: dir})
	var rerr *RunError
	require.True(t, errors.As(err, &rerr), "unexpected error: %v", err)
	assert.Equal(t, Discovering, rerr.Phase)
	assert.True(t, errors.Is(err, ErrMissingInput))
	assert.Nil(t, idx)

	writeFile(t, dir, "m_p_read_report.csv", "")
	writeFile(t, dir, "a.ccs.csv", "movie,zmw\nm,1\n")
	_, _, err = Run(Config{Dir: dir})
	require.True(t, errors.As(err, &rerr), "unexpected error: %v", err)
	assert.Equal(t, Indexing, rerr.Phase)
	assert.True(t, errors.Is(err, ErrMissingInput))

	writeFile(t, dir, "m_p_read_report.csv", "movie,zmw\n")
	_, _, err = Run(Config{Dir: dir, Out: filepath.Join(dir, "absent", "out.csv")})
	require.True(t, errors.As(err, &rerr), "unexpected error: %v", err)
	assert.Equal(t, Streaming, rerr.Phase)
}

func TestRunPartialOutputOnMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m_p_read_report.csv", "movie,zmw,qv\nm,1,3\n")
	writeFile(t, dir, "a.ccs.csv", "movie,zmw,seq\nm,1,A\n")
	writeFile(t, dir, "b.ccs.csv", "movie,zmw,other\nm,2,C\n")

	st, _, err := Run(Config{Dir: dir})
	assert.True(t, errors.Is(err, ErrHeaderMismatch), "unexpected error: %v", err)
	assert.Equal(t, []string{
		"movie,zmw,qv,movie,zmw,seq",
		"m,1,3,m,1,A",
	}, readLines(t, st.Output))

	st, _, err = Run(Config{Dir: dir, Options: Options{LenientHeaders: true}})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Rows)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "streaming", Streaming.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
