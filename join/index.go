// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

// Index maps read report keys to their raw lines. An Index is not modified
// after BuildIndex returns.
type Index struct {
	header Header
	movies map[string]map[string]string
	n      int

	// Duplicates is the number of read report lines
	// that replaced an earlier line with the same key.
	Duplicates int

	// Skipped holds the read report lines that
	// could not be keyed.
	Skipped []*RecordError
}

// BuildIndex reads the read report at path and returns an index of its
// lines. When a key occurs more than once the last line wins.
func BuildIndex(path string) (*Index, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return NewIndex(t), nil
}

// NewIndex returns an index of the records in t.
func NewIndex(t *Table) *Index {
	idx := &Index{
		header:  t.Header,
		movies:  make(map[string]map[string]string),
		Skipped: t.Skipped,
	}
	for _, r := range t.Records {
		zmws, ok := idx.movies[r.Key.Movie]
		if !ok {
			zmws = make(map[string]string)
			idx.movies[r.Key.Movie] = zmws
		}
		if _, dup := zmws[r.Key.ZMW]; dup {
			idx.Duplicates++
		} else {
			idx.n++
		}
		zmws[r.Key.ZMW] = r.Line
	}
	return idx
}

// Header returns the read report header.
func (idx *Index) Header() Header { return idx.header }

// Len returns the number of distinct keys in the index.
func (idx *Index) Len() int { return idx.n }

// Lookup returns the read report line for k.
func (idx *Index) Lookup(k Key) (line string, ok bool) {
	line, ok = idx.movies[k.Movie][k.ZMW]
	return line, ok
}

// Do calls fn for each key and line in the index in unspecified order.
func (idx *Index) Do(fn func(k Key, line string)) {
	for movie, zmws := range idx.movies {
		for zmw, line := range zmws {
			fn(Key{Movie: movie, ZMW: zmw}, line)
		}
	}
}
