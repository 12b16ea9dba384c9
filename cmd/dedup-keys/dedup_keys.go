// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dedup-keys lists the movie/ZMW keys that occur on more than one line of a
// read report or CCS report CSV file.
//
// ccsjoin keeps the last read report line for a repeated key, so any key
// listed here has had earlier lines discarded from the combined output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/kortschak/ccsjoin/join"
)

var (
	in = flag.String("in", "", "specify input report csv file (required)")
)

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	t, err := join.ReadTable(*in)
	if err != nil {
		log.Fatalf("failed to read %q: %v", *in, err)
	}
	for _, e := range t.Skipped {
		log.Printf("skipping line: %v", e)
	}

	for _, d := range duplicates(t.Records) {
		fmt.Printf("%s\t%v\n", d.key, d.lines)
	}
}

type dup struct {
	key   join.Key
	lines []int
}

// duplicates returns the keys of recs that occur more than once,
// ordered by key, with the line numbers they occur on.
func duplicates(recs []join.Record) []dup {
	lines := make(map[join.Key][]int)
	for _, r := range recs {
		lines[r.Key] = append(lines[r.Key], r.N)
	}
	var d []dup
	for k, n := range lines {
		if len(n) > 1 {
			d = append(d, dup{key: k, lines: n})
		}
	}
	sort.Slice(d, func(i, j int) bool { return d[i].key.Compare(d[j].key) < 0 })
	return d
}
