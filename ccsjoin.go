// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ccsjoin combines the read report and CCS report CSV exports of a PacBio
// CCS analysis held in a single directory.
//
// Every CCS report row is written to <prefix>_combined_reads.csv in the input
// directory, prefixed by the read report row with the same movie and ZMW, or
// by NA fields when the read report has no such row. The prefix is the first
// two underscore separated tokens of the read report file name.
//
// Usage:
//
//	ccsjoin [options] <input-directory>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/ccsjoin/join"
	"github.com/kortschak/ccsjoin/report"
)

var (
	outFile   = flag.String("out", "", "output file name (default to <prefix>_combined_reads.csv in the input directory)")
	na        = flag.String("na", "NA", "placeholder field for CCS rows without a read report row")
	lenient   = flag.Bool("lenient-headers", false, "discard differing CCS report headers instead of failing")
	unmatched = flag.String("unmatched", "", "output file name for read report rows with no CCS row")
	summary   = flag.String("summary", "", "output file name for per-movie join counts")
	plotFile  = flag.String("plot", "", "output image file name for per-movie join counts (eps, jpg, pdf, png, svg or tiff)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <input-directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	log.Printf("joining reports in %q", flag.Arg(0))
	st, idx, err := join.Run(join.Config{
		Dir: flag.Arg(0),
		Out: *outFile,
		Options: join.Options{
			NA:             *na,
			LenientHeaders: *lenient,
			Log:            log.New(os.Stderr, "", log.LstdFlags),
		},
	})
	if err != nil {
		log.Fatalf("failed to join reports: %v", err)
	}

	if *unmatched != "" {
		f, err := os.Create(*unmatched)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *unmatched, err)
		}
		n, err := report.WriteUnmatched(f, idx, st.Hit)
		if err != nil {
			log.Fatalf("failed to write unmatched read report rows: %v", err)
		}
		err = f.Close()
		if err != nil {
			log.Fatalf("failed to close %q: %v", *unmatched, err)
		}
		log.Printf("wrote %d unmatched read report rows to %q", n, *unmatched)
	}

	if *summary != "" {
		f, err := os.Create(*summary)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *summary, err)
		}
		err = report.WriteSummary(f, st)
		if err != nil {
			log.Fatalf("failed to write summary: %v", err)
		}
		err = f.Close()
		if err != nil {
			log.Fatalf("failed to close %q: %v", *summary, err)
		}
	}

	if *plotFile != "" {
		err = report.PlotMovies(*plotFile, st)
		if err != nil {
			log.Fatalf("failed to plot movie counts: %v", err)
		}
	}
}
