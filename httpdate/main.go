package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	u "github.com/araddon/gou"
	"github.com/scylladb/termtables"

	"github.com/araddon/httpdate"
)

var (
	chunk   = 0
	fold    = false
	pivot   = false
	verbose = false
)

func main() {
	flag.IntVar(&chunk, "chunk", 0, "feed each date through the streaming parser `N` bytes at a time, CRLF terminated")
	flag.BoolVar(&fold, "fold", false, "match weekday, month and GMT case-insensitively")
	flag.BoolVar(&pivot, "pivot", false, "place two digit years with the 70/69 pivot instead of the weekday")
	flag.BoolVar(&verbose, "v", false, "log every state transition")
	flag.Parse()

	if verbose {
		u.SetupLogging("debug")
	} else {
		u.SetupLogging("warn")
	}
	u.SetColorIfTerminal()

	if len(flag.Args()) == 0 {
		fmt.Println(`Must pass   ./httpdate "Sun, 06 Nov 1994 08:49:37 GMT"   (or - to read lines from stdin)`)
		return
	}

	opts := []httpdate.ParserOption{httpdate.FoldCase(fold), httpdate.Trace(verbose)}
	if pivot {
		opts = append(opts, httpdate.TwoDigitYears(httpdate.PivotCentury))
	}
	p, err := httpdate.NewParser(opts...)
	if err != nil {
		u.Errorf("could not build parser: %v", err)
		os.Exit(1)
	}

	inputs := flag.Args()
	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0]
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			u.Errorf("reading stdin: %v", err)
			os.Exit(1)
		}
	}

	table := termtables.CreateTable()
	table.AddHeaders("Input", "Format", "Timestamp", "UTC", "IMF-fixdate")

	failed := 0
	for _, datestr := range inputs {
		var d httpdate.PartialDate
		ok := false
		if chunk > 0 {
			ok = parseChunked(p, datestr, &d)
		} else if d, err = p.ParseDate(datestr); err == nil {
			ok = true
		} else {
			u.Warnf("%v", err)
		}
		if !ok {
			failed++
			table.AddRow(datestr, "-", "-", "-", "-")
			continue
		}
		table.AddRow(datestr, d.Format().String(), fmt.Sprintf("%d", d.Timestamp()),
			fmt.Sprintf("%v", d.Time()), httpdate.FormatTimestamp(d.Timestamp(), httpdate.IMFFixdate))
	}

	fmt.Println(table.Render())
	if failed > 0 {
		os.Exit(2)
	}
}

// parseChunked hands the date to the streaming parser in small fragments,
// the way it would arrive off a slow connection.
func parseChunked(p *httpdate.Parser, datestr string, d *httpdate.PartialDate) bool {
	buf := []byte(datestr + "\r\n")
	var st httpdate.State
	for len(buf) > 0 && !st.Done() {
		n := chunk
		if n > len(buf) {
			n = len(buf)
		}
		var used int
		st, used = p.ParseStreaming(st, buf[:n], d)
		u.Debugf("fragment %q consumed %d, state %v", buf[:n], used, st)
		buf = buf[used:]
	}
	if !st.Valid() {
		u.Warnf("could not parse %q, ended in %v", datestr, st)
	}
	return st.Valid()
}
