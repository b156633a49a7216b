package httpdate

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOne(t *testing.T) {
	ts, err := Parse("Sun, 06 Nov 1994 08:49:37 GMT")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(784111777), ts)
}

type dateTest struct {
	in  string
	out int64
	err bool
}

func unix(year int, month time.Month, day, hour, min, sec int) int64 {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC).Unix()
}

var testInputs = []dateTest{
	// the same instant in all three formats
	{in: "Sun, 06 Nov 1994 08:49:37 GMT", out: 784111777},
	{in: "Sunday, 06-Nov-94 08:49:37 GMT", out: 784111777},
	{in: "Sun Nov  6 08:49:37 1994", out: 784111777},
	{in: "Sun Nov 06 08:49:37 1994", out: 784111777},
	// epoch
	{in: "Thu, 01 Jan 1970 00:00:00 GMT", out: 0},
	{in: "Thursday, 01-Jan-70 00:00:00 GMT", out: 0},
	{in: "Thu Jan  1 00:00:00 1970", out: 0},
	{in: "Thu, 01 Jan 1970 00:00:01 GMT", out: 1},
	{in: "Wed, 31 Dec 1969 23:59:59 GMT", err: true},
	{in: "Wed Dec 31 23:59:59 1969", err: true},
	// leap days
	{in: "Tue, 29 Feb 2000 12:34:56 GMT", out: 951827696},
	{in: "Tuesday, 29-Feb-00 12:34:56 GMT", out: 951827696},
	{in: "Tue Feb 29 12:34:56 2000", out: 951827696},
	{in: "Wed, 29 Feb 2012 23:59:59 GMT", out: 1330559999},
	{in: "Mon, 29 Feb 1999 12:34:56 GMT", err: true},
	{in: "Mon Feb 29 12:34:56 1999", err: true},
	{in: "Mon, 29 Feb 2100 12:34:56 GMT", err: true},
	{in: "Sun, 30 Feb 2000 12:34:56 GMT", err: true},
	// year boundaries
	{in: "Fri, 31 Dec 1999 23:59:59 GMT", out: 946684799},
	{in: "Friday, 31-Dec-99 23:59:59 GMT", out: 946684799},
	{in: "Sat, 02 Jan 2010 03:04:05 GMT", out: 1262401445},
	{in: "Saturday, 02-Jan-10 03:04:05 GMT", out: 1262401445},
	{in: "Tue, 19 Jan 2038 03:14:07 GMT", out: 2147483647},
	{in: "Tue, 19 Jan 2038 03:14:08 GMT", out: 2147483648},
	{in: "Tuesday, 19-Jan-38 03:14:08 GMT", out: 2147483648},
	{in: "Tue Jan 19 03:14:08 2038", out: 2147483648},
	// leap seconds only at 23:59
	{in: "Sat, 31 Dec 2016 23:59:60 GMT", out: 1483228800},
	{in: "Sat Dec 31 23:59:60 2016", out: 1483228800},
	{in: "Sat, 31 Dec 2016 23:00:60 GMT", err: true},
	{in: "Sat, 31 Dec 2016 12:59:60 GMT", err: true},
	{in: "Sun, 06 Nov 1994 08:49:60 GMT", err: true},
	{in: "Sun, 06 Nov 1994 08:49:61 GMT", err: true},
	// field ranges
	{in: "Fri, 32 Nov 1994 08:49:37 GMT", err: true},
	{in: "Wed, 31 Nov 1994 08:49:37 GMT", err: true},
	{in: "Sun, 00 Nov 1994 08:49:37 GMT", err: true},
	{in: "Sun, 06 Nov 1994 24:49:37 GMT", err: true},
	{in: "Sun, 06 Nov 1994 08:60:37 GMT", err: true},
	{in: "Sunday, 31-Nov-94 08:49:37 GMT", err: true},
	{in: "Sun Nov 31 08:49:37 1994", err: true},
	{in: "Sun Nov 40 08:49:37 1994", err: true},
	{in: "Sun Nov  0 08:49:37 1994", err: true},
	// surrounding whitespace
	{in: "  \tSun, 06 Nov 1994 08:49:37 GMT", out: 784111777},
	{in: "Sun, 06 Nov 1994 08:49:37 GMT \t ", out: 784111777},
	{in: "\tSun Nov  6 08:49:37 1994\t", out: 784111777},
	// not quite the grammar
	{in: "", err: true},
	{in: "   ", err: true},
	{in: "Sun, 06 Nov 1994 08:49:37 GM", err: true},
	{in: "Sun, 06 Nov 1994 08:49:37 UTC", err: true},
	{in: "Sun, 06 Nov 1994 08:49:37 GMT\r\n", err: true},
	{in: "Sun, 06 Nov 1994 08:49:37 GMTX", err: true},
	{in: "Sun, 06 Nov 1994 08:49:37 GMT x", err: true},
	{in: "Sun, 6 Nov 1994 08:49:37 GMT", err: true},
	{in: "Sun, 06 Nov 94 08:49:37 GMT", err: true},
	{in: "Sun, 06-Nov-1994 08:49:37 GMT", err: true},
	{in: "Sunday, 06-Nov-1994 08:49:37 GMT", err: true},
	{in: "Sunday, 06 Nov 1994 08:49:37 GMT", err: true},
	{in: "Sun Nov 6 08:49:37 1994", err: true},
	{in: "Sun Nov  6 08:49:37 94", err: true},
	{in: "Sun Nov  6 08:49:37 1994 GMT", err: true},
	{in: "Sun, 06 Nov 1994 8:49:37 GMT", err: true},
	{in: "sun, 06 nov 1994 08:49:37 gmt", err: true},
	{in: "Sun,06 Nov 1994 08:49:37 GMT", err: true},
	{in: "Sun, 06 November 1994 08:49:37 GMT", err: true},
	{in: "Snu, 06 Nov 1994 08:49:37 GMT", err: true},
	{in: "1994-11-06T08:49:37Z", err: true},
}

func TestParse(t *testing.T) {
	for _, th := range testInputs {
		ts, err := Parse(th.in)
		if th.err {
			assert.NotEqual(t, nil, err, "expected %q to fail but got %d", th.in, ts)
			continue
		}
		assert.Equal(t, nil, err, "for %q", th.in)
		assert.Equal(t, th.out, ts, "for %q", th.in)

		tsb, err := ParseBytes([]byte(th.in))
		assert.Equal(t, nil, err, "for %q", th.in)
		assert.Equal(t, th.out, tsb, "for %q", th.in)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"Sun, 06 Nov 1994 08:49:37 GMT":  IMFFixdate,
		"Sunday, 06-Nov-94 08:49:37 GMT": RFC850,
		"Sun Nov  6 08:49:37 1994":       ASCTime,
	} {
		d, err := ParseDate(in)
		require.Equal(t, nil, err, "for %q", in)
		assert.Equal(t, want, d.Format(), "for %q", in)
		assert.Equal(t, int64(784111777), d.Timestamp())
		assert.Equal(t, "1994-11-06 08:49:37 +0000 UTC", d.Time().String())
	}
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestParseTime(t *testing.T) {
	ts, err := ParseTime("Sun, 06 Nov 1994 08:49:37 GMT")
	assert.Equal(t, nil, err)
	assert.Equal(t, time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC), ts)

	ts, err = ParseTime("INVALID")
	assert.NotEqual(t, nil, err)
	assert.True(t, ts.IsZero())
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, int64(0), MustParse("Thu, 01 Jan 1970 00:00:00 GMT"))
	assert.Equal(t, true, testDidPanic("NOT GONNA HAPPEN"))
	assert.Equal(t, false, testDidPanic("Sun Nov  6 08:49:37 1994"))
}

func testDidPanic(datestr string) (paniced bool) {
	defer func() {
		if r := recover(); r != nil {
			paniced = true
		}
	}()
	MustParse(datestr)
	return false
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		in     string
		offset int
		state  string
	}{
		{in: "Fri, 32 Nov 1994 08:49:37 GMT", offset: 6, state: "Day1Digits[1]"},
		{in: "Sunday, 62-Nov-94 08:49:37 GMT", offset: 9, state: "Day2Digits[1]"},
		{in: "Sun, 06 Nov 1994 24:49:37 GMT", offset: 18, state: "Hour1[1]"},
		{in: "Sun, 06 Nov 1994 08:49:61 GMT", offset: 24, state: "Sec1[1]"},
		{in: "Sun, 06 Nov 1994 08:49:60 GMT", offset: 24, state: "Sec1[1]"},
		{in: "Sun, 06 Nov 1994 08:70:37 GMT", offset: 21, state: "Min1[1]"},
		{in: "Mon, 29 Feb 1999 12:34:56 GMT", offset: 15, state: "Year1Digits[3]"},
		{in: "Wed, 31 Dec 1969 23:59:59 GMT", offset: 15, state: "Year1Digits[3]"},
		{in: "Sun Feb 29 08:49:37 1999", offset: 23, state: "Year3Digits[3]"},
		{in: "Sun Nov 31 08:49:37 1994", offset: 9, state: "Day3Digits[1]"},
		{in: "Sun, 06 Nov 1994 08:49:37 GMX", offset: 28, state: "Gmt1Literal[2]"},
		{in: "Sun, 06 Nov 1994 08:49:37 GMT x", offset: 30, state: "Valid"},
		{in: "Sun, 06 Nov 1994 08:49:37 GMT\r\n", offset: 29, state: "Valid"},
		{in: "Sun, 06 Nov 1994 08:49:37-GMT", offset: 25, state: "Sec1[2]"},
		{in: "X", offset: 0, state: "Start"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		require.NotEqual(t, nil, err, "for %q", tt.in)
		assert.True(t, errors.Is(err, ErrInvalidDate), "for %q: %v", tt.in, err)
		perr, ok := err.(*ParseError)
		require.True(t, ok, "for %q", tt.in)
		assert.Equal(t, tt.in, perr.Input)
		assert.Equal(t, tt.offset, perr.Offset, "for %q", tt.in)
		assert.Equal(t, tt.state, perr.State, "for %q", tt.in)
	}

	// the day only fails once November is known to have 30 days
	_, err := Parse("Wed, 31 Nov 1994 08:49:37 GMT")
	require.NotEqual(t, nil, err)
	assert.Equal(t, 11, err.(*ParseError).Offset)

	_, err = Parse("Sun, 06 Nov 1994 08:49:37 GM")
	require.NotEqual(t, nil, err)
	assert.True(t, errors.Is(err, ErrIncompleteDate), "%v", err)
	assert.Equal(t, 28, err.(*ParseError).Offset)
	assert.Equal(t, "Gmt1Literal[2]", err.(*ParseError).State)
	assert.Contains(t, err.Error(), "incomplete http date")

	_, err = Parse("")
	assert.True(t, errors.Is(err, ErrIncompleteDate), "%v", err)
}

// Replacing any single byte of a good date with a byte that belongs
// nowhere in the grammar must never produce a timestamp.
func TestMutations(t *testing.T) {
	goods := []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
		"Wednesday, 29-Feb-12 23:59:60 GMT",
		"Sat Dec 31 23:59:60 2016",
	}
	for _, good := range goods {
		_, err := Parse(good)
		require.Equal(t, nil, err, "for %q", good)
		for i := 0; i < len(good); i++ {
			for _, x := range []byte{'X', 0, '\r', '\n', '/'} {
				bad := []byte(good)
				bad[i] = x
				ts, err := ParseBytes(bad)
				assert.NotEqual(t, nil, err, "%q parsed to %d", bad, ts)

				var d PartialDate
				st, _ := ParseStreaming(State{}, append(bad, '\r', '\n'), &d)
				assert.False(t, st.Valid(), "%q streamed to %d", bad, d.Timestamp())
			}
		}
	}
}

func TestTwoDigitYear(t *testing.T) {
	// 6 November 1994 was a Sunday, in 2094 a Saturday and in 2194 a
	// Thursday. Any other weekday falls back to 20xx.
	var tests = []struct {
		in                 string
		byWeekday, byPivot int
	}{
		{"Sunday, 06-Nov-94 08:49:37 GMT", 1994, 1994},
		{"Saturday, 06-Nov-94 08:49:37 GMT", 2094, 1994},
		{"Thursday, 06-Nov-94 08:49:37 GMT", 2194, 1994},
		{"Monday, 06-Nov-94 08:49:37 GMT", 2094, 1994},
		{"Saturday, 01-Jan-00 00:00:00 GMT", 2000, 2000},
		{"Thursday, 01-Jan-70 00:00:00 GMT", 1970, 1970},
		{"Tuesday, 19-Jan-38 03:14:08 GMT", 2038, 2038},
		{"Monday, 01-Jan-01 00:00:00 GMT", 2001, 2001},
		{"Friday, 01-Jan-71 00:00:00 GMT", 1971, 1971},
		{"Wednesday, 01-Jan-71 00:00:00 GMT", 2071, 1971},
	}
	pivot := MustNewParser(TwoDigitYears(PivotCentury))
	for _, tt := range tests {
		d, err := Default().ParseDate(tt.in)
		require.Equal(t, nil, err, "for %q", tt.in)
		assert.Equal(t, unix(tt.byWeekday, time.Month(d.month), d.day, d.hour, d.minute, d.second), d.Timestamp(), "for %q", tt.in)

		d, err = pivot.ParseDate(tt.in)
		require.Equal(t, nil, err, "for %q", tt.in)
		assert.Equal(t, tt.byPivot, d.year, "for %q", tt.in)
	}

	// 29 February 2000 existed, 1900 and 2100 did not
	ts, err := Parse("Tuesday, 29-Feb-00 12:34:56 GMT")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(951827696), ts)

	// the pivot puts 00-69 after 2000, where 1969 would be rejected
	_, err = pivot.Parse("Wednesday, 31-Dec-69 23:59:59 GMT")
	assert.Equal(t, nil, err)
}

func TestParserOptions(t *testing.T) {
	_, err := NewParser(TwoDigitYears(YearPolicy(9)))
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, func() (paniced bool) {
		defer func() { paniced = recover() != nil }()
		MustNewParser(TwoDigitYears(YearPolicy(9)))
		return false
	}())
	assert.Equal(t, "weekday", WeekdayCentury.String())
	assert.Equal(t, "pivot", PivotCentury.String())

	fold := MustNewParser(FoldCase(true))
	for _, in := range []string{
		"sun, 06 nov 1994 08:49:37 gmt",
		"SUNDAY, 06-NOV-94 08:49:37 GMT",
		"sUn NoV  6 08:49:37 1994",
	} {
		ts, err := fold.Parse(in)
		assert.Equal(t, nil, err, "for %q", in)
		assert.Equal(t, int64(784111777), ts)

		_, err = Parse(in)
		assert.NotEqual(t, nil, err, "for %q", in)
	}

	traced := MustNewParser(Trace(true))
	ts, err := traced.Parse("Sun, 06 Nov 1994 08:49:37 GMT")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(784111777), ts)
}

func TestInvalidIsSticky(t *testing.T) {
	p := Default()
	var d PartialDate
	st := State{}
	for _, c := range []byte("Sun, 32") {
		st = p.step(st, c, &d)
	}
	require.True(t, st.Invalid())
	for _, c := range []byte(" Nov 1994 08:49:37 GMT\r\n") {
		st = p.step(st, c, &d)
		assert.True(t, st.Invalid())
	}
}

func TestRoundTrip(t *testing.T) {
	layouts := map[Format]string{
		IMFFixdate: "Mon, 02 Jan 2006 15:04:05 GMT",
		RFC850:     "Monday, 02-Jan-06 15:04:05 GMT",
		ASCTime:    time.ANSIC,
	}
	last := unix(2099, time.December, 31, 23, 59, 59)
	check := func(ts int64) {
		for f, layout := range layouts {
			s := time.Unix(ts, 0).UTC().Format(layout)
			assert.Equal(t, s, FormatTimestamp(ts, f))
			got, err := Parse(s)
			if assert.Equal(t, nil, err, "for %q", s) {
				assert.Equal(t, ts, got, "for %q", s)
			}
		}
	}
	for ts := int64(0); ts <= last; ts += 7654321 {
		check(ts)
	}
	for _, ts := range []int64{0, 1, 86399, 86400, 951782400, 951868799, 2147483647, 2147483648, last} {
		check(ts)
	}
}
