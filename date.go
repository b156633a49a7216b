package httpdate

import (
	"time"
)

// Format identifies which of the three HTTP date grammars a value used.
type Format uint8

const (
	// FormatUnknown is reported before the weekday name has been matched.
	FormatUnknown Format = iota
	// IMFFixdate is "Sun, 06 Nov 1994 08:49:37 GMT".
	IMFFixdate
	// RFC850 is "Sunday, 06-Nov-94 08:49:37 GMT".
	RFC850
	// ASCTime is "Sun Nov  6 08:49:37 1994".
	ASCTime
)

func (f Format) String() string {
	switch f {
	case IMFFixdate:
		return "IMF-fixdate"
	case RFC850:
		return "RFC-850"
	case ASCTime:
		return "asctime"
	}
	return "unknown"
}

// PartialDate is the scratch record of one parse in progress. It must not
// be shared between parses running at the same time. The zero value is
// ready to use.
type PartialDate struct {
	timestamp int64

	weekday int // 0 is Sunday
	year    int
	month   int
	day     int
	hour    int
	minute  int
	second  int

	format       Format
	untilLineEnd bool
}

// Timestamp returns seconds since the epoch. It is only meaningful once
// the parse has reached a Valid state.
func (d *PartialDate) Timestamp() int64 { return d.timestamp }

// Time returns the parsed instant in UTC.
func (d *PartialDate) Time() time.Time { return time.Unix(d.timestamp, 0).UTC() }

// Format returns the grammar chosen by the weekday name.
func (d *PartialDate) Format() Format { return d.format }

func (d *PartialDate) reset() {
	until := d.untilLineEnd
	*d = PartialDate{untilLineEnd: until}
}
