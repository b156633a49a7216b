// Package httpdate parses HTTP date header values ("Date:",
// "If-Modified-Since:", "Expires:" and friends) with a byte at a time
// state machine.
//
// The three formats allowed by HTTP are accepted, strictly:
//
//	Sun, 06 Nov 1994 08:49:37 GMT    IMF-fixdate
//	Sunday, 06-Nov-94 08:49:37 GMT   RFC-850
//	Sun Nov  6 08:49:37 1994         asctime
//
// Because the parser keeps all of its progress in a small State value, a
// date split across network reads can be parsed fragment by fragment
// with ParseStreaming, without reassembling it first.
package httpdate

import (
	"fmt"
	"time"

	u "github.com/araddon/gou"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDate is returned for input that is not an HTTP date.
	ErrInvalidDate = errors.New("invalid http date")
	// ErrIncompleteDate is returned when input ends in the middle of a
	// date that was otherwise fine so far.
	ErrIncompleteDate = errors.New("incomplete http date")
)

// ParseError describes where a whole-buffer parse failed. Offset is the
// first byte that made the input invalid, or the length of the input when
// it ended too early. State names where the parser was at that point.
type ParseError struct {
	Input  string
	Offset int
	State  string
	err    error
}

func (e *ParseError) Error() string {
	if e.err == ErrIncompleteDate {
		return fmt.Sprintf("%v %q: ends in %s", e.err, e.Input, e.State)
	}
	return fmt.Sprintf("%v %q: unexpected byte at offset %d in %s", e.err, e.Input, e.Offset, e.State)
}

func (e *ParseError) Unwrap() error { return e.err }

// Parse parses a complete date value with the default parser and returns
// seconds since the epoch.
func Parse(datestr string) (int64, error) { return defaultParser.Parse(datestr) }

// ParseBytes is Parse for a byte slice.
func ParseBytes(buf []byte) (int64, error) { return defaultParser.ParseBytes(buf) }

// ParseStreaming feeds one fragment to the default parser, see
// Parser.ParseStreaming.
func ParseStreaming(st State, buf []byte, d *PartialDate) (State, int) {
	return defaultParser.ParseStreaming(st, buf, d)
}

// ParseDate parses a complete date value with the default parser and
// returns the parsed record.
func ParseDate(datestr string) (PartialDate, error) { return defaultParser.ParseDate(datestr) }

// ParseTime parses a complete date value and returns it as a UTC time.
func ParseTime(datestr string) (time.Time, error) {
	ts, err := defaultParser.Parse(datestr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}

// MustParse parses a date value, and panics if it can't.
func MustParse(datestr string) int64 {
	ts, err := defaultParser.Parse(datestr)
	if err != nil {
		panic(err.Error())
	}
	return ts
}

// Parse parses a complete date value. Leading and trailing spaces or tabs
// are allowed; anything else around the date is not.
func (p *Parser) Parse(datestr string) (int64, error) {
	var d PartialDate
	if err := parseAll(p, datestr, &d); err != nil {
		return 0, err
	}
	return d.timestamp, nil
}

// ParseBytes is Parse for a byte slice.
func (p *Parser) ParseBytes(buf []byte) (int64, error) {
	var d PartialDate
	if err := parseAll(p, buf, &d); err != nil {
		return 0, err
	}
	return d.timestamp, nil
}

// ParseDate is Parse, but returns the whole parsed record, including which
// format the value was written in.
func (p *Parser) ParseDate(datestr string) (PartialDate, error) {
	var d PartialDate
	err := parseAll(p, datestr, &d)
	return d, err
}

func parseAll[T string | []byte](p *Parser, in T, d *PartialDate) error {
	var st State
	failedAt, failedIn := -1, st
	for i := 0; i < len(in); i++ {
		prev := st
		st = p.step(st, in[i], d)
		if st.Invalid() && failedAt < 0 {
			failedAt, failedIn = i, prev
		}
	}
	switch {
	case st.Valid():
		return nil
	case st.Invalid():
		return &ParseError{Input: string(in), Offset: failedAt, State: failedIn.String(), err: ErrInvalidDate}
	}
	return &ParseError{Input: string(in), Offset: len(in), State: st.String(), err: ErrIncompleteDate}
}

// ParseStreaming parses one fragment of a date value that ends with CR LF,
// as it appears in an HTTP header block. Start with the zero State and a
// zero PartialDate, then pass the returned State back for each following
// fragment until it is Done.
//
// The returned count is how many bytes of buf were consumed. Once the
// State is Valid it points just past the LF, so the caller can resume
// header parsing there, and d.Timestamp holds the result. A malformed line
// is skipped up to and including its LF before the State turns Invalid.
// If the State is not Done, all of buf was consumed.
func (p *Parser) ParseStreaming(st State, buf []byte, d *PartialDate) (State, int) {
	if st.Done() {
		return st, 0
	}
	d.untilLineEnd = true
	for i, c := range buf {
		st = p.step(st, c, d)
		if st.Done() {
			if st.Invalid() {
				d.timestamp = -1
			}
			return st, i + 1
		}
	}
	return st, len(buf)
}

func (p *Parser) step(st State, c byte, d *PartialDate) State {
	next := p.transition(st, c, d)
	if p.trace {
		u.Debugf("httpdate: %-22s %q -> %s", st, c, next)
	}
	return next
}

// invalid fails the parse. When parsing up to the end of a line the rest
// of the line is swallowed first.
func invalid(d *PartialDate) State {
	if d.untilLineEnd {
		return enter(fieldTemporaryInvalid)
	}
	return enter(fieldInvalid)
}

// complete records the timestamp once the last field of the date is in.
func complete(d *PartialDate) State {
	d.timestamp = timestampOf(d)
	if d.untilLineEnd {
		return enter(fieldTrailingWhitespace)
	}
	return enter(fieldValid)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *Parser) foldByte(c byte) byte {
	if p.foldCase && c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// transition consumes one byte. Every rejection happens on the byte that
// breaks the grammar; nothing is ever re-read.
func (p *Parser) transition(st State, c byte, d *PartialDate) State {
	if st.Invalid() {
		return st
	}

	// CR and LF end the header line. They can only appear after the date.
	if d.untilLineEnd && !st.Valid() {
		switch c {
		case '\r':
			if st.field == fieldTrailingWhitespace {
				return enter(fieldAwaitingLF)
			}
			return enter(fieldTemporaryInvalid)
		case '\n':
			if st.field == fieldAwaitingLF {
				return enter(fieldValid)
			}
			return enter(fieldInvalid)
		}
	}

	switch st.field {
	case fieldStart:
		if c == ' ' || c == '\t' {
			return st
		}
		d.reset()
		return p.weekday(enter(fieldWeekdayName), c, d)

	case fieldWeekdayName:
		return p.weekday(st, c, d)

	case fieldDay1Digits, fieldDay2Digits:
		switch st.pos {
		case 0, 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.day = d.day*10 + int(c-'0')
			if d.day > 31 {
				return invalid(d)
			}
			return st.advance()
		}
		sep := byte(' ')
		if st.field == fieldDay2Digits {
			sep = '-'
		}
		if c != sep || d.day == 0 {
			return invalid(d)
		}
		return st.following()

	case fieldMonth1Name, fieldMonth3Name:
		return p.month(st, p.monthSpace, c, d)

	case fieldMonth2Name:
		return p.month(st, p.monthDash, c, d)

	case fieldDay3Digits:
		switch st.pos {
		case 0:
			// a single digit day is padded with a space
			if c == ' ' {
				return st.advance()
			}
			if !isDigit(c) {
				return invalid(d)
			}
			d.day = int(c - '0')
			if d.day > 3 {
				return invalid(d)
			}
			return st.advance()
		case 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.day = d.day*10 + int(c-'0')
			if !isValidMonthday(d.month, d.day) {
				return invalid(d)
			}
			return st.advance()
		}
		if c != ' ' {
			return invalid(d)
		}
		return st.following()

	case fieldYear1Digits, fieldYear3Digits:
		if st.pos < 4 {
			if !isDigit(c) {
				return invalid(d)
			}
			d.year = d.year*10 + int(c-'0')
			if st.pos < 3 {
				return st.advance()
			}
			if !isValidDate(d.year, d.month, d.day) {
				return invalid(d)
			}
			if st.field == fieldYear3Digits {
				return complete(d)
			}
			return st.advance()
		}
		if c != ' ' {
			return invalid(d)
		}
		return st.following()

	case fieldYear2Digits:
		switch st.pos {
		case 0, 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.year = d.year*10 + int(c-'0')
			if st.pos == 0 {
				return st.advance()
			}
			d.year = p.century(d)
			if !isValidDate(d.year, d.month, d.day) {
				return invalid(d)
			}
			return st.advance()
		}
		if c != ' ' {
			return invalid(d)
		}
		return st.following()

	case fieldHour1, fieldHour2, fieldHour3:
		switch st.pos {
		case 0, 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.hour = d.hour*10 + int(c-'0')
			if d.hour >= 24 {
				return invalid(d)
			}
			return st.advance()
		}
		if c != ':' {
			return invalid(d)
		}
		return st.following()

	case fieldMin1, fieldMin2, fieldMin3:
		switch st.pos {
		case 0, 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.minute = d.minute*10 + int(c-'0')
			if d.minute > 59 {
				return invalid(d)
			}
			return st.advance()
		}
		if c != ':' {
			return invalid(d)
		}
		return st.following()

	case fieldSec1, fieldSec2, fieldSec3:
		switch st.pos {
		case 0, 1:
			if !isDigit(c) {
				return invalid(d)
			}
			d.second = d.second*10 + int(c-'0')
			if d.second > 60 {
				return invalid(d)
			}
			// leap seconds are only inserted at the end of the day
			if d.second == 60 && (d.hour != 23 || d.minute != 59) {
				return invalid(d)
			}
			return st.advance()
		}
		if c != ' ' {
			return invalid(d)
		}
		return st.following()

	case fieldGmt1Literal, fieldGmt2Literal:
		if p.foldByte(c) != "GMT"[st.pos] {
			return invalid(d)
		}
		if st.pos < 2 {
			return st.advance()
		}
		return complete(d)

	case fieldTrailingWhitespace:
		if c == ' ' || c == '\t' {
			return st
		}
		return invalid(d)

	case fieldAwaitingLF:
		return invalid(d)

	case fieldTemporaryInvalid:
		return st

	case fieldValid:
		// nothing but whitespace may follow the date
		if c == ' ' || c == '\t' {
			return st
		}
		return enter(fieldInvalid)
	}
	return invalid(d)
}

// weekday matches the day name, which also picks the grammar for the rest
// of the value. This is the only place the three formats diverge.
func (p *Parser) weekday(st State, c byte, d *PartialDate) State {
	cursor, id := p.weekdays.next(st.pos, c)
	switch id {
	case matchNotYetFound:
		return State{field: fieldWeekdayName, pos: cursor}
	case matchCantFind:
		return invalid(d)
	}
	d.weekday = id % 7
	switch id / 7 {
	case 0:
		d.format = IMFFixdate
		return enter(fieldDay1Digits)
	case 1:
		d.format = RFC850
		return enter(fieldDay2Digits)
	case 2:
		d.format = ASCTime
		return enter(fieldMonth3Name)
	}
	return invalid(d)
}

func (p *Parser) month(st State, m *matcher, c byte, d *PartialDate) State {
	cursor, id := m.next(st.pos, c)
	switch {
	case id == matchNotYetFound:
		return State{field: st.field, pos: cursor}
	case id < 0 || id >= 12:
		return invalid(d)
	}
	d.month = id + 1
	// asctime has not seen its day yet
	if st.field != fieldMonth3Name && !isValidMonthday(d.month, d.day) {
		return invalid(d)
	}
	return st.following()
}

// century turns the two digit RFC-850 year into a full year.
func (p *Parser) century(d *PartialDate) int {
	yy := d.year
	if p.years == PivotCentury {
		if yy >= 70 {
			return 1900 + yy
		}
		return 2000 + yy
	}
	for _, base := range [...]int{1900, 2000, 2100} {
		y := base + yy
		if isValidDate(y, d.month, d.day) && dayOfWeek(y, d.month, d.day) == d.weekday {
			return y
		}
	}
	return 2000 + yy
}
