package httpdate

import (
	"fmt"
)

// field is the outer state: which part of the date is being parsed.
type field uint8

const (
	fieldStart field = iota
	fieldWeekdayName

	// Sun, 06 Nov 1994 08:49:37 GMT
	fieldDay1Digits
	fieldMonth1Name
	fieldYear1Digits
	fieldHour1
	fieldMin1
	fieldSec1
	fieldGmt1Literal

	// Sunday, 06-Nov-94 08:49:37 GMT
	fieldDay2Digits
	fieldMonth2Name
	fieldYear2Digits
	fieldHour2
	fieldMin2
	fieldSec2
	fieldGmt2Literal

	// Sun Nov  6 08:49:37 1994
	fieldMonth3Name
	fieldDay3Digits
	fieldHour3
	fieldMin3
	fieldSec3
	fieldYear3Digits

	fieldTrailingWhitespace
	fieldAwaitingLF
	fieldTemporaryInvalid
	fieldValid
	fieldInvalid
)

var fieldNames = [...]string{
	fieldStart:              "Start",
	fieldWeekdayName:        "WeekdayName",
	fieldDay1Digits:         "Day1Digits",
	fieldMonth1Name:         "Month1Name",
	fieldYear1Digits:        "Year1Digits",
	fieldHour1:              "Hour1",
	fieldMin1:               "Min1",
	fieldSec1:               "Sec1",
	fieldGmt1Literal:        "Gmt1Literal",
	fieldDay2Digits:         "Day2Digits",
	fieldMonth2Name:         "Month2Name",
	fieldYear2Digits:        "Year2Digits",
	fieldHour2:              "Hour2",
	fieldMin2:               "Min2",
	fieldSec2:               "Sec2",
	fieldGmt2Literal:        "Gmt2Literal",
	fieldMonth3Name:         "Month3Name",
	fieldDay3Digits:         "Day3Digits",
	fieldHour3:              "Hour3",
	fieldMin3:               "Min3",
	fieldSec3:               "Sec3",
	fieldYear3Digits:        "Year3Digits",
	fieldTrailingWhitespace: "TrailingWhitespaceBeforeCR",
	fieldAwaitingLF:         "AwaitingLF",
	fieldTemporaryInvalid:   "TemporaryInvalid",
	fieldValid:              "Valid",
	fieldInvalid:            "Invalid",
}

func (f field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

// successor names the field that follows each field once its trailing
// separator has been seen. Fields ending the date are absent.
var successor = map[field]field{
	fieldDay1Digits:  fieldMonth1Name,
	fieldMonth1Name:  fieldYear1Digits,
	fieldYear1Digits: fieldHour1,
	fieldHour1:       fieldMin1,
	fieldMin1:        fieldSec1,
	fieldSec1:        fieldGmt1Literal,

	fieldDay2Digits:  fieldMonth2Name,
	fieldMonth2Name:  fieldYear2Digits,
	fieldYear2Digits: fieldHour2,
	fieldHour2:       fieldMin2,
	fieldMin2:        fieldSec2,
	fieldSec2:        fieldGmt2Literal,

	fieldMonth3Name: fieldDay3Digits,
	fieldDay3Digits: fieldHour3,
	fieldHour3:      fieldMin3,
	fieldMin3:       fieldSec3,
	fieldSec3:       fieldYear3Digits,
}

// State is the opaque continuation of a streaming parse. The zero State
// starts a new parse. A State that is not Done must be handed back
// unchanged, along with the same PartialDate, with the next fragment.
//
// pos is the position inside the field: a digit count, a literal offset or
// a matcher cursor.
type State struct {
	field field
	pos   uint16
}

// Valid reports whether a complete date has been parsed.
func (s State) Valid() bool { return s.field == fieldValid }

// Invalid reports whether the parse has failed for good.
func (s State) Invalid() bool { return s.field == fieldInvalid }

// Done reports whether s is terminal.
func (s State) Done() bool { return s.Valid() || s.Invalid() }

func (s State) String() string {
	if s.pos == 0 {
		return s.field.String()
	}
	return fmt.Sprintf("%s[%d]", s.field, s.pos)
}

func enter(f field) State { return State{field: f} }

func (s State) advance() State { return State{field: s.field, pos: s.pos + 1} }

// following moves to the field after s. It panics on a field that has no
// successor, which would be a bug in the transition code.
func (s State) following() State {
	next, ok := successor[s.field]
	if !ok {
		panic("httpdate: no successor for " + s.field.String())
	}
	return enter(next)
}
