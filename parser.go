package httpdate

import (
	"github.com/pkg/errors"
)

// YearPolicy decides the century of an RFC-850 two digit year.
type YearPolicy uint8

const (
	// WeekdayCentury tries 19xx, 20xx and 21xx and keeps the first one
	// whose weekday agrees with the weekday name, falling back to 20xx.
	// This holds until the 2200s.
	WeekdayCentury YearPolicy = iota
	// PivotCentury maps 70-99 to 19xx and 00-69 to 20xx.
	PivotCentury
)

func (p YearPolicy) String() string {
	switch p {
	case WeekdayCentury:
		return "weekday"
	case PivotCentury:
		return "pivot"
	}
	return "unknown"
}

var (
	weekdayNames = []string{
		"Sun, ", "Mon, ", "Tue, ", "Wed, ", "Thu, ", "Fri, ", "Sat, ",
		"Sunday, ", "Monday, ", "Tuesday, ", "Wednesday, ", "Thursday, ",
		"Friday, ", "Saturday, ",
		"Sun ", "Mon ", "Tue ", "Wed ", "Thu ", "Fri ", "Sat ",
	}
	monthSpaceNames = []string{
		"Jan ", "Feb ", "Mar ", "Apr ", "May ", "Jun ",
		"Jul ", "Aug ", "Sep ", "Oct ", "Nov ", "Dec ",
	}
	monthDashNames = []string{
		"Jan-", "Feb-", "Mar-", "Apr-", "May-", "Jun-",
		"Jul-", "Aug-", "Sep-", "Oct-", "Nov-", "Dec-",
	}
)

// Parser holds the compiled name matchers and parse options. It is
// immutable once built and may be shared by any number of goroutines.
type Parser struct {
	weekdays   *matcher
	monthSpace *matcher
	monthDash  *matcher

	foldCase bool
	years    YearPolicy
	trace    bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser) error

// FoldCase makes weekday names, month names and the GMT literal match
// regardless of ASCII case. HTTP dates are case-sensitive, so the default
// is false.
func FoldCase(fold bool) ParserOption {
	return func(p *Parser) error {
		p.foldCase = fold
		return nil
	}
}

// TwoDigitYears selects how RFC-850 years are placed in a century.
func TwoDigitYears(policy YearPolicy) ParserOption {
	return func(p *Parser) error {
		switch policy {
		case WeekdayCentury, PivotCentury:
		default:
			return errors.Errorf("unknown two digit year policy %d", policy)
		}
		p.years = policy
		return nil
	}
}

// Trace logs every state transition at debug level.
func Trace(trace bool) ParserOption {
	return func(p *Parser) error {
		p.trace = trace
		return nil
	}
}

// NewParser compiles the name matchers. Build one at startup and reuse it.
func NewParser(opts ...ParserOption) (*Parser, error) {
	p := &Parser{}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	var err error
	if p.weekdays, err = compileMatcher("weekday", p.foldCase, weekdayNames); err != nil {
		return nil, err
	}
	if p.monthSpace, err = compileMatcher("month-space", p.foldCase, monthSpaceNames); err != nil {
		return nil, err
	}
	if p.monthDash, err = compileMatcher("month-dash", p.foldCase, monthDashNames); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNewParser is like NewParser but panics on a bad option.
func MustNewParser(opts ...ParserOption) *Parser {
	p, err := NewParser(opts...)
	if err != nil {
		panic(err.Error())
	}
	return p
}

var defaultParser = MustNewParser()

// Default returns the shared parser used by the package level functions.
func Default() *Parser { return defaultParser }
