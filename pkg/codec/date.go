// pkg/codec/date.go
package codec

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/joeydtaylor/steeze-students/pkg/model"
)

// DefaultDatePattern is the wire format of Student.dob unless configured otherwise.
const DefaultDatePattern = "yyyy/MM/dd"

// DateFormat applies one date pattern both ways. Patterns use the
// yyyy / MMMM / MMM / MM / M / dd / d tokens; everything else must be
// punctuation or a space and is copied literally.
type DateFormat struct {
	pattern string
	layout  string
}

// ParseDateFormat compiles pattern into a Go time layout. A one-letter M or d
// may not touch another numeric token: "yyyyMd" would print 2000-01-15 as
// "2000115", which reads back as 2000-11-05. Every accepted pattern must also
// carry the sample dates through a format/parse cycle unchanged.
func ParseDateFormat(pattern string) (DateFormat, error) {
	if strings.TrimSpace(pattern) == "" {
		return DateFormat{}, fmt.Errorf("date pattern: empty")
	}

	var b strings.Builder
	var hasY, hasM, hasD bool
	var prevNumeric, prevVariable bool
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		numeric, variable := false, false
		switch {
		case r == 'y':
			if n != 4 {
				return DateFormat{}, fmt.Errorf("date pattern %q: year must be yyyy", pattern)
			}
			b.WriteString("2006")
			hasY, numeric = true, true
		case r == 'M':
			tok, ok := map[int]string{1: "1", 2: "01", 3: "Jan", 4: "January"}[n]
			if !ok {
				return DateFormat{}, fmt.Errorf("date pattern %q: unsupported month token %q", pattern, strings.Repeat("M", n))
			}
			b.WriteString(tok)
			hasM, numeric, variable = true, n <= 2, n == 1
		case r == 'd':
			tok, ok := map[int]string{1: "2", 2: "02"}[n]
			if !ok {
				return DateFormat{}, fmt.Errorf("date pattern %q: unsupported day token %q", pattern, strings.Repeat("d", n))
			}
			b.WriteString(tok)
			hasD, numeric, variable = true, true, n == 1
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return DateFormat{}, fmt.Errorf("date pattern %q: unsupported token %q", pattern, string(r))
		case r == '_' || r == '\'' || r == '"' || r == '\\':
			return DateFormat{}, fmt.Errorf("date pattern %q: literal %q not allowed", pattern, string(r))
		default:
			b.WriteString(strings.Repeat(string(r), n))
		}
		if numeric && prevNumeric && (variable || prevVariable) {
			return DateFormat{}, fmt.Errorf("date pattern %q: %q needs a separator from the number before it", pattern, strings.Repeat(string(r), n))
		}
		prevNumeric, prevVariable = numeric, variable
		i += n
	}
	if !hasY || !hasM || !hasD {
		return DateFormat{}, fmt.Errorf("date pattern %q: needs year, month and day", pattern)
	}

	f := DateFormat{pattern: pattern, layout: b.String()}
	for _, d := range roundTripSamples {
		got, err := f.Parse(f.Format(d))
		if err != nil || got != d {
			return DateFormat{}, fmt.Errorf("date pattern %q: does not read back %s", pattern, d)
		}
	}
	return f, nil
}

// Single and double digit days and months, a leap day and an old year.
var roundTripSamples = []model.Date{
	model.NewDate(2000, time.January, 15),
	model.NewDate(2000, time.November, 5),
	model.NewDate(2024, time.February, 29),
	model.NewDate(1999, time.December, 31),
	model.NewDate(1001, time.July, 9),
}

// MustDateFormat panics on an invalid pattern; meant for constants.
func MustDateFormat(pattern string) DateFormat {
	f, err := ParseDateFormat(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

func (f DateFormat) Pattern() string { return f.pattern }
func (f DateFormat) Layout() string  { return f.layout }

func (f DateFormat) Format(d model.Date) string {
	return d.Time().Format(f.layout)
}

func (f DateFormat) Parse(s string) (model.Date, error) {
	t, err := time.Parse(f.layout, s)
	if err != nil {
		return model.Date{}, fmt.Errorf("date %q does not match %q: %w", s, f.pattern, err)
	}
	return model.DateOf(t), nil
}
