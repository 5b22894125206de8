package archive

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultClock is the time of day assumed when a snapshot omits it.
const DefaultClock = "00:00"

// DateStamp is a calendar date with an optional wall-clock string.
//
// Ordering is a plain tuple compare of (year, month, day, time) where the time
// is compared as a string. No calendar arithmetic is performed.
type DateStamp struct {
	Year  int
	Month int
	Day   int
	Time  string
}

// NewDateStamp builds a DateStamp, defaulting an empty clock to DefaultClock.
func NewDateStamp(year, month, day int, clock string) DateStamp {
	return DateStamp{Year: year, Month: month, Day: day, Time: normalizeClock(clock)}
}

// Clock returns the time of day, DefaultClock when unset.
func (d DateStamp) Clock() string {
	if d.Time == "" {
		return DefaultClock
	}
	return d.Time
}

// IsZero reports whether no date was recorded.
func (d DateStamp) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare returns -1, 0 or +1 comparing d to o chronologically.
func (d DateStamp) Compare(o DateStamp) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Day, o.Day); c != 0 {
		return c
	}
	return strings.Compare(d.Clock(), o.Clock())
}

// Date formats the calendar part as YYYY-MM-DD.
func (d DateStamp) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// String formats the stamp as "YYYY-MM-DD HH:MM".
func (d DateStamp) String() string {
	return d.Date() + " " + d.Clock()
}

var dateStampPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ](\d{1,2}):(\d{2}))?`)

// ParseDateStamp parses "YYYY-MM-DD", "YYYY-MM-DD HH:MM" and ISO-8601 style
// "YYYY-MM-DDTHH:MM[:SS[...]]" strings. Seconds and zones are discarded.
func ParseDateStamp(s string) (DateStamp, error) {
	m := dateStampPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return DateStamp{}, fmt.Errorf("unrecognized date %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	clock := ""
	if m[4] != "" {
		hour, _ := strconv.Atoi(m[4])
		clock = fmt.Sprintf("%02d:%s", hour, m[5])
	}
	return NewDateStamp(year, month, day, clock), nil
}

type dateStampJSON struct {
	Year  flexInt `json:"year"`
	Month flexInt `json:"month"`
	Day   flexInt `json:"day"`
	Time  string  `json:"time"`
}

// UnmarshalJSON accepts either {year, month, day, time} or a date string.
func (d *DateStamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = DateStamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*d = DateStamp{}
			return nil
		}
		parsed, err := ParseDateStamp(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var raw dateStampJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = NewDateStamp(int(raw.Year), int(raw.Month), int(raw.Day), raw.Time)
	return nil
}

// MarshalJSON writes the object form.
func (d DateStamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateStampJSON{Year: flexInt(d.Year), Month: flexInt(d.Month), Day: flexInt(d.Day), Time: d.Clock()})
}

func normalizeClock(clock string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return DefaultClock
	}
	// Zero-pad single digit hours so string ordering stays chronological.
	if i := strings.IndexByte(clock, ':'); i == 1 {
		clock = "0" + clock
	}
	return clock
}

// flexInt decodes a JSON number or a quoted number.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = flexInt(n)
	return nil
}
