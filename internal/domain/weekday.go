package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidDay is returned when a day name is not one of the seven canonical weekdays.
var ErrInvalidDay = errors.New("invalid day: must be a weekday name")

// Weekday is a canonical lowercase weekday name.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// DaysPerWeek is the denominator of plan progress.
const DaysPerWeek = 7

// Weekdays lists the canonical days in week-view order, Monday first.
var Weekdays = [DaysPerWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday case-folds and trims s and checks it against the canonical names.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if d.index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return d, nil
}

// Valid reports whether d is a canonical weekday name.
func (d Weekday) Valid() bool {
	return d.index() >= 0
}

// index is the Monday=0 position of d, or -1.
func (d Weekday) index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// DaySet is a set of weekdays, one bit per day with Monday as bit 0.
// The zero value is the empty set.
type DaySet uint8

// NewDaySet parses names into a set. Duplicates collapse; any invalid name fails.
func NewDaySet(names ...string) (DaySet, error) {
	var s DaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		s = s.With(d)
	}
	return s, nil
}

func (s DaySet) bit(d Weekday) DaySet {
	i := d.index()
	if i < 0 {
		return 0
	}
	return 1 << uint(i)
}

// Has reports membership of d.
func (s DaySet) Has(d Weekday) bool {
	b := s.bit(d)
	return b != 0 && s&b != 0
}

// With returns s with d added.
func (s DaySet) With(d Weekday) DaySet {
	return s | s.bit(d)
}

// Without returns s with d removed.
func (s DaySet) Without(d Weekday) DaySet {
	return s &^ s.bit(d)
}

// Toggle flips the membership of d.
func (s DaySet) Toggle(d Weekday) DaySet {
	return s ^ s.bit(d)
}

// Len is the number of days in the set.
func (s DaySet) Len() int {
	return bits.OnesCount8(uint8(s) & 0x7f)
}

// Days returns the members in Monday..Sunday order. Never nil.
func (s DaySet) Days() []Weekday {
	out := make([]Weekday, 0, s.Len())
	for _, d := range Weekdays {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Strings is Days as plain strings, the form used by the stores.
func (s DaySet) Strings() []string {
	days := s.Days()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

// MarshalJSON encodes the set as an ordered array of day names.
func (s DaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON accepts an array of day names in any case and order.
func (s *DaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set, err := NewDaySet(names...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
