package timefmt

import (
	"strings"
	"time"
)

// Field identifies one component of a Value.
type Field uint16

const (
	FieldYear Field = 1 << iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldMicrosecond
	FieldOffset
)

const (
	clockFields = FieldHour | FieldMinute | FieldSecond
	dateFields  = FieldYear | FieldMonth | FieldDay
)

// maxOffsetSeconds bounds UTC offsets to ±18 hours.
const maxOffsetSeconds = 18 * 3600

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldYear, "year"},
	{FieldMonth, "month"},
	{FieldDay, "day"},
	{FieldHour, "hour"},
	{FieldMinute, "minute"},
	{FieldSecond, "second"},
	{FieldMicrosecond, "microsecond"},
	{FieldOffset, "utc offset"},
}

func (f Field) String() string {
	var names []string
	for _, entry := range fieldNames {
		if f&entry.field != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}

// Value is the structured date/time input. Fields records which
// components are set; unset components are never read.
type Value struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
	// Offset is the resolved UTC offset in seconds east of UTC.
	Offset int
	// Zone is an optional zone abbreviation such as "PST".
	Zone     string
	Calendar string
	Fields   Field
}

// Clock returns a time-of-day value.
func Clock(hour, minute, second int) Value {
	return Value{Hour: hour, Minute: minute, Second: second, Fields: clockFields}
}

// Date returns a calendar date value.
func Date(year, month, day int) Value {
	return Value{Year: year, Month: month, Day: day, Fields: dateFields}
}

// FromTime captures every field of t, including its offset.
func FromTime(t time.Time) Value {
	name, offset := t.Zone()
	v := Value{
		Year:        t.Year(),
		Month:       int(t.Month()),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Microsecond: t.Nanosecond() / 1000,
		Offset:      offset,
		Fields:      dateFields | clockFields | FieldMicrosecond | FieldOffset,
	}
	if isZoneAbbreviation(name) {
		v.Zone = name
	}
	return v
}

// tzdata uses numeric names like "+05" for zones without an abbreviation.
func isZoneAbbreviation(name string) bool {
	if name == "" {
		return false
	}
	return name[0] != '+' && name[0] != '-'
}

func (v Value) Has(f Field) bool {
	return v.Fields&f == f
}

func (v Value) WithClock(hour, minute, second int) Value {
	v.Hour, v.Minute, v.Second = hour, minute, second
	v.Fields |= clockFields
	return v
}

func (v Value) WithDate(year, month, day int) Value {
	v.Year, v.Month, v.Day = year, month, day
	v.Fields |= dateFields
	return v
}

func (v Value) WithMicrosecond(us int) Value {
	v.Microsecond = us
	v.Fields |= FieldMicrosecond
	return v
}

// WithOffset sets the UTC offset in seconds east of UTC.
func (v Value) WithOffset(seconds int) Value {
	v.Offset = seconds
	v.Fields |= FieldOffset
	return v
}

func (v Value) WithZone(abbr string) Value {
	v.Zone = abbr
	return v
}

func (v Value) WithCalendar(calendar string) Value {
	v.Calendar = calendar
	return v
}

// validate checks that required fields are present and every present field is in range.
func (v Value) validate(required Field) error {
	var missing, invalid []string
	for _, entry := range fieldNames {
		if required&entry.field != 0 && v.Fields&entry.field == 0 {
			missing = append(missing, entry.name)
		}
	}

	check := func(f Field, value, lo, hi int) {
		if v.Fields&f == 0 {
			return
		}
		if value < lo || value > hi {
			invalid = append(invalid, f.String())
		}
	}
	check(FieldMonth, v.Month, 1, 12)
	check(FieldDay, v.Day, 1, 31)
	check(FieldHour, v.Hour, 0, 23)
	check(FieldMinute, v.Minute, 0, 59)
	check(FieldSecond, v.Second, 0, 60)
	check(FieldMicrosecond, v.Microsecond, 0, 999999)
	check(FieldOffset, v.Offset, -maxOffsetSeconds, maxOffsetSeconds)

	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}
	return &InvalidValueError{Missing: missing, Invalid: invalid}
}

func (v Value) weekday() time.Weekday {
	return time.Date(v.Year, time.Month(v.Month), v.Day, 0, 0, 0, 0, time.UTC).Weekday()
}
