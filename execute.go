package timefmt

import (
	"strconv"
	"strings"
)

// ExecOptions are the per-call rendering switches.
type ExecOptions struct {
	// EraVariant selects alternate era names (e.g. "CE"/"BCE").
	EraVariant bool
	// PeriodVariant selects alternate day period names (e.g. "am"/"pm").
	PeriodVariant bool
}

// Fragment is the output of one directive: text or a failure.
type Fragment struct {
	Text string
	Err  *DirectiveError
}

func (f Fragment) Failed() bool {
	return f.Err != nil
}

// Execute applies every directive to v. A failing directive yields an
// error fragment and execution continues, so the result always has one
// fragment per directive.
func (s Sequence) Execute(v Value, locale *LocaleData, opts ExecOptions) []Fragment {
	fragments := make([]Fragment, len(s.directives))
	for i, d := range s.directives {
		text, err := d.execute(v, locale, opts)
		if err != nil {
			fragments[i] = Fragment{Err: err}
			continue
		}
		fragments[i] = Fragment{Text: text}
	}
	return fragments
}

// Aggregate concatenates fragments, or joins every failure into one error.
func Aggregate(fragments []Fragment) (string, error) {
	var reasons []string
	size := 0
	for _, fragment := range fragments {
		if fragment.Failed() {
			reasons = append(reasons, fragment.Err.Error())
			continue
		}
		size += len(fragment.Text)
	}
	if len(reasons) > 0 {
		return "", &ExecutionError{Reasons: reasons}
	}

	var b strings.Builder
	b.Grow(size)
	for _, fragment := range fragments {
		b.WriteString(fragment.Text)
	}
	return b.String(), nil
}

func (d Directive) fail(reason string) *DirectiveError {
	return &DirectiveError{Symbol: d.symbol(), Reason: reason}
}

func (d Directive) require(v Value, fields Field) *DirectiveError {
	if v.Has(fields) {
		return nil
	}
	return d.fail("value has no " + (fields &^ v.Fields).String())
}

func (d Directive) execute(v Value, locale *LocaleData, opts ExecOptions) (string, *DirectiveError) {
	switch d.Kind {
	case DirectiveLiteral:
		return d.text, nil

	case DirectiveEra:
		if err := d.require(v, FieldYear); err != nil {
			return "", err
		}
		index := 1
		if v.Year <= 0 {
			index = 0
		}
		return d.name(locale, func(l *LocaleData) NameSet { return l.Eras }, index, opts.EraVariant)

	case DirectiveYear:
		if err := d.require(v, FieldYear); err != nil {
			return "", err
		}
		year := v.Year
		if year <= 0 {
			year = 1 - year
		}
		if d.Width == 2 {
			return padInt(year%100, 2), nil
		}
		return padInt(year, d.Width), nil

	case DirectiveExtendedYear:
		if err := d.require(v, FieldYear); err != nil {
			return "", err
		}
		if v.Year < 0 {
			return "-" + padInt(-v.Year, d.Width), nil
		}
		return padInt(v.Year, d.Width), nil

	case DirectiveQuarter:
		if err := d.require(v, FieldMonth); err != nil {
			return "", err
		}
		quarter := (v.Month-1)/3 + 1
		if d.names == widthNumeric {
			return padInt(quarter, d.Width), nil
		}
		return d.name(locale, func(l *LocaleData) NameSet { return l.Quarters }, quarter-1, false)

	case DirectiveMonth:
		if err := d.require(v, FieldMonth); err != nil {
			return "", err
		}
		if d.names == widthNumeric {
			return padInt(v.Month, d.Width), nil
		}
		return d.name(locale, func(l *LocaleData) NameSet { return l.Months }, v.Month-1, false)

	case DirectiveDay:
		if err := d.require(v, FieldDay); err != nil {
			return "", err
		}
		return padInt(v.Day, d.Width), nil

	case DirectiveWeekday:
		if err := d.require(v, dateFields); err != nil {
			return "", err
		}
		return d.name(locale, func(l *LocaleData) NameSet { return l.Weekdays }, int(v.weekday()), false)

	case DirectiveLocalWeekday:
		if err := d.require(v, dateFields); err != nil {
			return "", err
		}
		first := 0
		if locale != nil {
			first = locale.FirstDayOfWeek
		}
		return padInt((int(v.weekday())-first+7)%7+1, d.Width), nil

	case DirectivePeriod:
		if err := d.require(v, FieldHour); err != nil {
			return "", err
		}
		index := 0
		if v.Hour >= 12 {
			index = 1
		}
		return d.name(locale, func(l *LocaleData) NameSet { return l.Periods }, index, opts.PeriodVariant)

	case DirectiveHour:
		if err := d.require(v, FieldHour); err != nil {
			return "", err
		}
		return padInt(d.cycle.apply(v.Hour), d.Width), nil

	case DirectiveMinute:
		if err := d.require(v, FieldMinute); err != nil {
			return "", err
		}
		return padInt(v.Minute, d.Width), nil

	case DirectiveSecond:
		if err := d.require(v, FieldSecond); err != nil {
			return "", err
		}
		return padInt(v.Second, d.Width), nil

	case DirectiveFraction:
		if err := d.require(v, FieldMicrosecond); err != nil {
			return "", err
		}
		return fraction(v.Microsecond, d.Width), nil

	case DirectiveMillisInDay:
		if err := d.require(v, clockFields); err != nil {
			return "", err
		}
		millis := (v.Hour*3600+v.Minute*60+v.Second)*1000 + v.Microsecond/1000
		return padInt(millis, d.Width), nil

	case DirectiveZoneName:
		if !d.long && isZoneAbbreviation(v.Zone) {
			return v.Zone, nil
		}
		if err := d.require(v, FieldOffset); err != nil {
			return "", err
		}
		return d.offset.format(v.Offset, d.long), nil

	case DirectiveGMTOffset:
		if err := d.require(v, FieldOffset); err != nil {
			return "", err
		}
		return d.offset.format(v.Offset, d.long), nil

	case DirectiveISOOffset:
		if err := d.require(v, FieldOffset); err != nil {
			return "", err
		}
		return formatISOOffset(v.Offset, d.iso, d.zeroZ), nil
	}

	return "", d.fail("unknown directive")
}

// name looks up a localized name; variant names win when requested and present.
func (d Directive) name(locale *LocaleData, set func(*LocaleData) NameSet, index int, variant bool) (string, *DirectiveError) {
	if locale == nil {
		return "", d.fail("no locale data for names")
	}
	names := set(locale)
	table := names.width(d.names)
	if variant && len(names.Variant) > 0 {
		table = names.Variant
	}
	if index < 0 || index >= len(table) {
		return "", d.fail("no " + d.names.String() + " name for index " + strconv.Itoa(index))
	}
	return table[index], nil
}

func padInt(value, width int) string {
	s := strconv.Itoa(value)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// fraction truncates or zero-extends microseconds to width digits.
func fraction(microsecond, width int) string {
	digits := padInt(microsecond, 6)
	if width <= len(digits) {
		return digits[:width]
	}
	return digits + strings.Repeat("0", width-len(digits))
}
