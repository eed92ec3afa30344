package timefmt

import (
	"fmt"
	"strings"
)

const gmtPlaceholder = "{0}"

// offsetTemplatePair holds the compiled sequences for each offset sign.
type offsetTemplatePair struct {
	positive Sequence
	negative Sequence
}

func (p offsetTemplatePair) forSign(negative bool) Sequence {
	if negative {
		return p.negative
	}
	return p.positive
}

// offsetFormat is the per-locale localized GMT formatter, resolved once
// at compile time and shared by every offset directive of the locale.
type offsetFormat struct {
	prefix   string
	suffix   string
	zeroText string
	long     offsetTemplatePair
	short    offsetTemplatePair
	// hoursOnly drops the minutes of the short form when they are zero.
	hoursOnly offsetTemplatePair
}

func compileOffsetFormat(locale *LocaleData) (*offsetFormat, error) {
	formats := locale.TimeZone
	if formats.GMTFormat == "" || formats.HourFormat == "" || formats.GMTZeroFormat == "" {
		return nil, fmt.Errorf("incomplete time zone formats for locale %q", locale.ID)
	}

	idx := strings.Index(formats.GMTFormat, gmtPlaceholder)
	if idx < 0 {
		return nil, fmt.Errorf("gmt format %q has no %s placeholder", formats.GMTFormat, gmtPlaceholder)
	}

	positive, negative := splitHourFormat(formats.HourFormat)

	out := &offsetFormat{
		prefix:   formats.GMTFormat[:idx],
		suffix:   formats.GMTFormat[idx+len(gmtPlaceholder):],
		zeroText: formats.GMTZeroFormat,
	}

	for _, part := range []struct {
		pattern string
		long    *Sequence
		short   *Sequence
		hours   *Sequence
	}{
		{positive, &out.long.positive, &out.short.positive, &out.hoursOnly.positive},
		{negative, &out.long.negative, &out.short.negative, &out.hoursOnly.negative},
	} {
		long, err := compileHourFormat(part.pattern, locale)
		if err != nil {
			return nil, err
		}
		*part.long = long
		*part.short = shortOffsetSequence(long)
		*part.hours = hoursOnlySequence(*part.short)
	}

	return out, nil
}

// splitHourFormat splits "+HH:mm;-HH:mm". A missing negative half is
// derived from the positive one.
func splitHourFormat(format string) (string, string) {
	positive, negative, found := strings.Cut(format, ";")
	if !found || negative == "" {
		negative = strings.Replace(positive, "+", "-", 1)
	}
	return positive, negative
}

func compileHourFormat(pattern string, locale *LocaleData) (Sequence, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return Sequence{}, fmt.Errorf("hour format %q: %w", pattern, err)
	}
	hasHour := false
	for _, token := range tokens {
		switch token.Symbol {
		case 0, 'm', 's':
		case 'H':
			hasHour = true
		default:
			return Sequence{}, fmt.Errorf("hour format %q: unexpected symbol %q", pattern, token.String())
		}
	}
	if !hasHour {
		return Sequence{}, fmt.Errorf("hour format %q has no hour field", pattern)
	}
	return CompileTokens(pattern, tokens, CompileContext{Locale: locale})
}

// shortOffsetSequence renders hours without zero padding.
func shortOffsetSequence(seq Sequence) Sequence {
	directives := seq.Directives()
	for i := range directives {
		if directives[i].Kind == DirectiveHour {
			directives[i].Width = 1
		}
	}
	return Sequence{pattern: seq.pattern, directives: directives}
}

// hoursOnlySequence removes everything between the hour field and the
// last minute/second field, keeping surrounding literals.
func hoursOnlySequence(seq Sequence) Sequence {
	hour, last := -1, -1
	for i, d := range seq.directives {
		switch d.Kind {
		case DirectiveHour:
			if hour < 0 {
				hour = i
			}
		case DirectiveMinute, DirectiveSecond:
			last = i
		}
	}
	if hour < 0 || last < hour {
		return seq
	}
	directives := make([]Directive, 0, len(seq.directives))
	directives = append(directives, seq.directives[:hour+1]...)
	directives = append(directives, seq.directives[last+1:]...)
	return Sequence{pattern: seq.pattern, directives: directives}
}

// offsetParts splits a signed offset in seconds into its absolute parts.
func offsetParts(offset int) (negative bool, hours, minutes, seconds int) {
	if offset < 0 {
		negative = true
		offset = -offset
	}
	return negative, offset / 3600, offset % 3600 / 60, offset % 60
}

// format renders the localized GMT text for offset (seconds east of UTC).
func (o *offsetFormat) format(offset int, long bool) string {
	if offset == 0 {
		return o.zeroText
	}

	negative, hours, minutes, seconds := offsetParts(offset)

	var seq Sequence
	switch {
	case long:
		seq = o.long.forSign(negative)
	case minutes == 0 && seconds == 0:
		seq = o.hoursOnly.forSign(negative)
	default:
		seq = o.short.forSign(negative)
	}

	rendered, err := Aggregate(seq.Execute(Clock(hours, minutes, seconds), nil, ExecOptions{}))
	if err != nil {
		// offset sequences only hold clock fields, which Clock always sets
		return o.zeroText
	}
	return o.prefix + rendered + o.suffix
}

// formatISOOffset renders ISO 8601 offsets for X/x variants 1-5.
// Variants: 1 "+HH[mm]", 2 "+HHmm", 3 "+HH:mm", 4 "+HHmm[ss]", 5 "+HH:mm[:ss]".
func formatISOOffset(offset, variant int, zeroZ bool) string {
	if offset == 0 && zeroZ {
		return "Z"
	}

	negative, hours, minutes, seconds := offsetParts(offset)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	b.WriteString(padInt(hours, 2))

	separator := ""
	if variant == 3 || variant == 5 {
		separator = ":"
	}

	switch variant {
	case 1:
		if minutes != 0 {
			b.WriteString(padInt(minutes, 2))
		}
	case 2, 3:
		b.WriteString(separator)
		b.WriteString(padInt(minutes, 2))
	default:
		b.WriteString(separator)
		b.WriteString(padInt(minutes, 2))
		if seconds != 0 {
			b.WriteString(separator)
			b.WriteString(padInt(seconds, 2))
		}
	}
	return b.String()
}
