package timefmt

import (
	"fmt"
	"strings"
)

// DirectiveKind enumerates the closed family of formatting directives.
type DirectiveKind uint8

const (
	DirectiveLiteral DirectiveKind = iota
	DirectiveEra
	DirectiveYear
	DirectiveExtendedYear
	DirectiveQuarter
	DirectiveMonth
	DirectiveDay
	DirectiveWeekday
	DirectiveLocalWeekday
	DirectivePeriod
	DirectiveHour
	DirectiveMinute
	DirectiveSecond
	DirectiveFraction
	DirectiveMillisInDay
	DirectiveZoneName
	DirectiveGMTOffset
	DirectiveISOOffset
)

type nameWidth uint8

const (
	widthNumeric nameWidth = iota
	widthAbbreviated
	widthWide
	widthNarrow
	widthShort
)

func (w nameWidth) String() string {
	switch w {
	case widthAbbreviated:
		return "abbreviated"
	case widthWide:
		return "wide"
	case widthNarrow:
		return "narrow"
	case widthShort:
		return "short"
	}
	return "numeric"
}

// Directive is one compiled unit of a pattern. It owns only compile-time
// parameters; locale names are supplied at execution.
type Directive struct {
	Kind   DirectiveKind
	Symbol rune
	Width  int
	text   string
	names  nameWidth
	cycle  HourCycle
	offset *offsetFormat
	// long selects the long localized GMT form; zeroZ prints "Z" for ISO zero offsets.
	long  bool
	zeroZ bool
	iso   int
}

func (d Directive) symbol() string {
	if d.Kind == DirectiveLiteral {
		return ""
	}
	return strings.Repeat(string(d.Symbol), d.Width)
}

// HourCycle returns the numbering convention of an hour directive.
func (d Directive) HourCycle() HourCycle {
	return d.cycle
}

// Literal returns the text of a literal directive.
func (d Directive) Literal() string {
	return d.text
}

// Sequence is an ordered, immutable list of directives for one pattern.
type Sequence struct {
	pattern    string
	directives []Directive
}

func (s Sequence) Pattern() string {
	return s.pattern
}

func (s Sequence) Len() int {
	return len(s.directives)
}

// Directives returns a copy of the compiled directives.
func (s Sequence) Directives() []Directive {
	return append([]Directive(nil), s.directives...)
}

// CompileContext carries the locale inputs resolved at compile time.
type CompileContext struct {
	Locale *LocaleData
	// LocaleID is the requested locale; it drives hour cycle resolution
	// and may carry -u-hc- overrides.
	LocaleID   string
	Calendar   string
	HourCycles *HourCycleResolver
}

func (c CompileContext) localeID() string {
	if c.LocaleID != "" {
		return c.LocaleID
	}
	if c.Locale != nil {
		return c.Locale.ID
	}
	return ""
}

const calendarGregorian = "gregorian"

func (c CompileContext) calendar() string {
	switch strings.ToLower(strings.TrimSpace(c.Calendar)) {
	case "", calendarGregorian, "gregory":
		return calendarGregorian
	default:
		return strings.ToLower(strings.TrimSpace(c.Calendar))
	}
}

// Compile tokenizes pattern and compiles it for ctx.
func Compile(pattern string, ctx CompileContext) (Sequence, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return Sequence{}, err
	}
	return CompileTokens(pattern, tokens, ctx)
}

// CompileTokens compiles already tokenized pattern text.
func CompileTokens(pattern string, tokens []Token, ctx CompileContext) (Sequence, error) {
	if ctx.Locale == nil {
		return Sequence{}, &CompileError{Pattern: pattern, Locale: ctx.LocaleID, Reason: "no locale data", Err: ErrUnknownLocale}
	}

	c := compiler{pattern: pattern, ctx: ctx}
	if override, ok := ctx.HourCycles.Override(ctx.localeID()); ok {
		c.override = override
	}

	directives := make([]Directive, 0, len(tokens))
	for _, token := range tokens {
		d, err := c.compileToken(token)
		if err != nil {
			return Sequence{}, err
		}
		directives = append(directives, d)
	}
	return Sequence{pattern: pattern, directives: directives}, nil
}

type compiler struct {
	pattern  string
	ctx      CompileContext
	override HourCycle
	offset   *offsetFormat
}

func (c *compiler) fail(token Token, reason string, err error) error {
	return &CompileError{
		Pattern: c.pattern,
		Symbol:  token.String(),
		Locale:  c.ctx.localeID(),
		Reason:  reason,
		Err:     err,
	}
}

func (c *compiler) unsupportedWidth(token Token) error {
	return c.fail(token, fmt.Sprintf("width %d is not supported", token.Count), nil)
}

func (c *compiler) compileToken(token Token) (Directive, error) {
	if token.IsLiteral() {
		return Directive{Kind: DirectiveLiteral, text: token.Literal}, nil
	}

	d := Directive{Symbol: token.Symbol, Width: token.Count}

	if isDateSymbol(token.Symbol) && c.ctx.calendar() != calendarGregorian {
		return d, c.fail(token, "no directive for calendar "+c.ctx.calendar(), nil)
	}

	switch token.Symbol {
	case 'G':
		d.Kind = DirectiveEra
		w, ok := textWidth(token.Count, false)
		return c.withNames(d, token, c.ctx.Locale.Eras, "era", w, ok)
	case 'y':
		d.Kind = DirectiveYear
	case 'u':
		d.Kind = DirectiveExtendedYear
	case 'Q', 'q':
		d.Kind = DirectiveQuarter
		w, ok := textWidth(token.Count, true)
		return c.withNames(d, token, c.ctx.Locale.Quarters, "quarter", w, ok)
	case 'M', 'L':
		d.Kind = DirectiveMonth
		w, ok := textWidth(token.Count, true)
		return c.withNames(d, token, c.ctx.Locale.Months, "month", w, ok)
	case 'd':
		d.Kind = DirectiveDay
		if token.Count > 2 {
			return d, c.unsupportedWidth(token)
		}
	case 'E':
		d.Kind = DirectiveWeekday
		w, ok := weekdayWidth(max(token.Count, 3))
		return c.withNames(d, token, c.ctx.Locale.Weekdays, "weekday", w, ok)
	case 'e', 'c':
		if token.Count <= 2 {
			d.Kind = DirectiveLocalWeekday
			return d, nil
		}
		d.Kind = DirectiveWeekday
		w, ok := weekdayWidth(token.Count)
		return c.withNames(d, token, c.ctx.Locale.Weekdays, "weekday", w, ok)
	case 'a':
		d.Kind = DirectivePeriod
		w, ok := textWidth(token.Count, false)
		return c.withNames(d, token, c.ctx.Locale.Periods, "period", w, ok)
	case 'h', 'H', 'K', 'k', 'j', 'J':
		return c.compileHour(d, token)
	case 'm':
		d.Kind = DirectiveMinute
		if token.Count > 2 {
			return d, c.unsupportedWidth(token)
		}
	case 's':
		d.Kind = DirectiveSecond
		if token.Count > 2 {
			return d, c.unsupportedWidth(token)
		}
	case 'S':
		d.Kind = DirectiveFraction
	case 'A':
		d.Kind = DirectiveMillisInDay
	case 'z', 'v':
		if token.Count > 4 || token.Symbol == 'v' && token.Count != 1 && token.Count != 4 {
			return d, c.unsupportedWidth(token)
		}
		d.Kind = DirectiveZoneName
		d.long = token.Count == 4
		return c.withOffset(d, token)
	case 'O':
		if token.Count != 1 && token.Count != 4 {
			return d, c.unsupportedWidth(token)
		}
		d.Kind = DirectiveGMTOffset
		d.long = token.Count == 4
		return c.withOffset(d, token)
	case 'Z':
		switch {
		case token.Count <= 3:
			d.Kind = DirectiveISOOffset
			d.iso = 2
		case token.Count == 4:
			d.Kind = DirectiveGMTOffset
			d.long = true
			return c.withOffset(d, token)
		case token.Count == 5:
			d.Kind = DirectiveISOOffset
			d.iso = 5
			d.zeroZ = true
		default:
			return d, c.unsupportedWidth(token)
		}
	case 'X', 'x':
		if token.Count > 5 {
			return d, c.unsupportedWidth(token)
		}
		d.Kind = DirectiveISOOffset
		d.iso = token.Count
		d.zeroZ = token.Symbol == 'X'
	default:
		return d, c.fail(token, "no directive for symbol in the "+c.ctx.calendar()+" calendar", nil)
	}

	return d, nil
}

func (c *compiler) compileHour(d Directive, token Token) (Directive, error) {
	d.Kind = DirectiveHour
	if token.Count > 2 {
		return d, c.unsupportedWidth(token)
	}

	switch token.Symbol {
	case 'j', 'J':
		d.cycle = c.ctx.HourCycles.Resolve(c.ctx.localeID())
	default:
		d.cycle = hourCycleForSymbol(token.Symbol)
		if c.override != hourCycleUnset {
			d.cycle = c.override
		}
	}
	return d, nil
}

// withNames checks that the locale supplies the name table the directive
// will index into at execution time.
func (c *compiler) withNames(d Directive, token Token, set NameSet, field string, width nameWidth, ok bool) (Directive, error) {
	if !ok {
		return d, c.unsupportedWidth(token)
	}
	if width == widthNumeric {
		return d, nil
	}
	if len(set.width(width)) == 0 {
		return d, c.fail(token, fmt.Sprintf("no %s %s names", width, field), ErrMissingTemplate)
	}
	d.names = width
	return d, nil
}

func (c *compiler) withOffset(d Directive, token Token) (Directive, error) {
	if c.offset == nil {
		offset, err := compileOffsetFormat(c.ctx.Locale)
		if err != nil {
			return d, c.fail(token, err.Error(), ErrMissingTemplate)
		}
		c.offset = offset
	}
	d.offset = c.offset
	return d, nil
}

func isDateSymbol(symbol rune) bool {
	return strings.ContainsRune("GyYuUrQqMLlwWdDFgEec", symbol)
}

// textWidth maps a symbol count onto a name width; counts below 3 are
// numeric when the field has a numeric form.
func textWidth(count int, numeric bool) (nameWidth, bool) {
	switch {
	case count <= 2 && numeric:
		return widthNumeric, true
	case count <= 3:
		return widthAbbreviated, true
	case count == 4:
		return widthWide, true
	case count == 5:
		return widthNarrow, true
	}
	return widthNumeric, false
}

func weekdayWidth(count int) (nameWidth, bool) {
	switch count {
	case 3:
		return widthAbbreviated, true
	case 4:
		return widthWide, true
	case 5:
		return widthNarrow, true
	case 6:
		return widthShort, true
	}
	return widthNumeric, false
}
