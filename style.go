package timefmt

// Style is a named preset pattern resolved per locale.
type Style string

const (
	StyleShort  Style = "short"
	StyleMedium Style = "medium"
	StyleLong   Style = "long"
	StyleFull   Style = "full"
)

// Styles lists every named style in increasing verbosity.
var Styles = []Style{StyleShort, StyleMedium, StyleLong, StyleFull}

func (s Style) Valid() bool {
	switch s {
	case StyleShort, StyleMedium, StyleLong, StyleFull:
		return true
	}
	return false
}

// Kind selects which value components a style formats.
type Kind uint8

const (
	KindTime Kind = iota
	KindDate
	KindDateTime
)

var kinds = []Kind{KindTime, KindDate, KindDateTime}

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	}
	return "unknown"
}

func (k Kind) requiredFields() Field {
	switch k {
	case KindDate:
		return dateFields
	case KindDateTime:
		return dateFields | clockFields
	default:
		return clockFields
	}
}

// stylePattern resolves the pattern string for kind/style in locale.
// Date-time styles combine the date and time patterns of the same style.
func stylePattern(locale *LocaleData, kind Kind, style Style) (string, error) {
	if !style.Valid() {
		return "", &CompileError{
			Pattern: string(style),
			Reason:  "format type must be one of short, medium, long or full",
			Err:     ErrInvalidFormatType,
		}
	}

	missing := func(what string) error {
		return &CompileError{
			Pattern: string(style),
			Locale:  locale.ID,
			Reason:  "no " + what + " pattern",
			Err:     ErrMissingTemplate,
		}
	}

	switch kind {
	case KindTime:
		if p := locale.TimeFormats.Pattern(style); p != "" {
			return p, nil
		}
		return "", missing("time")
	case KindDate:
		if p := locale.DateFormats.Pattern(style); p != "" {
			return p, nil
		}
		return "", missing("date")
	default:
		glue := locale.DateTimeFormats.Pattern(style)
		date := locale.DateFormats.Pattern(style)
		clock := locale.TimeFormats.Pattern(style)
		if glue == "" || date == "" || clock == "" {
			return "", missing("date-time")
		}
		return combineDateTime(glue, date, clock), nil
	}
}

// combineDateTime substitutes {1} and {0} outside quoted sections.
func combineDateTime(glue, date, clock string) string {
	var out []rune
	quoted := false
	runes := []rune(glue)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\'' {
			quoted = !quoted
			out = append(out, r)
			continue
		}
		if !quoted && r == '{' && i+2 < len(runes) && runes[i+2] == '}' {
			switch runes[i+1] {
			case '0':
				out = append(out, []rune(clock)...)
				i += 2
				continue
			case '1':
				out = append(out, []rune(date)...)
				i += 2
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}
