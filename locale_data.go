package timefmt

import (
	"fmt"
	"sort"
	"strings"
)

// RepositoryData is the serialized form of the locale data repository.
type RepositoryData struct {
	Locales    map[string]LocaleData `json:"locales" yaml:"locales" toml:"locales"`
	HourCycles HourCycleData         `json:"hour_cycles" yaml:"hour_cycles" toml:"hour_cycles"`
}

// HourCycleData maps locale identifiers and territories to hour cycle
// symbols (h, K, H, k or h12, h11, h23, h24). The territory "001" is the
// global default.
type HourCycleData struct {
	Locales     map[string]string `json:"locales,omitempty" yaml:"locales,omitempty" toml:"locales,omitempty"`
	Territories map[string]string `json:"territories,omitempty" yaml:"territories,omitempty" toml:"territories,omitempty"`
}

// LocaleData holds the gregorian calendar patterns and names of one locale.
type LocaleData struct {
	ID string `json:"-" yaml:"-" toml:"-"`
	// FirstDayOfWeek uses time.Weekday numbering (0 = Sunday).
	FirstDayOfWeek  int           `json:"first_day_of_week" yaml:"first_day_of_week" toml:"first_day_of_week"`
	TimeFormats     StylePatterns `json:"time_formats" yaml:"time_formats" toml:"time_formats"`
	DateFormats     StylePatterns `json:"date_formats" yaml:"date_formats" toml:"date_formats"`
	DateTimeFormats StylePatterns `json:"date_time_formats" yaml:"date_time_formats" toml:"date_time_formats"`
	Eras            NameSet       `json:"eras" yaml:"eras" toml:"eras"`
	Months          NameSet       `json:"months" yaml:"months" toml:"months"`
	Weekdays        NameSet       `json:"weekdays" yaml:"weekdays" toml:"weekdays"`
	Quarters        NameSet       `json:"quarters" yaml:"quarters" toml:"quarters"`
	Periods         NameSet       `json:"periods" yaml:"periods" toml:"periods"`
	TimeZone        OffsetFormats `json:"time_zone" yaml:"time_zone" toml:"time_zone"`
}

// StylePatterns holds one pattern per named style. Date-time patterns use
// {1} for the date and {0} for the time.
type StylePatterns struct {
	Short  string `json:"short" yaml:"short" toml:"short"`
	Medium string `json:"medium" yaml:"medium" toml:"medium"`
	Long   string `json:"long" yaml:"long" toml:"long"`
	Full   string `json:"full" yaml:"full" toml:"full"`
}

// Pattern returns the pattern for style, or "" if unset.
func (p StylePatterns) Pattern(style Style) string {
	switch style {
	case StyleShort:
		return p.Short
	case StyleMedium:
		return p.Medium
	case StyleLong:
		return p.Long
	case StyleFull:
		return p.Full
	}
	return ""
}

func (p StylePatterns) isZero() bool {
	return p == StylePatterns{}
}

// NameSet holds the display names of one field for each width.
type NameSet struct {
	Abbreviated []string `json:"abbreviated,omitempty" yaml:"abbreviated,omitempty" toml:"abbreviated,omitempty"`
	Wide        []string `json:"wide,omitempty" yaml:"wide,omitempty" toml:"wide,omitempty"`
	Narrow      []string `json:"narrow,omitempty" yaml:"narrow,omitempty" toml:"narrow,omitempty"`
	Short       []string `json:"short,omitempty" yaml:"short,omitempty" toml:"short,omitempty"`
	// Variant holds alternate names, e.g. "CE"/"BCE" eras or lowercase periods.
	Variant []string `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty"`
}

func (n NameSet) width(w nameWidth) []string {
	switch w {
	case widthAbbreviated:
		return n.Abbreviated
	case widthWide:
		return n.Wide
	case widthNarrow:
		return n.Narrow
	case widthShort:
		if len(n.Short) > 0 {
			return n.Short
		}
		return n.Abbreviated
	}
	return nil
}

func (n NameSet) isZero() bool {
	return len(n.Abbreviated) == 0 && len(n.Wide) == 0 && len(n.Narrow) == 0 &&
		len(n.Short) == 0 && len(n.Variant) == 0
}

// OffsetFormats are the localized GMT offset templates.
type OffsetFormats struct {
	// GMTFormat wraps the rendered offset, e.g. "GMT{0}".
	GMTFormat string `json:"gmt_format" yaml:"gmt_format" toml:"gmt_format"`
	// GMTZeroFormat is emitted verbatim for a zero offset.
	GMTZeroFormat string `json:"gmt_zero_format" yaml:"gmt_zero_format" toml:"gmt_zero_format"`
	// HourFormat is "positive;negative", e.g. "+HH:mm;-HH:mm".
	HourFormat string `json:"hour_format" yaml:"hour_format" toml:"hour_format"`
}

// Repository is an immutable snapshot of locale data.
type Repository struct {
	locales    map[string]*LocaleData
	ids        []string
	hourCycles *HourCycleResolver
}

// NewRepository validates data and builds a repository.
func NewRepository(data RepositoryData) (*Repository, error) {
	resolver, err := NewHourCycleResolver(data.HourCycles)
	if err != nil {
		return nil, fmt.Errorf("locale repository: %w", err)
	}

	repo := &Repository{
		locales:    make(map[string]*LocaleData, len(data.Locales)),
		hourCycles: resolver,
	}

	for original, locale := range data.Locales {
		id := normalizeLocale(original)
		if id == "" {
			return nil, fmt.Errorf("locale repository: empty locale code")
		}
		if _, exists := repo.locales[id]; exists {
			return nil, fmt.Errorf("locale repository: duplicate locale %q", id)
		}
		if err := validateLocaleData(id, locale); err != nil {
			return nil, err
		}
		entry := locale
		entry.ID = id
		repo.locales[id] = &entry
		repo.ids = append(repo.ids, id)
	}
	sort.Strings(repo.ids)

	return repo, nil
}

func validateLocaleData(id string, locale LocaleData) error {
	checks := []struct {
		name  string
		set   NameSet
		count int
	}{
		{"eras", locale.Eras, 2},
		{"months", locale.Months, 12},
		{"weekdays", locale.Weekdays, 7},
		{"quarters", locale.Quarters, 4},
		{"periods", locale.Periods, 2},
	}
	for _, check := range checks {
		widths := map[string][]string{
			"abbreviated": check.set.Abbreviated,
			"wide":        check.set.Wide,
			"narrow":      check.set.Narrow,
			"short":       check.set.Short,
			"variant":     check.set.Variant,
		}
		for width, names := range widths {
			if len(names) != 0 && len(names) != check.count {
				return fmt.Errorf("locale repository: %q %s %s: want %d names, got %d",
					id, width, check.name, check.count, len(names))
			}
		}
	}
	if locale.FirstDayOfWeek < 0 || locale.FirstDayOfWeek > 6 {
		return fmt.Errorf("locale repository: %q first_day_of_week %d out of range", id, locale.FirstDayOfWeek)
	}
	return nil
}

// Locale returns the data registered under exactly id.
func (r *Repository) Locale(id string) (*LocaleData, bool) {
	if r == nil {
		return nil, false
	}
	locale, ok := r.locales[normalizeLocale(id)]
	return locale, ok
}

// Resolve returns the closest locale data for locale, walking the parent
// chain ("en-AU" -> "en-001" -> "en").
func (r *Repository) Resolve(locale string) (*LocaleData, bool) {
	if r == nil {
		return nil, false
	}
	normalized := normalizeLocale(locale)
	if data, ok := r.locales[normalized]; ok {
		return data, true
	}
	for _, candidate := range localeResolutionCandidates(normalized) {
		if data, ok := r.locales[candidate]; ok {
			return data, true
		}
	}
	return nil, false
}

func localeResolutionCandidates(locale string) []string {
	candidates := localeParentChain(locale)
	if idx := strings.Index(locale, "-u-"); idx > 0 {
		bare := locale[:idx]
		candidates = append([]string{bare}, append(candidates, localeParentChain(bare)...)...)
	}
	return candidates
}

// Locales returns every locale id, sorted.
func (r *Repository) Locales() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.ids...)
}

// HourCycles returns the repository's hour cycle resolver.
func (r *Repository) HourCycles() *HourCycleResolver {
	if r == nil {
		return nil
	}
	return r.hourCycles
}
