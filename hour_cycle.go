package timefmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// HourCycle is the convention for numbering hours across midnight and noon.
type HourCycle uint8

const (
	hourCycleUnset HourCycle = iota
	// H12With12 numbers hours 1-12; midnight and noon render as 12 (symbol h).
	H12With12
	// H12With0 numbers hours 0-11; midnight and noon render as 0 (symbol K).
	H12With0
	// H24With0 numbers hours 0-23 (symbol H).
	H24With0
	// H24With24 numbers hours 1-24; midnight renders as 24 (symbol k).
	H24With24
)

// globalTerritory is the CLDR world region used as the last table entry.
const globalTerritory = "001"

// fallbackHourCycle applies when no table entry matches at all.
const fallbackHourCycle = H24With0

// Symbol returns the pattern letter for the cycle.
func (c HourCycle) Symbol() rune {
	switch c {
	case H12With12:
		return 'h'
	case H12With0:
		return 'K'
	case H24With0:
		return 'H'
	case H24With24:
		return 'k'
	}
	return 0
}

func (c HourCycle) String() string {
	switch c {
	case H12With12:
		return "h12_with_12"
	case H12With0:
		return "h12_with_0"
	case H24With0:
		return "h24_with_0"
	case H24With24:
		return "h24_with_24"
	}
	return "unset"
}

// Is12Hour reports whether the cycle needs a day period to be unambiguous.
func (c HourCycle) Is12Hour() bool {
	return c == H12With12 || c == H12With0
}

// apply maps a 0-23 clock hour onto the cycle.
func (c HourCycle) apply(hour int) int {
	switch c {
	case H12With12:
		if h := hour % 12; h != 0 {
			return h
		}
		return 12
	case H12With0:
		return hour % 12
	case H24With24:
		if hour == 0 {
			return 24
		}
		return hour
	default:
		return hour
	}
}

// ParseHourCycle accepts pattern symbols (h, K, H, k) and Unicode
// extension values (h12, h11, h23, h24).
func ParseHourCycle(value string) (HourCycle, error) {
	switch strings.TrimSpace(value) {
	case "h", "h12":
		return H12With12, nil
	case "K", "h11":
		return H12With0, nil
	case "H", "h23":
		return H24With0, nil
	case "k", "h24":
		return H24With24, nil
	}
	return hourCycleUnset, fmt.Errorf("timefmt: unknown hour cycle %q", value)
}

func hourCycleForSymbol(symbol rune) HourCycle {
	switch symbol {
	case 'h':
		return H12With12
	case 'K':
		return H12With0
	case 'H':
		return H24With0
	case 'k':
		return H24With24
	}
	return hourCycleUnset
}

// HourCycleResolver picks a locale's hour cycle from an immutable
// preference table keyed by locale identifier and territory.
type HourCycleResolver struct {
	locales     map[string]HourCycle
	territories map[string]HourCycle
}

// NewHourCycleResolver builds a resolver from raw table data.
func NewHourCycleResolver(data HourCycleData) (*HourCycleResolver, error) {
	r := &HourCycleResolver{
		locales:     make(map[string]HourCycle, len(data.Locales)),
		territories: make(map[string]HourCycle, len(data.Territories)),
	}
	for locale, symbol := range data.Locales {
		cycle, err := ParseHourCycle(symbol)
		if err != nil {
			return nil, fmt.Errorf("hour cycle for locale %q: %w", locale, err)
		}
		r.locales[normalizeLocale(locale)] = cycle
	}
	for territory, symbol := range data.Territories {
		cycle, err := ParseHourCycle(symbol)
		if err != nil {
			return nil, fmt.Errorf("hour cycle for territory %q: %w", territory, err)
		}
		r.territories[strings.ToUpper(strings.TrimSpace(territory))] = cycle
	}
	return r, nil
}

// Override returns the hour cycle requested by a -u-hc- extension, if any.
func (r *HourCycleResolver) Override(locale string) (HourCycle, bool) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return hourCycleUnset, false
	}
	return hourCycleOverride(tag)
}

func hourCycleOverride(tag language.Tag) (HourCycle, bool) {
	value := tag.TypeForKey("hc")
	if value == "" {
		return hourCycleUnset, false
	}
	cycle, err := ParseHourCycle(value)
	if err != nil {
		return hourCycleUnset, false
	}
	return cycle, true
}

// Resolve returns the hour cycle for locale. Precedence: explicit -u-hc-
// override, locale entry, territory entry, global entry, then H24With0.
func (r *HourCycleResolver) Resolve(locale string) HourCycle {
	normalized := normalizeLocale(locale)
	tag, err := language.Parse(normalized)
	if err != nil {
		return r.global()
	}

	if cycle, ok := hourCycleOverride(tag); ok {
		return cycle
	}
	if r == nil {
		return fallbackHourCycle
	}

	if cycle, ok := r.locales[localeWithoutExtensions(tag)]; ok {
		return cycle
	}

	if region, _ := tag.Region(); region.String() != "ZZ" {
		if cycle, ok := r.territories[region.String()]; ok {
			return cycle
		}
	}

	return r.global()
}

func (r *HourCycleResolver) global() HourCycle {
	if r != nil {
		if cycle, ok := r.territories[globalTerritory]; ok {
			return cycle
		}
	}
	return fallbackHourCycle
}
