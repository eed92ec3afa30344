package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	timefmt "github.com/goliatone/go-timefmt"
	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

type localeSpec struct {
	Locale    string
	Territory string
}

type generatorConfig struct {
	out      string
	cldrPath string
	locales  []localeSpec
	zero     map[string]string
}

var emptyRegion language.Region

var weekdayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type listFlag struct {
	items []string
}

func (f *listFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *listFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "timefmt-cldr: %v\n", err)
	os.Exit(1)
}

func parseFlags(fs *flag.FlagSet, args []string) (generatorConfig, error) {
	var cfg generatorConfig
	var localeList, zeroList listFlag

	fs.StringVar(&cfg.out, "out", "data/time_locales.yaml", "path to generated YAML file")
	fs.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects subdirectories like main/ and supplemental/)")
	fs.Var(&localeList, "locale", "locale to generate (optionally include territory using locale:REGION). Repeat flag to add more.")
	fs.Var(&zeroList, "zero", "replace the zero offset text of a locale using locale=TEXT. Repeat flag to add more.")

	if err := fs.Parse(args); err != nil {
		return generatorConfig{}, err
	}

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}

	for _, spec := range localeList.items {
		parsed, err := parseLocaleSpec(spec)
		if err != nil {
			return generatorConfig{}, err
		}
		cfg.locales = append(cfg.locales, parsed)
	}

	zero, err := parseZeroOverrides(zeroList.items)
	if err != nil {
		return generatorConfig{}, err
	}
	cfg.zero = zero

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func parseZeroOverrides(items []string) (map[string]string, error) {
	out := make(map[string]string, len(items))
	for _, item := range items {
		locale, text, found := strings.Cut(item, "=")
		locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
		if !found || locale == "" || text == "" {
			return nil, fmt.Errorf("invalid zero override %q (want locale=TEXT)", item)
		}
		out[locale] = text
	}
	return out, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	payload, err := build(data, cfg)
	if err != nil {
		return err
	}

	// the generated file must load cleanly
	if _, err := timefmt.NewRepository(payload); err != nil {
		return fmt.Errorf("generated data is invalid: %w", err)
	}

	source, err := renderYAML(payload)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}

	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetDirFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func parseLocaleSpec(input string) (localeSpec, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return localeSpec{}, errors.New("empty locale value")
	}

	spec := localeSpec{}
	if strings.Contains(input, ":") {
		parts := strings.SplitN(input, ":", 2)
		spec.Locale = strings.TrimSpace(parts[0])
		spec.Territory = strings.ToUpper(strings.TrimSpace(parts[1]))
	} else {
		spec.Locale = input
	}

	spec.Locale = strings.ReplaceAll(spec.Locale, "_", "-")
	if spec.Locale == "" {
		return localeSpec{}, fmt.Errorf("invalid locale spec %q", input)
	}

	if spec.Territory == "" {
		if tag, err := language.Parse(spec.Locale); err == nil {
			if region, _ := tag.Region(); region != emptyRegion {
				spec.Territory = strings.ToUpper(region.String())
			}
		}
	}
	return spec, nil
}

func build(data *cldr.CLDR, cfg generatorConfig) (timefmt.RepositoryData, error) {
	payload := timefmt.RepositoryData{
		Locales: make(map[string]timefmt.LocaleData, len(cfg.locales)),
	}

	supplemental := data.Supplemental()
	payload.HourCycles = extractHourCycles(supplemental)

	for _, spec := range cfg.locales {
		ldml := findLDML(data, spec.Locale)
		if ldml == nil {
			return payload, fmt.Errorf("build %s: missing LDML data", spec.Locale)
		}

		locale, err := extractLocale(ldml)
		if err != nil {
			return payload, fmt.Errorf("build %s: %w", spec.Locale, err)
		}
		locale.FirstDayOfWeek = firstDayOfWeek(supplemental, spec.Territory)
		if text, ok := cfg.zero[spec.Locale]; ok {
			locale.TimeZone.GMTZeroFormat = text
		}
		payload.Locales[spec.Locale] = locale
	}

	return payload, nil
}

func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for {
		if candidate == "" {
			break
		}
		if ldml := data.RawLDML(candidate); ldml != nil {
			return ldml
		}
		if idx := strings.LastIndex(candidate, "_"); idx >= 0 {
			candidate = candidate[:idx]
			continue
		}
		break
	}
	return data.RawLDML("root")
}

func gregorian(ldml *cldr.LDML) *cldr.Calendar {
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar != nil && calendar.Type == "gregorian" {
			return calendar
		}
	}
	return nil
}

func extractLocale(ldml *cldr.LDML) (timefmt.LocaleData, error) {
	var locale timefmt.LocaleData

	calendar := gregorian(ldml)
	if calendar == nil {
		return locale, errors.New("no gregorian calendar")
	}

	if calendar.TimeFormats != nil {
		for _, length := range calendar.TimeFormats.TimeFormatLength {
			if length == nil {
				continue
			}
			for _, format := range length.TimeFormat {
				if format == nil {
					continue
				}
				var pattern string
				for _, p := range format.Pattern {
					pattern = preferPattern(pattern, &p.Common)
				}
				setStyle(&locale.TimeFormats, length.Type, pattern)
			}
		}
	}

	if calendar.DateFormats != nil {
		for _, length := range calendar.DateFormats.DateFormatLength {
			if length == nil {
				continue
			}
			for _, format := range length.DateFormat {
				if format == nil {
					continue
				}
				var pattern string
				for _, p := range format.Pattern {
					pattern = preferPattern(pattern, &p.Common)
				}
				setStyle(&locale.DateFormats, length.Type, pattern)
			}
		}
	}

	if calendar.DateTimeFormats != nil {
		for _, length := range calendar.DateTimeFormats.DateTimeFormatLength {
			if length == nil || length.Alt != "" {
				continue
			}
			for _, format := range length.DateTimeFormat {
				if format == nil || format.Type != "" && format.Type != "standard" {
					continue
				}
				var pattern string
				for _, p := range format.Pattern {
					pattern = preferPattern(pattern, &p.Common)
				}
				setStyle(&locale.DateTimeFormats, length.Type, pattern)
			}
		}
	}

	if calendar.Months != nil {
		for _, context := range calendar.Months.MonthContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.MonthWidth {
				if width == nil {
					continue
				}
				names := make([]string, 12)
				for _, month := range width.Month {
					if month == nil || month.Alt != "" || month.Yeartype != "" {
						continue
					}
					setName(names, month.Type, 1, month.Data())
				}
				setWidth(&locale.Months, width.Type, names)
			}
		}
	}

	if calendar.Days != nil {
		for _, context := range calendar.Days.DayContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.DayWidth {
				if width == nil {
					continue
				}
				names := make([]string, 7)
				for _, day := range width.Day {
					if day == nil || day.Alt != "" {
						continue
					}
					for i, key := range weekdayKeys {
						if day.Type == key {
							names[i] = day.Data()
						}
					}
				}
				setWidth(&locale.Weekdays, width.Type, names)
			}
		}
	}

	if calendar.Quarters != nil {
		for _, context := range calendar.Quarters.QuarterContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.QuarterWidth {
				if width == nil {
					continue
				}
				names := make([]string, 4)
				for _, quarter := range width.Quarter {
					if quarter == nil || quarter.Alt != "" {
						continue
					}
					setName(names, quarter.Type, 1, quarter.Data())
				}
				setWidth(&locale.Quarters, width.Type, names)
			}
		}
	}

	if calendar.DayPeriods != nil {
		for _, context := range calendar.DayPeriods.DayPeriodContext {
			if context == nil || context.Type != "format" {
				continue
			}
			for _, width := range context.DayPeriodWidth {
				if width == nil {
					continue
				}
				names := make([]string, 2)
				variant := make([]string, 2)
				for _, period := range width.DayPeriod {
					if period == nil {
						continue
					}
					target := names
					if period.Alt == "variant" {
						target = variant
					} else if period.Alt != "" {
						continue
					}
					switch period.Type {
					case "am":
						target[0] = period.Data()
					case "pm":
						target[1] = period.Data()
					}
				}
				setWidth(&locale.Periods, width.Type, names)
				if width.Type == "abbreviated" && complete(variant) {
					locale.Periods.Variant = variant
				}
			}
		}
	}

	if calendar.Eras != nil {
		if calendar.Eras.EraNames != nil {
			locale.Eras.Wide, _ = eraNames(calendar.Eras.EraNames.Era)
		}
		if calendar.Eras.EraAbbr != nil {
			locale.Eras.Abbreviated, locale.Eras.Variant = eraNames(calendar.Eras.EraAbbr.Era)
		}
		if calendar.Eras.EraNarrow != nil {
			locale.Eras.Narrow, _ = eraNames(calendar.Eras.EraNarrow.Era)
		}
	}

	if zones := ldml.Dates.TimeZoneNames; zones != nil {
		locale.TimeZone.HourFormat = firstData(zones.HourFormat)
		locale.TimeZone.GMTFormat = firstData(zones.GmtFormat)
		locale.TimeZone.GMTZeroFormat = firstData(zones.GmtZeroFormat)
	}

	return locale, nil
}

// preferPattern keeps the plain pattern, upgrading to an alt="ascii" form
// when CLDR offers one.
func preferPattern(current string, p *cldr.Common) string {
	switch p.Alt {
	case "ascii":
		return p.Data()
	case "":
		if current == "" {
			return p.Data()
		}
	}
	return current
}

func setStyle(dst *timefmt.StylePatterns, style, pattern string) {
	if pattern == "" {
		return
	}
	switch timefmt.Style(style) {
	case timefmt.StyleShort:
		if dst.Short == "" {
			dst.Short = pattern
		}
	case timefmt.StyleMedium:
		if dst.Medium == "" {
			dst.Medium = pattern
		}
	case timefmt.StyleLong:
		if dst.Long == "" {
			dst.Long = pattern
		}
	case timefmt.StyleFull:
		if dst.Full == "" {
			dst.Full = pattern
		}
	}
}

// setName stores value at the index encoded by key (1-based when base is 1).
func setName(names []string, key string, base int, value string) {
	index, err := strconv.Atoi(key)
	if err != nil {
		return
	}
	index -= base
	if index >= 0 && index < len(names) {
		names[index] = value
	}
}

func setWidth(set *timefmt.NameSet, width string, names []string) {
	if !complete(names) {
		return
	}
	switch width {
	case "abbreviated":
		set.Abbreviated = names
	case "wide":
		set.Wide = names
	case "narrow":
		set.Narrow = names
	case "short":
		set.Short = names
	}
}

func complete(names []string) bool {
	for _, name := range names {
		if name == "" {
			return false
		}
	}
	return len(names) > 0
}

// eraNames returns the BC/AD pair and the alt="variant" BCE/CE pair.
func eraNames(eras []*cldr.Common) ([]string, []string) {
	names := make([]string, 2)
	variant := make([]string, 2)
	for _, era := range eras {
		if era == nil {
			continue
		}
		target := names
		switch era.Alt {
		case "":
		case "variant":
			target = variant
		default:
			continue
		}
		setName(target, era.Type, 0, era.Data())
	}
	if !complete(names) {
		names = nil
	}
	if !complete(variant) {
		variant = nil
	}
	return names, variant
}

func firstData(items []*cldr.Common) string {
	for _, item := range items {
		if item != nil && item.Alt == "" {
			return item.Data()
		}
	}
	return ""
}

func extractHourCycles(supplemental *cldr.SupplementalData) timefmt.HourCycleData {
	data := timefmt.HourCycleData{
		Locales:     make(map[string]string),
		Territories: make(map[string]string),
	}
	if supplemental == nil || supplemental.TimeData == nil {
		return data
	}

	for _, hours := range supplemental.TimeData.Hours {
		if hours == nil {
			continue
		}
		preferred := strings.TrimSpace(hours.Preferred)
		if _, err := timefmt.ParseHourCycle(preferred); err != nil {
			continue
		}
		for _, region := range strings.Fields(hours.Regions) {
			if strings.Contains(region, "_") {
				data.Locales[strings.ReplaceAll(region, "_", "-")] = preferred
				continue
			}
			data.Territories[strings.ToUpper(region)] = preferred
		}
	}
	return data
}

func firstDayOfWeek(supplemental *cldr.SupplementalData, territory string) int {
	if supplemental == nil || supplemental.WeekData == nil {
		return 0
	}

	lookup := func(region string) (int, bool) {
		for _, entry := range supplemental.WeekData.FirstDay {
			if entry == nil || entry.Alt != "" {
				continue
			}
			for _, candidate := range strings.Fields(entry.Territories) {
				if candidate != region {
					continue
				}
				for i, key := range weekdayKeys {
					if key == entry.Day {
						return i, true
					}
				}
			}
		}
		return 0, false
	}

	if territory != "" {
		if day, ok := lookup(territory); ok {
			return day
		}
	}
	day, _ := lookup("001")
	return day
}

func renderYAML(payload timefmt.RepositoryData) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by timefmt-cldr. DO NOT EDIT.\n")

	var locales []string
	for locale := range payload.Locales {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	fmt.Fprintf(&buf, "# Locales: %s\n", strings.Join(locales, ", "))

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(payload); err != nil {
		return nil, fmt.Errorf("encode locale data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode locale data: %w", err)
	}
	return buf.Bytes(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
