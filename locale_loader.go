package timefmt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:generate go run ./cmd/timefmt-cldr -out data/time_locales.yaml -locale en:US -locale fr:FR -locale de:DE -locale es:ES -zero en=UTC

//go:embed data/time_locales.yaml
var defaultLocaleDataYAML []byte

// DefaultRepositoryData decodes the embedded locale data.
func DefaultRepositoryData() (RepositoryData, error) {
	var data RepositoryData
	if err := yaml.Unmarshal(defaultLocaleDataYAML, &data); err != nil {
		return RepositoryData{}, fmt.Errorf("parse default locale data: %w", err)
	}
	return data, nil
}

// RepositoryLoader assembles repository data from the embedded defaults,
// an optional user file and per-locale override files.
type RepositoryLoader struct {
	defaultPath string
	overrides   map[string]string
}

// NewRepositoryLoader creates a loader; path may be empty.
func NewRepositoryLoader(path string) *RepositoryLoader {
	return &RepositoryLoader{
		defaultPath: path,
		overrides:   make(map[string]string),
	}
}

// AddOverride registers a file holding the LocaleData of one locale.
func (l *RepositoryLoader) AddOverride(locale, path string) {
	l.overrides[normalizeLocale(locale)] = path
}

// Load merges every source and validates the result.
func (l *RepositoryLoader) Load() (*Repository, error) {
	data, err := l.LoadData()
	if err != nil {
		return nil, err
	}
	return NewRepository(data)
}

// LoadData merges every source without validating.
func (l *RepositoryLoader) LoadData() (RepositoryData, error) {
	data, err := DefaultRepositoryData()
	if err != nil {
		return RepositoryData{}, err
	}

	if l.defaultPath != "" {
		var user RepositoryData
		if err := decodeDataFile(l.defaultPath, &user); err != nil {
			return RepositoryData{}, fmt.Errorf("load locale data: %w", err)
		}
		mergeRepositoryData(&data, &user)
	}

	for locale, path := range l.overrides {
		var override LocaleData
		if err := decodeDataFile(path, &override); err != nil {
			return RepositoryData{}, fmt.Errorf("load locale override for %q: %w", locale, err)
		}
		if data.Locales == nil {
			data.Locales = make(map[string]LocaleData)
		}
		base := data.Locales[locale]
		mergeLocaleData(&base, &override)
		data.Locales[locale] = base
	}

	return data, nil
}

func decodeDataFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, out)
	case ".toml":
		err = toml.Unmarshal(raw, out)
	default:
		return fmt.Errorf("unsupported locale data format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// mergeRepositoryData merges source into dest (source takes precedence).
func mergeRepositoryData(dest, source *RepositoryData) {
	if source.Locales != nil {
		if dest.Locales == nil {
			dest.Locales = make(map[string]LocaleData)
		}
		for id, locale := range source.Locales {
			id = normalizeLocale(id)
			base := dest.Locales[id]
			mergeLocaleData(&base, &locale)
			dest.Locales[id] = base
		}
	}

	dest.HourCycles.Locales = mergeStrings(dest.HourCycles.Locales, source.HourCycles.Locales)
	dest.HourCycles.Territories = mergeStrings(dest.HourCycles.Territories, source.HourCycles.Territories)
}

// mergeLocaleData replaces every section that source sets.
func mergeLocaleData(dest, source *LocaleData) {
	if source.FirstDayOfWeek != 0 {
		dest.FirstDayOfWeek = source.FirstDayOfWeek
	}
	mergePatterns(&dest.TimeFormats, source.TimeFormats)
	mergePatterns(&dest.DateFormats, source.DateFormats)
	mergePatterns(&dest.DateTimeFormats, source.DateTimeFormats)
	mergeNames(&dest.Eras, source.Eras)
	mergeNames(&dest.Months, source.Months)
	mergeNames(&dest.Weekdays, source.Weekdays)
	mergeNames(&dest.Quarters, source.Quarters)
	mergeNames(&dest.Periods, source.Periods)

	if source.TimeZone.GMTFormat != "" {
		dest.TimeZone.GMTFormat = source.TimeZone.GMTFormat
	}
	if source.TimeZone.GMTZeroFormat != "" {
		dest.TimeZone.GMTZeroFormat = source.TimeZone.GMTZeroFormat
	}
	if source.TimeZone.HourFormat != "" {
		dest.TimeZone.HourFormat = source.TimeZone.HourFormat
	}
}

func mergePatterns(dest *StylePatterns, source StylePatterns) {
	for _, field := range []struct {
		dest   *string
		source string
	}{
		{&dest.Short, source.Short},
		{&dest.Medium, source.Medium},
		{&dest.Long, source.Long},
		{&dest.Full, source.Full},
	} {
		if field.source != "" {
			*field.dest = field.source
		}
	}
}

func mergeNames(dest *NameSet, source NameSet) {
	for _, field := range []struct {
		dest   *[]string
		source []string
	}{
		{&dest.Abbreviated, source.Abbreviated},
		{&dest.Wide, source.Wide},
		{&dest.Narrow, source.Narrow},
		{&dest.Short, source.Short},
		{&dest.Variant, source.Variant},
	} {
		if len(field.source) > 0 {
			*field.dest = append([]string(nil), field.source...)
		}
	}
}

func mergeStrings(dest, source map[string]string) map[string]string {
	if len(source) == 0 {
		return dest
	}
	if dest == nil {
		dest = make(map[string]string, len(source))
	}
	for k, v := range source {
		dest[k] = v
	}
	return dest
}
