package timefmt

import (
	"path/filepath"
	"testing"
)

func TestDefaultRepositoryData(t *testing.T) {
	data, err := DefaultRepositoryData()
	if err != nil {
		t.Fatalf("DefaultRepositoryData error: %v", err)
	}
	for _, locale := range []string{"en", "fr", "de", "es"} {
		if _, ok := data.Locales[locale]; !ok {
			t.Fatalf("embedded data misses %q", locale)
		}
	}
	if data.Locales["en"].TimeZone.GMTZeroFormat != "UTC" {
		t.Fatalf("en zero text = %q, want UTC", data.Locales["en"].TimeZone.GMTZeroFormat)
	}
	if data.HourCycles.Territories["001"] != "H" {
		t.Fatalf("missing global hour cycle")
	}
}

func TestRepositoryLoaderFormats(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		locale string
		short  string
	}{
		{"json", filepath.Join("testdata", "locales.json"), "it", "HH:mm"},
		{"toml", filepath.Join("testdata", "locales.toml"), "pt", "HH'h'mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewRepositoryLoader(tt.path).Load()
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			locale, ok := repo.Locale(tt.locale)
			if !ok {
				t.Fatalf("missing locale %q", tt.locale)
			}
			if locale.TimeFormats.Short != tt.short {
				t.Fatalf("short = %q, want %q", locale.TimeFormats.Short, tt.short)
			}
			if _, ok := repo.Locale("en"); !ok {
				t.Fatalf("embedded locales must survive the merge")
			}
		})
	}
}

func TestRepositoryLoaderMergesHourCycles(t *testing.T) {
	repo, err := NewRepositoryLoader(filepath.Join("testdata", "locales.toml")).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := repo.HourCycles().Resolve("en-US"); got != H24With0 {
		t.Fatalf("US override = %s, want h24_with_0", got)
	}
	if got := repo.HourCycles().Resolve("en-AU"); got != H12With12 {
		t.Fatalf("AU entry lost in merge: %s", got)
	}
}

func TestRepositoryLoaderOverride(t *testing.T) {
	loader := NewRepositoryLoader("")
	loader.AddOverride("en", filepath.Join("testdata", "en_override.yaml"))

	repo, err := loader.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	en, _ := repo.Locale("en")
	if en.Periods.Abbreviated[0] != "a.m." {
		t.Fatalf("override periods not applied: %v", en.Periods.Abbreviated)
	}
	if en.TimeZone.GMTZeroFormat != "GMT" || en.TimeZone.GMTFormat != "GMT{0}" {
		t.Fatalf("time zone merge = %+v", en.TimeZone)
	}
	if en.TimeFormats.Short != "h:mm a" {
		t.Fatalf("untouched sections must be kept, short = %q", en.TimeFormats.Short)
	}

	f := newTestFormatter(t, WithRepository(repo))
	got, err := f.FormatTime(Clock(19, 0, 0).WithOffset(0), WithStyle(StyleLong))
	if err != nil || got != "7:00:00 p.m. GMT" {
		t.Fatalf("FormatTime = %q, %v", got, err)
	}
}

func TestRepositoryLoaderOverrideCreatesLocale(t *testing.T) {
	loader := NewRepositoryLoader("")
	loader.AddOverride("en_NZ", filepath.Join("testdata", "en_override.yaml"))

	repo, err := loader.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, ok := repo.Locale("en-NZ"); !ok {
		t.Fatalf("override should register en-NZ")
	}
}

func TestRepositoryLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join("testdata", "missing.yaml")},
		{"malformed yaml", filepath.Join("testdata", "broken.yaml")},
		{"unsupported extension", filepath.Join("testdata", "unsupported.ini")},
		{"wrong name count", filepath.Join("testdata", "invalid_months.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRepositoryLoader(tt.path).Load(); err == nil {
				t.Fatalf("expected error loading %s", tt.path)
			}
		})
	}

	loader := NewRepositoryLoader("")
	loader.AddOverride("en", filepath.Join("testdata", "missing.json"))
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected error for missing override file")
	}
}

func TestRepositoryResolve(t *testing.T) {
	repo := testRepository(t)

	tests := []struct {
		locale string
		want   string
		ok     bool
	}{
		{"en", "en", true},
		{"en_US", "en", true},
		{"en-AU", "en", true},
		{"fr-CA", "fr", true},
		{"de-CH-u-hc-h12", "de", true},
		{"es-419", "es", true},
		{"it", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			data, ok := repo.Resolve(tt.locale)
			if ok != tt.ok {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.locale, ok, tt.ok)
			}
			if ok && data.ID != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.locale, data.ID, tt.want)
			}
		})
	}
}

func TestNewRepositoryValidation(t *testing.T) {
	tests := []struct {
		name string
		data RepositoryData
	}{
		{"bad weekday count", RepositoryData{Locales: map[string]LocaleData{"xx": {Weekdays: NameSet{Wide: []string{"a"}}}}}},
		{"bad first day", RepositoryData{Locales: map[string]LocaleData{"xx": {FirstDayOfWeek: 7}}}},
		{"duplicate normalized id", RepositoryData{Locales: map[string]LocaleData{"en_US": {}, "en-US": {}}}},
		{"empty id", RepositoryData{Locales: map[string]LocaleData{" ": {}}}},
		{"bad hour cycle", RepositoryData{HourCycles: HourCycleData{Territories: map[string]string{"US": "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRepository(tt.data); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
