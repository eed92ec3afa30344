package timefmt

import (
	"strings"
	"testing"
)

func TestOffsetSignSelection(t *testing.T) {
	repo := testRepository(t)
	locale, _ := repo.Locale("fr")

	// fr marks negative offsets with U+2212, positive with '+'
	format, err := compileOffsetFormat(locale)
	if err != nil {
		t.Fatalf("compileOffsetFormat error: %v", err)
	}

	for offset := -maxOffsetSeconds; offset <= maxOffsetSeconds; offset += 15 * 60 {
		for _, long := range []bool{false, true} {
			got := format.format(offset, long)
			switch {
			case offset == 0:
				if got != "UTC" {
					t.Fatalf("zero offset rendered %q, want UTC", got)
				}
			case offset < 0:
				if !strings.HasPrefix(got, "UTC−") {
					t.Fatalf("offset %d rendered %q, want negative template", offset, got)
				}
			default:
				if !strings.HasPrefix(got, "UTC+") {
					t.Fatalf("offset %d rendered %q, want positive template", offset, got)
				}
			}
		}
	}
}

func TestOffsetFormat(t *testing.T) {
	locale, _ := testRepository(t).Locale("en")
	format, err := compileOffsetFormat(locale)
	if err != nil {
		t.Fatalf("compileOffsetFormat error: %v", err)
	}

	tests := []struct {
		offset int
		long   bool
		want   string
	}{
		{0, false, "UTC"},
		{0, true, "UTC"},
		{-8 * 3600, false, "GMT-8"},
		{-8 * 3600, true, "GMT-08:00"},
		{5*3600 + 30*60, false, "GMT+5:30"},
		{5*3600 + 30*60, true, "GMT+05:30"},
		{-30 * 60, false, "GMT-0:30"},
		{-30 * 60, true, "GMT-00:30"},
		{14 * 3600, false, "GMT+14"},
	}

	for _, tt := range tests {
		if got := format.format(tt.offset, tt.long); got != tt.want {
			t.Fatalf("format(%d, %v) = %q, want %q", tt.offset, tt.long, got, tt.want)
		}
	}
}

func TestOffsetFormatWithSeconds(t *testing.T) {
	locale := LocaleData{ID: "xx", TimeZone: OffsetFormats{
		GMTFormat:     "[{0}]",
		GMTZeroFormat: "Z0",
		HourFormat:    "+HH:mm:ss",
	}}
	format, err := compileOffsetFormat(&locale)
	if err != nil {
		t.Fatalf("compileOffsetFormat error: %v", err)
	}
	if got := format.format(-(3600 + 2*60 + 3), true); got != "[-01:02:03]" {
		t.Fatalf("derived negative template rendered %q", got)
	}
	if got := format.format(7200, false); got != "[+2]" {
		t.Fatalf("hours only rendered %q", got)
	}
	if got := format.format(0, false); got != "Z0" {
		t.Fatalf("zero rendered %q", got)
	}
}

func TestCompileOffsetFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		formats OffsetFormats
	}{
		{"missing hour format", OffsetFormats{GMTFormat: "GMT{0}", GMTZeroFormat: "GMT"}},
		{"missing placeholder", OffsetFormats{GMTFormat: "GMT", GMTZeroFormat: "GMT", HourFormat: "+HH:mm;-HH:mm"}},
		{"no hour field", OffsetFormats{GMTFormat: "GMT{0}", GMTZeroFormat: "GMT", HourFormat: "+mm;-mm"}},
		{"unexpected symbol", OffsetFormats{GMTFormat: "GMT{0}", GMTZeroFormat: "GMT", HourFormat: "+HH:mm z;-HH:mm"}},
		{"malformed", OffsetFormats{GMTFormat: "GMT{0}", GMTZeroFormat: "GMT", HourFormat: "+HH 'x;-HH"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locale := LocaleData{ID: "xx", TimeZone: tt.formats}
			if _, err := compileOffsetFormat(&locale); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFormatISOOffset(t *testing.T) {
	offset := -(5*3600 + 30*60 + 15)

	tests := []struct {
		offset  int
		variant int
		zeroZ   bool
		want    string
	}{
		{0, 1, true, "Z"},
		{0, 3, false, "+00:00"},
		{3600, 1, false, "+01"},
		{offset, 1, false, "-0530"},
		{offset, 2, false, "-0530"},
		{offset, 3, false, "-05:30"},
		{offset, 4, false, "-053015"},
		{offset, 5, false, "-05:30:15"},
		{3600, 5, false, "+01:00"},
	}

	for _, tt := range tests {
		if got := formatISOOffset(tt.offset, tt.variant, tt.zeroZ); got != tt.want {
			t.Fatalf("formatISOOffset(%d, %d) = %q, want %q", tt.offset, tt.variant, got, tt.want)
		}
	}
}
