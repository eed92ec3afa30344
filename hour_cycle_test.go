package timefmt

import "testing"

func TestHourCycleResolve(t *testing.T) {
	resolver := testRepository(t).HourCycles()

	tests := []struct {
		locale string
		want   HourCycle
	}{
		{"en-AU", H12With12},
		{"fr", H24With0},
		{"en", H12With12},
		{"en-GB", H24With0},
		{"fr-CA", H24With0},
		{"en-CA", H12With12},
		{"de_AT", H24With0},
		{"en-u-hc-h12", H12With12},
		{"fr-u-hc-h12", H12With12},
		{"en-US-u-hc-h23", H24With0},
		{"en-AU-u-hc-h11", H12With0},
		{"ja-u-hc-h24", H24With24},
		{"zu", H24With0},
		{"not a locale", H24With0},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := resolver.Resolve(tt.locale); got != tt.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tt.locale, got, tt.want)
			}
		})
	}
}

func TestHourCycleResolverFallbacks(t *testing.T) {
	var nilResolver *HourCycleResolver
	if got := nilResolver.Resolve("en-US"); got != H24With0 {
		t.Fatalf("nil resolver = %s, want h24_with_0", got)
	}
	if got := nilResolver.Resolve("en-u-hc-h12"); got != H12With12 {
		t.Fatalf("nil resolver must honour overrides, got %s", got)
	}

	resolver, err := NewHourCycleResolver(HourCycleData{})
	if err != nil {
		t.Fatalf("NewHourCycleResolver error: %v", err)
	}
	if got := resolver.Resolve("en-US"); got != fallbackHourCycle {
		t.Fatalf("empty table = %s, want %s", got, fallbackHourCycle)
	}

	resolver, err = NewHourCycleResolver(HourCycleData{Territories: map[string]string{"001": "h11"}})
	if err != nil {
		t.Fatalf("NewHourCycleResolver error: %v", err)
	}
	if got := resolver.Resolve("xx"); got != H12With0 {
		t.Fatalf("global entry = %s, want h12_with_0", got)
	}
}

func TestHourCycleResolverRejectsUnknownSymbols(t *testing.T) {
	if _, err := NewHourCycleResolver(HourCycleData{Territories: map[string]string{"US": "b"}}); err == nil {
		t.Fatalf("expected error for unknown hour cycle symbol")
	}
	if _, err := NewHourCycleResolver(HourCycleData{Locales: map[string]string{"en": "h13"}}); err == nil {
		t.Fatalf("expected error for unknown hour cycle value")
	}
}

func TestHourCycleOverride(t *testing.T) {
	resolver := testRepository(t).HourCycles()

	if _, ok := resolver.Override("en-US"); ok {
		t.Fatalf("en-US has no override")
	}
	cycle, ok := resolver.Override("en_US-u-hc-h24")
	if !ok || cycle != H24With24 {
		t.Fatalf("Override = %s, %v", cycle, ok)
	}
}

func TestParseHourCycle(t *testing.T) {
	tests := map[string]HourCycle{
		"h": H12With12, "h12": H12With12,
		"K": H12With0, "h11": H12With0,
		"H": H24With0, "h23": H24With0,
		"k": H24With24, "h24": H24With24,
	}
	for input, want := range tests {
		got, err := ParseHourCycle(input)
		if err != nil || got != want {
			t.Fatalf("ParseHourCycle(%q) = %s, %v", input, got, err)
		}
		if got.Symbol() == 0 {
			t.Fatalf("%s has no symbol", got)
		}
	}
	if _, err := ParseHourCycle("x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHourCycleApplyMidnightAndNoon(t *testing.T) {
	tests := []struct {
		cycle    HourCycle
		midnight int
		noon     int
		twelve   bool
	}{
		{H12With12, 12, 12, true},
		{H12With0, 0, 0, true},
		{H24With0, 0, 12, false},
		{H24With24, 24, 12, false},
	}
	for _, tt := range tests {
		if got := tt.cycle.apply(0); got != tt.midnight {
			t.Fatalf("%s midnight = %d, want %d", tt.cycle, got, tt.midnight)
		}
		if got := tt.cycle.apply(12); got != tt.noon {
			t.Fatalf("%s noon = %d, want %d", tt.cycle, got, tt.noon)
		}
		if tt.cycle.Is12Hour() != tt.twelve {
			t.Fatalf("%s Is12Hour = %v", tt.cycle, tt.cycle.Is12Hour())
		}
	}
}
