package timefmt

import (
	"errors"
	"testing"
	"time"
)

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	v := FromTime(time.Date(2024, 3, 9, 7, 35, 13, 215217999, loc))

	if v.Year != 2024 || v.Month != 3 || v.Day != 9 {
		t.Fatalf("date = %d-%d-%d", v.Year, v.Month, v.Day)
	}
	if v.Hour != 7 || v.Minute != 35 || v.Second != 13 || v.Microsecond != 215217 {
		t.Fatalf("clock = %d:%d:%d.%d", v.Hour, v.Minute, v.Second, v.Microsecond)
	}
	if v.Offset != -8*3600 || v.Zone != "PST" {
		t.Fatalf("zone = %q %d", v.Zone, v.Offset)
	}
	if !v.Has(dateFields | clockFields | FieldMicrosecond | FieldOffset) {
		t.Fatalf("Fields = %s", v.Fields)
	}

	numeric := FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("-03", -3*3600)))
	if numeric.Zone != "" {
		t.Fatalf("numeric zone name kept: %q", numeric.Zone)
	}
}

func TestValueModifiers(t *testing.T) {
	base := Clock(1, 2, 3)
	v := base.WithDate(2024, 2, 29).WithMicrosecond(4).WithOffset(3600).WithZone("CET").WithCalendar("gregorian")

	if base.Has(FieldYear) || base.Has(FieldOffset) {
		t.Fatalf("modifiers must not mutate the receiver")
	}
	if !v.Has(FieldYear | FieldMicrosecond | FieldOffset) {
		t.Fatalf("Fields = %s", v.Fields)
	}
	if v.Zone != "CET" || v.Calendar != "gregorian" {
		t.Fatalf("zone/calendar = %q/%q", v.Zone, v.Calendar)
	}
	if got := v.WithClock(23, 0, 0).Hour; got != 23 {
		t.Fatalf("WithClock hour = %d", got)
	}
}

func TestValueValidate(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		required Field
		wantErr  bool
	}{
		{"complete clock", Clock(23, 59, 60), clockFields, false},
		{"leap second allowed", Clock(23, 59, 60), clockFields, false},
		{"missing second", Value{Hour: 1, Minute: 2, Fields: FieldHour | FieldMinute}, clockFields, true},
		{"minute out of range", Clock(1, 60, 0), clockFields, true},
		{"negative hour", Clock(-1, 0, 0), clockFields, true},
		{"microsecond out of range", Clock(1, 0, 0).WithMicrosecond(1000000), clockFields, true},
		{"month out of range", Date(2024, 13, 1), dateFields, true},
		{"day out of range", Date(2024, 1, 32), dateFields, true},
		{"offset at the bound", Clock(1, 0, 0).WithOffset(-18 * 3600), clockFields, false},
		{"unset fields are not range checked", Value{Hour: 1, Minute: 1, Second: 1, Month: 99, Fields: clockFields}, clockFields, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.validate(tt.required)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	if got := (FieldHour | FieldOffset).String(); got != "hour|utc offset" {
		t.Fatalf("String() = %q", got)
	}
}
