package youtube

import "testing"

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"PT59S", 59},
		{"PT1M", 60},
		{"PT1M3S", 63},
		{"PT1H2M3S", 3723},
		{"P1DT1S", 86401},
		{"PT0S", 0},
	}

	for _, tc := range cases {
		got, err := ParseISODuration(tc.raw)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.raw, tc.want, got)
		}
	}
}

func TestParseISODuration_Invalid(t *testing.T) {
	for _, raw := range []string{"", "1M3S", "PT1X", "PTM", "PT1M3"} {
		if _, err := ParseISODuration(raw); err == nil {
			t.Errorf("%q: expected error", raw)
		}
	}
}

func TestIsShort(t *testing.T) {
	cases := []struct {
		seconds int
		want    bool
	}{
		{0, true},
		{59, true},
		{60, true},
		{61, false},
		{62, false},
		{3600, false},
	}

	for _, tc := range cases {
		if got := IsShort(tc.seconds); got != tc.want {
			t.Errorf("IsShort(%d): expected %v, got %v", tc.seconds, tc.want, got)
		}
	}
}
