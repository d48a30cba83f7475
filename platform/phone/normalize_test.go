package phone

import "testing"

func TestNormalizeE164UKNumbers(t *testing.T) {
	cases := map[string]string{
		"020 7946 0958":    "+442079460958",
		"07911 123456":     "+447911123456",
		"+44 20 7946 0958": "+442079460958",
	}

	for input, want := range cases {
		if got := NormalizeE164(input); got != want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeE164KeepsUnparseableInput(t *testing.T) {
	if got := NormalizeE164("  ext. 4521  "); got != "ext. 4521" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
	if got := NormalizeE164(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}
