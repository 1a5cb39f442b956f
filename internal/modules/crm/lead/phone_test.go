package lead

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"+919876543210", "919876543210"},
		{"p:+919876543210", "919876543210"},
		{"P:9876543210", "9876543210"},
		{"  p: +91 98765 43210  ", "91 98765 43210"},
		{"", ""},
		{"   ", ""},
		{"p:", ""},
	}
	for _, tc := range cases {
		got := NormalizePhone(tc.in)
		if got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"9876543210", "+919876543210", "p:+1 555 0100", "  p: 42  ", ""}
	for _, in := range inputs {
		once := NormalizePhone(in)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
