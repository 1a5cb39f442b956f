package app

import "testing"

func TestOriginHost(t *testing.T) {
	cases := map[string]string{
		"https://www.cybaemtech.com":    "www.cybaemtech.com",
		"http://localhost:5173":         "localhost:5173",
		"https://x.repl.co:443":         "x.repl.co:443",
		"not a url":                     "not a url",
	}
	for in, want := range cases {
		if got := originHost(in); got != want {
			t.Errorf("originHost(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestMatchOrigin(t *testing.T) {
	cases := []struct {
		pattern string
		origin  string
		want    bool
	}{
		{"https://www.cybaemtech.com", "https://www.cybaemtech.com", true},
		{"www.cybaemtech.com", "https://www.cybaemtech.com", true},
		{"*.cybaemtech.com", "https://admin.cybaemtech.com", true},
		{"*.cybaemtech.com", "https://cybaemtech.com.evil.com", false},
		{"www.cybaemtech.com", "https://evil.com", false},
	}
	for _, tc := range cases {
		got := matchOrigin(tc.pattern, tc.origin, originHost(tc.origin))
		if got != tc.want {
			t.Errorf("matchOrigin(%q, %q) = %v, expected %v", tc.pattern, tc.origin, got, tc.want)
		}
	}
}

func TestIsLocalhost(t *testing.T) {
	cases := map[string]bool{
		"localhost":        true,
		"localhost:5173":   true,
		"127.0.0.1:3000":   true,
		"0.0.0.0":          true,
		"www.example.com":  false,
		"localhost.evil.com": false,
	}
	for in, want := range cases {
		if got := isLocalhost(in); got != want {
			t.Errorf("isLocalhost(%q) = %v, expected %v", in, got, want)
		}
	}
}
