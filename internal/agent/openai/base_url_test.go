package openai

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"http://localhost:7777", "http://localhost:7777/v1"},
		{"http://localhost:7777/v1", "http://localhost:7777/v1"},
		{"http://localhost:7777/v1/", "http://localhost:7777/v1"},
		{"http://localhost:7777/v1/chat/completions", "http://localhost:7777/v1"},
		{"https://gateway.example.com/agent/v1", "https://gateway.example.com/agent/v1"},
	}
	for _, tc := range cases {
		if got := normalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
