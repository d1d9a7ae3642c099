package ui

import "testing"

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "localhost:7373"},
		{"example.org", "example.org:7373"},
		{"example.org:9000", "example.org:9000"},
		{" ws://10.0.0.2:81 ", "10.0.0.2:81"},
		{":9000", "localhost:9000"},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.in); got != tt.want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "player"},
		{"  ann  ", "ann"},
		{"a\tb\nc", "abc"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
