package checksum

import (
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	empty := calc.CalculateRaw(nil)
	if empty != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("CalculateRaw(empty) = %s", empty)
	}

	a := calc.CalculateRaw([]byte("# x86_64-demo-os\n"))
	b := calc.CalculateRaw([]byte("# x86_64-demo-os\r\n"))
	if len(a) != 64 {
		t.Errorf("CalculateRaw() returned hash of length %d, expected 64", len(a))
	}
	if a == b {
		t.Error("CalculateRaw() should distinguish line endings")
	}
	if a != calc.CalculateRaw([]byte("# x86_64-demo-os\n")) {
		t.Error("CalculateRaw() is not deterministic")
	}
}

func TestSHA256Calculator_CalculateNormalized(t *testing.T) {
	calc := New()

	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"crlf vs lf", "# a\r\n\r\nbody\r\n", "# a\n\nbody\n", true},
		{"trailing spaces", "# a  \nbody\t\n", "# a\nbody\n", true},
		{"trailing blank lines", "# a\n\n\n", "# a\n", true},
		{"case is significant", "# A\n", "# a\n", false},
		{"interior whitespace is significant", "a  b\n", "a b\n", false},
		{"leading indentation is significant", "  - item\n", "- item\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateNormalized([]byte(tt.a)) == calc.CalculateNormalized([]byte(tt.b))
			if got != tt.equal {
				t.Errorf("normalized(%q) == normalized(%q) is %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("line one  \r\nline two\r\n\r\n")
	want := "line one\nline two"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}
