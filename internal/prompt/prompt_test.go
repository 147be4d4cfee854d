package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"abc:123", "abc:123"},
		{"  abc:123  ", "abc:123"},
		{"a!b@c#1$2%3", "abc123"},
		{"token_with-all:allowed_chars", "token_with-all:allowed_chars"},
		{"!!!@@@###", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SanitizeToken(c.raw); got != c.want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestSanitizeDigits(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"12a34", "1234"},
		{"123456789", "123456789"},
		{"id: 42", "42"},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := SanitizeDigits(c.raw); got != c.want {
			t.Fatalf("SanitizeDigits(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestTokenRepromptsUntilValid(t *testing.T) {
	// Two rejected answers (all-illegal, blank) before a valid one.
	in := strings.NewReader("!!!\n\nabc:123\n")
	var out bytes.Buffer
	p := New(in, &out)

	got, err := p.Token("Token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc:123" {
		t.Fatalf("got %q, want %q", got, "abc:123")
	}
	if prompts := strings.Count(out.String(), "Token: "); prompts != 3 {
		t.Fatalf("expected 3 prompts, got %d", prompts)
	}
}

func TestDigitsStripsNonDigits(t *testing.T) {
	p := New(strings.NewReader("12a34\n"), &bytes.Buffer{})
	got, err := p.Digits("Admin ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1234" {
		t.Fatalf("got %q, want %q", got, "1234")
	}
}

func TestOptionalAcceptsEmptyWithoutReprompt(t *testing.T) {
	// The line after the blank answer must stay unread: Optional never loops.
	in := strings.NewReader("\nnext\n")
	p := New(in, &bytes.Buffer{})

	got, err := p.Optional("Guest interface")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
	leftover, err := p.readLine()
	if err != nil {
		t.Fatalf("unexpected error reading leftover: %v", err)
	}
	if leftover != "next" {
		t.Fatalf("Optional consumed more than one line, leftover %q", leftover)
	}
}

func TestOptionalReturnsNonEmptyValue(t *testing.T) {
	p := New(strings.NewReader("phy1-ap1 \n"), &bytes.Buffer{})
	got, err := p.Optional("Guest interface")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "phy1-ap1" {
		t.Fatalf("got %q, want %q", got, "phy1-ap1")
	}
}

func TestTokenReturnsErrorOnClosedInput(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})
	if _, err := p.Token("Token"); err == nil {
		t.Fatalf("expected error on exhausted input")
	}
}
