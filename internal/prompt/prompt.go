// Package prompt acquires operator input interactively, re-prompting
// until the value satisfies its grammar. Validation never escapes this
// package: callers only ever see a valid value or a read error from an
// interrupted terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// Prompter reads operator answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret, when non-nil, reads a line without echoing it back
	// to the terminal. It is wired to term.ReadPassword when stdin is
	// a real TTY and left nil for piped input and tests.
	readSecret func() (string, error)
}

// New returns a Prompter over arbitrary streams (tests, piped runs).
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// NewTerminal returns a Prompter bound to the process terminal. Secret
// values are read without echo when stdin is a TTY.
func NewTerminal() *Prompter {
	p := New(os.Stdin, os.Stdout)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		p.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			return string(b), err
		}
	}
	return p
}

// SanitizeToken strips every character outside the bot-token grammar
// [A-Za-z0-9:_-] and returns what remains.
func SanitizeToken(raw string) string {
	return keep(raw, func(r rune) bool {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' || r == ':' || r == '_' || r == '-'
	})
}

// SanitizeDigits strips everything but ASCII digits.
func SanitizeDigits(raw string) string {
	return keep(raw, func(r rune) bool { return r >= '0' && r <= '9' })
}

func keep(raw string, allowed func(rune) bool) string {
	var b strings.Builder
	for _, r := range raw {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Token prompts for the bot token. The raw line is sanitized against
// the token grammar; the result is never logged.
func (p *Prompter) Token(label string) (string, error) {
	return p.acquire(label, SanitizeToken, p.secretReader())
}

// Digits prompts for a numeric identifier (the Telegram admin ID).
func (p *Prompter) Digits(label string) (string, error) {
	return p.acquire(label, SanitizeDigits, p.readLine)
}

// Optional prompts once for a free-form value. An empty answer means
// "not set" and is returned as the empty string without re-prompting.
func (p *Prompter) Optional(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// acquire loops until the sanitized answer is non-empty. There is no
// retry cap: the remedy for bad input is more input, and the operator
// can always interrupt the process.
func (p *Prompter) acquire(label string, sanitize func(string) string, read func() (string, error)) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := read()
		if err != nil {
			return "", err
		}
		value := sanitize(strings.TrimSpace(line))
		if value != "" {
			return value, nil
		}
		logger.Warn("[WARN] Invalid input. Allowed characters only, and the value must not be empty.\n")
	}
}

func (p *Prompter) secretReader() func() (string, error) {
	if p.readSecret != nil {
		return p.readSecret
	}
	return p.readLine
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
