package keybind

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

var (
	// ErrPropertyExpansion marks lines using ${property} expansion,
	// which can only be evaluated by the engine itself.
	ErrPropertyExpansion = errors.New("property expansion is not supported")
	ErrUnknownKey        = errors.New("unknown key name")
	ErrMissingCommand    = errors.New("binding has no command")
)

// Source tells where a binding was defined.
type Source int

const (
	SourceDefault Source = iota
	SourceUser
)

func (s Source) String() string {
	if s == SourceUser {
		return "user"
	}
	return "default"
}

type Binding struct {
	Trigger Trigger
	Command string
	Source  Source
	// 1-based line number in the source
	Line int
}

// Rejection is a line that could not be turned into a binding.
type Rejection struct {
	Line int
	Text string
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("line %d: %v: %s", r.Line, r.Err, r.Text)
}

// Parse reads bindings in input.conf format, one per line:
//
//	KEY[+KEY...] COMMAND [ARGS...]  # comment
//
// Lines that cannot be parsed are returned as rejections and do not
// affect the others. Blank and comment-only lines are skipped.
func Parse(r io.Reader, src Source) ([]Binding, []Rejection, error) {
	var (
		bindings []Binding
		rejected []Rejection
	)
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		raw := sc.Text()
		b, err := ParseLine(raw)
		if err != nil {
			rejected = append(rejected, Rejection{Line: lineNum, Text: strings.TrimSpace(raw), Err: err})
			continue
		}
		if b == nil {
			continue
		}
		b.Source = src
		b.Line = lineNum
		bindings = append(bindings, *b)
	}
	if err := sc.Err(); err != nil {
		return bindings, rejected, fmt.Errorf("failed to read bindings: %w", err)
	}
	return bindings, rejected, nil
}

// ParseString is Parse over an in-memory config.
func ParseString(s string, src Source) ([]Binding, []Rejection) {
	// reading from a strings.Reader cannot fail
	b, r, _ := Parse(strings.NewReader(s), src)
	return b, r
}

// ParseLine parses a single config line. It returns nil and no error
// for lines with nothing but whitespace or a comment.
func ParseLine(line string) (*Binding, error) {
	line = strings.TrimSpace(StripComment(line))
	if line == "" {
		return nil, nil
	}
	if NeedsPropertyExpansion(line) {
		return nil, ErrPropertyExpansion
	}

	combo, cmd := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		combo, cmd = line[:i], strings.TrimSpace(line[i:])
	}
	if cmd == "" {
		return nil, ErrMissingCommand
	}
	t, err := ParseTrigger(combo)
	if err != nil {
		return nil, err
	}
	return &Binding{Trigger: t, Command: strings.ReplaceAll(cmd, "$$", "$")}, nil
}

// StripComment removes everything from the first '#' that is neither
// backslash-escaped nor inside double quotes.
func StripComment(line string) string {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return line[:i]
			}
		}
	}
	return line
}

// NeedsPropertyExpansion reports whether s has a '$' that is not part of
// a "$$" escape and is followed by another character.
func NeedsPropertyExpansion(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			continue
		}
		if i+1 >= len(s) {
			// trailing '$' is taken literally
			return false
		}
		if s[i+1] == '$' {
			i++
			continue
		}
		return true
	}
	return false
}
