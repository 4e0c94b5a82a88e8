package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"
	log "github.com/sirupsen/logrus"
)

// Option is a single "--name[=value]" token from an options string.
type Option struct {
	Name  string
	Value string
}

// DefaultOptionValue is the value of an option given without one, eg "--fs".
const DefaultOptionValue = "yes"

// OptionSetter is implemented by anything that accepts engine options
// before initialization, such as a Handle.
type OptionSetter interface {
	SetOptionString(name, value string) error
}

// ParseOptions splits an options string of the form
// "--name=value --flag --name value" into tokens.
// Text before the first "--" is ignored. A token ends at the next
// whitespace followed by "--", or the end of the string.
func ParseOptions(s string) []Option {
	start := strings.Index(s, "--")
	if start < 0 {
		return nil
	}
	s = s[start+2:]

	var opts []Option
	for {
		end := nextOptionBoundary(s)
		tok := s
		if end >= 0 {
			tok = s[:end]
		}
		if opt, ok := parseOptionToken(tok); ok {
			opts = append(opts, opt)
		}
		if end < 0 {
			break
		}
		// skip the whitespace char and the "--"
		s = s[end+3:]
	}
	return opts
}

// returns the index of the whitespace byte preceding the next "--", or -1
func nextOptionBoundary(s string) int {
	for i := 0; i+2 < len(s); i++ {
		if isOptionSpace(s[i]) && s[i+1] == '-' && s[i+2] == '-' {
			return i
		}
	}
	return -1
}

func isOptionSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func parseOptionToken(tok string) (Option, bool) {
	tok = strings.TrimRightFunc(tok, unicode.IsSpace)
	tok = strings.TrimLeftFunc(tok, unicode.IsSpace)
	if tok == "" {
		return Option{}, false
	}
	sep := strings.IndexAny(tok, "= ")
	if sep < 0 {
		return Option{Name: tok, Value: DefaultOptionValue}, true
	}
	if sep == 0 {
		return Option{}, false
	}
	return Option{Name: tok[:sep], Value: tok[sep+1:]}, true
}

// ApplyOptions parses s and applies each option to setter.
// Failures are logged and do not stop the remaining options from being applied.
// Returns the number of options that failed to apply.
func ApplyOptions(setter OptionSetter, s string) int {
	var errs []error
	for _, opt := range ParseOptions(s) {
		if err := setter.SetOptionString(opt.Name, opt.Value); err != nil {
			errs = append(errs, fmt.Errorf("--%s=%s: %w", opt.Name, opt.Value, err))
		}
	}
	if len(errs) > 0 {
		log.WithError(errors.Join(errs...)).Warnf("failed to apply %d engine option(s)", len(errs))
	}
	return len(errs)
}

// SplitCommand splits a command line as written in an input file,
// eg `show-text "${media-title}"`, into engine command arguments.
func SplitCommand(cmd string) ([]string, error) {
	args, err := shellquote.Split(cmd)
	if err != nil {
		return nil, fmt.Errorf("malformed command %q: %w", cmd, err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}
