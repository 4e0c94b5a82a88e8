package keybind

import (
	"fmt"
	"slices"

	"github.com/charlievieth/strcase"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Keymap resolves triggers to commands. User bindings take priority
// over defaults, and within one source later bindings take priority
// over earlier ones.
type Keymap struct {
	// search order: first match wins
	list []Binding
}

// NewKeymap merges user and default bindings, each given in file order.
func NewKeymap(user, defaults []Binding) *Keymap {
	list := make([]Binding, 0, len(user)+len(defaults))
	list = append(list, lo.Reverse(append([]Binding(nil), user...))...)
	list = append(list, lo.Reverse(append([]Binding(nil), defaults...))...)
	return &Keymap{list: list}
}

// DefaultKeymap returns a keymap of only the compiled-in bindings.
func DefaultKeymap() *Keymap {
	defaults, _ := ParseString(DefaultConfig, SourceDefault)
	return NewKeymap(nil, defaults)
}

// Lookup returns the command bound to t. Modifiers must match exactly.
func (k *Keymap) Lookup(t Trigger) (string, bool) {
	for _, b := range k.list {
		if b.Trigger == t {
			return b.Command, true
		}
	}
	return "", false
}

// Bindings returns the effective binding of every bound trigger,
// ordered by trigger name.
func (k *Keymap) Bindings() []Binding {
	effective := lo.UniqBy(k.list, func(b Binding) string { return b.Trigger.String() })
	slices.SortStableFunc(effective, func(a, b Binding) int {
		return strcase.Compare(a.Trigger.String(), b.Trigger.String())
	})
	return effective
}

// Load builds a keymap from the defaults and the user input file at
// path, if any. If the user file cannot be read the returned keymap
// holds the defaults only and the error is returned alongside it.
func Load(path string) (*Keymap, []Rejection, error) {
	defaults, rejected := ParseString(DefaultConfig, SourceDefault)
	for _, r := range rejected {
		log.Warnf("default key binding rejected: %v", r)
	}
	if path == "" {
		return NewKeymap(nil, defaults), nil, nil
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return NewKeymap(nil, defaults), nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	user, rejected, err := Parse(f, SourceUser)
	if err != nil {
		return NewKeymap(nil, defaults), nil, err
	}
	return NewKeymap(user, defaults), rejected, nil
}
