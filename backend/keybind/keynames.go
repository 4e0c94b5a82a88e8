package keybind

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"github.com/charlievieth/strcase"
)

// engine key names that differ from the toolkit's
var translatedKeys = map[string]fyne.KeyName{
	"SPACE":    fyne.KeySpace,
	"ENTER":    fyne.KeyReturn,
	"KP_ENTER": fyne.KeyEnter,
	"ESC":      fyne.KeyEscape,
	"TAB":      fyne.KeyTab,
	"BS":       fyne.KeyBackspace,
	"DEL":      fyne.KeyDelete,
	"INS":      fyne.KeyInsert,
	"HOME":     fyne.KeyHome,
	"END":      fyne.KeyEnd,
	"PGUP":     fyne.KeyPageUp,
	"PGDWN":    fyne.KeyPageDown,
	"LEFT":     fyne.KeyLeft,
	"RIGHT":    fyne.KeyRight,
	"UP":       fyne.KeyUp,
	"DOWN":     fyne.KeyDown,
	"SHARP":    "#",
	"PLUS":     fyne.KeyPlus,
}

var toolkitKeys = func() map[fyne.KeyName]bool {
	m := map[fyne.KeyName]bool{}
	for _, k := range []fyne.KeyName{
		fyne.KeyEscape, fyne.KeyReturn, fyne.KeyTab, fyne.KeyBackspace,
		fyne.KeyInsert, fyne.KeyDelete, fyne.KeyRight, fyne.KeyLeft,
		fyne.KeyDown, fyne.KeyUp, fyne.KeyPageUp, fyne.KeyPageDown,
		fyne.KeyHome, fyne.KeyEnd, fyne.KeyEnter, fyne.KeySpace,
	} {
		m[k] = true
	}
	for i := 1; i <= 12; i++ {
		m[fyne.KeyName("F"+strconv.Itoa(i))] = true
	}
	return m
}()

var mouseAliases = map[string]MouseTrigger{
	"MBTN_LEFT":      {Button: MouseLeft},
	"MBTN_MID":       {Button: MouseMiddle},
	"MBTN_RIGHT":     {Button: MouseRight},
	"WHEEL_UP":       {Button: MouseWheelUp},
	"WHEEL_DOWN":     {Button: MouseWheelDown},
	"MBTN_LEFT_DBL":  {Button: MouseLeft, Double: true},
	"MBTN_MID_DBL":   {Button: MouseMiddle, Double: true},
	"MBTN_RIGHT_DBL": {Button: MouseRight, Double: true},
}

func parseModifier(name string) (Modifier, bool) {
	for _, mn := range modifierNames {
		if strcase.EqualFold(name, mn.name) {
			return mn.mod, true
		}
	}
	return 0, false
}

// parseMouseButton recognizes MOUSE_BTNn and MOUSE_BTNn_DBL as well as
// the MBTN_* and WHEEL_* aliases.
func parseMouseButton(name string) (MouseTrigger, bool) {
	upper := strings.ToUpper(name)
	if m, ok := mouseAliases[upper]; ok {
		return m, true
	}
	if !strings.HasPrefix(upper, "MOUSE_BTN") {
		return MouseTrigger{}, false
	}
	rest := upper[len("MOUSE_BTN"):]
	var dbl bool
	if r, ok := strings.CutSuffix(rest, "_DBL"); ok {
		rest, dbl = r, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || n > 19 {
		return MouseTrigger{}, false
	}
	return MouseTrigger{Button: n, Double: dbl}, true
}

// parseKey maps an engine key name to a toolkit key name.
// Upper case letters imply the shift modifier.
func parseKey(name string) (fyne.KeyName, Modifier, error) {
	for engineName, key := range translatedKeys {
		if strcase.EqualFold(name, engineName) {
			return key, 0, nil
		}
	}
	if toolkitKeys[fyne.KeyName(name)] {
		return fyne.KeyName(name), 0, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		switch {
		case unicode.IsUpper(r):
			return fyne.KeyName(name), ModShift, nil
		case unicode.IsLower(r):
			return fyne.KeyName(strings.ToUpper(name)), 0, nil
		case unicode.IsPrint(r) && !unicode.IsSpace(r):
			return fyne.KeyName(name), 0, nil
		}
	}
	return "", 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// ParseTrigger parses a key combination such as "ctrl+shift+LEFT",
// "ctrl++" or "MOUSE_BTN0_DBL".
func ParseTrigger(combo string) (Trigger, error) {
	parts := splitCombo(combo)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty key combination", ErrUnknownKey)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := parseModifier(p)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a modifier in %q", ErrUnknownKey, p, combo)
		}
		mods |= m
	}

	last := parts[len(parts)-1]
	if _, ok := parseModifier(last); ok {
		return nil, fmt.Errorf("%w: %q has no key", ErrUnknownKey, combo)
	}
	if mt, ok := parseMouseButton(last); ok {
		mt.Mods = mods
		return mt, nil
	}
	key, implied, err := parseKey(last)
	if err != nil {
		return nil, err
	}
	return KeyTrigger{Mods: mods | implied, Key: key}, nil
}

// splitCombo splits on '+', treating a '+' at the start of a segment
// as the plus key itself.
func splitCombo(s string) []string {
	var parts []string
	for s != "" {
		i := strings.IndexByte(s[1:], '+')
		if i < 0 {
			parts = append(parts, s)
			break
		}
		parts = append(parts, s[:i+1])
		s = s[i+2:]
	}
	return parts
}
