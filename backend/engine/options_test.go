package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want []Option
	}{
		{in: "", want: nil},
		{in: "no dashes here", want: nil},
		{
			in:   "--a=1 --b --c=3",
			want: []Option{{"a", "1"}, {"b", "yes"}, {"c", "3"}},
		},
		{
			in:   "--hwdec=auto-safe\n --sub-font=DejaVu Sans  ",
			want: []Option{{"hwdec", "auto-safe"}, {"sub-font", "DejaVu Sans"}},
		},
		{
			in:   "--profile gpu-hq --fs",
			want: []Option{{"profile", "gpu-hq"}, {"fs", "yes"}},
		},
		{
			in:   "ignored --mute=yes",
			want: []Option{{"mute", "yes"}},
		},
		{
			in:   "--a=x--y --b",
			want: []Option{{"a", "x--y"}, {"b", "yes"}},
		},
		{
			in:   "--a=1 -- --b=2 --",
			want: []Option{{"a", "1"}, {"b", "2"}},
		},
		{
			in:   "--empty=",
			want: []Option{{"empty", ""}},
		},
	} {
		assert.Equal(t, tt.want, ParseOptions(tt.in), "input %q", tt.in)
	}
}

type recordingSetter struct {
	applied map[string]string
	reject  map[string]bool
}

func (r *recordingSetter) SetOptionString(name, value string) error {
	if r.reject[name] {
		return errors.New("rejected")
	}
	r.applied[name] = value
	return nil
}

func TestApplyOptions(t *testing.T) {
	r := &recordingSetter{applied: map[string]string{}, reject: map[string]bool{"bogus": true}}

	assert.Equal(t, 0, ApplyOptions(r, ""))
	assert.Empty(t, r.applied)

	assert.Equal(t, 0, ApplyOptions(r, "--a=1 --b"))
	assert.Equal(t, map[string]string{"a": "1", "b": "yes"}, r.applied)

	// failures are counted and do not stop later options
	assert.Equal(t, 1, ApplyOptions(r, "--bogus=1 --c=3"))
	assert.Equal(t, "3", r.applied["c"])
}

func TestSplitCommand(t *testing.T) {
	args, err := SplitCommand(`show-text "${media-title}" 2000`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"show-text", "${media-title}", "2000"}, args)

	_, err = SplitCommand("   ")
	assert.Error(t, err)

	_, err = SplitCommand(`seek "10`)
	assert.Error(t, err)
}
