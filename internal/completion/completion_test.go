package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigKeysAreSorted(t *testing.T) {
	keys := ConfigKeys()
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "default_remote")
	assert.Contains(t, keys, "show_icons")
	assert.Len(t, keys, len(boolKeys)+len(valueKeys))
}

func TestConfigValues(t *testing.T) {
	assert.Contains(t, ConfigValues("theme"), "dracula")
	assert.Equal(t, []string{"true", "false"}, ConfigValues("confirm_sync"))
	assert.Nil(t, ConfigValues("pager"))
}

func TestSuggestConfig(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want []string
	}{
		{name: "key prefix", arg: "lazyscm.confirm", want: []string{"lazyscm.confirm_clean=", "lazyscm.confirm_sync="}},
		{name: "bare key prefix", arg: "pal", want: []string{"lazyscm.palette_mru=", "lazyscm.palette_mru_limit="}},
		{name: "bool values", arg: "lazyscm.show_icons=", want: []string{"lazyscm.show_icons=true", "lazyscm.show_icons=false"}},
		{name: "filtered values", arg: "lazyscm.theme=no", want: []string{"lazyscm.theme=nord"}},
		{name: "free-form value", arg: "lazyscm.pager=", want: nil},
		{name: "unknown key", arg: "lazyscm.zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestConfig(tt.arg))
		})
	}

	assert.Len(t, SuggestConfig(""), len(ConfigKeys()))
}

func TestLookupFlag(t *testing.T) {
	flag, ok := LookupFlag("--theme")
	assert.True(t, ok)
	assert.Equal(t, "NAME", flag.ValueHint)

	flag, ok = LookupFlag("-C")
	assert.True(t, ok)
	assert.Equal(t, "config", flag.Name)

	_, ok = LookupFlag("--plain")
	assert.False(t, ok)
	_, ok = LookupFlag("theme")
	assert.False(t, ok)
}
