package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, Matches(m, Auto), "auto must match %s", m)
		assert.True(t, Matches(m, m))
	}
	assert.False(t, Matches(Standard, TimeTrial))
	assert.False(t, Matches(TimeTrial, Cup))
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":           Auto,
		"ANY":        Auto,
		"race":       Standard,
		"standard":   Standard,
		" cup ":      Cup,
		"tt":         TimeTrial,
		"time_trial": TimeTrial,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("drift")
	assert.Error(t, err)
}

func TestConcrete(t *testing.T) {
	assert.False(t, Auto.Concrete())
	assert.False(t, Mode("drift").Concrete())
	for _, m := range Modes {
		assert.True(t, m.Concrete())
	}
}
