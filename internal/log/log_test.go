// SPDX-License-Identifier: Unlicense OR MIT

package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{" WARNING ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.InfoLevel, false},
		{"loud", zerolog.InfoLevel, false},
	} {
		level, ok := ParseLevel(tc.raw)
		assert.Equal(t, tc.level, level, tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
	}
}

func TestAssert(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	assert.True(t, Assert(&l, true, "never reported"))
	assert.Empty(t, buf.String())

	assert.False(t, Assert(&l, false, "handle was destroyed"))
	assert.Contains(t, buf.String(), `"message":"handle was destroyed"`)
	assert.Contains(t, buf.String(), `"assert":true`)
}

func TestNewHonorsEnvLevel(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	l.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
