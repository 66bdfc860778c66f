package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	buf := &bytes.Buffer{}

	assert.Equal(t, zerolog.WarnLevel, SetupWriter(buf, " WARN ", false))
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"k":"v"`)

	assert.Equal(t, zerolog.InfoLevel, SetupWriter(buf, "chatty", false))
	assert.Equal(t, zerolog.InfoLevel, SetupWriter(buf, "", true))
}
