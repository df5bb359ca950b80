package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}
	l.Component("stock").Info().Msg("hola")
	assert.Contains(t, buf.String(), `"component":"stock"`)
}

func TestNop_NoEscribe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Component("x").Info().Msg("nada") })
}
