package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sbconf/internal/config"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.LogConf{Level: "warn", NoColor: true}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "warning", log.GetLevel())

	log.With(Fields{"module": "test"}).Info("hidden")
	log.With(Fields{"module": "test"}).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "module=test")
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := newLogger(config.LogConf{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
