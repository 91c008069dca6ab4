package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ikonglong/querydsl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := logging.New(buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", "n", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestNewText(t *testing.T) {
	buf := new(bytes.Buffer)
	logger, err := logging.New(buf, "", "")
	require.NoError(t, err)
	logger.Debug("dropped")
	logger.Info("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewInvalid(t *testing.T) {
	_, err := logging.New(new(bytes.Buffer), "verbose", "text")
	assert.Error(t, err)
	_, err = logging.New(new(bytes.Buffer), "info", "xml")
	assert.Error(t, err)
}
