package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "closetapi")
	logger.Info().Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "closetapi", line["service"])
	assert.Equal(t, "hello", line["message"])
}

func TestSetupMarshalsStacks(t *testing.T) {
	Setup("closetapi", false)

	var buf bytes.Buffer
	logger := New(&buf, "closetapi")
	logger.Error().Stack().Err(pkgerrors.New("boom")).Msg("failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.NotEmpty(t, line["stack"])
}
