// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func TestNew_Prod(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(types.LogConfig{Env: "prod"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.Level)

	l.Debug("hidden")
	l.WithField("source_url", "https://example.com").Info("cache hit")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cache hit", line["msg"])
	assert.Equal(t, "https://example.com", line["source_url"])
}

func TestNew_Dev(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(types.LogConfig{Env: "dev"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.Level)

	l.Debug("fetching metadata")
	assert.Contains(t, buf.String(), "fetching metadata")
}

func TestNew_LevelOverride(t *testing.T) {
	l, err := New(types.LogConfig{Env: "prod", Level: "warn"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.Level)

	_, err = New(types.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
