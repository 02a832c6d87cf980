package slogx_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNewRendersTimeInLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "registrar", Location: loc, Output: &buf})
	logger.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	ts, ok := entry["time"].(string)
	require.True(t, ok)
	require.True(t, strings.HasSuffix(ts, "+05:30"), ts)
	require.Equal(t, "registrar", entry["service"])
	require.NotContains(t, entry, "version")
	require.NotContains(t, entry, "env")
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Format: "TEXT", Level: "warn", Output: &buf})

	logger.Info("dropped")
	require.Zero(t, buf.Len())

	logger.Warn("kept", "program", "quran-recitation")
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "program=quran-recitation")
}
