package main

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colmap/colmap/internal/writer"
)

func TestParseFieldWidths_ParsesTargetLengthPairs(t *testing.T) {
	widths, err := parseFieldWidths([]string{"id:5", "name:10"})
	require.NoError(t, err)
	assert.Equal(t, []writer.FieldWidth{{Target: "id", Length: 5}, {Target: "name", Length: 10}}, widths)
}

func TestParseFieldWidths_EmptyInputYieldsEmptySlice(t *testing.T) {
	widths, err := parseFieldWidths(nil)
	require.NoError(t, err)
	assert.Empty(t, widths)
}

func TestParseFieldWidths_MissingColonErrors(t *testing.T) {
	_, err := parseFieldWidths([]string{"idonly"})
	assert.Error(t, err)
}

func TestParseFieldWidths_NonIntegerLengthErrors(t *testing.T) {
	_, err := parseFieldWidths([]string{"id:abc"})
	assert.Error(t, err)
}

func TestNewLogger_WritesToRunSpecificLogFile(t *testing.T) {
	dir := t.TempDir()
	log, f, err := newLogger(dir, "run-123", false)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.FileExists(t, filepath.Join(dir, "etl_run-123.log"))
}

func TestNewLogger_VerboseEnablesDebugLevel(t *testing.T) {
	dir := t.TempDir()
	log, f, err := newLogger(dir, "run-456", true)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}
