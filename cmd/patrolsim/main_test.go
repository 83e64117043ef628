package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsTicks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"--ticks", "5", "--log-level", "error"}, &buf))

	sc := bufio.NewScanner(&buf)
	n := 0
	for sc.Scan() {
		var got map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
		assert.Contains(t, got, "guard")
		assert.Contains(t, got, "player")
		n++
	}
	assert.Equal(t, 5, n)
}

func TestRunTransitionsOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"--ticks", "120", "--transitions-only", "--log-level", "error"}, &buf))

	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var got line
		require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
		assert.NotEmpty(t, got.Transitions)
	}
}

func TestRunBadScene(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"--scene", "missing.yaml", "--log-level", "error"}, &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
