package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)

	assert.Contains(t, buf.String(), "CHOOSE YOUR OWN ADVENTURE")
	assert.Contains(t, buf.String(), "Type the number of your choice and press Enter.")
}

func TestTerminalDetection_NonFile(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, 0, Width(&buf))
	assert.Nil(t, ScreenClearer(&buf))
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(60)
	out, err := render("Some **bold** text")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "bold"))
}
