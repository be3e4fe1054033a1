package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info message")

	assert.Zero(t, buf.Len())
}

func TestInfo_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("fetched %d posts", 3)

	assert.Equal(t, "[INFO] fetched 3 posts\n", buf.String())
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("comments fetch error: %v", "boom")

	assert.Equal(t, "[WARN] comments fetch error: boom\n", buf.String())
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Section("hidden")
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Section("Fetch")
	assert.Equal(t, "\n=== Fetch ===\n", buf.String())
}
