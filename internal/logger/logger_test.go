package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Info("member checked in", "member_id", 7)

	output := buf.String()
	assert.Contains(t, output, "member checked in")
	assert.Contains(t, output, "member_id")
}

func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Infof("upgrade applied for member %d", 42)

	assert.Contains(t, buf.String(), "upgrade applied for member 42")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Error("payment verification failed")

	assert.Contains(t, buf.String(), "payment verification failed")
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	log = New(NewJSONHandler(&buf, opts))

	Debug("resolved qr payload")

	assert.Contains(t, buf.String(), "resolved qr payload")
}

func TestDebugSuppressedAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	log = New(NewJSONHandler(&buf, nil))

	Debug("should not appear")

	assert.Empty(t, buf.String())
}
