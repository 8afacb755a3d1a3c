package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileLogger_WritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(&buf, slog.LevelInfo)

	log.Info(context.Background(), "session resolved", "phase", "authenticated")

	out := buf.String()
	assert.Contains(t, out, "msg=\"session resolved\"")
	assert.Contains(t, out, "phase=authenticated")
}

func TestFileLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "noisy detail")
	assert.Empty(t, buf.String())
}

func TestFileLogger_WithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(&buf, slog.LevelInfo).With("component", "api")

	log.Warn(context.Background(), "retrying")
	assert.Contains(t, buf.String(), "component=api")
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Error(context.Background(), "ignored", "k", "v")
		log.With("k", "v").Info(context.Background(), "also ignored")
	})
}
