package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Success(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "log-diary-entry",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"efficiency": 91},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "component=service")
	assert.Contains(t, out, "use_case=log-diary-entry")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "efficiency=91")
}

func TestLogUseCaseObserver_Error(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "record-learning-progress",
		Err:  errors.New("disk full"),
	})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="disk full"`)
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}
