package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
)

// testCleanup 在测试结束时执行 cleanup
func testCleanup(t *testing.T, cleanup func() error) {
	t.Helper()
	t.Cleanup(func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup error: %v", err)
		}
	})
}

func TestLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetLevel(xlog.LevelDebug).
		Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message", xlog.Err(errors.New("boom")))

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message", "boom"} {
		assert.Contains(t, output, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetLevelString("warn").Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	logger.Info(context.Background(), "hidden")
	logger.Warn(context.Background(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	// 动态调整级别，派生 logger 同步生效
	child := logger.With(xlog.Component("test"))
	logger.SetLevel(xlog.LevelDebug)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())
	child.Debug(context.Background(), "child debug")
	assert.Contains(t, buf.String(), "child debug")
	assert.Contains(t, buf.String(), "component=test")
	assert.True(t, logger.Enabled(context.Background(), xlog.LevelDebug))
}

func TestLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	assert.NotPanics(t, func() {
		logger.Info(nil, "nil ctx") //nolint:staticcheck // 测试 nil ctx
	})
	assert.Contains(t, buf.String(), "nil ctx")
}

func TestBuilder_Errors(t *testing.T) {
	_, _, err := xlog.New().SetFormat("xml").Build()
	assert.Error(t, err)

	_, _, err = xlog.New().SetLevelString("verbose").Build()
	assert.Error(t, err)

	_, _, err = xlog.New().SetOutput(nil).Build()
	assert.Error(t, err)

	_, _, err = xlog.New().SetRotation("  ").Build()
	assert.Error(t, err)

	// first-error-wins：后续合法设置不覆盖已有错误
	_, _, err = xlog.New().SetFormat("xml").SetFormat("json").Build()
	assert.Error(t, err)
}

func TestBuilder_Rotation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	logger, cleanup, err := xlog.New().
		SetRotation(file, xlog.WithMaxSizeMB(1), xlog.WithMaxBackups(2), xlog.WithCompress(false)).
		Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "to file")
	require.NoError(t, cleanup())
	// cleanup 可重复调用
	require.NoError(t, cleanup())
}

func TestEnrichHandler_Tenant(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	ctx, _ := xctx.WithTenantID(context.Background(), "acme")
	ctx, _ = xctx.WithTenantSource(ctx, "token")
	logger.Info(ctx, "enriched")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "acme", record["tenant_id"])
	assert.Equal(t, "token", record["tenant_source"])
	assert.NotContains(t, record, "trace_id")
}

func TestEnrichHandler_TraceFromSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var buf bytes.Buffer
	h, err := xlog.NewEnrichHandler(slog.NewJSONHandler(&buf, nil))
	require.NoError(t, err)

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	slog.New(h).InfoContext(ctx, "with span")

	assert.Contains(t, buf.String(), span.SpanContext().TraceID().String())
	assert.Contains(t, buf.String(), `"span_id"`)
}

func TestEnrichHandler_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetEnrich(false).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	ctx, _ := xctx.WithTenantID(context.Background(), "acme")
	logger.Info(ctx, "plain")
	assert.False(t, strings.Contains(buf.String(), "tenant_id"))
}

func TestNewEnrichHandler_Nil(t *testing.T) {
	_, err := xlog.NewEnrichHandler(nil)
	assert.ErrorIs(t, err, xlog.ErrNilHandler)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    xlog.Level
		wantErr bool
	}{
		{"debug", xlog.LevelDebug, false},
		{" INFO ", xlog.LevelInfo, false},
		{"warning", xlog.LevelWarn, false},
		{"error", xlog.LevelError, false},
		{"trace", xlog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := xlog.ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	var l xlog.Level
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	assert.Equal(t, "WARN", l.String())
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	prev := xlog.Default()
	xlog.SetDefault(logger)
	t.Cleanup(func() { xlog.SetDefault(prev) })

	xlog.SetDefault(nil) // 忽略
	xlog.Info(context.Background(), "global info")
	xlog.Warn(context.Background(), "global warn")
	assert.Contains(t, buf.String(), "global info")
	assert.Contains(t, buf.String(), "global warn")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLogger_OnError(t *testing.T) {
	var got error
	logger, cleanup, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(err error) { got = err }).
		Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	logger.Error(context.Background(), "lost")
	assert.Error(t, got)
}
