package bitmap

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"deedles.dev/bitmap/format"
	"github.com/stretchr/testify/require"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		require.False(t, h.Enabled(context.Background(), level), "%v", level)
	}
	require.NoError(t, h.Handle(context.Background(), slog.Record{}))
	require.IsType(t, nopHandler{}, h.WithAttrs([]slog.Attr{slog.String("key", "val")}))
	require.IsType(t, nopHandler{}, h.WithGroup("group"))
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	require.False(t, Logger().Enabled(context.Background(), slog.LevelWarn))

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	require.Same(t, custom, Logger())

	SetLeakCheck(false)
	m := NewForeign(WithRelease(func(Pointer) error { return ErrLocked }))
	b := newBitmap(MustInfo(1, 1, format.Alpha8))
	require.NoError(t, b.PinForWrite(m.Initialize))
	require.Error(t, m.Dispose())
	require.Contains(t, buf.String(), "release foreign memory")

	SetLogger(nil)
	require.NotNil(t, Logger())
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.Default())
				return
			}
			Logger().Debug("concurrent")
		}()
	}
	wg.Wait()
}
