package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every record that passes the level check, after it is written locally.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the process-wide mirror. nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

func emitMirror(ctx context.Context, level Level, msg string, args []any) {
	fn := mirror.Load()
	if fn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*fn)(ctx, level, msg, args...)
}
