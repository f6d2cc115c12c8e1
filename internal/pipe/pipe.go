// Package pipe is the adaptive pipe write pump (spec.md §4.6): writing a
// testcase's input into a pipe without blocking the writer forever when
// the reader is slow, by growing the pipe's kernel buffer and falling
// back to an async write only when the payload genuinely can't fit.
package pipe

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// hardPipeMaxSize is the ceiling we'll ever grow a pipe to, regardless of
// what /proc/sys/fs/pipe-max-size allows.
const hardPipeMaxSize = 2 << 20 // 2 MiB

var (
	systemPipeMaxSizeOnce sync.Once
	systemPipeMaxSize     int
)

// SystemPipeMaxSize reads /proc/sys/fs/pipe-max-size once and caches
// min(that, hardPipeMaxSize). Falls back to hardPipeMaxSize if the file
// can't be read (e.g. non-Linux, restricted container).
func SystemPipeMaxSize() int {
	systemPipeMaxSizeOnce.Do(func() {
		systemPipeMaxSize = hardPipeMaxSize

		content, err := os.ReadFile("/proc/sys/fs/pipe-max-size")
		if err != nil {
			return
		}

		var n int
		if _, err := fmt.Sscanf(string(content), "%d", &n); err != nil {
			return
		}

		if n < systemPipeMaxSize {
			systemPipeMaxSize = n
		}
	})
	return systemPipeMaxSize
}

// WriteHandle tracks whether a write completed synchronously or was
// handed off to a goroutine. An async write's error, if any, is dropped.
// Abort does not cancel the goroutine: it runs until its write call
// returns.
type WriteHandle struct {
	async bool
	done  chan struct{}
}

// Direct reports whether the write already completed when WriteSafe
// returned.
func (h *WriteHandle) Direct() bool { return !h.async }

// Wait blocks until an async write finishes. A no-op for direct writes.
func (h *WriteHandle) Wait() {
	if h.async {
		<-h.done
	}
}

// Abort is a no-op for both direct and async handles. A pending async
// write is not interrupted; the goroutine still owns the fd until its
// write call returns.
func (h *WriteHandle) Abort() {
	// Nothing to cancel on the syscall itself (Go has no safe way to
	// interrupt an in-flight write(2)); Abort exists so callers don't
	// have to special-case Direct() handles before discarding a handle.
}

// WriteSafe writes input to fd without blocking past the pipe's current
// buffer capacity: it grows the pipe via F_SETPIPE_SZ when the payload is
// larger than the current buffer, and only falls back to an async
// goroutine write when the payload still doesn't fit after growing to
// SystemPipeMaxSize().
func WriteSafe(f *os.File, input []byte) (*WriteHandle, error) {
	fd := int(f.Fd())

	currentSize, err := unix.FcntlInt(uintptr(fd), unix.F_GETPIPE_SZ, 0)
	if err != nil {
		return nil, fmt.Errorf("pipe: get pipe size: %w", err)
	}

	if len(input) < currentSize {
		if _, err := f.Write(input); err != nil {
			return nil, fmt.Errorf("pipe: write: %w", err)
		}
		return &WriteHandle{}, nil
	}

	needed := len(input) + 1
	if needed > SystemPipeMaxSize() {
		needed = SystemPipeMaxSize()
	}

	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETPIPE_SZ, needed); err != nil {
		return nil, fmt.Errorf("pipe: set pipe size: %w", err)
	}

	if len(input) < needed {
		if _, err := f.Write(input); err != nil {
			return nil, fmt.Errorf("pipe: write: %w", err)
		}
		return &WriteHandle{}, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Write(input)
	}()

	return &WriteHandle{async: true, done: done}, nil
}
