package pipe

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSafeDirectForSmallPayload(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	handle, err := WriteSafe(w, []byte("hello"))
	require.NoError(t, err)
	assert.True(t, handle.Direct())

	buf := make([]byte, 5)
	_, err = io.ReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestWriteSafeGrowsPipeForLargerPayload(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	payload := make([]byte, 128*1024)
	for i := range payload {
		payload[i] = byte(i % 256)
	}

	handle, err := WriteSafe(w, payload)
	require.NoError(t, err)
	handle.Wait()

	got := make([]byte, len(payload))
	_, err = io.ReadFull(r, got)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
