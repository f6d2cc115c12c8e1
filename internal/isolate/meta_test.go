package isolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetaReadsKnownKeys(t *testing.T) {
	meta := parseMeta([]byte("cg-mem:102400\ntime:1.532\nstatus:TO\ncg-oom-killed:1\n"))

	assert.Equal(t, int64(102400), meta.MemoryKB)
	assert.Equal(t, int64(1532), meta.TimeMS)
	assert.Equal(t, StatusTimedOut, meta.Status)
	assert.True(t, meta.OOMKilled)
}

func TestParseMetaIgnoresUnknownKeys(t *testing.T) {
	meta := parseMeta([]byte("cg-mem:2048\nexitsig:11\nmessage:killed\n"))

	assert.Equal(t, int64(2048), meta.MemoryKB)
	assert.Equal(t, Status(""), meta.Status)
}

func TestParseMetaDefaultsOnEmptyInput(t *testing.T) {
	meta := parseMeta(nil)

	assert.Equal(t, int64(0), meta.MemoryKB)
	assert.Equal(t, int64(0), meta.TimeMS)
	assert.False(t, meta.OOMKilled)
}
