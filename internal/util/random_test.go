package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomHexLengthAndCharset(t *testing.T) {
	s := RandomHex(8)
	assert.Len(t, s, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", s)
}

func TestRandomHexIsNotConstant(t *testing.T) {
	assert.NotEqual(t, RandomHex(16), RandomHex(16))
}
