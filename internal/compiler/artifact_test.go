package compiler

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactCloseRemovesHostFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "artifact")
	require.NoError(t, err)
	f.Close()

	a := &Artifact{Kind: ArtifactCompiled, Path: f.Name()}
	require.NoError(t, a.Close())

	_, statErr := os.Stat(f.Name())
	assert.True(t, os.IsNotExist(statErr))
}

func TestArtifactCloseIsNoOpForInterpreted(t *testing.T) {
	a := &Artifact{Kind: ArtifactInterpreted, Source: "print(1)"}
	assert.NoError(t, a.Close())
}

func TestArtifactCloseToleratesAlreadyMissingFile(t *testing.T) {
	a := &Artifact{Kind: ArtifactCompiled, Path: "/nonexistent/path/to/artifact"}
	assert.NoError(t, a.Close())
}

func TestUnsupportedLanguageErrorMessage(t *testing.T) {
	err := &UnsupportedLanguageError{Language: "brainfuck"}
	assert.Contains(t, err.Error(), "brainfuck")
}
