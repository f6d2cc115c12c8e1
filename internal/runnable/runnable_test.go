package runnable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/isolate"
)

func newBoxAt(t *testing.T) *isolate.Box {
	t.Helper()
	return &isolate.Box{Dir: t.TempDir(), MetaPath: filepath.Join(t.TempDir(), "meta.txt")}
}

func TestBuildCommandCompiledCopiesExecutableIn(t *testing.T) {
	hostBin := filepath.Join(t.TempDir(), "program")
	require.NoError(t, os.WriteFile(hostBin, []byte("#!/bin/sh\n"), 0o755))

	r := New(nil, &compiler.Artifact{Kind: compiler.ArtifactCompiled, Path: hostBin})
	box := newBoxAt(t)

	cmd, err := r.buildCommand(box)
	require.NoError(t, err)
	assert.Equal(t, "program", cmd.Executable)
	assert.False(t, cmd.InPath)

	_, statErr := os.Stat(filepath.Join(box.Dir, "program"))
	assert.NoError(t, statErr)
}

func TestBuildCommandJavaCopiesClassFileAndRunsViaJava(t *testing.T) {
	hostClass := filepath.Join(t.TempDir(), "Main.class")
	require.NoError(t, os.WriteFile(hostClass, []byte("\xca\xfe\xba\xbe"), 0o644))

	r := New(nil, &compiler.Artifact{Kind: compiler.ArtifactJava, Path: hostClass})
	box := newBoxAt(t)

	cmd, err := r.buildCommand(box)
	require.NoError(t, err)
	assert.Equal(t, "java", cmd.Executable)
	assert.Equal(t, []string{"Main"}, cmd.Args)
	assert.True(t, cmd.InPath)

	_, statErr := os.Stat(filepath.Join(box.Dir, "Main.class"))
	assert.NoError(t, statErr)
}

func TestBuildCommandInterpretedEmbedsSourceAsArgument(t *testing.T) {
	r := New(nil, &compiler.Artifact{Kind: compiler.ArtifactInterpreted, Source: "print('hi')"})
	box := newBoxAt(t)

	cmd, err := r.buildCommand(box)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3", cmd.Executable)
	assert.Equal(t, []string{"-c", "print('hi')"}, cmd.Args)
	assert.True(t, cmd.InPath)
}

func TestBuildCommandRejectsUnknownArtifactKind(t *testing.T) {
	r := New(nil, &compiler.Artifact{Kind: compiler.ArtifactKind(99)})
	box := newBoxAt(t)

	_, err := r.buildCommand(box)
	assert.Error(t, err)
}
