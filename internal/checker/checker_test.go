package checker

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
)

func TestRawIgnoresLineTrailingWhitespace(t *testing.T) {
	tc := domain.Testcase{Output: "1 2 3\n4 5 6\n"}

	v, err := Raw{}.Validate(0, "1 2 3   \n4 5 6", tc)

	assert.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, v.Kind)
}

func TestRawDetectsMismatch(t *testing.T) {
	tc := domain.Testcase{Output: "1 2 3\n"}

	v, err := Raw{}.Validate(0, "1 2 4", tc)

	assert.NoError(t, err)
	assert.Equal(t, domain.VerdictWrongAnswer, v.Kind)
}

func TestTrimEveryLineJoinsWithSpace(t *testing.T) {
	assert.Equal(t, "a b c", trimEveryLine("a \n b\nc  "))
}

func TestRawCloseIsNoOp(t *testing.T) {
	assert.NoError(t, Raw{}.Close())
}

func TestScriptedCloseRemovesOwnedArtifact(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "checker-artifact")
	require.NoError(t, err)
	f.Close()

	s := NewScripted(nil, &compiler.Artifact{Kind: compiler.ArtifactCompiled, Path: f.Name()})
	require.NoError(t, s.Close())

	_, statErr := os.Stat(f.Name())
	assert.True(t, os.IsNotExist(statErr))
}
