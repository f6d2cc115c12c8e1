package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictMarshalsTypeAndData(t *testing.T) {
	b, err := json.Marshal(Custom("partial credit"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"custom","data":"partial credit"}`, string(b))
}

func TestVerdictMarshalsOmitsDataWhenEmpty(t *testing.T) {
	b, err := json.Marshal(Accepted())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"accepted"}`, string(b))
}

func TestVerdictUnmarshalReadsTypeAndData(t *testing.T) {
	var v Verdict
	err := json.Unmarshal([]byte(`{"type":"compilation_error","data":"expected `+"`"+`;`+"`"+`"}`), &v)
	require.NoError(t, err)
	assert.Equal(t, VerdictCompilationError, v.Kind)
	assert.Contains(t, v.Data, "expected")
}

func TestVerdictUnmarshalRejectsUnknownType(t *testing.T) {
	var v Verdict
	err := json.Unmarshal([]byte(`{"type":"not_a_real_verdict"}`), &v)
	assert.Error(t, err)
}

func TestGatesAsAcceptedOnlyForAcceptedAndCustom(t *testing.T) {
	assert.True(t, Accepted().GatesAsAccepted())
	assert.True(t, Custom("x").GatesAsAccepted())
	assert.False(t, WrongAnswer().GatesAsAccepted())
	assert.False(t, RuntimeError().GatesAsAccepted())
	assert.False(t, Skipped().GatesAsAccepted())
}
