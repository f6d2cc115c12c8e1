package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageBeginEvaluationBatch(t *testing.T) {
	raw := []byte(`{
		"BeginEvaluation": {
			"output_queue": "out:42",
			"evaluation": {
				"Batch": {
					"id": 42,
					"code": "print(1)",
					"language": "python",
					"testcases": [{"id":"a","input":"","output":"1\n"}],
					"time_limit_ms": 1000,
					"memory_limit_kb": 65536
				}
			}
		}
	}`)

	msg, err := ParseMessage(raw)
	require.NoError(t, err)
	require.NotNil(t, msg.BeginEvaluation)
	assert.False(t, msg.SystemExit)
	assert.Equal(t, "out:42", msg.BeginEvaluation.OutputQueue)
	require.NotNil(t, msg.BeginEvaluation.Evaluation.Batch)
	assert.Equal(t, uint64(42), msg.BeginEvaluation.Evaluation.EvaluationID())
	assert.Equal(t, 1, msg.BeginEvaluation.Evaluation.NeededBoxes())
}

func TestParseMessageSystemExit(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"System":"Exit"}`))
	require.NoError(t, err)
	assert.True(t, msg.SystemExit)
}

func TestParseMessageInteractiveNeedsTwoBoxes(t *testing.T) {
	raw := []byte(`{
		"BeginEvaluation": {
			"output_queue": "out:1",
			"evaluation": {
				"Interactive": {
					"id": 1, "code": "", "language": "cpp",
					"testcases": [], "time_limit_ms": 1000, "memory_limit_kb": 65536,
					"checker": {"script": "", "language": "cpp"}
				}
			}
		}
	}`)

	msg, err := ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, msg.BeginEvaluation.Evaluation.NeededBoxes())
}

func TestParseMessageRejectsUnrecognizedEnvelope(t *testing.T) {
	_, err := ParseMessage([]byte(`{"Nonsense": true}`))
	assert.Error(t, err)
}
