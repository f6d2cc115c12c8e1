package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsOutOfRangeMaxEvaluations(t *testing.T) {
	cfg := &Config{MaxEvaluations: 0, LogLevel: "info", RedisQueueKey: "q", IsolatePath: "/bin/true"}
	assert.Error(t, validate(cfg))

	cfg.MaxEvaluations = 256
	assert.Error(t, validate(cfg))
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := &Config{MaxEvaluations: 2, LogLevel: "not-a-level", RedisQueueKey: "q", IsolatePath: "/bin/true"}
	assert.Error(t, validate(cfg))
}

func TestValidateRejectsEmptyQueueKey(t *testing.T) {
	cfg := &Config{MaxEvaluations: 2, LogLevel: "info", RedisQueueKey: "", IsolatePath: "/bin/true"}
	assert.Error(t, validate(cfg))
}

func TestValidateAcceptsSaneConfig(t *testing.T) {
	cfg := &Config{MaxEvaluations: 4, LogLevel: "warn", RedisQueueKey: "evaluator_msg_queue", IsolatePath: "/nonexistent/but/absent/path"}
	assert.NoError(t, validate(cfg))
}

func TestGetLogLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "garbage"}
	assert.Equal(t, "info", cfg.GetLogLevel().String())
}
