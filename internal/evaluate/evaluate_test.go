package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kontestis/evaluator/internal/domain"
)

func TestRunSequentialSkipsAfterFirstNonGatingVerdict(t *testing.T) {
	testcases := []domain.Testcase{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	calls := 0

	results := runSequential(testcases, func(tc domain.Testcase) domain.TestcaseResult {
		calls++
		return domain.TestcaseResult{ID: tc.ID, Verdict: domain.RuntimeError()}
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, domain.VerdictRuntimeError, results[0].Verdict.Kind)
	assert.Equal(t, domain.VerdictSkipped, results[1].Verdict.Kind)
	assert.Equal(t, domain.VerdictSkipped, results[2].Verdict.Kind)
}

func TestRunSequentialContinuesThroughCustomVerdicts(t *testing.T) {
	testcases := []domain.Testcase{{ID: "1"}, {ID: "2"}}
	calls := 0

	results := runSequential(testcases, func(tc domain.Testcase) domain.TestcaseResult {
		calls++
		return domain.TestcaseResult{ID: tc.ID, Verdict: domain.Custom("partial")}
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, domain.VerdictCustom, results[1].Verdict.Kind)
}

func TestAggregateTakesLastExecutedVerdictAndMaxes(t *testing.T) {
	results := []domain.TestcaseResult{
		{Verdict: domain.Accepted(), Time: 10, Memory: 1000},
		{Verdict: domain.WrongAnswer(), Time: 50, Memory: 4000},
		{Verdict: domain.Skipped(), Time: 0, Memory: 0},
	}

	verdict, maxTime, maxMemory := aggregate(results)

	assert.Equal(t, domain.VerdictWrongAnswer, verdict.Kind)
	assert.Equal(t, int64(50), maxTime)
	assert.Equal(t, int64(4000), maxMemory)
}

func TestAggregateDefaultsToAcceptedWithNoTestcases(t *testing.T) {
	verdict, maxTime, maxMemory := aggregate(nil)

	assert.Equal(t, domain.VerdictAccepted, verdict.Kind)
	assert.Equal(t, int64(0), maxTime)
	assert.Equal(t, int64(0), maxMemory)
}
