package evaluate

import (
	"github.com/kontestis/evaluator/internal/checker"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/runnable"
)

// runTestcase runs one testcase's input through a solution process and
// classifies the outcome: a non-zero exit maps straight to a verdict from
// the meta file's status (time/memory/runtime), a zero exit is handed to
// the checker.
func runTestcase(boxID uint8, run *runnable.Runnable, chk checker.Checker, tc domain.Testcase, limits isolate.Limits) domain.TestcaseResult {
	stdin := isolate.StdinFromBytes([]byte(tc.Input))

	output, meta, err := run.Run(boxID, stdin, limits, nil)
	if err != nil {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: domain.SystemError(),
			Error:   domain.StrPtr(err.Error()),
		}
	}

	outputStr := string(output.Stdout)

	if !output.Success {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: verdictForFailedRun(meta),
			Time:    meta.TimeMS,
			Memory:  meta.MemoryKB,
			Output:  domain.StrPtr(outputStr),
			Error:   domain.StrPtr(string(output.Stderr)),
		}
	}

	verdict, err := chk.Validate(boxID, outputStr, tc)
	if err != nil {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: verdictForCheckerError(err),
			Output:  domain.StrPtr(outputStr),
			Error:   domain.StrPtr(err.Error()),
		}
	}

	return domain.TestcaseResult{
		ID:      tc.ID,
		Verdict: verdict,
		Time:    meta.TimeMS,
		Memory:  meta.MemoryKB,
		Output:  domain.StrPtr(outputStr),
	}
}

func verdictForFailedRun(meta *isolate.RunMeta) domain.Verdict {
	switch {
	case meta.Status == isolate.StatusTimedOut:
		return domain.TimeLimitExceeded()
	case meta.OOMKilled:
		return domain.MemoryLimitExceeded()
	default:
		return domain.RuntimeError()
	}
}
