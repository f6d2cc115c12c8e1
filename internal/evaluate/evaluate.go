// Package evaluate implements the three evaluation state machines
// (spec.md §4.5): Batch, OutputOnly, and Interactive. Each turns one
// EvaluationJob plus its reserved box ids into a domain.EvaluationResult.
package evaluate

import (
	"errors"

	"github.com/kontestis/evaluator/internal/checker"
	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/runnable"
)

// Deps bundles the shared collaborators every evaluation needs: a sandbox
// launcher and a compiler driver built on top of it.
type Deps struct {
	Launcher *isolate.Launcher
	Compiler *compiler.Driver
}

// buildChecker compiles and wires a scripted checker when the job supplies
// one, falling back to the raw line-trim checker otherwise (spec.md §4.4).
func buildChecker(d Deps, boxID uint8, desc *domain.CheckerDescriptor) (checker.Checker, string, error) {
	if desc == nil {
		return checker.Raw{}, "", nil
	}

	artifact, stderr, err := d.Compiler.Compile(boxID, desc.Script, compiler.Language(desc.Language))
	if err != nil {
		return nil, stderr, err
	}

	return checker.NewScripted(runnable.New(d.Launcher, artifact), artifact), stderr, nil
}

// verdictForCheckerError classifies a Checker.Validate error: an
// InvalidCheckerError means the checker ran but exited unsuccessfully or
// produced an unparsable verdict token (judging_error); anything else is a
// sandbox/IO failure in running the checker itself (system_error).
func verdictForCheckerError(err error) domain.Verdict {
	var invalid *checker.InvalidCheckerError
	if errors.As(err, &invalid) {
		return domain.JudgingError()
	}
	return domain.SystemError()
}

func maxInt64(values []int64) int64 {
	var max int64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// runSequential executes run once per testcase, in order, stopping real
// execution as soon as a result's verdict stops gating as accepted
// (spec.md I4): every testcase after that point is recorded Skipped
// without run ever being called for it.
func runSequential(testcases []domain.Testcase, run func(domain.Testcase) domain.TestcaseResult) []domain.TestcaseResult {
	results := make([]domain.TestcaseResult, 0, len(testcases))
	verdict := domain.Accepted()

	for _, tc := range testcases {
		if !verdict.GatesAsAccepted() {
			results = append(results, domain.TestcaseResult{ID: tc.ID, Verdict: domain.Skipped()})
			continue
		}

		result := run(tc)
		verdict = result.Verdict
		results = append(results, result)
	}

	return results
}

// aggregate computes the final verdict (the last executed testcase's
// verdict, or Accepted if there were none) and the max time/memory across
// all results (spec.md I5).
func aggregate(results []domain.TestcaseResult) (verdict domain.Verdict, maxTime, maxMemory int64) {
	verdict = domain.Accepted()
	times := make([]int64, len(results))
	memories := make([]int64, len(results))

	for i, r := range results {
		times[i] = r.Time
		memories[i] = r.Memory
		if r.Verdict.Kind != domain.VerdictSkipped {
			verdict = r.Verdict
		}
	}

	return verdict, maxInt64(times), maxInt64(memories)
}
