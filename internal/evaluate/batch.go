package evaluate

import (
	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/runnable"
)

// BatchJob is one compile-then-run-every-testcase evaluation.
type BatchJob struct {
	EvaluationID  uint64
	Code          string
	Language      compiler.Language
	Testcases     []domain.Testcase
	TimeLimitMs   int64
	MemoryLimitKB int64
	Checker       *domain.CheckerDescriptor
}

// Batch runs a BatchJob on a single reserved box id. Testcases are
// executed strictly sequentially; once a testcase's verdict stops gating
// as accepted (spec.md I4), every remaining testcase is recorded Skipped
// without being run.
func Batch(d Deps, boxID uint8, job BatchJob) domain.EvaluationResult {
	artifact, compilerStderr, err := d.Compiler.Compile(boxID, job.Code, job.Language)
	if err != nil {
		return domain.EvaluationResult{
			EvaluationID:   job.EvaluationID,
			Verdict:        domain.CompilationError(compilerStderr),
			Testcases:      nil,
			CompilerOutput: domain.StrPtr(compilerStderr),
		}
	}
	defer artifact.Close()

	chk, checkerStderr, err := buildChecker(d, boxID, job.Checker)
	if err != nil {
		return domain.EvaluationResult{
			EvaluationID:   job.EvaluationID,
			Verdict:        domain.CompilationError(checkerStderr),
			CompilerOutput: domain.StrPtr(compilerStderr),
		}
	}
	defer chk.Close()

	run := runnable.New(d.Launcher, artifact)
	limits := isolate.Limits{
		TimeSeconds: float64(job.TimeLimitMs) / 1000,
		MemoryKB:    job.MemoryLimitKB,
	}

	results := runSequential(job.Testcases, func(tc domain.Testcase) domain.TestcaseResult {
		return runTestcase(boxID, run, chk, tc, limits)
	})

	verdict, maxTime, maxMemory := aggregate(results)

	return domain.EvaluationResult{
		EvaluationID:   job.EvaluationID,
		Verdict:        verdict,
		MaxTime:        maxTime,
		MaxMemory:      maxMemory,
		Testcases:      results,
		CompilerOutput: domain.StrPtr(compilerStderr),
	}
}
