package evaluate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontestis/evaluator/internal/checker"
	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/pipe"
	"github.com/kontestis/evaluator/internal/runnable"
	"github.com/kontestis/evaluator/internal/util"
)

// InteractiveJob runs a solution against an interactor over crossed
// pipes, for every testcase. The interactor's verdict, written to its own
// interactor_meta.out, is authoritative — there is no separate checker.
type InteractiveJob struct {
	EvaluationID  uint64
	Code          string
	Language      compiler.Language
	Testcases     []domain.Testcase
	TimeLimitMs   int64
	MemoryLimitKB int64
	Interactor    domain.CheckerDescriptor
}

// Interactive runs job on two reserved box ids: solutionBox and
// interactorBox. Both the solution and the interactor are compiled once;
// each testcase then gets its own pair of crossed pipes.
func Interactive(d Deps, solutionBox, interactorBox uint8, job InteractiveJob) domain.EvaluationResult {
	solutionArtifact, compilerStderr, err := d.Compiler.Compile(solutionBox, job.Code, job.Language)
	if err != nil {
		return domain.EvaluationResult{
			EvaluationID:   job.EvaluationID,
			Verdict:        domain.CompilationError(compilerStderr),
			CompilerOutput: domain.StrPtr(compilerStderr),
		}
	}
	defer solutionArtifact.Close()

	interactorArtifact, interactorStderr, err := d.Compiler.Compile(interactorBox, job.Interactor.Script, compiler.Language(job.Interactor.Language))
	if err != nil {
		return domain.EvaluationResult{
			EvaluationID:   job.EvaluationID,
			Verdict:        domain.CompilationError(interactorStderr),
			CompilerOutput: domain.StrPtr(compilerStderr),
		}
	}
	defer interactorArtifact.Close()

	solutionRun := runnable.New(d.Launcher, solutionArtifact)
	interactorRun := runnable.New(d.Launcher, interactorArtifact)

	limits := isolate.Limits{
		TimeSeconds: float64(job.TimeLimitMs) / 1000,
		MemoryKB:    job.MemoryLimitKB,
	}

	results := runSequential(job.Testcases, func(tc domain.Testcase) domain.TestcaseResult {
		return runInteractiveTestcase(solutionBox, interactorBox, solutionRun, interactorRun, tc, limits)
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

// runInteractiveTestcase wires pipe A (interactor -> solution) and pipe B
// (solution -> interactor), preloads the testcase input onto pipe B (which
// is what the interactor reads as its "secret" stdin, per spec.md §4.5),
// then runs both processes concurrently to completion.
func runInteractiveTestcase(solutionBox, interactorBox uint8, solutionRun, interactorRun *runnable.Runnable, tc domain.Testcase, limits isolate.Limits) domain.TestcaseResult {
	pipeARead, pipeAWrite, err := os.Pipe()
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}
	defer pipeARead.Close()
	defer pipeAWrite.Close()

	pipeBRead, pipeBWrite, err := os.Pipe()
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}
	defer pipeBRead.Close()
	defer pipeBWrite.Close()

	writeHandle, err := pipe.WriteSafe(pipeBWrite, []byte(tc.Input))
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}
	defer writeHandle.Abort()

	interactorBoxHandle, err := interactorRun.JustRun(interactorBox, isolate.StdinFromFile(pipeBRead), limits, pipeAWrite)
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}
	defer interactorBoxHandle.Cleanup()

	solutionBoxHandle, err := solutionRun.JustRun(solutionBox, isolate.StdinFromFile(pipeARead), limits, pipeBWrite)
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}
	defer solutionBoxHandle.Cleanup()

	solutionOutput, err := solutionBoxHandle.Wait()
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}

	interactorOutput, err := interactorBoxHandle.Wait()
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}

	writeHandle.Wait()

	solutionMeta, err := solutionBoxHandle.LoadMeta()
	if err != nil {
		return systemErrorResult(tc.ID, err)
	}

	if !solutionOutput.Success {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: verdictForFailedRun(solutionMeta),
			Time:    solutionMeta.TimeMS,
			Memory:  solutionMeta.MemoryKB,
			Error:   domain.StrPtr(string(solutionOutput.Stderr)),
		}
	}

	if !interactorOutput.Success {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: domain.JudgingError(),
			Time:    solutionMeta.TimeMS,
			Memory:  solutionMeta.MemoryKB,
			Error:   domain.StrPtr(string(interactorOutput.Stderr)),
		}
	}

	verdict, err := readInteractorVerdict(interactorBoxHandle)
	if err != nil {
		return domain.TestcaseResult{
			ID:      tc.ID,
			Verdict: verdictForCheckerError(err),
			Time:    solutionMeta.TimeMS,
			Memory:  solutionMeta.MemoryKB,
			Error:   domain.StrPtr(err.Error()),
		}
	}

	return domain.TestcaseResult{
		ID:      tc.ID,
		Verdict: verdict,
		Time:    solutionMeta.TimeMS,
		Memory:  solutionMeta.MemoryKB,
	}
}

// readInteractorVerdict copies interactor_meta.out out of the interactor's
// box and parses its single verdict line.
func readInteractorVerdict(box *isolate.Box) (domain.Verdict, error) {
	hostPath := filepath.Join(os.TempDir(), util.RandomHex(8))
	defer os.Remove(hostPath)

	if err := box.CopyOut("interactor_meta.out", hostPath); err != nil {
		return domain.Verdict{}, fmt.Errorf("evaluate: read interactor_meta.out: %w", err)
	}

	content, err := os.ReadFile(hostPath)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("evaluate: read interactor_meta.out: %w", err)
	}

	return checker.ParseToken(string(content))
}

func systemErrorResult(testcaseID string, err error) domain.TestcaseResult {
	return domain.TestcaseResult{
		ID:      testcaseID,
		Verdict: domain.SystemError(),
		Error:   domain.StrPtr(err.Error()),
	}
}
