package evaluate

import (
	"github.com/kontestis/evaluator/internal/domain"
)

// OutputOnlyJob checks a pre-produced output against a single testcase,
// with no compilation or solution run of its own.
type OutputOnlyJob struct {
	EvaluationID uint64
	Output       string
	Testcase     domain.Testcase
	Checker      *domain.CheckerDescriptor
}

// OutputOnly validates job.Output directly, running a scripted checker on
// the single reserved box id if one was supplied.
func OutputOnly(d Deps, boxID uint8, job OutputOnlyJob) domain.EvaluationResult {
	chk, checkerStderr, err := buildChecker(d, boxID, job.Checker)
	if err != nil {
		return domain.EvaluationResult{
			EvaluationID: job.EvaluationID,
			Verdict:      domain.JudgingError(),
			Testcases: []domain.TestcaseResult{{
				ID:      job.Testcase.ID,
				Verdict: domain.JudgingError(),
				Error:   domain.StrPtr(checkerStderr),
			}},
		}
	}
	defer chk.Close()

	verdict, err := chk.Validate(boxID, job.Output, job.Testcase)
	result := domain.TestcaseResult{ID: job.Testcase.ID}

	if err != nil {
		result.Verdict = verdictForCheckerError(err)
		result.Error = domain.StrPtr(err.Error())
	} else {
		result.Verdict = verdict
	}

	return domain.EvaluationResult{
		EvaluationID: job.EvaluationID,
		Verdict:      result.Verdict,
		Testcases:    []domain.TestcaseResult{result},
	}
}
