// Package domain holds the wire-shaped value types shared across the
// evaluator's subsystems: testcases, checker descriptors, verdicts, and
// the per-testcase/per-evaluation results spec.md §3 and §6 define.
package domain

// Testcase is a {input, expected_output} pair with a stable string id.
// Immutable for the lifetime of an evaluation.
type Testcase struct {
	ID     string `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// CheckerDescriptor names a scripted checker's source and language. A nil
// *CheckerDescriptor means "use the raw line-trim checker" (spec.md §4.4).
type CheckerDescriptor struct {
	Script   string `json:"script"`
	Language string `json:"language"`
}

// TestcaseResult is produced per testcase and aggregated into an
// EvaluationResult.
type TestcaseResult struct {
	ID     string  `json:"id"`
	Verdict Verdict `json:"verdict"`
	Time   int64   `json:"time"`
	Memory int64   `json:"memory"`
	Output *string `json:"output,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// EvaluationResult is the terminal, serialized-to-the-output-queue result
// of one evaluation (spec.md §6).
type EvaluationResult struct {
	EvaluationID   uint64           `json:"evaluation_id"`
	Verdict        Verdict          `json:"verdict"`
	MaxTime        int64            `json:"max_time"`
	MaxMemory      int64            `json:"max_memory"`
	Testcases      []TestcaseResult `json:"testcases"`
	CompilerOutput *string          `json:"compiler_output,omitempty"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrPtr exposes strPtr for evaluation-state-machine packages building
// TestcaseResult/EvaluationResult literals, so an empty string consistently
// serializes as an omitted field instead of `""`.
func StrPtr(s string) *string { return strPtr(s) }
