package domain

import (
	"encoding/json"
	"fmt"
)

// VerdictKind is the closed set of terminal classifications spec.md §3/§6
// defines for a testcase or an evaluation as a whole.
type VerdictKind string

const (
	VerdictAccepted            VerdictKind = "accepted"
	VerdictWrongAnswer         VerdictKind = "wrong_answer"
	VerdictCustom              VerdictKind = "custom"
	VerdictTimeLimitExceeded   VerdictKind = "time_limit_exceeded"
	VerdictMemoryLimitExceeded VerdictKind = "memory_limit_exceeded"
	VerdictRuntimeError        VerdictKind = "runtime_error"
	VerdictJudgingError        VerdictKind = "judging_error"
	VerdictSystemError         VerdictKind = "system_error"
	VerdictCompilationError    VerdictKind = "compilation_error"
	VerdictSkipped             VerdictKind = "skipped"
)

// Verdict carries an optional message for the two variants that have one:
// Custom (the checker's message, original case preserved) and
// CompilationError (the compiler's stderr).
type Verdict struct {
	Kind VerdictKind
	Data string
}

func Accepted() Verdict              { return Verdict{Kind: VerdictAccepted} }
func WrongAnswer() Verdict           { return Verdict{Kind: VerdictWrongAnswer} }
func Custom(msg string) Verdict      { return Verdict{Kind: VerdictCustom, Data: msg} }
func TimeLimitExceeded() Verdict     { return Verdict{Kind: VerdictTimeLimitExceeded} }
func MemoryLimitExceeded() Verdict   { return Verdict{Kind: VerdictMemoryLimitExceeded} }
func RuntimeError() Verdict          { return Verdict{Kind: VerdictRuntimeError} }
func JudgingError() Verdict          { return Verdict{Kind: VerdictJudgingError} }
func SystemError() Verdict           { return Verdict{Kind: VerdictSystemError} }
func CompilationError(msg string) Verdict { return Verdict{Kind: VerdictCompilationError, Data: msg} }
func Skipped() Verdict               { return Verdict{Kind: VerdictSkipped} }

// GatesAsAccepted reports whether this verdict should be treated as
// "still accepted" for the purpose of the batch aggregation rule (spec.md
// I4): Accepted and Custom both count, everything else halts subsequent
// testcase execution.
func (v Verdict) GatesAsAccepted() bool {
	return v.Kind == VerdictAccepted || v.Kind == VerdictCustom
}

type verdictWire struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(verdictWire{Type: string(v.Kind), Data: v.Data})
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	var w verdictWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch VerdictKind(w.Type) {
	case VerdictAccepted, VerdictWrongAnswer, VerdictCustom, VerdictTimeLimitExceeded,
		VerdictMemoryLimitExceeded, VerdictRuntimeError, VerdictJudgingError,
		VerdictSystemError, VerdictCompilationError, VerdictSkipped:
		v.Kind = VerdictKind(w.Type)
		v.Data = w.Data
		return nil
	default:
		return fmt.Errorf("domain: unknown verdict type %q", w.Type)
	}
}
