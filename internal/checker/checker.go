// Package checker is the Output Checker (spec.md §4.4): it decides whether
// a submission's output is correct for a testcase, either by a raw
// line-trimmed comparison or by running a scripted checker program inside
// the sandbox.
package checker

import (
	"fmt"
	"strings"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/runnable"
	"github.com/kontestis/evaluator/internal/util"
)

// checkerLimits bound the scripted checker's own run, independent of the
// submission's evaluation limits.
var checkerLimits = isolate.Limits{TimeSeconds: 10, MemoryKB: 256 << 10}

// Checker validates a submission's output against a testcase. Close
// releases any host-side resources the checker owns (a Scripted checker's
// compiled artifact); callers must call it once they're done validating.
type Checker interface {
	Validate(boxID uint8, output string, testcase domain.Testcase) (domain.Verdict, error)
	Close() error
}

// Raw compares line-trimmed output, ignoring trailing whitespace within
// each line and the exact choice of line separator. It owns no host-side
// resources.
type Raw struct{}

func (Raw) Validate(_ uint8, output string, testcase domain.Testcase) (domain.Verdict, error) {
	if trimEveryLine(output) == trimEveryLine(testcase.Output) {
		return domain.Accepted(), nil
	}
	return domain.WrongAnswer(), nil
}

func (Raw) Close() error { return nil }

func trimEveryLine(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

// Scripted runs a compiled checker program against a 4-segment protocol:
// a random separator, the testcase input, the separator, the expected
// output, the separator, the submission's actual output, and a final
// separator. The checker's stdout decides the verdict: "ac"/"accepted",
// "wa"/"wrong_answer", or "custom:<message>".
type Scripted struct {
	Runnable *runnable.Runnable
	artifact *compiler.Artifact
}

// NewScripted wraps a runnable checker program. artifact is the host-side
// compiled checker Runnable was built from; Scripted takes ownership of it
// and removes it on Close.
func NewScripted(r *runnable.Runnable, artifact *compiler.Artifact) *Scripted {
	return &Scripted{Runnable: r, artifact: artifact}
}

func (s *Scripted) Close() error {
	return s.artifact.Close()
}

func (s *Scripted) Validate(boxID uint8, output string, testcase domain.Testcase) (domain.Verdict, error) {
	separator := "[" + util.RandomHex(32) + "]\n"

	var b strings.Builder
	b.WriteString(separator)
	b.WriteString(testcase.Input)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString(testcase.Output)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString(output)
	b.WriteString("\n")
	b.WriteString(separator)

	stdin := isolate.StdinFromBytes([]byte(b.String()))

	result, _, err := s.Runnable.Run(boxID, stdin, checkerLimits, nil)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("checker: run: %w", err)
	}

	if !result.Success {
		return domain.Verdict{}, &InvalidCheckerError{
			Reason: "checker process exited unsuccessfully",
			Output: string(result.Stderr),
		}
	}

	return ParseToken(string(result.Stdout))
}

// ParseToken decodes a checker's single-line verdict token: "ac"/"accepted",
// "wa"/"wrong_answer", or "custom:<message>". Used both for a scripted
// checker's stdout and an interactor's interactor_meta.out file, which
// share the same grammar (spec.md §4.4, §4.5).
func ParseToken(raw string) (domain.Verdict, error) {
	text := strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(text, "custom:"); ok {
		return domain.Custom(rest), nil
	}

	switch strings.ToLower(text) {
	case "ac", "accepted":
		return domain.Accepted(), nil
	case "wa", "wrong_answer":
		return domain.WrongAnswer(), nil
	default:
		return domain.Verdict{}, &InvalidCheckerError{
			Reason: "unrecognized checker verdict",
			Output: text,
		}
	}
}
