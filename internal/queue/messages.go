// Package queue is the Queue Runtime (spec.md §4.8): it pulls evaluation
// jobs from a Redis work-queue key, dispatches them through the box
// scheduler, and pushes results back onto the job's own output-queue key.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/kontestis/evaluator/internal/domain"
)

// Message is the work-queue envelope: either a BeginEvaluation request or
// a System(Exit) control message.
type Message struct {
	BeginEvaluation *BeginEvaluation
	SystemExit      bool
}

type messageWire struct {
	BeginEvaluation *BeginEvaluation `json:"BeginEvaluation,omitempty"`
	System          *string          `json:"System,omitempty"`
}

func ParseMessage(raw []byte) (*Message, error) {
	var w messageWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("queue: parse message: %w", err)
	}

	if w.BeginEvaluation != nil {
		return &Message{BeginEvaluation: w.BeginEvaluation}, nil
	}

	if w.System != nil && *w.System == "Exit" {
		return &Message{SystemExit: true}, nil
	}

	return nil, fmt.Errorf("queue: message has neither BeginEvaluation nor a recognized System variant")
}

// BeginEvaluation names the output-queue key this job's result must be
// RPUSHed to, and carries the tagged-union evaluation itself.
type BeginEvaluation struct {
	OutputQueue string     `json:"output_queue"`
	Evaluation  Evaluation `json:"evaluation"`
}

// Evaluation is the Batch/Interactive/OutputOnly tagged union (spec.md
// §6). Exactly one field is populated after parsing.
type Evaluation struct {
	Batch       *BatchEvaluation       `json:"Batch,omitempty"`
	Interactive *InteractiveEvaluation `json:"Interactive,omitempty"`
	OutputOnly  *OutputOnlyEvaluation  `json:"OutputOnly,omitempty"`
}

// EvaluationID returns the id of whichever variant is populated, or 0 if
// none are (a malformed union the caller should reject).
func (e Evaluation) EvaluationID() uint64 {
	switch {
	case e.Batch != nil:
		return e.Batch.ID
	case e.Interactive != nil:
		return e.Interactive.ID
	case e.OutputOnly != nil:
		return e.OutputOnly.ID
	default:
		return 0
	}
}

// NeededBoxes is 2 for Interactive (solution + interactor), 1 otherwise.
func (e Evaluation) NeededBoxes() int {
	if e.Interactive != nil {
		return 2
	}
	return 1
}

type BatchEvaluation struct {
	ID            uint64                    `json:"id"`
	Code          string                    `json:"code"`
	Language      string                    `json:"language"`
	Testcases     []domain.Testcase         `json:"testcases"`
	TimeLimitMs   int64                     `json:"time_limit_ms"`
	MemoryLimitKB int64                     `json:"memory_limit_kb"`
	Checker       *domain.CheckerDescriptor `json:"checker,omitempty"`
}

type InteractiveEvaluation struct {
	ID            uint64                   `json:"id"`
	Code          string                   `json:"code"`
	Language      string                   `json:"language"`
	Testcases     []domain.Testcase        `json:"testcases"`
	TimeLimitMs   int64                    `json:"time_limit_ms"`
	MemoryLimitKB int64                    `json:"memory_limit_kb"`
	Checker       domain.CheckerDescriptor `json:"checker"`
}

type OutputOnlyEvaluation struct {
	ID       uint64                    `json:"id"`
	Output   string                    `json:"output"`
	Testcase domain.Testcase           `json:"testcase"`
	Checker  *domain.CheckerDescriptor `json:"checker,omitempty"`
}
