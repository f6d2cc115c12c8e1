package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/domain"
	"github.com/kontestis/evaluator/internal/evaluate"
	"github.com/kontestis/evaluator/internal/scheduler"
)

// Runtime is the cooperative queue-puller: one goroutine blocking-pops the
// work queue while dispatched evaluations run on their own goroutines
// (spec.md §4.8's "worker thread" role, modeled here as a goroutine since
// Go already schedules blocking syscalls off the OS thread transparently).
type Runtime struct {
	Redis            *redis.Client
	QueueKey         string
	Scheduler        *scheduler.Scheduler
	Deps             evaluate.Deps
	ExitOnEmptyQueue bool
	Logger           *logrus.Entry
}

// Run blocks until ctx is canceled, a System(Exit) message is received, or
// (if ExitOnEmptyQueue) a BLPOP observes an empty queue.
func (r *Runtime) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// A zero timeout blocks until a message arrives. With
		// ExitOnEmptyQueue a one-second timeout lets BLPOP report an empty
		// queue (redis.Nil).
		timeout := time.Duration(0)
		if r.ExitOnEmptyQueue {
			timeout = time.Second
		}

		popped, err := r.Redis.BLPop(ctx, timeout, r.QueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				if r.ExitOnEmptyQueue {
					return nil
				}
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.Logger.WithError(err).Warn("blpop failed, retrying")
			continue
		}

		// popped[0] is the key, popped[1] is the value.
		msg, err := ParseMessage([]byte(popped[1]))
		if err != nil {
			r.Logger.WithError(err).Warn("dropping malformed queue message")
			continue
		}

		if msg.SystemExit {
			return nil
		}

		r.dispatch(ctx, msg.BeginEvaluation)
	}
}

// dispatch admits a job through the scheduler and runs it on its own
// goroutine. When fewer than 2 box ids remain free afterward, it blocks
// until this job finishes before returning to the puller loop — back-
// pressure so a burst of jobs can't starve the scheduler (spec.md §4.8).
func (r *Runtime) dispatch(ctx context.Context, be *BeginEvaluation) {
	need := be.Evaluation.NeededBoxes()

	ids, free, ok := r.Scheduler.TryAcquire(need)
	if !ok {
		r.Logger.WithField("evaluation_id", be.Evaluation.EvaluationID()).
			Error("not enough free boxes, rejecting evaluation")
		return
	}

	done := make(chan struct{})
	go r.runJob(ctx, be, ids, done)

	if free <= 1 {
		<-done
	}
}

func (r *Runtime) runJob(ctx context.Context, be *BeginEvaluation, ids []uint8, done chan struct{}) {
	defer close(done)
	defer r.Scheduler.Release(ids)

	result := r.safeEvaluate(ids, be.Evaluation)

	payload, err := json.Marshal(result)
	if err != nil {
		r.Logger.WithError(err).Error("failed to serialize evaluation result")
		return
	}

	if err := r.Redis.RPush(ctx, be.OutputQueue, payload).Err(); err != nil {
		r.Logger.WithError(err).WithField("output_queue", be.OutputQueue).
			Error("failed to publish evaluation result")
	}
}

// safeEvaluate runs evaluate under a recover so a panic anywhere in an
// evaluation's state machine (a bad sandbox response, an unexpected nil,
// an isolate binary surprise) converts to a SystemError result and
// publishes instead of crashing the worker process and every other
// in-flight evaluation with it (spec.md §7, §9).
func (r *Runtime) safeEvaluate(ids []uint8, ev Evaluation) (result domain.EvaluationResult) {
	defer func() {
		if p := recover(); p != nil {
			r.Logger.WithField("evaluation_id", ev.EvaluationID()).
				Errorf("evaluation panicked, reporting system_error: %v", p)
			result = domain.EvaluationResult{
				EvaluationID: ev.EvaluationID(),
				Verdict:      domain.SystemError(),
			}
		}
	}()

	return r.evaluate(ids, ev)
}

func (r *Runtime) evaluate(ids []uint8, ev Evaluation) domain.EvaluationResult {
	switch {
	case ev.Batch != nil:
		b := ev.Batch
		return evaluate.Batch(r.Deps, ids[0], evaluate.BatchJob{
			EvaluationID:  b.ID,
			Code:          b.Code,
			Language:      compiler.Language(b.Language),
			Testcases:     b.Testcases,
			TimeLimitMs:   b.TimeLimitMs,
			MemoryLimitKB: b.MemoryLimitKB,
			Checker:       b.Checker,
		})

	case ev.Interactive != nil:
		i := ev.Interactive
		return evaluate.Interactive(r.Deps, ids[0], ids[1], evaluate.InteractiveJob{
			EvaluationID:  i.ID,
			Code:          i.Code,
			Language:      compiler.Language(i.Language),
			Testcases:     i.Testcases,
			TimeLimitMs:   i.TimeLimitMs,
			MemoryLimitKB: i.MemoryLimitKB,
			Interactor:    i.Checker,
		})

	case ev.OutputOnly != nil:
		o := ev.OutputOnly
		return evaluate.OutputOnly(r.Deps, ids[0], evaluate.OutputOnlyJob{
			EvaluationID: o.ID,
			Output:       o.Output,
			Testcase:     o.Testcase,
			Checker:      o.Checker,
		})

	default:
		r.Logger.Error("BeginEvaluation carried no recognized evaluation variant")
		return domain.EvaluationResult{Verdict: domain.SystemError()}
	}
}
