package cmd

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type submitEvaluation struct {
	ID            uint64      `json:"id"`
	Code          string      `json:"code"`
	Language      string      `json:"language"`
	Testcases     []testcase  `json:"testcases"`
	TimeLimitMs   int64       `json:"time_limit_ms"`
	MemoryLimitKB int64       `json:"memory_limit_kb"`
}

type testcase struct {
	ID     string `json:"id"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

type beginEvaluationMessage struct {
	BeginEvaluation struct {
		OutputQueue string `json:"output_queue"`
		Evaluation  struct {
			Batch submitEvaluation `json:"Batch"`
		} `json:"evaluation"`
	} `json:"BeginEvaluation"`
}

// resultEnvelope mirrors the shape of internal/domain.EvaluationResult,
// kept deliberately separate so judgectl has no dependency on internal/.
type resultEnvelope struct {
	EvaluationID uint64 `json:"evaluation_id"`
	Verdict      struct {
		Type string `json:"type"`
		Data string `json:"data"`
	} `json:"verdict"`
	MaxTime   int64 `json:"max_time"`
	MaxMemory int64 `json:"max_memory"`
	Testcases []struct {
		ID      string `json:"id"`
		Verdict struct {
			Type string `json:"type"`
			Data string `json:"data"`
		} `json:"verdict"`
		Time   int64   `json:"time"`
		Memory int64   `json:"memory"`
		Output *string `json:"output"`
		Error  *string `json:"error"`
	} `json:"testcases"`
	CompilerOutput *string `json:"compiler_output"`
}

func NewSubmitCommand() *cobra.Command {
	var (
		language      string
		inputFile     string
		expectedFile  string
		timeLimitMs   int64
		memoryLimitKB int64
		waitTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit <source-file>",
		Short: "Submit a single-testcase batch evaluation and wait for its verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			redisURL, _ := cmd.Flags().GetString("redis-url")
			queueKey, _ := cmd.Flags().GetString("queue-key")

			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read source file: %w", err)
			}

			var input, expected string
			if inputFile != "" {
				b, err := os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("failed to read input file: %w", err)
				}
				input = string(b)
			}
			if expectedFile != "" {
				b, err := os.ReadFile(expectedFile)
				if err != nil {
					return fmt.Errorf("failed to read expected-output file: %w", err)
				}
				expected = string(b)
			}

			outputQueue := "judgectl:" + uuid.NewString()

			var msg beginEvaluationMessage
			msg.BeginEvaluation.OutputQueue = outputQueue
			evaluationID, err := randomEvaluationID()
			if err != nil {
				return fmt.Errorf("failed to generate evaluation id: %w", err)
			}

			msg.BeginEvaluation.Evaluation.Batch = submitEvaluation{
				ID:            evaluationID,
				Code:          string(code),
				Language:      language,
				Testcases:     []testcase{{ID: "1", Input: input, Output: expected}},
				TimeLimitMs:   timeLimitMs,
				MemoryLimitKB: memoryLimitKB,
			}

			payload, err := json.Marshal(msg)
			if err != nil {
				return fmt.Errorf("failed to marshal job: %w", err)
			}

			opts, err := redis.ParseURL(redisURL)
			if err != nil {
				return fmt.Errorf("invalid redis URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
			defer cancel()

			if err := client.RPush(ctx, queueKey, payload).Err(); err != nil {
				return fmt.Errorf("failed to push job onto %s: %w", queueKey, err)
			}

			popped, err := client.BLPop(ctx, waitTimeout, outputQueue).Result()
			if err != nil {
				return fmt.Errorf("timed out waiting for result on %s: %w", outputQueue, err)
			}

			var result resultEnvelope
			if err := json.Unmarshal([]byte(popped[1]), &result); err != nil {
				return fmt.Errorf("failed to parse result: %w", err)
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "python", "Language token (c, cpp, python, rust, java, go, gnuasmx86linux)")
	cmd.Flags().StringVar(&inputFile, "stdin-file", "", "File whose contents become the testcase's stdin")
	cmd.Flags().StringVar(&expectedFile, "expected-file", "", "File whose contents become the testcase's expected output")
	cmd.Flags().Int64Var(&timeLimitMs, "time-limit-ms", 1000, "Time limit in milliseconds")
	cmd.Flags().Int64Var(&memoryLimitKB, "memory-limit-kb", 262144, "Memory limit in kilobytes")
	cmd.Flags().DurationVar(&waitTimeout, "wait", 30*time.Second, "How long to wait for the result")

	return cmd
}

// randomEvaluationID generates a submission-local evaluation id. The wire
// protocol's id is a plain uint64 (not a UUID), so judgectl can't reuse
// google/uuid for it the way it does for the output-queue key.
func randomEvaluationID() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func printResult(result resultEnvelope) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	bold.Printf("== %d ==\n", result.EvaluationID)

	verdictColor := yellow
	switch result.Verdict.Type {
	case "accepted", "custom":
		verdictColor = green
	case "wrong_answer", "time_limit_exceeded", "memory_limit_exceeded", "runtime_error",
		"judging_error", "system_error", "compilation_error":
		verdictColor = red
	}
	fmt.Print("Verdict: ")
	verdictColor.Println(result.Verdict.Type)

	if result.CompilerOutput != nil && *result.CompilerOutput != "" {
		bold.Println("Compiler output")
		fmt.Println(*result.CompilerOutput)
	}

	fmt.Printf("Max time: %dms, max memory: %dkb\n", result.MaxTime, result.MaxMemory)

	for _, tc := range result.Testcases {
		fmt.Printf("  [%s] %s\n", tc.ID, tc.Verdict.Type)
	}
}
