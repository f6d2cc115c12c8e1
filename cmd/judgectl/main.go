package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kontestis/evaluator/cmd/judgectl/cmd"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "judgectl",
		Short:   "Debug client for the evaluator worker's Redis queue",
		Long:    `judgectl submits BeginEvaluation jobs onto the evaluator's work queue and prints the published result.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringP("redis-url", "r", "redis://localhost:6379", "Redis connection URL")
	rootCmd.PersistentFlags().StringP("queue-key", "q", "evaluator_msg_queue", "Work-queue key to push jobs onto")

	rootCmd.AddCommand(
		cmd.NewSubmitCommand(),
		cmd.NewVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
