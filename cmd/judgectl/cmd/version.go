package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("judgectl", cmd.Root().Version)
			fmt.Println("Speaks the evaluator's work-queue/output-queue JSON protocol")
		},
	}
}
