package main

import (
	"github.com/spf13/cobra"

	"github.com/realDragonium/picocraft/worker"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return worker.RunServer(*configPath)
		},
	}
}
