package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/realDragonium/picocraft/worker"
)

func newPingCommand() *cobra.Command {
	var protocol int32
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping <address>",
		Short: "Show the status of a Minecraft server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := worker.Ping(ctx, args[0], protocol)
			if err != nil {
				return err
			}
			printPingResult(cmd.OutOrStdout(), args[0], result)
			return nil
		},
	}

	cmd.Flags().Int32Var(&protocol, "protocol", 763, "Protocol version to send in the handshake")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Time to wait for the server")

	return cmd
}

func printPingResult(out io.Writer, addr string, result worker.PingResult) {
	status := result.Status

	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Address", "Version", "Protocol", "Players", "Latency"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	tw.Append([]string{
		addr,
		status.Version.Name,
		fmt.Sprintf("%d", status.Version.Protocol),
		fmt.Sprintf("%d/%d", status.Players.Online, status.Players.Max),
		result.Latency.Round(time.Microsecond).String(),
	})
	tw.Render()

	if description := strings.TrimSpace(status.Description.ClearString()); description != "" {
		fmt.Fprintln(out, description)
	}

	if len(status.Players.Sample) == 0 {
		return
	}
	players := tablewriter.NewWriter(out)
	players.SetHeader([]string{"Player", "UUID"})
	for _, player := range status.Players.Sample {
		players.Append([]string{player.Name, player.ID})
	}
	players.Render()
}
