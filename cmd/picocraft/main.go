package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version        = "dev"
	defaultCfgPath = "/etc/picocraft"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "picocraft",
		Short:   "picocraft - a tiny Minecraft status server",
		Long:    `picocraft answers the handshake, status and ping packets of the Minecraft server list.`,
		Version: version,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultCfgPath, "Path to the config file or the directory holding picocraft.json")

	rootCmd.AddCommand(newRunCommand(&configPath))
	rootCmd.AddCommand(newReloadCommand(&configPath))
	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newPingCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
