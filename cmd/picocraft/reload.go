package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/realDragonium/picocraft/config"
)

func newReloadCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Make a running server read its status config again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := callReloadAPI(config.NewServerConfigFileReader(*configPath)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Finished reloading")
			return nil
		},
	}
}

func callReloadAPI(readConfig config.ServerConfigReader) error {
	cfg, err := readConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	client := http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://%s/reload", cfg.APIBind)
	resp, err := client.Post(url, "text/plain", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reload failed: %s", strings.TrimSpace(string(body)))
	}
	return nil
}
