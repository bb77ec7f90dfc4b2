// Package main provides the status-embed CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "status-embed",
		Short: "Post CI workflow run status to Discord",
		Long: `status-embed reports the outcome of a CI workflow run to a Discord
channel. It validates the run description, builds a rich embed for it and
posts the embed to a Discord webhook.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to configuration file (default ./.status-embed.yaml)")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Log every decision at debug level")

	rootCmd.AddCommand(newSendCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, newRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return errors.ExitCode(err)
	}
	return errors.ExitSuccess
}
