package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/flowsync/cmd"
	"github.com/PolarWolf314/flowsync/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "flowsync",
	Short: "flowsync - keep n8n workflows in local git repositories.",
	Long: `flowsync syncs n8n workflows with local directories, one git repository
per workflow, so every pull is a commit you can diff and revert.

Usage:
  flowsync <command> [flags]

Run 'flowsync help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println()
		banner := figure.NewColorFigure("flowsync", "small", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Run " + ui.Code.Sprint("flowsync --help") + " to see available commands.")
	},
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
		}
		os.Exit(1)
	}
}
