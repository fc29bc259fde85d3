package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/glowandgrind/site-api/cmd/http"
	notifycmd "github.com/glowandgrind/site-api/cmd/notify"
	systemcmd "github.com/glowandgrind/site-api/cmd/system"
	"github.com/glowandgrind/site-api/pkg/constants"
	"github.com/glowandgrind/site-api/pkg/logs"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "Booking, contact and training inquiries for the Glow & Grind site",
		Long: `glowgrind runs the backend of the Glow & Grind website.

It accepts booking requests, contact messages and barista training inquiries,
emails the owner and the submitter, and serves page content from the CMS.`,
		SilenceUsage: true,
		// Subcommands replace this logger once their config is loaded.
		PersistentPreRun: func(*cobra.Command, []string) {
			slog.SetDefault(logs.Default())
		},
	}

	root.PersistentFlags().String("config", "config.yaml", "path to the YAML config file")

	root.AddCommand(
		httpcmd.NewHTTPCommand(),
		systemcmd.NewSystemCommand(),
		notifycmd.NewNotifyCommand(),
	)

	return root
}

func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
