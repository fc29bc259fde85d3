package system

import "github.com/spf13/cobra"

// NewSystemCommand groups commands that run outside the HTTP server.
func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "system",
		Aliases: []string{"sys"},
		Short:   "Database migrations and CLI docs",
	}

	cmd.AddCommand(
		NewMigrateCommand(),
		NewGenDocsCommand(),
	)

	return cmd
}
