package http

import "github.com/spf13/cobra"

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the public site API",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
