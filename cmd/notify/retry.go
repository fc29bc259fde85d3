package notify

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glowandgrind/site-api/internal/service/inquiry"
)

func NewRetryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Re-send failed notification emails that have attempts left",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInquiryService(cmd, func(ctx context.Context, svc inquiry.Service) error {
				report, err := svc.RetryFailed(ctx, limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "attempted %d, sent %d, failed %d\n",
					report.Attempted, report.Sent, report.Failed)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum deliveries to retry (0 uses notify.retry.batch_size)")

	return cmd
}
