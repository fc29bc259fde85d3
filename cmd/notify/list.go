package notify

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glowandgrind/site-api/internal/repo"
	"github.com/glowandgrind/site-api/internal/service/inquiry"
)

func NewListCommand() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notification deliveries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInquiryService(cmd, func(ctx context.Context, svc inquiry.Service) error {
				deliveries, err := svc.ListDeliveries(ctx, repo.DeliveryFilter{Status: status, Limit: limit})
				if err != nil {
					return err
				}
				renderDeliveries(cmd.OutOrStdout(), deliveries)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: pending, sent or failed")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to print")

	return cmd
}

func renderDeliveries(w io.Writer, deliveries []repo.Delivery) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Created", "Submission", "Role", "Recipient", "Status", "Attempts", "Last error"})
	table.SetAutoWrapText(false)

	for _, d := range deliveries {
		table.Append([]string{
			d.CreatedAt.Local().Format(time.DateTime),
			d.SubmissionID.String(),
			d.Role,
			d.Recipient,
			d.Status,
			strconv.Itoa(d.Attempts),
			truncate(d.LastError, 60),
		})
	}
	table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
