package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/easyledger/internal/core/services"
	"github.com/SscSPs/easyledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/easyledger/pkg/database"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Invoice maintenance tasks",
}

var markOverdueCmd = &cobra.Command{
	Use:   "mark-overdue",
	Short: "Persist OVERDUE on sent invoices whose due date has passed",
	Long: `Listings already derive OVERDUE on read. This stores the status so
exports and external reports see it too; it is meant for a daily cron job.`,
	Args: cobra.NoArgs,
	RunE: runMarkOverdue,
}

func init() {
	invoicesCmd.AddCommand(markOverdueCmd)
}

func runMarkOverdue(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), services.Gateways{})
	n, err := container.Invoice.MarkOverdueInvoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	logger.Info("Overdue invoices marked", slog.Int64("count", n))
	fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) marked overdue\n", n)
	return nil
}
