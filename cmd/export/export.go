// Package export handles transaction list export commands
package export

import (
	"context"

	"finanzas/txform/cmd/root"
	"finanzas/txform/internal/exporter"
	"finanzas/txform/internal/logging"

	"github.com/spf13/cobra"
)

var outputFile string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transaction list to CSV",
	Long: `Export fetches the full transaction list from the backend and writes
it as CSV, with splits and tags flattened into single columns.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transactions.csv", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) {
	fetched, err := root.Backend.Transactions(context.Background())
	if err != nil {
		root.Log.WithError(err).Fatal("failed to fetch transactions")
	}
	root.Store.ReplaceTransactions(fetched)
	transactions := root.Store.Transactions()

	e := exporter.New([]rune(root.Cfg.Export.Delimiter)[0], root.Cfg.Export.IncludeHeaders, root.Log)
	if err := e.WriteFile(transactions, outputFile); err != nil {
		root.Log.WithError(err).Fatal("export failed", logging.F(logging.FieldFile, outputFile))
	}

	root.Log.Info("export completed",
		logging.F(logging.FieldFile, outputFile),
		logging.F(logging.FieldCount, len(transactions)))
}
