// Package catalogs handles catalog listing commands
package catalogs

import (
	"context"
	"fmt"
	"time"

	"finanzas/txform/cmd/root"
	"finanzas/txform/internal/models"

	"github.com/spf13/cobra"
)

var referenceDate string

// Cmd represents the catalogs command
var Cmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List the backend catalogs",
	Long: `Catalogs fetches and prints the reference data the entry form works
from: accounts, transaction types, goals, debts, active budget entries
and known tags.`,
	Run: catalogsFunc,
}

func init() {
	Cmd.Flags().StringVar(&referenceDate, "date", "", "Budget reference date (YYYY-MM-DD, defaults to today)")
}

func catalogsFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if referenceDate == "" {
		referenceDate = time.Now().Format(models.DateFormat)
	}

	accounts, err := root.Backend.Accounts(ctx)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to fetch accounts")
	}
	types, err := root.Backend.TransactionTypes(ctx)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to fetch transaction types")
	}
	goals, err := root.Backend.Goals(ctx)
	if err != nil {
		root.Log.WithError(err).Warn("goals unavailable")
	}
	debts, err := root.Backend.Debts(ctx)
	if err != nil {
		root.Log.WithError(err).Warn("debts unavailable")
	}
	budget, err := root.Backend.Budget(ctx, referenceDate)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to fetch budget")
	}
	tags, err := root.Backend.Tags(ctx)
	if err != nil {
		root.Log.WithError(err).Warn("tags unavailable")
	}

	printOptions("Cuentas", accounts)
	printOptions("Tipos", types)
	printOptions("Metas", goals)
	printOptions("Deudas", debts)

	fmt.Printf("Presupuesto (%s):\n", referenceDate)
	for _, entry := range budget {
		fmt.Printf("  %s  %s / %s  planeado %s  restante %s\n",
			entry.ID, entry.Type, entry.Category,
			entry.Planned.StringFixed(2), entry.Remaining.StringFixed(2))
	}

	fmt.Println("Etiquetas:")
	for _, tag := range tags {
		fmt.Printf("  %s\n", tag)
	}
}

func printOptions(title string, options []models.Option) {
	fmt.Printf("%s:\n", title)
	for _, option := range options {
		fmt.Printf("  %s  %s\n", option.ID, option.Label)
	}
}
