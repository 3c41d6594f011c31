// Package accounts handles account management commands
package accounts

import (
	"context"

	"finanzas/txform/cmd/root"
	"finanzas/txform/internal/logging"

	"github.com/spf13/cobra"
)

var accountName string

// Cmd represents the accounts command
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage accounts",
	Long:  `Accounts lists and creates the accounts transactions are booked against.`,
	Run:   listFunc,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Run:   createFunc,
}

func init() {
	createCmd.Flags().StringVarP(&accountName, "name", "n", "", "Name of the account to create")
	_ = createCmd.MarkFlagRequired("name")
	Cmd.AddCommand(createCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	accounts, err := root.Backend.Accounts(context.Background())
	if err != nil {
		root.Log.WithError(err).Fatal("failed to fetch accounts")
	}
	for _, account := range accounts {
		cmd.Printf("%s  %s\n", account.ID, account.Label)
	}
}

func createFunc(cmd *cobra.Command, args []string) {
	id, err := root.Backend.CreateAccount(context.Background(), accountName)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to create account")
	}
	root.Log.Info("account created", logging.F(logging.FieldAccountID, id))
	cmd.Println(id)
}
