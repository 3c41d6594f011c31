// Package submit handles draft submission commands
package submit

import (
	"context"
	"errors"

	"finanzas/txform/cmd/root"
	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/draft"
	"finanzas/txform/internal/form"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/spf13/cobra"
)

var (
	attachFiles    []string
	deleteReceipts []string
)

// Cmd represents the submit command
var Cmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a transaction draft",
	Long: `Submit replays a YAML draft through the entry form and saves the
result. With --id the draft is applied on top of an existing
transaction; without it a new transaction is created.`,
	Run: submitFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.SharedFlags.DraftFile, "file", "f", "", "Draft YAML file")
	Cmd.Flags().StringVar(&root.SharedFlags.EditID, "id", "", "Transaction ID to edit")
	Cmd.Flags().StringArrayVar(&attachFiles, "attach", nil, "Receipt file to upload after saving (repeatable)")
	Cmd.Flags().StringArrayVar(&deleteReceipts, "delete-receipt", nil, "Receipt ID to delete after saving (repeatable)")
	_ = Cmd.MarkFlagRequired("file")
}

func submitFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	f, err := OpenForm(ctx, root.SharedFlags.EditID)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to open form")
	}
	defer f.Close()

	d, err := draft.Load(root.SharedFlags.DraftFile)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to load draft",
			logging.F(logging.FieldFile, root.SharedFlags.DraftFile))
	}
	d.AttachReceipts = append(d.AttachReceipts, attachFiles...)
	d.DeleteReceipts = append(d.DeleteReceipts, deleteReceipts...)

	if err := d.Apply(ctx, f); err != nil {
		root.Log.WithError(err).Fatal("draft rejected")
	}

	for _, advisory := range f.Advisories() {
		root.Log.Warn(advisory)
	}

	result, err := f.Submit(ctx)
	if err != nil {
		var valErr *apperror.ValidationError
		if errors.As(err, &valErr) {
			root.Log.Fatal(valErr.Message, logging.F("field", valErr.Field))
		}
		root.Log.WithError(err).Fatal("submission failed")
	}

	if result.SyncWarning != nil {
		root.Log.WithError(result.SyncWarning).Warn("receipt sync incomplete")
	}

	root.Store.UpsertTransaction(SavedTransaction(result.TransactionID, result.Payload))

	root.Log.Info("transaction saved",
		logging.F(logging.FieldTransactionID, result.TransactionID))
}

// SavedTransaction converts a submitted payload back into the canonical
// transaction record, for recording a save in the application state
// without a refetch.
func SavedTransaction(id string, payload models.SubmitPayload) models.Transaction {
	return models.Transaction{
		ID:                 id,
		Description:        payload.Description,
		Amount:             payload.Amount,
		Date:               payload.Date,
		AccountID:          payload.AccountID,
		Type:               payload.Type,
		Category:           payload.Category,
		GoalID:             payload.GoalID,
		DebtID:             payload.DebtID,
		BudgetEntryID:      payload.BudgetEntryID,
		IsTransfer:         payload.IsTransfer,
		TransferAccountID:  payload.TransferAccountID,
		Splits:             payload.Splits,
		Tags:               payload.Tags,
		PortfolioDirection: payload.PortfolioDirection,
	}
}

// OpenForm opens the entry form against the configured backend, in edit
// mode when editID is set.
func OpenForm(ctx context.Context, editID string) (*form.Form, error) {
	opts := form.Options{TagSuggestionLimit: root.Cfg.Form.TagSuggestionLimit}
	if editID != "" {
		return form.OpenForEdit(ctx, root.Backend, root.Log, opts, editID)
	}
	return form.Open(ctx, root.Backend, root.Log, opts)
}
