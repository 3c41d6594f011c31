// Package validate handles dry-run validation of drafts
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finanzas/txform/cmd/root"
	"finanzas/txform/cmd/submit"
	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/draft"
	"finanzas/txform/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a draft without saving it",
	Long: `Validate replays a YAML draft through the entry form and prints the
payload a submission would send, without touching the backend's
transaction store.`,
	Run: validateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.SharedFlags.DraftFile, "file", "f", "", "Draft YAML file")
	Cmd.Flags().StringVar(&root.SharedFlags.EditID, "id", "", "Transaction ID to edit")
	_ = Cmd.MarkFlagRequired("file")
}

func validateFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	f, err := submit.OpenForm(ctx, root.SharedFlags.EditID)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to open form")
	}
	defer f.Close()

	d, err := draft.Load(root.SharedFlags.DraftFile)
	if err != nil {
		root.Log.WithError(err).Fatal("failed to load draft",
			logging.F(logging.FieldFile, root.SharedFlags.DraftFile))
	}
	if err := d.Apply(ctx, f); err != nil {
		root.Log.WithError(err).Fatal("draft rejected")
	}

	for _, advisory := range f.Advisories() {
		root.Log.Warn(advisory)
	}

	payload, err := f.PreviewPayload()
	if err != nil {
		var valErr *apperror.ValidationError
		if errors.As(err, &valErr) {
			root.Log.Fatal(valErr.Message, logging.F("field", valErr.Field))
		}
		root.Log.WithError(err).Fatal("validation failed")
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		root.Log.WithError(err).Fatal("failed to encode payload")
	}
	fmt.Println(string(encoded))
	root.Log.Info("draft is valid")
}
