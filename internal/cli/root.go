package cli

import (
	"menteazul/internal/qchat"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the qchatctl command tree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qchatctl",
		Short: "Inspect and score Q-CHAT questionnaires offline",
		Long: `qchatctl works on the questionnaire dataset without a running server.

It validates dataset files, lists variants and age groups, and scores
answer sets with the same engine the API uses.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("data", "", "directory of questionnaire YAML files (default: built-in dataset)")

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewScoreCommand())

	return cmd
}

// loadDataset reads --data when set, the embedded questionnaires otherwise
func loadDataset(cmd *cobra.Command) (*qchat.Dataset, error) {
	dir, _ := cmd.Flags().GetString("data")
	if dir == "" {
		return qchat.LoadDataset()
	}
	return qchat.LoadDatasetFS(os.DirFS(dir), ".")
}
