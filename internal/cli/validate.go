package cli

import (
	"fmt"
	"io"
	"menteazul/internal/qchat"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the 'qchatctl validate' command
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check questionnaire files for structural errors",
		Long: `Load every questionnaire and check that question ids are unique,
options carry non-negative weights, and risk thresholds are contiguous
and cover the highest attainable score.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd)
			return reportValidation(cmd.OutOrStdout(), ds, err)
		},
	}
}

func reportValidation(w io.Writer, ds *qchat.Dataset, loadErr error) error {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen)

	if loadErr != nil {
		red.Fprintln(w, "Validation failed")
		fmt.Fprintf(w, "  %v\n", loadErr)
		return loadErr
	}

	for _, v := range ds.Variants() {
		fmt.Fprintf(w, "%s (v%s, %s)\n", v.ID, v.Version, v.Language)
		for i := range v.AgeGroups {
			g := &v.AgeGroups[i]
			green.Fprint(w, "  ✓ ")
			fmt.Fprintf(w, "%-10s %2d questions, max %3d, thresholds %d-%d / %d-%d / %d-%d\n",
				g.ID, len(g.Questions), g.MaxScore(),
				g.Thresholds.Low.Min, g.Thresholds.Low.Max,
				g.Thresholds.Moderate.Min, g.Thresholds.Moderate.Max,
				g.Thresholds.High.Min, g.Thresholds.High.Max)
		}
	}
	green.Fprintln(w, "Dataset is valid")
	return nil
}
