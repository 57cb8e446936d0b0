package cli

import (
	"fmt"
	"io"
	"menteazul/internal/qchat"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewListCommand creates the 'qchatctl list' command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [variant] [age-group]",
		Short: "List variants, age groups or the questions of one group",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch len(args) {
			case 0:
				listVariants(out, ds)
				return nil
			case 1:
				v, err := ds.Variant(args[0])
				if err != nil {
					return err
				}
				listAgeGroups(out, v)
				return nil
			default:
				v, g, err := ds.AgeGroup(args[0], args[1])
				if err != nil {
					return err
				}
				listQuestions(out, v, g)
				return nil
			}
		},
	}
	return cmd
}

func listVariants(w io.Writer, ds *qchat.Dataset) {
	bold := color.New(color.Bold)
	for _, v := range ds.Variants() {
		bold.Fprintf(w, "%s", v.ID)
		if v.ID == qchat.DefaultVariant {
			fmt.Fprint(w, " (default)")
		}
		fmt.Fprintf(w, "\n  %s\n", v.Title)
		ids := make([]string, 0, len(v.AgeGroups))
		for _, g := range v.AgeGroups {
			ids = append(ids, g.ID)
		}
		fmt.Fprintf(w, "  age groups: %s\n", strings.Join(ids, ", "))
	}
}

func listAgeGroups(w io.Writer, v *qchat.Variant) {
	for i := range v.AgeGroups {
		g := &v.AgeGroups[i]
		fmt.Fprintf(w, "%-10s %-14s %2d questions  %s\n", g.ID, g.AgeRange, len(g.Questions), g.CompletionTime)
	}
}

func listQuestions(w io.Writer, v *qchat.Variant, g *qchat.AgeGroup) {
	faint := color.New(color.Faint)
	for _, q := range g.Questions {
		fmt.Fprintf(w, "%2d. %s\n", q.ID, q.Text)
		faint.Fprintf(w, "    [%s]", v.CategoryName(q.Category))
		for _, o := range q.Options {
			faint.Fprintf(w, " %d=%s", o.Weight, o.Label)
		}
		fmt.Fprintln(w)
	}
}
