package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"menteazul/internal/qchat"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var riskColors = map[qchat.RiskLevel]*color.Color{
	qchat.RiskLow:      color.New(color.FgGreen, color.Bold),
	qchat.RiskModerate: color.New(color.FgYellow, color.Bold),
	qchat.RiskHigh:     color.New(color.FgRed, color.Bold),
}

// NewScoreCommand creates the 'qchatctl score' command
func NewScoreCommand() *cobra.Command {
	var (
		variant string
		answers string
		file    string
		strict  bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "score <age-group>",
		Short: "Score an answer set",
		Long: `Score answers given as id=weight pairs or a JSON object file.

  qchatctl score toddlers --answers 1=1,2=0,3=1
  qchatctl score toddlers --variant qchat-parent-report --file answers.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}

			set, err := readAnswers(answers, file)
			if err != nil {
				return err
			}

			engine := qchat.NewEngine(ds, qchat.WithStrictAnswers(strict))
			eval, err := engine.Evaluate(qchat.ScoreRequest{VariantID: variant, AgeGroupID: args[0], Answers: set})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(eval)
			}
			v, err := ds.Variant(eval.VariantID)
			if err != nil {
				return err
			}
			printEvaluation(cmd.OutOrStdout(), v, eval)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "questionnaire variant (default: "+qchat.DefaultVariant+")")
	cmd.Flags().StringVar(&answers, "answers", "", "comma separated id=weight pairs")
	cmd.Flags().StringVar(&file, "file", "", "JSON file mapping question id to weight")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown questions and off-menu weights")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the evaluation as JSON")
	cmd.MarkFlagsMutuallyExclusive("answers", "file")

	return cmd
}

func readAnswers(pairs, file string) (qchat.AnswerSet, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		var set qchat.AnswerSet
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("parse answers: %w", err)
		}
		return set, nil
	}
	return parseAnswerPairs(pairs)
}

// parseAnswerPairs reads "1=2,4=0"; a repeated id keeps its last weight
func parseAnswerPairs(s string) (qchat.AnswerSet, error) {
	set := qchat.AnswerSet{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, weight, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: expected id=weight", pair)
		}
		qid, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("answer %q: bad question id", pair)
		}
		w, err := strconv.Atoi(strings.TrimSpace(weight))
		if err != nil {
			return nil, fmt.Errorf("answer %q: bad weight", pair)
		}
		set[qid] = w
	}
	return set, nil
}

func printEvaluation(w io.Writer, v *qchat.Variant, e *qchat.Evaluation) {
	fmt.Fprintf(w, "%s / %s\n", e.VariantID, e.AgeGroupID)
	fmt.Fprintf(w, "Answered: %d of %d\n", e.AnsweredCount, e.QuestionCount)
	fmt.Fprintf(w, "Score:    %d / %d\n", e.TotalScore, e.MaxScore)
	fmt.Fprint(w, "Risk:     ")
	riskColors[e.RiskLevel].Fprintln(w, strings.ToUpper(string(e.RiskLevel)))

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range qchat.Categories {
		if score, ok := e.CategoryBreakdown[c]; ok {
			fmt.Fprintf(w, "  %-22s %d\n", v.CategoryName(c), score)
		}
	}

	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range e.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}
