package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakhi-health/toxiscan/internal/application/scoring"
	"github.com/sakhi-health/toxiscan/pkg/types/toxicity"
)

// NewScoreCommand creates the score command.  Ingredients come from
// positional arguments or, with --file, one per line from a file.
func NewScoreCommand(opts *RootOptions) *cobra.Command {
	var (
		file     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "score [ingredient]...",
		Short: "Score a product's ingredient list for EDC exposure risk",
		Long:  "Resolve each ingredient to a chemical identity, look up endocrine\ndisruptor hazard data, and compute overall and hormonal health scores.",
		Example: `  toxiscan score water glycerin "methyl paraben"
  toxiscan score --file ingredients.txt --category cosmetic -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if file != "" {
				fromFile, err := readIngredientFile(file)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return fmt.Errorf("no ingredients given; pass names as arguments or use --file")
			}

			_, _, scorer, err := newEngine(opts)
			if err != nil {
				return err
			}

			ingredients := make([]toxicity.Ingredient, 0, len(names))
			for _, n := range names {
				ingredients = append(ingredients, toxicity.Ingredient{Name: n})
			}

			score, err := scorer.ScoreProduct(cmd.Context(), scoring.Request{
				Ingredients:     ingredients,
				ProductCategory: category,
			})
			if err != nil {
				return err
			}

			return printResult(cmd, opts, score, func() string { return formatScore(score) })
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one ingredient name per line")
	cmd.Flags().StringVar(&category, "category", "", "product category (cosmetic, personal_care, food)")

	return cmd
}

// readIngredientFile reads one ingredient name per line, skipping blank
// lines and # comments.
func readIngredientFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingredient file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ingredient file: %w", err)
	}
	return names, nil
}

func formatScore(s *toxicity.Score) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Overall score:          %.1f / 100\n", s.OverallScore)
	fmt.Fprintf(&sb, "Hormonal health score:  %.1f / 100\n", s.HormonalHealthScore)
	fmt.Fprintf(&sb, "Risk level:             %s\n", s.RiskLevel)

	if len(s.FlaggedChemicals) > 0 {
		sb.WriteString("\nFlagged chemicals:\n")
		for _, rec := range s.FlaggedChemicals {
			types := make([]string, 0, len(rec.EDCTypes))
			for _, t := range rec.EDCTypes {
				types = append(types, string(t))
			}
			fmt.Fprintf(&sb, "  - %s (CAS %s, risk %.0f, %s)\n",
				rec.Name, rec.CASNumber, rec.RiskScore, strings.Join(types, ", "))
		}
	}
	if len(s.UnresolvedIngredients) > 0 {
		sb.WriteString("\nUnresolved ingredients:\n")
		for _, n := range s.UnresolvedIngredients {
			fmt.Fprintf(&sb, "  - %s\n", n)
		}
	}
	if len(s.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range s.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", r)
		}
	}
	if len(s.UserWarnings) > 0 {
		sb.WriteString("\nNotes:\n")
		for _, w := range s.UserWarnings {
			fmt.Fprintf(&sb, "  - %s\n", w)
		}
	}

	return sb.String()
}
