package cmd

import (
	"fmt"
	"strings"

	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// bindInputFlags registers the slider flags on cmd, defaulting to the
// dashboard's initial positions.
func bindInputFlags(cmd *cobra.Command, in *prediction.Input) {
	def := prediction.DefaultInput()
	cmd.Flags().Float64Var(&in.Advertising, "advertising", def.Advertising, "advertising spend (5-50)")
	cmd.Flags().IntVar(&in.Customers, "customers", def.Customers, "number of customers (50-210)")
	cmd.Flags().Float64Var(&in.Discount, "discount", def.Discount, "discount percentage (2-20)")
}

func newPredictCmd(injector func() do.Injector) *cobra.Command {
	var (
		in      prediction.Input
		details bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict sales for an advertising, customers and discount triple",
		Long: `Refit the linear regression Sales ~ Advertising + Customers + Discount on the
whole dataset and evaluate it at the given values.

Examples:
  salesdash-cli predict
  salesdash-cli predict --advertising 35 --customers 150 --discount 5
  salesdash-cli predict --details`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.Validate(in); err != nil {
				return err
			}
			pipeline, err := do.Invoke[*prediction.Pipeline](injector())
			if err != nil {
				return err
			}
			res, err := pipeline.Predict(cmd.Context(), in)
			if err != nil {
				return err
			}

			cfg := do.MustInvoke[*config.Config](injector())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Predicted Sales Value: %s %.2f\n", cfg.Currency, res.Value)
			if details {
				fmt.Fprintf(out, "Rows:       %d\n", res.Rows)
				fmt.Fprintf(out, "Intercept:  %.6f\n", res.Model.Intercept)
				for i, name := range prediction.Features {
					fmt.Fprintf(out, "%-11s %.6f\n", name+":", res.Model.Coefficients[i])
				}
				fmt.Fprintf(out, "R-squared:  %.4f\n", res.Model.RSquared)
				if res.Model.Rank < len(res.Model.Coefficients) {
					fmt.Fprintf(out, "Note: features are collinear (rank %d of %d): %s\n",
						res.Model.Rank, len(res.Model.Coefficients), strings.Join(prediction.Features, ", "))
				}
			}
			return nil
		},
	}
	bindInputFlags(cmd, &in)
	cmd.Flags().BoolVar(&details, "details", false, "also print the fitted coefficients")
	return cmd
}
