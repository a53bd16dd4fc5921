package cmd

import (
	"fmt"

	"github.com/nfrund/salesdash/internal/domain"
	"github.com/nfrund/salesdash/internal/prediction"
	"github.com/nfrund/salesdash/internal/report"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func newReportCmd(injector func() do.Injector) *cobra.Command {
	var in prediction.Input
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the PDF prediction report",
		Long: `Predict sales for the given values and write the one-page PDF report to
REPORT_PATH, replacing any previous report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.Validate(in); err != nil {
				return err
			}
			pipeline, err := do.Invoke[*prediction.Pipeline](injector())
			if err != nil {
				return err
			}
			emitter, err := do.Invoke[*report.Emitter](injector())
			if err != nil {
				return err
			}

			res, err := pipeline.Predict(cmd.Context(), in)
			if err != nil {
				return err
			}
			path, err := emitter.Emit(cmd.Context(), res.Value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (predicted %.2f)\n", path, res.Value)
			return nil
		},
	}
	bindInputFlags(cmd, &in)
	return cmd
}
