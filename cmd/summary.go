package cmd

import (
	"fmt"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/schedule"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals for a schedule: payments, interest, payoff date",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	terms, entries, err := loadSchedule(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "\n  No months to summarize.")
		return nil
	}

	s := schedule.Summarize(entries)

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("LOAN SUMMARY  %s at %s%%",
		terms.Principal, cli.FormatRate(terms.Rate))))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.SummaryTable(s, appConfig.Schedule.DateLayout)))

	if s.PaidOff {
		fmt.Fprintln(out, cli.RenderNote(fmt.Sprintf("The last payment falls on %s.",
			cli.FormatMonth(s.LastMonth, appConfig.Schedule.DateLayout))))
	} else {
		fmt.Fprintln(out, cli.RenderWarning("Totals cover the months shown only."))
	}
	return nil
}
