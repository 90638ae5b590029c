// Package cmd implements the amort CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/currency"
	"github.com/theirongolddev/amort/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	flagPrincipal currency.Currency
	flagRate      float64
	flagPayment   currency.Currency
	flagStopBelow currency.Currency
	flagMonths    int
	flagStart     string
	flagQuiet     bool
	flagVerbose   bool
)

// appConfig is loaded once before any command runs.
var appConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "amort",
	Short:             "Loan amortization schedules",
	Long:              "Compute a monthly amortization schedule for a fixed-payment loan.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSchedule,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Var(&flagPrincipal, "current", "Current loan balance, e.g. $25000 (default from config)")
	pf.Float64Var(&flagRate, "interest", 0, "Interest rate in percent, compounded monthly (default from config)")
	pf.Var(&flagPayment, "payment", "Fixed monthly payment, e.g. $500 (default from config)")
	pf.Var(&flagStopBelow, "stop-below", "Only show months whose balance is above this amount")
	pf.IntVarP(&flagMonths, "months", "n", 0, "Show at most this many months (0 = until paid off)")
	pf.StringVar(&flagStart, "start", "", "First month as YYYY-MM-DD (default today)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

// prepare loads config and configures logging for every command.
func prepare(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel),
	})))
	slog.Debug("loaded config", "path", config.Path(), "exists", config.Exists())
	return nil
}

func logLevel(name string) slog.Level {
	switch {
	case flagQuiet:
		return slog.LevelError
	case flagVerbose:
		return slog.LevelDebug
	}
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loanTerms are the resolved inputs for one schedule.
type loanTerms struct {
	Principal currency.Currency
	Rate      float64
	Payment   currency.Currency
	Start     time.Time
}

// resolveTerms merges flags over env vars over config.
func resolveTerms(cmd *cobra.Command) (loanTerms, error) {
	loan, err := config.LoanDefaults(appConfig)
	if err != nil {
		return loanTerms{}, err
	}

	var terms loanTerms
	flags := cmd.Flags()

	switch {
	case flags.Changed("current"):
		terms.Principal = flagPrincipal
	case loan.Principal != nil:
		terms.Principal = *loan.Principal
	default:
		return terms, errors.New("missing --current (or principal in the [loan] config section)")
	}

	switch {
	case flags.Changed("interest"):
		terms.Rate = flagRate
	case loan.InterestRate != nil:
		terms.Rate = *loan.InterestRate
	default:
		return terms, errors.New("missing --interest (or interest_rate in the [loan] config section)")
	}
	if err := currency.CheckRate(terms.Rate); err != nil {
		return terms, fmt.Errorf("--interest: %w", err)
	}

	switch {
	case flags.Changed("payment"):
		terms.Payment = flagPayment
	case loan.Payment != nil:
		terms.Payment = *loan.Payment
	default:
		return terms, errors.New("missing --payment (or payment in the [loan] config section)")
	}

	terms.Start = time.Now()
	if flagStart != "" {
		start, err := time.ParseInLocation("2006-01-02", flagStart, time.Local)
		if err != nil {
			return terms, fmt.Errorf("invalid --start %q: %w", flagStart, err)
		}
		terms.Start = start
	}

	return terms, nil
}

// scheduleLimits returns the stop-below floor and row cap for cmd.
func scheduleLimits(cmd *cobra.Command) (currency.Currency, int, error) {
	floor := appConfig.Schedule.StopBelow
	if cmd.Flags().Changed("stop-below") {
		floor = flagStopBelow
	}
	months := appConfig.Schedule.MaxMonths
	if cmd.Flags().Changed("months") {
		months = flagMonths
	}
	if months < 0 || months > schedule.MaxMonths {
		return floor, months, fmt.Errorf("--months %d: want 0 to %d", months, schedule.MaxMonths)
	}
	return floor, months, nil
}

// errNoPayoff is returned when a schedule would never end and no row cap bounds it.
var errNoPayoff = errors.New("payment never pays the loan off; pass --months to show a bounded schedule")

// buildSchedule generates the entries shown for terms. A schedule without a
// row cap still stops at schedule.MaxMonths.
func buildSchedule(terms loanTerms, floor currency.Currency, months int) ([]schedule.Entry, error) {
	seq := schedule.GenerateAt(terms.Start, terms.Principal, terms.Rate, terms.Payment)
	if err := seq.Err(); err != nil {
		return nil, err
	}

	if months <= 0 {
		if !schedule.Converges(terms.Principal, terms.Rate, terms.Payment) {
			first := terms.Principal.Interest(currency.MonthlyRate(terms.Rate))
			return nil, fmt.Errorf("%s at %s%% accrues %s in the first month: %w",
				terms.Principal, cli.FormatRate(terms.Rate), first, errNoPayoff)
		}
		months = schedule.MaxMonths
	}

	entries := schedule.Collect(schedule.Limit(schedule.TakeWhile(seq.All(), schedule.Above(floor)), months))
	if err := seq.Err(); err != nil {
		return nil, fmt.Errorf("schedule stopped after %d months: %w", len(entries), err)
	}

	slog.Debug("generated schedule",
		"principal", terms.Principal.String(),
		"rate", terms.Rate,
		"payment", terms.Payment.String(),
		"stop_below", floor.String(),
		"months", len(entries),
	)
	return entries, nil
}

func loadSchedule(cmd *cobra.Command) (loanTerms, []schedule.Entry, error) {
	terms, err := resolveTerms(cmd)
	if err != nil {
		return terms, nil, err
	}
	floor, months, err := scheduleLimits(cmd)
	if err != nil {
		return terms, nil, err
	}
	entries, err := buildSchedule(terms, floor, months)
	return terms, entries, err
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	terms, entries, err := loadSchedule(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("AMORTIZATION  %s at %s%% paying %s",
		terms.Principal, cli.FormatRate(terms.Rate), terms.Payment)))
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "  No months to show.")
		return nil
	}

	fmt.Fprint(out, cli.RenderTable(cli.ScheduleTable(entries, appConfig.Schedule.DateLayout)))

	s := schedule.Summarize(entries)
	if s.PaidOff {
		fmt.Fprintln(out, cli.RenderSuccess(fmt.Sprintf("Paid off in %s, %s interest in total.",
			cli.FormatTerm(s.Months), s.TotalInterest)))
	} else {
		slog.Debug("schedule truncated", "months", s.Months)
		fmt.Fprintln(out, cli.RenderWarning(fmt.Sprintf("Showing %s months; the loan is not paid off yet.",
			cli.FormatNumber(int64(s.Months)))))
	}

	return nil
}
