package cmd

import (
	"fmt"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/currency"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	loan, err := config.LoanDefaults(cfg)
	if err != nil {
		return err
	}

	fmt.Println("  [Loan]")
	fmt.Printf("    Principal:     %s\n", describeAmount(loan.Principal))
	if loan.InterestRate != nil {
		fmt.Printf("    Interest rate: %s%%\n", cli.FormatRate(*loan.InterestRate))
	} else {
		fmt.Println("    Interest rate: not set")
	}
	fmt.Printf("    Payment:       %s\n", describeAmount(loan.Payment))
	fmt.Println()

	fmt.Println("  [Schedule]")
	fmt.Printf("    Stop below:    %s\n", cfg.Schedule.StopBelow)
	if cfg.Schedule.MaxMonths > 0 {
		fmt.Printf("    Max months:    %d\n", cfg.Schedule.MaxMonths)
	} else {
		fmt.Println("    Max months:    until paid off")
	}
	fmt.Printf("    Date layout:   %s\n", cfg.Schedule.DateLayout)
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `amort setup` to reconfigure.")
	return nil
}

func describeAmount(v *currency.Currency) string {
	if v == nil {
		return "not set"
	}
	return v.String()
}
