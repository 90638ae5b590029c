package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/amort/internal/cli"
	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/currency"
	"github.com/theirongolddev/amort/internal/schedule"
	"github.com/theirongolddev/amort/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the raw answers of the setup wizard.
type SetupValues struct {
	Principal string
	Rate      string
	Payment   string
	StopBelow string
	MaxMonths string
	Theme     string
}

// SetupValuesFrom prefills the wizard from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	v := SetupValues{
		StopBelow: cfg.Schedule.StopBelow.String(),
		MaxMonths: strconv.Itoa(cfg.Schedule.MaxMonths),
		Theme:     cfg.Appearance.Theme,
	}
	if cfg.Loan.Principal != nil {
		v.Principal = cfg.Loan.Principal.String()
	}
	if cfg.Loan.InterestRate != nil {
		v.Rate = cli.FormatRate(*cfg.Loan.InterestRate)
	}
	if cfg.Loan.Payment != nil {
		v.Payment = cfg.Loan.Payment.String()
	}
	return v
}

// NewSetupForm builds the setup wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to amort").
				Description("Save default loan terms so `amort` runs without flags.\nLeave a field blank to skip it."),
			huh.NewInput().
				Title("Loan balance").
				Placeholder("$25000.00").
				Value(&vals.Principal).
				Validate(optionalAmount),
			huh.NewInput().
				Title("Interest rate (%)").
				Placeholder("6.5").
				Value(&vals.Rate).
				Validate(optionalRate),
			huh.NewInput().
				Title("Monthly payment").
				Placeholder("$500.00").
				Value(&vals.Payment).
				Validate(optionalAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hide months with a balance at or below").
				Value(&vals.StopBelow).
				Validate(optionalAmount),
			huh.NewInput().
				Title("Show at most this many months (0 = until paid off)").
				Value(&vals.MaxMonths).
				Validate(optionalMonths),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	)
}

func optionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := currency.Parse(s)
	return err
}

func optionalRate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := currency.ParseRate(s)
	return err
}

func optionalMonths(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > schedule.MaxMonths {
		return fmt.Errorf("not a month count from 0 to %d: %q", schedule.MaxMonths, s)
	}
	return nil
}

// Apply merges the answers into cfg. Blank loan fields clear the saved value.
func (v SetupValues) Apply(cfg config.Config) (config.Config, error) {
	var err error
	if cfg.Loan.Principal, err = optionalCurrency(v.Principal); err != nil {
		return cfg, fmt.Errorf("principal: %w", err)
	}
	if cfg.Loan.Payment, err = optionalCurrency(v.Payment); err != nil {
		return cfg, fmt.Errorf("payment: %w", err)
	}

	cfg.Loan.InterestRate = nil
	if s := strings.TrimSpace(v.Rate); s != "" {
		r, err := currency.ParseRate(s)
		if err != nil {
			return cfg, fmt.Errorf("interest rate: %w", err)
		}
		cfg.Loan.InterestRate = &r
	}

	if s := strings.TrimSpace(v.StopBelow); s != "" {
		floor, err := currency.Parse(s)
		if err != nil {
			return cfg, fmt.Errorf("stop below: %w", err)
		}
		cfg.Schedule.StopBelow = floor
	}
	if s := strings.TrimSpace(v.MaxMonths); s != "" {
		if err := optionalMonths(s); err != nil {
			return cfg, fmt.Errorf("max months: %w", err)
		}
		n, _ := strconv.Atoi(s)
		cfg.Schedule.MaxMonths = n
	}

	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	}
	return cfg, nil
}

func optionalCurrency(s string) (*currency.Currency, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := currency.Parse(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
