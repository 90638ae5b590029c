// Package config loads and saves amort's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/amort/internal/currency"
)

// Config holds all amort configuration.
type Config struct {
	Loan       LoanConfig       `toml:"loan"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// LoanConfig holds default loan terms used when flags are omitted.
type LoanConfig struct {
	Principal    *currency.Currency `toml:"principal,omitempty"`
	InterestRate *float64           `toml:"interest_rate,omitempty"`
	Payment      *currency.Currency `toml:"payment,omitempty"`
}

// ScheduleConfig controls which rows of a schedule are shown.
type ScheduleConfig struct {
	StopBelow  currency.Currency `toml:"stop_below"`
	MaxMonths  int               `toml:"max_months"`
	DateLayout string            `toml:"date_layout"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Schedule: ScheduleConfig{
			StopBelow:  currency.Zero,
			DateLayout: "January 02, 2006",
		},
		General: GeneralConfig{
			LogLevel: "info",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "amort")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "amort")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Environment variables that override the [loan] section.
const (
	EnvPrincipal = "AMORT_PRINCIPAL"
	EnvRate      = "AMORT_RATE"
	EnvPayment   = "AMORT_PAYMENT"
)

// LoanDefaults returns the loan terms from env vars or config, in that order.
// A malformed env var or rate is an error naming its source.
func LoanDefaults(cfg Config) (LoanConfig, error) {
	loan := cfg.Loan

	if v := os.Getenv(EnvPrincipal); v != "" {
		c, err := currency.Parse(v)
		if err != nil {
			return loan, fmt.Errorf("%s: %w", EnvPrincipal, err)
		}
		loan.Principal = &c
	}
	if v := os.Getenv(EnvRate); v != "" {
		r, err := currency.ParseRate(v)
		if err != nil {
			return loan, fmt.Errorf("%s: %w", EnvRate, err)
		}
		loan.InterestRate = &r
	} else if loan.InterestRate != nil {
		if err := currency.CheckRate(*loan.InterestRate); err != nil {
			return loan, fmt.Errorf("[loan] interest_rate: %w", err)
		}
	}
	if v := os.Getenv(EnvPayment); v != "" {
		c, err := currency.Parse(v)
		if err != nil {
			return loan, fmt.Errorf("%s: %w", EnvPayment, err)
		}
		loan.Payment = &c
	}

	return loan, nil
}
