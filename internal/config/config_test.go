package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/amort/internal/currency"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvPrincipal, "")
	t.Setenv(EnvRate, "")
	t.Setenv(EnvPayment, "")
	return filepath.Join(dir, "amort")
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Exists() {
		t.Fatal("Exists() = true with no config file")
	}
	if cfg.Schedule.DateLayout != "January 02, 2006" {
		t.Errorf("DateLayout = %q", cfg.Schedule.DateLayout)
	}
	if !cfg.Schedule.StopBelow.IsZero() {
		t.Errorf("StopBelow = %s, want $0.00", cfg.Schedule.StopBelow)
	}
	if cfg.Appearance.Theme != "flexoki-dark" || cfg.General.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Loan.Principal != nil || cfg.Loan.Payment != nil || cfg.Loan.InterestRate != nil {
		t.Errorf("loan defaults set: %+v", cfg.Loan)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := useTempConfigDir(t)

	principal := currency.New(25000)
	payment := currency.New(512.34)
	rate := 6.5

	cfg := DefaultConfig()
	cfg.Loan = LoanConfig{Principal: &principal, InterestRate: &rate, Payment: &payment}
	cfg.Schedule.StopBelow = currency.New(1000)
	cfg.Schedule.MaxMonths = 360
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if Path() != filepath.Join(dir, "config.toml") || !Exists() {
		t.Fatalf("config not written at %s", Path())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Loan.Principal == nil || !got.Loan.Principal.Equal(principal) {
		t.Errorf("Principal = %v, want %s", got.Loan.Principal, principal)
	}
	if got.Loan.Payment == nil || !got.Loan.Payment.Equal(payment) {
		t.Errorf("Payment = %v, want %s", got.Loan.Payment, payment)
	}
	if got.Loan.InterestRate == nil || *got.Loan.InterestRate != rate {
		t.Errorf("InterestRate = %v, want %v", got.Loan.InterestRate, rate)
	}
	if !got.Schedule.StopBelow.Equal(currency.New(1000)) || got.Schedule.MaxMonths != 360 {
		t.Errorf("Schedule = %+v", got.Schedule)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q", got.Appearance.Theme)
	}
}

func TestLoadParsesCurrencyStrings(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `
[loan]
principal = "$1234.5"
payment = "100"

[schedule]
stop_below = "$1000"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loan.Principal.String() != "$1234.50" {
		t.Errorf("Principal = %s", cfg.Loan.Principal)
	}
	if cfg.Loan.Payment.String() != "$100.00" {
		t.Errorf("Payment = %s", cfg.Loan.Payment)
	}
	if cfg.Schedule.StopBelow.String() != "$1000.00" {
		t.Errorf("StopBelow = %s", cfg.Schedule.StopBelow)
	}
	// unset keys keep their defaults
	if cfg.Schedule.DateLayout != "January 02, 2006" {
		t.Errorf("DateLayout = %q", cfg.Schedule.DateLayout)
	}
}

func TestLoadRejectsBadCurrency(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[loan]\npayment = \"lots\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load accepted an invalid payment")
	}
	if !strings.Contains(err.Error(), `"lots"`) {
		t.Fatalf("Load error = %v, want it to name %q", err, "lots")
	}
}

func TestLoanDefaultsEnvOverrides(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(EnvPrincipal, "$5000")
	t.Setenv(EnvRate, "4.25")

	payment := currency.New(200)
	cfg := DefaultConfig()
	cfg.Loan.Payment = &payment

	loan, err := LoanDefaults(cfg)
	if err != nil {
		t.Fatalf("LoanDefaults: %v", err)
	}
	if loan.Principal == nil || loan.Principal.String() != "$5000.00" {
		t.Errorf("Principal = %v", loan.Principal)
	}
	if loan.InterestRate == nil || *loan.InterestRate != 4.25 {
		t.Errorf("InterestRate = %v", loan.InterestRate)
	}
	if loan.Payment == nil || !loan.Payment.Equal(payment) {
		t.Errorf("Payment = %v", loan.Payment)
	}

	t.Setenv(EnvPayment, "oops")
	if _, err := LoanDefaults(cfg); err == nil {
		t.Fatal("LoanDefaults accepted a malformed AMORT_PAYMENT")
	}
}

func TestLoanDefaultsRejectsNonFiniteRate(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-inf", "1e999"} {
		t.Run(v, func(t *testing.T) {
			useTempConfigDir(t)
			t.Setenv(EnvRate, v)

			_, err := LoanDefaults(DefaultConfig())
			if err == nil {
				t.Fatalf("LoanDefaults accepted %s=%s", EnvRate, v)
			}
			if !strings.Contains(err.Error(), EnvRate) || !strings.Contains(err.Error(), "invalid interest") {
				t.Fatalf("error = %v, want it to name %s and say invalid interest", err, EnvRate)
			}
		})
	}
}

func TestLoanDefaultsRejectsNaNInConfigFile(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[loan]\ninterest_rate = nan\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := LoanDefaults(cfg); err == nil || !strings.Contains(err.Error(), "interest_rate") {
		t.Fatalf("LoanDefaults error = %v, want interest_rate error", err)
	}
}
