package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/currency"
)

func TestSetupApply(t *testing.T) {
	vals := SetupValues{
		Principal: "$25,000",
		Rate:      "6.5",
		Payment:   " 500 ",
		StopBelow: "$10",
		MaxMonths: "120",
		Theme:     "tokyo-night",
	}
	// The comma is not a valid amount.
	if _, err := vals.Apply(config.DefaultConfig()); err == nil || !strings.Contains(err.Error(), "principal") {
		t.Fatalf("Apply with %q: err = %v, want principal error", vals.Principal, err)
	}

	vals.Principal = "$25000"
	cfg, err := vals.Apply(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Loan.Principal.Equal(currency.New(25000)) {
		t.Errorf("principal = %s", cfg.Loan.Principal)
	}
	if *cfg.Loan.InterestRate != 6.5 {
		t.Errorf("rate = %v", *cfg.Loan.InterestRate)
	}
	if !cfg.Loan.Payment.Equal(currency.New(500)) {
		t.Errorf("payment = %s", cfg.Loan.Payment)
	}
	if !cfg.Schedule.StopBelow.Equal(currency.New(10)) || cfg.Schedule.MaxMonths != 120 {
		t.Errorf("schedule = %+v", cfg.Schedule)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("theme = %q", cfg.Appearance.Theme)
	}
}

func TestSetupBlankLoanFieldsClear(t *testing.T) {
	p := currency.New(100)
	r := 5.0
	cfg := config.DefaultConfig()
	cfg.Loan = config.LoanConfig{Principal: &p, InterestRate: &r, Payment: &p}

	got, err := SetupValues{}.Apply(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got.Loan.Principal != nil || got.Loan.InterestRate != nil || got.Loan.Payment != nil {
		t.Fatalf("loan = %+v, want all cleared", got.Loan)
	}
	if got.Appearance.Theme != cfg.Appearance.Theme {
		t.Errorf("theme changed to %q", got.Appearance.Theme)
	}
}

func TestSetupRoundTrip(t *testing.T) {
	p := currency.MustParse("1234.56")
	r := 4.25
	cfg := config.DefaultConfig()
	cfg.Loan = config.LoanConfig{Principal: &p, InterestRate: &r}
	cfg.Schedule.MaxMonths = 36

	vals := SetupValuesFrom(cfg)
	if vals.Principal != "$1234.56" || vals.Rate != "4.25" || vals.Payment != "" || vals.MaxMonths != "36" {
		t.Fatalf("SetupValuesFrom = %+v", vals)
	}

	got, err := vals.Apply(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Loan.Principal.Equal(p) || *got.Loan.InterestRate != r || got.Loan.Payment != nil || got.Schedule.MaxMonths != 36 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestSetupValidators(t *testing.T) {
	if optionalAmount("") != nil || optionalAmount("$12.50") != nil {
		t.Error("optionalAmount rejected a valid amount")
	}
	if optionalAmount("twelve") == nil {
		t.Error("optionalAmount accepted garbage")
	}
	if optionalRate("7.5") != nil || optionalRate("x") == nil {
		t.Error("optionalRate misjudged input")
	}
	if optionalMonths("0") != nil || optionalMonths("-1") == nil {
		t.Error("optionalMonths misjudged input")
	}
}

func TestSetupRejectsOutOfRangeAnswers(t *testing.T) {
	tests := []struct {
		name string
		vals SetupValues
		want string
	}{
		{"NaN rate", SetupValues{Rate: "NaN"}, "invalid interest"},
		{"infinite rate", SetupValues{Rate: "+Inf"}, "invalid interest"},
		{"too many months", SetupValues{MaxMonths: "5000"}, "max months"},
		{"huge principal", SetupValues{Principal: "1e20"}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.vals.Apply(config.DefaultConfig())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Apply error = %v, want %q", err, tt.want)
			}
		})
	}
	if optionalRate("NaN") == nil || optionalMonths("1201") == nil {
		t.Error("validators accepted out-of-range input")
	}
}
