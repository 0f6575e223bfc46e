package cmd

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/config"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/store"
)

func testScenario(t *testing.T) store.Scenario {
	t.Helper()
	d := decimal.RequireFromString
	l, err := model.NewLoan("Test", d("1000"), d("0.1"), d("10"))
	if err != nil {
		t.Fatal(err)
	}
	return store.Scenario{
		Loans:               []model.Loan{l},
		TotalMonthlyPayment: d("600"),
		StartingMonth:       time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPlanInputOverrides(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addPlanFlags(c)
	for name, value := range map[string]string{
		"contribution": "$750",
		"strategy":     "snowball",
		"years":        "3",
		"start":        "2027-02",
		"fund-target":  "1,000",
		"fund-percent": "25",
	} {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	e := &env{cfg: config.DefaultConfig(), log: zap.NewNop()}
	in, err := planInput(c, e, testScenario(t))
	if err != nil {
		t.Fatal(err)
	}

	if !in.Contribution.Equal(decimal.NewFromInt(750)) {
		t.Errorf("contribution = %s", in.Contribution)
	}
	if in.Strategy.Name() != engine.SnowballName {
		t.Errorf("strategy = %s", in.Strategy.Name())
	}
	if in.Years != 3 {
		t.Errorf("years = %d", in.Years)
	}
	if want := time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC); !in.Start.Equal(want) {
		t.Errorf("start = %s", in.Start)
	}
	if in.Fund == nil || !in.Fund.Target.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("fund = %+v", in.Fund)
	}
	if !in.Fund.Percentage.Equal(decimal.RequireFromString("0.25")) {
		t.Errorf("fund percentage = %s", in.Fund.Percentage)
	}
}

func TestPlanInputKeepsScenario(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addPlanFlags(c)
	e := &env{cfg: config.DefaultConfig(), log: zap.NewNop()}

	in, err := planInput(c, e, testScenario(t))
	if err != nil {
		t.Fatal(err)
	}
	if !in.Contribution.Equal(decimal.NewFromInt(600)) {
		t.Errorf("contribution = %s", in.Contribution)
	}
	if in.Strategy.Name() != engine.AvalancheName {
		t.Errorf("strategy = %s", in.Strategy.Name())
	}
	if in.Fund != nil {
		t.Errorf("unexpected fund %+v", in.Fund)
	}
}

func TestPlanInputBadStrategy(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addPlanFlags(c)
	_ = c.Flags().Set("strategy", "yolo")
	e := &env{cfg: config.DefaultConfig(), log: zap.NewNop()}

	if _, err := planInput(c, e, testScenario(t)); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestJoinPayments(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, "-"},
		{[]string{"Car $10.00"}, "Car $10.00"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{"a", "b", "c", "d"}, "a, b +2"},
	}
	for _, tt := range tests {
		if got := joinPayments(tt.parts); got != tt.want {
			t.Errorf("joinPayments(%v) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	err := applySetup(&cfg, setupValues{
		years:      "7",
		strategy:   "snowball",
		fundTarget: "$2,500",
		fundShare:  "0.75",
		backend:    "redis",
		redisAddr:  " localhost:6379 ",
		theme:      "tokyo-night",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Plan.Years != 7 || cfg.Plan.Strategy != "snowball" {
		t.Errorf("plan = %+v", cfg.Plan)
	}
	if cfg.EmergencyFund.Target == nil || *cfg.EmergencyFund.Target != 2500 {
		t.Errorf("fund target = %v", cfg.EmergencyFund.Target)
	}
	if cfg.EmergencyFund.Percentage != 0.75 {
		t.Errorf("fund share = %v", cfg.EmergencyFund.Percentage)
	}
	if cfg.Storage.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Storage.RedisAddr)
	}

	// a blank target clears the fund
	if err := applySetup(&cfg, setupValues{years: "5", fundShare: "0.5"}); err != nil {
		t.Fatal(err)
	}
	if cfg.EmergencyFund.Target != nil {
		t.Error("blank target should clear the fund")
	}
}

func TestValidateYears(t *testing.T) {
	for _, ok := range []string{"1", "5", " 30 "} {
		if err := validateYears(ok); err != nil {
			t.Errorf("validateYears(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "-2", "abc", "51"} {
		if err := validateYears(bad); err == nil {
			t.Errorf("validateYears(%q) accepted", bad)
		}
	}
}

func TestCompareTableMarksSavings(t *testing.T) {
	d := decimal.RequireFromString
	tbl := compareTable([]engine.Summary{
		{Strategy: "avalanche", Periods: 10, TotalInterest: d("90"), TotalPaid: d("1090")},
		{Strategy: "snowball", Periods: 12, TotalInterest: d("100"), TotalPaid: d("1100")},
	})
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d", len(tbl.Rows))
	}
	if got := tbl.Rows[0][4]; got != "-$10.00" {
		t.Errorf("avalanche savings = %q", got)
	}
	if got := tbl.Rows[1][4]; got != "-" {
		t.Errorf("snowball savings = %q", got)
	}
	if got := tbl.Rows[0][1]; got != "10m (-2)" {
		t.Errorf("avalanche months = %q", got)
	}
}
