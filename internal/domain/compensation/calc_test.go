package compensation

import (
	"math"
	"testing"
)

func TestEffectiveHourlyCostMonthly(t *testing.T) {
	calc := NewCalculator(SalaryPeriodMonthly)

	got := calc.EffectiveHourlyCost(4000, 20, 160)
	if got != 30.00 {
		t.Fatalf("expected 30.00, got %v", got)
	}
}

func TestEffectiveHourlyCostAnnual(t *testing.T) {
	calc := NewCalculator(SalaryPeriodAnnual)

	got := calc.EffectiveHourlyCost(48000, 20, 160)
	if got != 30.00 {
		t.Fatalf("expected 30.00, got %v", got)
	}
}

func TestEffectiveHourlyCostShortCircuits(t *testing.T) {
	calc := NewCalculator(SalaryPeriodMonthly)

	if got := calc.EffectiveHourlyCost(0, 50, 160); got != 0 {
		t.Fatalf("expected 0 for zero salary, got %v", got)
	}
	if got := calc.EffectiveHourlyCost(4000, 50, 0); got != 0 {
		t.Fatalf("expected 0 for zero hours, got %v", got)
	}
}

func TestEffectiveHourlyCostRounding(t *testing.T) {
	calc := NewCalculator(SalaryPeriodMonthly)

	tests := []struct {
		name     string
		salary   float64
		overhead float64
		hours    float64
		want     float64
	}{
		{"repeating third rounds down", 1000, 0, 3, 333.33},
		{"repeating two thirds rounds up", 2000, 0, 3, 666.67},
		{"exact result untouched", 3200, 0, 160, 20.00},
		{"overhead applied before division", 1000, 50, 100, 15.00},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := calc.EffectiveHourlyCost(tc.salary, tc.overhead, tc.hours)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEffectiveHourlyCostTwoDecimalPlaces(t *testing.T) {
	calc := NewCalculator(SalaryPeriodMonthly)

	inputs := []struct{ salary, overhead, hours float64 }{
		{4321.09, 17.5, 152.5},
		{9999.999, 99.99, 7.77},
		{1, 0.01, 173},
		{123456.78, 42, 160},
	}

	for _, in := range inputs {
		got := calc.EffectiveHourlyCost(in.salary, in.overhead, in.hours)
		cents := got * 100
		if math.Abs(cents-math.Round(cents)) > 1e-6 {
			t.Fatalf("expected at most 2 decimal places for inputs %+v, got %v", in, got)
		}
	}
}

func TestEffectiveHourlyCostDeterministic(t *testing.T) {
	calc := NewCalculator(SalaryPeriodMonthly)

	first := calc.EffectiveHourlyCost(4137.77, 23.4, 157.3)
	for i := 0; i < 100; i++ {
		if got := calc.EffectiveHourlyCost(4137.77, 23.4, 157.3); got != first {
			t.Fatalf("expected deterministic result %v, got %v", first, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]CostLine{
		{EffectiveHourlyCost: 30, MonthlyHours: 160},
		{EffectiveHourlyCost: 0, MonthlyHours: 0},
	})

	if summary.TotalEmployees != 2 {
		t.Fatalf("expected 2 employees, got %d", summary.TotalEmployees)
	}
	if summary.TotalMonthlyCost != 4800.00 {
		t.Fatalf("expected total monthly 4800.00, got %v", summary.TotalMonthlyCost)
	}
	if summary.AvgHourlyCost != 15.00 {
		t.Fatalf("expected avg hourly 15.00, got %v", summary.AvgHourlyCost)
	}
	if summary.TotalAnnualCost != 57600.00 {
		t.Fatalf("expected total annual 57600.00, got %v", summary.TotalAnnualCost)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalEmployees != 0 || summary.TotalMonthlyCost != 0 || summary.AvgHourlyCost != 0 || summary.TotalAnnualCost != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}
