package compensation

import "math"

// epsilon biases values sitting a hair under a half-cent boundary due to
// binary floating-point representation, nudging them up before rounding.
const epsilon = 2.220446049250313e-16

// Calculator derives employer-side hourly cost from salary inputs. The
// salary-period semantic ("monthly" means salary is already a monthly
// figure, "annual" divides by 12 first) is fixed at construction and used
// by every caller, so create and update paths can never disagree.
type Calculator struct {
	salaryPeriod string
}

const (
	SalaryPeriodMonthly = "monthly"
	SalaryPeriodAnnual  = "annual"
)

func NewCalculator(salaryPeriod string) Calculator {
	if salaryPeriod != SalaryPeriodAnnual {
		salaryPeriod = SalaryPeriodMonthly
	}
	return Calculator{salaryPeriod: salaryPeriod}
}

// EffectiveHourlyCost returns salary * (1 + overheadPercent/100) /
// monthlyHours rounded to 2 decimal places. Zero salary or zero hours
// short-circuits to 0.
func (c Calculator) EffectiveHourlyCost(salary, overheadPercent, monthlyHours float64) float64 {
	if salary == 0 || monthlyHours == 0 {
		return 0
	}
	monthly := salary
	if c.salaryPeriod == SalaryPeriodAnnual {
		monthly = salary / 12
	}
	monthlyCost := monthly * (1 + overheadPercent/100)
	return Round2(monthlyCost / monthlyHours)
}

// Round2 rounds half-up to 2 decimal places with an epsilon bias.
func Round2(v float64) float64 {
	return math.Round((v+epsilon)*100) / 100
}

type CostLine struct {
	EffectiveHourlyCost float64
	MonthlyHours        float64
}

type Summary struct {
	TotalEmployees   int     `json:"totalEmployees"`
	TotalMonthlyCost float64 `json:"totalMonthlyCost"`
	AvgHourlyCost    float64 `json:"avgHourlyCost"`
	TotalAnnualCost  float64 `json:"totalAnnualCost"`
}

// Summarize aggregates fleet-wide costs. Employees without cost data
// contribute 0 to the monthly total but still count toward the average.
// Each output figure is rounded independently from the unrounded sums.
func Summarize(lines []CostLine) Summary {
	summary := Summary{TotalEmployees: len(lines)}

	var monthlyTotal, hourlySum float64
	for _, line := range lines {
		if line.EffectiveHourlyCost > 0 && line.MonthlyHours > 0 {
			monthlyTotal += line.EffectiveHourlyCost * line.MonthlyHours
		}
		hourlySum += line.EffectiveHourlyCost
	}

	if len(lines) > 0 {
		summary.AvgHourlyCost = Round2(hourlySum / float64(len(lines)))
	}
	summary.TotalMonthlyCost = Round2(monthlyTotal)
	summary.TotalAnnualCost = Round2(monthlyTotal * 12)
	return summary
}
