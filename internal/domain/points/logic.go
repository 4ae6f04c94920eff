package points

import (
	"sort"
	"time"

	"crewhub/internal/domain/employee"
)

const CategorySystem = "System"

// MonthKey identifies a rollover period, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Halve uses Go integer division, which truncates toward zero for
// negative balances as well: Halve(-101) == -50.
func Halve(points int) int {
	return points / 2
}

func ResetReason(month string) string {
	return "Monthly point reset - " + month
}

// ResetEntry builds the ledger entry a rollover appends for a balance
// snapshot: a negative delta equal to the amount the halving removed.
func ResetEntry(snapshot int, month string, now time.Time) employee.LedgerEntry {
	return employee.LedgerEntry{
		Date:     now,
		Points:   -Halve(snapshot),
		Reason:   ResetReason(month),
		Category: CategorySystem,
	}
}

// SortLeaderboard orders employees by total points descending. The sort
// is stable so equal scores keep their creation order.
func SortLeaderboard(employees []employee.Employee) {
	sort.SliceStable(employees, func(i, j int) bool {
		return employees[i].TotalPoints > employees[j].TotalPoints
	})
}
