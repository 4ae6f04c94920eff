package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crewhub/internal/domain/employee"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// Award appends one ledger entry and moves the balance by points, which
// may be negative for penalties. No floor is enforced here; caller policy
// decides whether negative balances are acceptable.
func (s *Service) Award(ctx context.Context, employeeID string, pts int, reason, category string) (employee.Employee, error) {
	entry := employee.LedgerEntry{
		Date:     s.now().UTC(),
		Points:   pts,
		Reason:   reason,
		Category: category,
	}
	return s.store.Award(ctx, employeeID, entry)
}

func (s *Service) Leaderboard(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	SortLeaderboard(employees)
	return employees, nil
}

// RunMonthlyRollover snapshots every employee's balance under the current
// month key, halves it and credits the remainder to rolloverPoints. A
// failure on one employee is recorded and processing continues; only a
// failure to list employees aborts the run with nothing committed.
// Employees already snapshotted this month are skipped, so the job is
// safe to trigger more than once per month.
func (s *Service) RunMonthlyRollover(ctx context.Context) (RolloverResult, error) {
	ids, err := s.store.ListEmployeeIDs(ctx)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("monthly rollover: list employees: %w", err)
	}

	now := s.now().UTC()
	result := RolloverResult{Month: MonthKey(now)}
	for _, id := range ids {
		err := s.store.Rollover(ctx, id, result.Month, now)
		switch {
		case err == nil:
			result.EmployeesUpdated++
		case errors.Is(err, ErrAlreadyRolledOver):
			result.EmployeesSkipped++
		default:
			slog.Warn("rollover failed for employee", "employeeId", id, "month", result.Month, "err", err)
			result.Failures = append(result.Failures, RolloverFailure{EmployeeID: id, Error: err.Error()})
		}
	}
	return result, nil
}
