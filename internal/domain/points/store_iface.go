package points

import (
	"context"
	"time"

	"crewhub/internal/domain/employee"
)

type StoreAPI interface {
	// Award atomically appends the ledger entry and adjusts the balance;
	// concurrent awards against the same employee must not lose updates.
	Award(ctx context.Context, employeeID string, entry employee.LedgerEntry) (employee.Employee, error)

	// Rollover performs the month-keyed halving for one employee inside a
	// single transaction with the employee row locked. It returns
	// ErrAlreadyRolledOver when a snapshot for the month already exists.
	Rollover(ctx context.Context, employeeID, month string, now time.Time) error

	ListEmployeeIDs(ctx context.Context) ([]string, error)

	// ListEmployees returns employees in creation order; the service
	// applies leaderboard ordering on top.
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
}
