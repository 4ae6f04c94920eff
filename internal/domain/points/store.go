package points

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crewhub/internal/domain/employee"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Award(ctx context.Context, employeeID string, entry employee.LedgerEntry) (employee.Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return employee.Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Relative increment, not read-modify-write, so concurrent awards
	// against the same row cannot lose updates.
	row := tx.QueryRow(ctx, `
    UPDATE employees
    SET total_points = total_points + $1, updated_at = now()
    WHERE id = $2
    RETURNING id, name, email, COALESCE(department, ''), role, total_points, rollover_points, created_at, updated_at
  `, entry.Points, employeeID)

	var emp employee.Employee
	err = row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Role,
		&emp.TotalPoints, &emp.RolloverPoints, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO leaderboard_entries (employee_id, entry_date, points, reason, category)
    VALUES ($1, $2, $3, $4, $5)
  `, employeeID, entry.Date, entry.Points, entry.Reason, entry.Category); err != nil {
		return employee.Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

func (s *Store) Rollover(ctx context.Context, employeeID, month string, now time.Time) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var snapshot, rollover int
	err = tx.QueryRow(ctx, `
    SELECT total_points, rollover_points
    FROM employees
    WHERE id = $1
    FOR UPDATE
  `, employeeID).Scan(&snapshot, &rollover)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrNotFound
	}
	if err != nil {
		return err
	}

	// Idempotency guard: a snapshot row for this month means the halving
	// already happened; running again would double-halve the balance.
	var already int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1) FROM monthly_points WHERE employee_id = $1 AND month = $2
  `, employeeID, month).Scan(&already); err != nil {
		return err
	}
	if already > 0 {
		return ErrAlreadyRolledOver
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO monthly_points (employee_id, month, points)
    VALUES ($1, $2, $3)
    ON CONFLICT (employee_id, month) DO UPDATE SET points = EXCLUDED.points
  `, employeeID, month, snapshot); err != nil {
		return err
	}

	halved := Halve(snapshot)
	if _, err := tx.Exec(ctx, `
    UPDATE employees
    SET total_points = $1, rollover_points = rollover_points + $2, updated_at = now()
    WHERE id = $3
  `, halved, halved, employeeID); err != nil {
		return err
	}

	entry := ResetEntry(snapshot, month, now)
	if _, err := tx.Exec(ctx, `
    INSERT INTO leaderboard_entries (employee_id, entry_date, points, reason, category)
    VALUES ($1, $2, $3, $4, $5)
  `, employeeID, entry.Date, entry.Points, entry.Reason, entry.Category); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM employees ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, COALESCE(department, ''), role, total_points, rollover_points, created_at, updated_at
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Role,
			&emp.TotalPoints, &emp.RolloverPoints, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
