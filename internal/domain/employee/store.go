package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id,
    name,
    email,
    COALESCE(department, ''),
    role,
    COALESCE(account_id, ''),
    password_hash,
    salary,
    overhead_percent,
    monthly_hours,
    effective_hourly_cost,
    total_points,
    rollover_points,
    created_at,
    updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.Role, &emp.AccountID,
		&emp.PasswordHash, &emp.Salary, &emp.OverheadPercent, &emp.MonthlyHours,
		&emp.EffectiveHourlyCost, &emp.TotalPoints, &emp.RolloverPoints,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, department, role, account_id, password_hash,
                           salary, overhead_percent, monthly_hours, effective_hourly_cost)
    VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)
    RETURNING`+employeeColumns+`
  `, emp.Name, emp.Email, emp.Department, emp.Role, emp.AccountID, emp.PasswordHash,
		emp.Salary, emp.OverheadPercent, emp.MonthlyHours, emp.EffectiveHourlyCost)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Get returns the full aggregate including monthly snapshots and the
// point ledger.
func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if err != nil {
		return Employee{}, err
	}

	monthRows, err := s.DB.Query(ctx, `
    SELECT month, points
    FROM monthly_points
    WHERE employee_id = $1
    ORDER BY month
  `, id)
	if err != nil {
		return Employee{}, err
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var mp MonthlyPoint
		if err := monthRows.Scan(&mp.Month, &mp.Points); err != nil {
			return Employee{}, err
		}
		emp.MonthlyPoints = append(emp.MonthlyPoints, mp)
	}
	if err := monthRows.Err(); err != nil {
		return Employee{}, err
	}

	entryRows, err := s.DB.Query(ctx, `
    SELECT entry_date, points, reason, category
    FROM leaderboard_entries
    WHERE employee_id = $1
    ORDER BY entry_date, id
  `, id)
	if err != nil {
		return Employee{}, err
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var entry LedgerEntry
		if err := entryRows.Scan(&entry.Date, &entry.Points, &entry.Reason, &entry.Category); err != nil {
			return Employee{}, err
		}
		emp.LeaderboardEntries = append(emp.LeaderboardEntries, entry)
	}
	return emp, entryRows.Err()
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE lower(email) = lower($1)
  `, email))
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE lower(email) = lower($1)", email).Scan(&count)
	return count > 0, err
}

func (s *Store) AccountIDExists(ctx context.Context, accountID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE account_id = $1", accountID).Scan(&count)
	return count > 0, err
}

func (s *Store) Update(ctx context.Context, id string, emp Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = $1, department = $2, role = $3, account_id = NULLIF($4, ''), updated_at = now()
    WHERE id = $5
    RETURNING`+employeeColumns+`
  `, emp.Name, emp.Department, emp.Role, emp.AccountID, id)
	return scanEmployee(row)
}

func (s *Store) UpdateResources(ctx context.Context, id string, salary, overheadPercent, monthlyHours, effectiveHourlyCost float64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET salary = $1, overhead_percent = $2, monthly_hours = $3, effective_hourly_cost = $4, updated_at = now()
    WHERE id = $5
    RETURNING`+employeeColumns+`
  `, salary, overheadPercent, monthlyHours, effectiveHourlyCost, id)
	return scanEmployee(row)
}

func (s *Store) UpdateJiraIdentity(ctx context.Context, id, name, email, accountID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = $1, email = $2, account_id = NULLIF($3, ''), updated_at = now()
    WHERE id = $4
    RETURNING`+employeeColumns+`
  `, name, email, accountID, id)
	return scanEmployee(row)
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET password_hash = $1, updated_at = now() WHERE id = $2", hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
