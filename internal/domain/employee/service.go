package employee

import (
	"context"
	"fmt"
	"strings"

	"crewhub/internal/domain/auth"
	"crewhub/internal/domain/compensation"
)

type Service struct {
	store               StoreAPI
	calc                compensation.Calculator
	defaultPassword     string
	defaultMonthlyHours float64
}

func NewService(store StoreAPI, calc compensation.Calculator, defaultPassword string, defaultMonthlyHours float64) *Service {
	if defaultMonthlyHours <= 0 {
		defaultMonthlyHours = 160
	}
	return &Service{
		store:               store,
		calc:                calc,
		defaultPassword:     defaultPassword,
		defaultMonthlyHours: defaultMonthlyHours,
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Employee, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return Employee{}, &ValidationError{Field: "email", Reason: "is required"}
	}
	if err := validateResourcePatch(ResourcePatch{
		Salary:          input.Salary,
		OverheadPercent: input.OverheadPercent,
		MonthlyHours:    input.MonthlyHours,
	}); err != nil {
		return Employee{}, err
	}

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return Employee{}, err
	}
	if exists {
		return Employee{}, ErrEmailExists
	}
	if input.AccountID != "" {
		taken, err := s.store.AccountIDExists(ctx, input.AccountID)
		if err != nil {
			return Employee{}, err
		}
		if taken {
			return Employee{}, ErrAccountIDExists
		}
	}

	emp := Employee{
		Name:         input.Name,
		Email:        email,
		Department:   input.Department,
		Role:         input.Role,
		AccountID:    input.AccountID,
		MonthlyHours: s.defaultMonthlyHours,
	}
	if emp.Role == "" {
		emp.Role = auth.RoleEmployee
	}
	if input.Salary != nil {
		emp.Salary = *input.Salary
	}
	if input.OverheadPercent != nil {
		emp.OverheadPercent = *input.OverheadPercent
	}
	if input.MonthlyHours != nil {
		emp.MonthlyHours = *input.MonthlyHours
	}
	emp.EffectiveHourlyCost = s.calc.EffectiveHourlyCost(emp.Salary, emp.OverheadPercent, emp.MonthlyHours)

	password := input.Password
	if password == "" {
		password = s.defaultPassword
	}
	// Never store a hash of the empty string: with no configured default
	// password a password-less create would otherwise mint an account
	// anyone can log into.
	if password == "" {
		return Employee{}, &ValidationError{Field: "password", Reason: "is required when no default password is configured"}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Employee{}, err
	}
	emp.PasswordHash = hash

	return s.store.Create(ctx, emp)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Employee, error) {
	return s.store.GetByEmail(ctx, email)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Employee, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Department != nil {
		current.Department = *input.Department
	}
	if input.Role != nil {
		current.Role = *input.Role
	}
	if input.AccountID != nil {
		current.AccountID = *input.AccountID
	}
	return s.store.Update(ctx, id, current)
}

// ApplyResourceUpdate merges the patch over the employee's current cost
// inputs, recomputes the derived hourly cost from the merged values and
// persists everything atomically. A ValidationError leaves the record
// untouched.
func (s *Service) ApplyResourceUpdate(ctx context.Context, id string, patch ResourcePatch) (Employee, error) {
	if err := validateResourcePatch(patch); err != nil {
		return Employee{}, err
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	salary := current.Salary
	overhead := current.OverheadPercent
	hours := current.MonthlyHours
	if patch.Salary != nil {
		salary = *patch.Salary
	}
	if patch.OverheadPercent != nil {
		overhead = *patch.OverheadPercent
	}
	if patch.MonthlyHours != nil {
		hours = *patch.MonthlyHours
	}

	cost := current.EffectiveHourlyCost
	if patch.Salary != nil || patch.OverheadPercent != nil || patch.MonthlyHours != nil {
		cost = s.calc.EffectiveHourlyCost(salary, overhead, hours)
	}

	return s.store.UpdateResources(ctx, id, salary, overhead, hours, cost)
}

// BulkImport creates employees one by one, collecting per-record errors
// so a duplicate in the middle of a batch does not abort the rest.
func (s *Service) BulkImport(ctx context.Context, inputs []CreateInput) ([]Employee, []string) {
	var created []Employee
	var errs []string
	for _, input := range inputs {
		emp, err := s.Create(ctx, input)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", input.Email, err))
			continue
		}
		created = append(created, emp)
	}
	return created, errs
}

// ApplyJiraSync overwrites the employee's identity fields with the
// profile Jira reports for their account. Empty Jira fields keep the
// current value; a changed email or account id must not collide with
// another record.
func (s *Service) ApplyJiraSync(ctx context.Context, id, name, email, accountID string) (Employee, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = current.Email
	}
	if email != current.Email {
		exists, err := s.store.EmailExists(ctx, email)
		if err != nil {
			return Employee{}, err
		}
		if exists {
			return Employee{}, ErrEmailExists
		}
	}

	if accountID == "" {
		accountID = current.AccountID
	}
	if accountID != "" && accountID != current.AccountID {
		taken, err := s.store.AccountIDExists(ctx, accountID)
		if err != nil {
			return Employee{}, err
		}
		if taken {
			return Employee{}, ErrAccountIDExists
		}
	}

	if name == "" {
		name = current.Name
	}
	return s.store.UpdateJiraIdentity(ctx, id, name, email, accountID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdatePasswordHash(ctx, id, hash)
}

// CostSummary returns all employees together with the fleet-wide cost
// aggregate.
func (s *Service) CostSummary(ctx context.Context) ([]Employee, compensation.Summary, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, compensation.Summary{}, err
	}
	lines := make([]compensation.CostLine, len(employees))
	for i, emp := range employees {
		lines[i] = compensation.CostLine{
			EffectiveHourlyCost: emp.EffectiveHourlyCost,
			MonthlyHours:        emp.MonthlyHours,
		}
	}
	return employees, compensation.Summarize(lines), nil
}
