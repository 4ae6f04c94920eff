package employee

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"crewhub/internal/domain/compensation"
)

type fakeStore struct {
	employees map[string]Employee
	order     []string
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{employees: map[string]Employee{}}
}

func (f *fakeStore) Create(_ context.Context, emp Employee) (Employee, error) {
	f.nextID++
	emp.ID = "emp-" + strconv.Itoa(f.nextID)
	f.employees[emp.ID] = emp
	f.order = append(f.order, emp.ID)
	return emp, nil
}

func (f *fakeStore) List(_ context.Context) ([]Employee, error) {
	out := make([]Employee, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.employees[id])
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (f *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AccountIDExists(_ context.Context, accountID string) (bool, error) {
	for _, emp := range f.employees {
		if emp.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Update(_ context.Context, id string, emp Employee) (Employee, error) {
	if _, ok := f.employees[id]; !ok {
		return Employee{}, ErrNotFound
	}
	emp.ID = id
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeStore) UpdateResources(_ context.Context, id string, salary, overheadPercent, monthlyHours, effectiveHourlyCost float64) (Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	emp.Salary = salary
	emp.OverheadPercent = overheadPercent
	emp.MonthlyHours = monthlyHours
	emp.EffectiveHourlyCost = effectiveHourlyCost
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeStore) UpdateJiraIdentity(_ context.Context, id, name, email, accountID string) (Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	emp.Name = name
	emp.Email = email
	emp.AccountID = accountID
	f.employees[id] = emp
	return emp, nil
}

func (f *fakeStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	emp, ok := f.employees[id]
	if !ok {
		return ErrNotFound
	}
	emp.PasswordHash = hash
	f.employees[id] = emp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

func newTestService(store StoreAPI) *Service {
	return NewService(store, compensation.NewCalculator(compensation.SalaryPeriodMonthly), "starter-pass", 160)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateComputesCostAndDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		Name:            "Ada",
		Email:           "Ada@Example.com",
		Salary:          floatPtr(4000),
		OverheadPercent: floatPtr(20),
		MonthlyHours:    floatPtr(160),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if emp.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %s", emp.Email)
	}
	if emp.Role != "employee" {
		t.Fatalf("expected default role employee, got %s", emp.Role)
	}
	if emp.EffectiveHourlyCost != 30.00 {
		t.Fatalf("expected cost 30.00, got %v", emp.EffectiveHourlyCost)
	}
	if emp.PasswordHash == "" || emp.PasswordHash == "starter-pass" {
		t.Fatal("expected password to be hashed")
	}
}

func TestCreateDefaultsMonthlyHours(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{Email: "b@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if emp.MonthlyHours != 160 {
		t.Fatalf("expected default 160 monthly hours, got %v", emp.MonthlyHours)
	}
	if emp.EffectiveHourlyCost != 0 {
		t.Fatalf("expected zero cost without salary, got %v", emp.EffectiveHourlyCost)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.Create(context.Background(), CreateInput{Email: "dup@example.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateInput{Email: "dup@example.com"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestCreateRequiresPasswordWithoutDefault(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, compensation.NewCalculator(compensation.SalaryPeriodMonthly), "", 160)

	_, err := svc.Create(context.Background(), CreateInput{Email: "nopass@example.com"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
	if len(store.employees) != 0 {
		t.Fatal("expected no account to be created without a password")
	}

	if _, err := svc.Create(context.Background(), CreateInput{Email: "haspass@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("create with explicit password failed: %v", err)
	}
}

func TestBulkImportContinuesPastDuplicates(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.Create(context.Background(), CreateInput{Email: "taken@example.com"}); err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	created, errs := svc.BulkImport(context.Background(), []CreateInput{
		{Name: "One", Email: "one@example.com", Salary: floatPtr(4000), MonthlyHours: floatPtr(160)},
		{Name: "Dup", Email: "taken@example.com"},
		{Name: "Two", Email: "two@example.com"},
	})

	if len(created) != 2 {
		t.Fatalf("expected 2 imports despite duplicate, got %d", len(created))
	}
	if created[0].EffectiveHourlyCost != 25.00 {
		t.Fatalf("expected imported cost 25.00, got %v", created[0].EffectiveHourlyCost)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one collected error, got %v", errs)
	}
	if created[1].Email != "two@example.com" {
		t.Fatalf("expected import to continue past the duplicate, got %+v", created[1])
	}
}

func TestApplyJiraSyncUpdatesIdentity(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		Name:   "Old Name",
		Email:  "old@example.com",
		Salary: floatPtr(4000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	synced, err := svc.ApplyJiraSync(context.Background(), emp.ID, "New Name", "New@Example.com", "acct-1")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if synced.Name != "New Name" || synced.Email != "new@example.com" || synced.AccountID != "acct-1" {
		t.Fatalf("unexpected synced identity %+v", synced)
	}
	if synced.Salary != 4000 {
		t.Fatalf("expected cost data untouched, got %+v", synced)
	}
}

func TestApplyJiraSyncKeepsFieldsJiraOmits(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{Name: "Keep", Email: "keep@example.com", AccountID: "acct-2"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	synced, err := svc.ApplyJiraSync(context.Background(), emp.ID, "", "", "")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if synced.Name != "Keep" || synced.Email != "keep@example.com" || synced.AccountID != "acct-2" {
		t.Fatalf("expected current values preserved, got %+v", synced)
	}
}

func TestApplyJiraSyncRejectsCollisions(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.Create(context.Background(), CreateInput{Email: "other@example.com", AccountID: "acct-other"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	emp, err := svc.Create(context.Background(), CreateInput{Email: "mine@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.ApplyJiraSync(context.Background(), emp.ID, "", "other@example.com", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := svc.ApplyJiraSync(context.Background(), emp.ID, "", "", "acct-other"); !errors.Is(err, ErrAccountIDExists) {
		t.Fatalf("expected ErrAccountIDExists, got %v", err)
	}

	stored, _ := store.Get(context.Background(), emp.ID)
	if stored.Email != "mine@example.com" || stored.AccountID != "" {
		t.Fatalf("expected record unmodified after rejected sync, got %+v", stored)
	}
}

func TestApplyResourceUpdateRecomputesFromMergedValues(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		Email:           "c@example.com",
		Salary:          floatPtr(4000),
		OverheadPercent: floatPtr(20),
		MonthlyHours:    floatPtr(160),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Only salary changes; overhead and hours come from the stored record.
	updated, err := svc.ApplyResourceUpdate(context.Background(), emp.ID, ResourcePatch{Salary: floatPtr(8000)})
	if err != nil {
		t.Fatalf("resource update failed: %v", err)
	}
	if updated.EffectiveHourlyCost != 60.00 {
		t.Fatalf("expected cost 60.00 from merged values, got %v", updated.EffectiveHourlyCost)
	}
	if updated.OverheadPercent != 20 || updated.MonthlyHours != 160 {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestApplyResourceUpdateEmptyPatchKeepsCost(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		Email:        "d@example.com",
		Salary:       floatPtr(4000),
		MonthlyHours: floatPtr(160),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.ApplyResourceUpdate(context.Background(), emp.ID, ResourcePatch{})
	if err != nil {
		t.Fatalf("resource update failed: %v", err)
	}
	if updated.EffectiveHourlyCost != emp.EffectiveHourlyCost {
		t.Fatalf("expected cost unchanged, got %v want %v", updated.EffectiveHourlyCost, emp.EffectiveHourlyCost)
	}
}

func TestApplyResourceUpdateIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{Email: "e@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	patch := ResourcePatch{Salary: floatPtr(5500), OverheadPercent: floatPtr(15), MonthlyHours: floatPtr(150)}
	first, err := svc.ApplyResourceUpdate(context.Background(), emp.ID, patch)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	second, err := svc.ApplyResourceUpdate(context.Background(), emp.ID, patch)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if first.EffectiveHourlyCost != second.EffectiveHourlyCost {
		t.Fatalf("expected identical cost on repeat, got %v then %v", first.EffectiveHourlyCost, second.EffectiveHourlyCost)
	}
}

func TestApplyResourceUpdateValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		Email:        "f@example.com",
		Salary:       floatPtr(4000),
		MonthlyHours: floatPtr(160),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tests := []struct {
		name  string
		patch ResourcePatch
	}{
		{"negative salary", ResourcePatch{Salary: floatPtr(-1)}},
		{"overhead above 100", ResourcePatch{OverheadPercent: floatPtr(101)}},
		{"negative overhead", ResourcePatch{OverheadPercent: floatPtr(-0.5)}},
		{"zero hours", ResourcePatch{MonthlyHours: floatPtr(0)}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ApplyResourceUpdate(context.Background(), emp.ID, tc.patch)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			stored, _ := store.Get(context.Background(), emp.ID)
			if stored.Salary != 4000 || stored.EffectiveHourlyCost != emp.EffectiveHourlyCost {
				t.Fatalf("expected record unmodified after validation error, got %+v", stored)
			}
		})
	}
}

func TestApplyResourceUpdateMissingEmployee(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.ApplyResourceUpdate(context.Background(), "nope", ResourcePatch{Salary: floatPtr(1)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCostSummaryAggregatesFleet(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.Create(context.Background(), CreateInput{
		Email:           "g@example.com",
		Salary:          floatPtr(4000),
		OverheadPercent: floatPtr(20),
		MonthlyHours:    floatPtr(160),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Email: "h@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	employees, summary, err := svc.CostSummary(context.Background())
	if err != nil {
		t.Fatalf("cost summary failed: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if summary.TotalMonthlyCost != 4800.00 {
		t.Fatalf("expected total monthly 4800.00, got %v", summary.TotalMonthlyCost)
	}
	if summary.AvgHourlyCost != 15.00 {
		t.Fatalf("expected avg hourly 15.00, got %v", summary.AvgHourlyCost)
	}
}
