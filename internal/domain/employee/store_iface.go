package employee

import "context"

type StoreAPI interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	AccountIDExists(ctx context.Context, accountID string) (bool, error)
	Update(ctx context.Context, id string, emp Employee) (Employee, error)
	// UpdateResources persists all three cost inputs together with the
	// derived hourly cost in a single statement, so readers never observe
	// fresh inputs with a stale derived value.
	UpdateResources(ctx context.Context, id string, salary, overheadPercent, monthlyHours, effectiveHourlyCost float64) (Employee, error)
	// UpdateJiraIdentity overwrites the identity fields a Jira sync owns
	// (name, email, account id) without touching cost or point data.
	UpdateJiraIdentity(ctx context.Context, id, name, email, accountID string) (Employee, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
