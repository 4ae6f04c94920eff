package projectcost

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Add(ctx context.Context, projectKey string, cost float64, description string) (Entry, error) {
	if description == "" {
		description = "Project cost entry"
	}
	var entry Entry
	err := s.DB.QueryRow(ctx, `
    INSERT INTO project_costs (project_key, cost, description)
    VALUES ($1, $2, $3)
    RETURNING id, project_key, cost, description, created_at
  `, projectKey, cost, description).Scan(&entry.ID, &entry.ProjectKey, &entry.Cost, &entry.Description, &entry.CreatedAt)
	return entry, err
}

func (s *Store) ListByProject(ctx context.Context, projectKey string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, project_key, cost, description, created_at
    FROM project_costs
    WHERE project_key = $1
    ORDER BY created_at
  `, projectKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.ProjectKey, &entry.Cost, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) Totals(ctx context.Context) ([]ProjectTotal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT project_key, SUM(cost), COUNT(1), MAX(created_at)
    FROM project_costs
    GROUP BY project_key
    ORDER BY project_key
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []ProjectTotal
	for rows.Next() {
		var total ProjectTotal
		if err := rows.Scan(&total.ProjectKey, &total.TotalCost, &total.EntryCount, &total.LastUpdated); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}
