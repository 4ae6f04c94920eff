package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"crewhub/internal/domain/points"
	"crewhub/internal/platform/config"
	"crewhub/internal/platform/metrics"
)

const JobMonthlyRollover = "monthly_rollover"

type Service struct {
	DB      *pgxpool.Pool
	Cfg     config.Config
	Points  *points.Service
	Metrics *metrics.Collector
	queue   chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, pts *points.Service, collector *metrics.Collector) *Service {
	return &Service{
		DB:      db,
		Cfg:     cfg,
		Points:  pts,
		Metrics: collector,
		queue:   make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.RolloverInterval > 0 {
		go s.scheduleRollover(ctx, s.Cfg.RolloverInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// RunRolloverNow executes the monthly rollover synchronously and returns
// its result, recording the run like any scheduled execution.
func (s *Service) RunRolloverNow(ctx context.Context) (points.RolloverResult, error) {
	details, err := s.RunNow(ctx, JobMonthlyRollover, func(ctx context.Context) (any, error) {
		return s.Points.RunMonthlyRollover(ctx)
	})
	result, _ := details.(points.RolloverResult)
	return result, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	if s.Metrics != nil {
		s.Metrics.RecordJob(err != nil)
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// scheduleRollover enqueues the rollover on ticks that land on the last
// day of a month. The rollover itself skips employees already snapshotted
// for the current month, so repeated ticks on that day only cost no-op
// runs.
func (s *Service) scheduleRollover(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !lastDayOfMonth(time.Now().UTC()) {
				continue
			}
			s.Enqueue(JobMonthlyRollover, func(ctx context.Context) (any, error) {
				return s.Points.RunMonthlyRollover(ctx)
			})
		}
	}
}

func lastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
