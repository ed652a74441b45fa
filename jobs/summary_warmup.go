package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protrack-app/protrack/internal/summary"
)

// SummaryWarmupJob pre-populates rollup caches for active projects so the
// first dashboard hit after an invalidation does not pay the compute cost.
type SummaryWarmupJob struct {
	Summaries *summary.Service
	Pool      *pgxpool.Pool
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(summaries *summary.Service, pool *pgxpool.Pool, logger *slog.Logger) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Summaries: summaries,
		Pool:      pool,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes TaskSummaryWarmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Summaries == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	started := j.now()
	logger.Info("starting summary warmup")

	tenants, err := j.resolveTenants(ctx, payload)
	if err != nil {
		logger.Error("load warmup tenants", slog.Any("error", err))
		return err
	}
	if len(tenants) == 0 {
		logger.Info("no tenants discovered for warmup")
		return nil
	}

	warmed := 0
	for _, tenantID := range tenants {
		// Bound each tenant so a slow one cannot stall the whole run.
		tenantCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		n, err := j.Summaries.WarmupActive(tenantCtx, tenantID)
		cancel()
		if err != nil {
			logger.Error("warm tenant", slog.String("tenant_id", tenantID.String()), slog.Any("error", err))
			return err
		}
		warmed += n
	}

	logger.Info("completed summary warmup",
		slog.Int("tenants", len(tenants)),
		slog.Int("projects", warmed),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *SummaryWarmupJob) resolveTenants(ctx context.Context, payload SummaryWarmupPayload) ([]uuid.UUID, error) {
	if payload.TenantID != "" {
		id, err := uuid.Parse(payload.TenantID)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{id}, nil
	}
	if j.Pool == nil {
		return nil, errors.New("summary warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT DISTINCT tenant_id FROM projects ORDER BY tenant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSummaryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskSummaryWarmup))
}

func (j *SummaryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
