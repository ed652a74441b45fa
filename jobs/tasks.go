package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSummaryWarmup is the task type for pre-warming project rollups.
	TaskSummaryWarmup = "summary:warmup"
)

// SummaryWarmupPayload scopes a warmup run. An empty TenantID means every
// tenant with at least one project.
type SummaryWarmupPayload struct {
	TenantID string `json:"tenant_id,omitempty"`
}

// NewSummaryWarmupTask constructs an Asynq task.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSummaryWarmup, data), nil
}
