package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the state of a recorded run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the history record of one invocation
type Run struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	URL          string     `json:"url" gorm:"not null"`
	FileName     string     `json:"file_name"`
	Directory    string     `json:"directory"`
	Backend      string     `json:"backend"`
	Status       RunStatus  `json:"status" gorm:"not null;index"`
	ErrorKind    ErrorKind  `json:"error_kind,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	OutputPath   string     `json:"output_path,omitempty"`
	CommandLine  string     `json:"command_line,omitempty" gorm:"type:text"` // Escaped for display only
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewRun creates a running record for req
func NewRun(req *Request, backend string) *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.New().String(),
		URL:       req.URL(),
		FileName:  req.FileName(),
		Directory: req.Directory(),
		Backend:   backend,
		Status:    RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkCompleted marks the run as completed
func (r *Run) MarkCompleted(outputPath string) {
	r.Status = RunStatusCompleted
	r.OutputPath = outputPath
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the run as failed and records the error kind when known
func (r *Run) MarkFailed(err error) {
	r.Status = RunStatusFailed
	r.ErrorMessage = err.Error()
	if kind, ok := KindOf(err); ok {
		r.ErrorKind = kind
	}
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// IsTerminal checks if the run has finished
func (r *Run) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// ValidateRunStatus checks if a status filter value is valid
func ValidateRunStatus(status RunStatus) bool {
	return status == RunStatusRunning || status == RunStatusCompleted || status == RunStatusFailed
}
