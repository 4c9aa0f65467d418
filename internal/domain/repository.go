package domain

// RunFilter narrows a history listing
type RunFilter struct {
	Status RunStatus // Empty matches every status
	Limit  int       // Zero or less means no limit
}

// RunRepository defines the interface for run history persistence
type RunRepository interface {
	// Create stores a new run
	Create(run *Run) error

	// Update saves an existing run
	Update(run *Run) error

	// FindByID finds a run by ID
	FindByID(id string) (*Run, error)

	// FindRecent lists runs newest first
	FindRecent(filter RunFilter) ([]*Run, error)

	// GetStats returns run counts by status
	GetStats() (*RunStats, error)
}

// RunStats represents run history statistics
type RunStats struct {
	Total     int64 `json:"total"`
	Running   int64 `json:"running"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}
