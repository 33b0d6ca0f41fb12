package models

import (
	"sync"
	"time"
)

// CreationState represents the progress of the current scaffolding run
type CreationState struct {
	IsActive     bool
	ProjectName  string
	CurrentStage string
	Progress     float64
	StartTime    time.Time
}

// CreationResult summarizes a finished scaffolding run
type CreationResult struct {
	ProjectName  string
	Destination  string
	Template     string
	FilesCopied  int
	FilesEdited  int
	BytesWritten int64
	Duration     time.Duration
}

// CreationStateRepository manages creation state shared between the
// service goroutine and the UI
type CreationStateRepository struct {
	mu    sync.RWMutex
	state CreationState
	last  *CreationResult
}

// NewCreationStateRepository creates a new creation state repository
func NewCreationStateRepository() *CreationStateRepository {
	return &CreationStateRepository{}
}

// GetState returns the current creation state
func (csr *CreationStateRepository) GetState() CreationState {
	csr.mu.RLock()
	defer csr.mu.RUnlock()
	return csr.state
}

// Start marks a creation as active. It returns false if one is already running.
func (csr *CreationStateRepository) Start(projectName string) bool {
	csr.mu.Lock()
	defer csr.mu.Unlock()

	if csr.state.IsActive {
		return false
	}

	csr.state = CreationState{
		IsActive:     true,
		ProjectName:  projectName,
		CurrentStage: "Validating",
		StartTime:    time.Now(),
	}
	return true
}

// UpdateProgress updates the stage label and progress fraction
func (csr *CreationStateRepository) UpdateProgress(stage string, progress float64) {
	csr.mu.Lock()
	defer csr.mu.Unlock()

	if !csr.state.IsActive {
		return
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	csr.state.CurrentStage = stage
	csr.state.Progress = progress
}

// Complete marks the creation as finished and records its result
func (csr *CreationStateRepository) Complete(result *CreationResult) {
	csr.mu.Lock()
	defer csr.mu.Unlock()

	csr.state.IsActive = false
	csr.state.CurrentStage = "Complete"
	csr.state.Progress = 1.0
	if result != nil {
		csr.last = result
	}
}

// Fail marks the creation as stopped without a result
func (csr *CreationStateRepository) Fail(stage string) {
	csr.mu.Lock()
	defer csr.mu.Unlock()

	csr.state.IsActive = false
	csr.state.CurrentStage = stage
}

// IsActive returns true while a creation is running
func (csr *CreationStateRepository) IsActive() bool {
	csr.mu.RLock()
	defer csr.mu.RUnlock()
	return csr.state.IsActive
}

// LastResult returns the most recent successful result, or nil
func (csr *CreationStateRepository) LastResult() *CreationResult {
	csr.mu.RLock()
	defer csr.mu.RUnlock()
	return csr.last
}
