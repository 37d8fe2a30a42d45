package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID
	Description string
	Completed   bool
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskSortField is a task attribute a listing can be ordered by.
type TaskSortField string

const (
	TaskSortDescription TaskSortField = "description"
	TaskSortCompleted   TaskSortField = "completed"
	TaskSortCreatedAt   TaskSortField = "createdAt"
	TaskSortUpdatedAt   TaskSortField = "updatedAt"
)

// Valid reports whether the field can be used for ordering.
func (f TaskSortField) Valid() bool {
	switch f {
	case TaskSortDescription, TaskSortCompleted, TaskSortCreatedAt, TaskSortUpdatedAt:
		return true
	}

	return false
}

// TaskSort orders a listing by a single field.
type TaskSort struct {
	Field      TaskSortField
	Descending bool
}

// TaskQuery narrows a listing of one owner's tasks.
// Limit <= 0 disables both limit and offset; otherwise Skip pages are skipped.
type TaskQuery struct {
	OwnerID   uuid.UUID
	Completed *bool
	Filter    string
	Sort      *TaskSort
	Limit     int
	Skip      int
}

// Offset returns the number of rows to skip, or 0 when no limit applies.
// It saturates at math.MaxInt instead of wrapping.
func (q TaskQuery) Offset() int {
	if q.Limit <= 0 || q.Skip <= 0 {
		return 0
	}
	if q.Skip > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return q.Skip * q.Limit
}
