package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	DueDate      time.Time           `bson:"dueDate,omitempty" json:"dueDate"`
	Status       TaskStatus          `bson:"status" json:"status"`
	Priority     TaskPriority        `bson:"priority" json:"priority"`
	AssignedUser primitive.ObjectID  `bson:"assignedUser,omitempty" json:"assignedUser"`
	CreatedBy    primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	Group        *primitive.ObjectID `bson:"group,omitempty" json:"group,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsPersonal reports whether the task has no group reference.
func (t *Task) IsPersonal() bool {
	return t.Group == nil || t.Group.IsZero()
}

// PriorityCounts is one row of the per-user aggregation matrix.
type PriorityCounts struct {
	Total  int `json:"total"`
	Low    int `json:"Low"`
	Medium int `json:"Medium"`
	High   int `json:"High"`
}

// TaskCounts is the fixed-shape status x priority aggregation returned by the
// taskcount endpoint.
type TaskCounts struct {
	Pending    PriorityCounts `json:"Pending"`
	InProgress PriorityCounts `json:"InProgress"`
	Completed  PriorityCounts `json:"Completed"`
}
