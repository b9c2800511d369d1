package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lane string

const (
	LaneToDo       Lane = "To-Do"
	LaneInProgress Lane = "In Progress"
	LaneDone       Lane = "Done"
)

func (l Lane) IsValid() bool {
	switch l {
	case LaneToDo, LaneInProgress, LaneDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a unit of work on the board. Order is a zero-based position within
// the task's lane; the service keeps lane orders dense (0..n-1).
type Task struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Lane        Lane               `json:"lane" bson:"lane"`
	Order       int                `json:"order" bson:"order"`
	Deadline    time.Time          `json:"deadline" bson:"deadline"`
	Priority    Priority           `json:"priority" bson:"priority"`
	OwnerName   string             `json:"ownerName" bson:"ownerName"`
	OwnerEmail  string             `json:"ownerEmail" bson:"ownerEmail"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// TaskAssignment is one entry of a bulk reorder: the task's new order and lane.
type TaskAssignment struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
	Lane  Lane   `json:"lane" validate:"required,oneof='To-Do' 'In Progress' 'Done'"`
}
