package services

import (
	"strings"
	"time"

	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskFilter is the filter specification built from optional query parameters.
// Name fields are resolved to ids by the service before the filter is turned
// into a store query; ResolvedCreator and ResolvedGroup hold the results.
type TaskFilter struct {
	DueDate        *time.Time
	CreatedDate    *time.Time
	AssignedByName string
	GroupName      string
	Status         string
	Priority       string

	ResolvedCreator *primitive.ObjectID
	ResolvedGroup   *primitive.ObjectID
}

// Query translates the filter into a Mongo query for tasks assigned to the
// given user. Dates are inclusive lower bounds, status and priority are
// case-insensitive substring matches, and every supplied filter ANDs together.
func (f TaskFilter) Query(assignedUser primitive.ObjectID) bson.M {
	query := bson.M{"assignedUser": assignedUser}

	if f.DueDate != nil {
		query["dueDate"] = bson.M{"$gte": *f.DueDate}
	}
	if f.CreatedDate != nil {
		query["createdAt"] = bson.M{"$gte": *f.CreatedDate}
	}
	if f.ResolvedCreator != nil {
		query["createdBy"] = *f.ResolvedCreator
	}
	if f.ResolvedGroup != nil {
		query["group"] = *f.ResolvedGroup
	}
	if f.Status != "" {
		query["status"] = bson.M{"$regex": f.Status, "$options": "i"}
	}
	if f.Priority != "" {
		query["priority"] = bson.M{"$regex": f.Priority, "$options": "i"}
	}

	return query
}

// Matches is the in-memory counterpart of Query used by the report generator,
// where the creator name is matched against an already-resolved join.
func (f TaskFilter) Matches(task models.Task, creatorName string) bool {
	if f.DueDate != nil && task.DueDate.Before(*f.DueDate) {
		return false
	}
	if f.CreatedDate != nil && task.CreatedAt.Before(*f.CreatedDate) {
		return false
	}
	if f.AssignedByName != "" &&
		!strings.Contains(strings.ToLower(creatorName), strings.ToLower(f.AssignedByName)) {
		return false
	}
	if f.Status != "" &&
		!strings.Contains(strings.ToLower(string(task.Status)), strings.ToLower(f.Status)) {
		return false
	}
	if f.Priority != "" &&
		!strings.Contains(strings.ToLower(string(task.Priority)), strings.ToLower(f.Priority)) {
		return false
	}
	return true
}

func optionsFindProjection(projection bson.M) *options.FindOptions {
	return options.Find().SetProjection(projection)
}
