package services_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskFilterQueryEmpty(t *testing.T) {
	userID := primitive.NewObjectID()

	query := services.TaskFilter{}.Query(userID)

	want := bson.M{"assignedUser": userID}
	if !reflect.DeepEqual(query, want) {
		t.Errorf("empty filter query = %v, want %v", query, want)
	}
}

func TestTaskFilterQueryAllFields(t *testing.T) {
	userID := primitive.NewObjectID()
	creatorID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()
	dueDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	createdDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	filter := services.TaskFilter{
		DueDate:         &dueDate,
		CreatedDate:     &createdDate,
		Status:          "pend",
		Priority:        "high",
		ResolvedCreator: &creatorID,
		ResolvedGroup:   &groupID,
	}

	query := filter.Query(userID)

	want := bson.M{
		"assignedUser": userID,
		"dueDate":      bson.M{"$gte": dueDate},
		"createdAt":    bson.M{"$gte": createdDate},
		"createdBy":    creatorID,
		"group":        groupID,
		"status":       bson.M{"$regex": "pend", "$options": "i"},
		"priority":     bson.M{"$regex": "high", "$options": "i"},
	}
	if !reflect.DeepEqual(query, want) {
		t.Errorf("query = %v, want %v", query, want)
	}
}

func TestTaskFilterMatchesDueDateLowerBound(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := services.TaskFilter{DueDate: &cutoff}

	early := models.Task{DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	late := models.Task{DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	if filter.Matches(early, "") {
		t.Error("task due before the cutoff should not match")
	}
	if !filter.Matches(late, "") {
		t.Error("task due after the cutoff should match")
	}

	exact := models.Task{DueDate: cutoff}
	if !filter.Matches(exact, "") {
		t.Error("dueDate filter is an inclusive lower bound")
	}
}

func TestTaskFilterMatchesCreatorNameSubstring(t *testing.T) {
	filter := services.TaskFilter{AssignedByName: "ali"}

	task := models.Task{Status: models.StatusPending}
	if !filter.Matches(task, "Alice Smith") {
		t.Error("case-insensitive substring of creator name should match")
	}
	if filter.Matches(task, "Bob") {
		t.Error("non-matching creator name should not match")
	}
}

func TestTaskFilterMatchesStatusAndPriority(t *testing.T) {
	filter := services.TaskFilter{Status: "progress", Priority: "LOW"}

	matching := models.Task{Status: models.StatusInProgress, Priority: models.PriorityLow}
	if !filter.Matches(matching, "") {
		t.Error("status/priority substrings should match case-insensitively")
	}

	wrongStatus := models.Task{Status: models.StatusCompleted, Priority: models.PriorityLow}
	if filter.Matches(wrongStatus, "") {
		t.Error("all supplied filters must hold together")
	}
}
