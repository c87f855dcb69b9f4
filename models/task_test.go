package models_test

import (
	"testing"

	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskStatusIsValid(t *testing.T) {
	valid := []models.TaskStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted}
	for _, status := range valid {
		if !status.IsValid() {
			t.Errorf("status %q should be valid", status)
		}
	}

	invalid := []models.TaskStatus{"", "Done", "pending ", "COMPLETED!"}
	for _, status := range invalid {
		if status.IsValid() {
			t.Errorf("status %q should be invalid", status)
		}
	}
}

func TestTaskPriorityIsValid(t *testing.T) {
	valid := []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
	for _, priority := range valid {
		if !priority.IsValid() {
			t.Errorf("priority %q should be valid", priority)
		}
	}

	if models.TaskPriority("Urgent").IsValid() {
		t.Error("priority \"Urgent\" should be invalid")
	}
}

func TestTaskIsPersonal(t *testing.T) {
	task := models.Task{Title: "buy milk"}
	if !task.IsPersonal() {
		t.Error("task without group should be personal")
	}

	groupID := primitive.NewObjectID()
	task.Group = &groupID
	if task.IsPersonal() {
		t.Error("task with group should not be personal")
	}

	zero := primitive.NilObjectID
	task.Group = &zero
	if !task.IsPersonal() {
		t.Error("task with zero group id should be personal")
	}
}
