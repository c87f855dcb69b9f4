package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enum validation runs before any collection access, so these tests exercise
// the rejection paths without a database.

func TestCreateTaskRejectsInvalidPriority(t *testing.T) {
	taskService := services.NewTaskService(nil, nil, nil)

	_, err := taskService.CreateTask(context.Background(), models.Task{
		Title:    "sort paperwork",
		Priority: "Urgent",
	})

	if !errors.Is(err, services.ErrInvalidPriority) {
		t.Errorf("CreateTask with priority \"Urgent\" returned %v, want ErrInvalidPriority", err)
	}
}

func TestCreateTaskRejectsInvalidStatus(t *testing.T) {
	taskService := services.NewTaskService(nil, nil, nil)

	_, err := taskService.CreateTask(context.Background(), models.Task{
		Title:  "sort paperwork",
		Status: "Done",
	})

	if !errors.Is(err, services.ErrInvalidStatus) {
		t.Errorf("CreateTask with status \"Done\" returned %v, want ErrInvalidStatus", err)
	}
}

func TestCreateGroupTaskRejectsInvalidPriority(t *testing.T) {
	taskService := services.NewTaskService(nil, nil, nil)
	groupID := primitive.NewObjectID()

	_, err := taskService.CreateGroupTask(context.Background(), primitive.NewObjectID(), models.Task{
		Title:    "plan meetup",
		Priority: "critical",
		Group:    &groupID,
	})

	if !errors.Is(err, services.ErrInvalidPriority) {
		t.Errorf("CreateGroupTask with priority \"critical\" returned %v, want ErrInvalidPriority", err)
	}
}

func TestChangeStatusRejectsInvalidStatus(t *testing.T) {
	taskService := services.NewTaskService(nil, nil, nil)

	_, err := taskService.ChangeStatus(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "Archived")

	if !errors.Is(err, services.ErrInvalidStatus) {
		t.Errorf("ChangeStatus with status \"Archived\" returned %v, want ErrInvalidStatus", err)
	}
}
