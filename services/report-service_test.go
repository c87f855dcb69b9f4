package services_test

import (
	"testing"
	"time"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildReportRows(t *testing.T) {
	creator := primitive.NewObjectID()
	assignee := primitive.NewObjectID()
	taskID := primitive.NewObjectID()

	tasks := []models.Task{{
		ID:           taskID,
		Title:        "write minutes",
		DueDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.StatusPending,
		Priority:     models.PriorityHigh,
		AssignedUser: assignee,
		CreatedBy:    creator,
	}}
	names := map[primitive.ObjectID]string{
		creator:  "Alice",
		assignee: "Bob",
	}

	rows := services.BuildReportRows(tasks, names, "book-club")

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{taskID.Hex(), "write minutes", "2024-06-01", "Pending", "High", "Bob", "Alice", "book-club"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row[%d] = %q, want %q", i, rows[0][i], cell)
		}
	}

	if len(rows[0]) != len(services.ReportHeader) {
		t.Errorf("row has %d columns, header has %d", len(rows[0]), len(services.ReportHeader))
	}
}

func TestBuildReportRowsUnknownUsersFallBackToNA(t *testing.T) {
	tasks := []models.Task{{
		ID:        primitive.NewObjectID(),
		Title:     "orphan task",
		Status:    models.StatusCompleted,
		Priority:  models.PriorityLow,
		CreatedBy: primitive.NewObjectID(),
	}}

	rows := services.BuildReportRows(tasks, map[primitive.ObjectID]string{}, "book-club")

	if rows[0][5] != "N/A" {
		t.Errorf("assigned user cell = %q, want N/A", rows[0][5])
	}
	if rows[0][6] != "N/A" {
		t.Errorf("created by cell = %q, want N/A", rows[0][6])
	}
	if rows[0][2] != "" {
		t.Errorf("zero due date cell = %q, want empty", rows[0][2])
	}
}
