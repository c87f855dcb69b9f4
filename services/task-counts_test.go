package services_test

import (
	"testing"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"
)

func TestBuildTaskCounts(t *testing.T) {
	rows := []services.StatusPriorityCount{
		{Status: models.StatusPending, Priority: models.PriorityLow, Count: 2},
		{Status: models.StatusInProgress, Priority: models.PriorityHigh, Count: 1},
	}

	counts := services.BuildTaskCounts(rows)

	if counts.Pending.Total != 2 || counts.Pending.Low != 2 || counts.Pending.Medium != 0 || counts.Pending.High != 0 {
		t.Errorf("Pending = %+v, want total 2 with 2 Low", counts.Pending)
	}
	if counts.InProgress.Total != 1 || counts.InProgress.High != 1 || counts.InProgress.Low != 0 {
		t.Errorf("InProgress = %+v, want total 1 with 1 High", counts.InProgress)
	}
	if counts.Completed.Total != 0 || counts.Completed.Low != 0 || counts.Completed.Medium != 0 || counts.Completed.High != 0 {
		t.Errorf("Completed = %+v, want all zero", counts.Completed)
	}
}

func TestBuildTaskCountsEmpty(t *testing.T) {
	counts := services.BuildTaskCounts(nil)

	if counts.Pending.Total != 0 || counts.InProgress.Total != 0 || counts.Completed.Total != 0 {
		t.Errorf("empty rows should produce an all-zero matrix, got %+v", counts)
	}
}

func TestBuildTaskCountsMultiplePrioritiesPerStatus(t *testing.T) {
	rows := []services.StatusPriorityCount{
		{Status: models.StatusPending, Priority: models.PriorityLow, Count: 1},
		{Status: models.StatusPending, Priority: models.PriorityMedium, Count: 3},
		{Status: models.StatusPending, Priority: models.PriorityHigh, Count: 2},
	}

	counts := services.BuildTaskCounts(rows)

	if counts.Pending.Total != 6 {
		t.Errorf("Pending.Total = %d, want 6", counts.Pending.Total)
	}
	if counts.Pending.Low != 1 || counts.Pending.Medium != 3 || counts.Pending.High != 2 {
		t.Errorf("Pending priorities = %+v, want 1/3/2", counts.Pending)
	}
}

func TestBuildTaskCountsIgnoresUnknownStatus(t *testing.T) {
	rows := []services.StatusPriorityCount{
		{Status: "Archived", Priority: models.PriorityLow, Count: 5},
	}

	counts := services.BuildTaskCounts(rows)

	if counts.Pending.Total != 0 || counts.InProgress.Total != 0 || counts.Completed.Total != 0 {
		t.Errorf("unknown status should not land in any bucket, got %+v", counts)
	}
}
