package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karanagg166/TaskFlow/handlers"
	"github.com/karanagg166/TaskFlow/services"

	"github.com/gorilla/mux"
)

// The rejection paths below all fail before the service touches a collection,
// so a TaskService over nil collections is enough to drive the handlers.

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestCreatePersonalTaskRejectsUnknownPriority(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	payload := `{"title":"sort paperwork","dueDate":"2024-06-01","priority":"Urgent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/createtask", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.CreatePersonalTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("error body should carry success:false")
	}
	if body["message"] != "Invalid task priority" {
		t.Errorf("message = %v, want priority rejection", body["message"])
	}
}

func TestCreateGroupTaskRejectsUnknownPriority(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	payload := `{"title":"plan meetup","priority":"Urgent","group":"656f1f77bcf86cd799439011"}`
	req := httptest.NewRequest(http.MethodPost, "/api/656f1f77bcf86cd799439012/create_group_task", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": "656f1f77bcf86cd799439012"})
	rec := httptest.NewRecorder()

	handler.CreateGroupTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid task priority" {
		t.Errorf("message = %v, want priority rejection", body["message"])
	}
}

func TestCreatePersonalTaskRejectsBadDueDate(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	payload := `{"title":"sort paperwork","dueDate":"next tuesday"}`
	req := httptest.NewRequest(http.MethodPost, "/api/createtask", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.CreatePersonalTask(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetSpecificTasksRejectsBadDateFilter(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/656f1f77bcf86cd799439012/specific_tasks?dueDate=not-a-date", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "656f1f77bcf86cd799439012"})
	rec := httptest.NewRecorder()

	handler.GetSpecificTasks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid date filter" {
		t.Errorf("message = %v, want date-filter rejection", body["message"])
	}
}

func TestGetAllTasksRejectsBadUserID(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/not-hex/tasks", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-hex"})
	rec := httptest.NewRecorder()

	handler.GetAllTasks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChangeStatusRequiresRequesterID(t *testing.T) {
	handler := handlers.NewTaskHandler(services.NewTaskService(nil, nil, nil))

	payload := `{"newStatus":"Completed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/656f1f77bcf86cd799439013/change_status", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"taskId": "656f1f77bcf86cd799439013"})
	rec := httptest.NewRecorder()

	handler.ChangeStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "A requester user ID is required" {
		t.Errorf("message = %v, want requester-id rejection", body["message"])
	}
}
