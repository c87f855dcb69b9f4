package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/karanagg166/TaskFlow/models"
	"github.com/karanagg166/TaskFlow/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

// CreateTaskRequest carries ids and dates as strings so the frontend can send
// plain hex ids and bare dates.
type CreateTaskRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	DueDate      string              `json:"dueDate"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	AssignedUser string              `json:"assignedUser"`
	CreatedBy    string              `json:"createdBy"`
	Group        string              `json:"group"`
}

func (req CreateTaskRequest) toTask() (models.Task, error) {
	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}

	if req.DueDate != "" {
		dueDate, err := parseDateParam(req.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		task.DueDate = *dueDate
	}

	if req.AssignedUser != "" {
		id, err := primitive.ObjectIDFromHex(req.AssignedUser)
		if err != nil {
			return models.Task{}, err
		}
		task.AssignedUser = id
	}
	if req.CreatedBy != "" {
		id, err := primitive.ObjectIDFromHex(req.CreatedBy)
		if err != nil {
			return models.Task{}, err
		}
		task.CreatedBy = id
	}
	if req.Group != "" {
		id, err := primitive.ObjectIDFromHex(req.Group)
		if err != nil {
			return models.Task{}, err
		}
		task.Group = &id
	}

	return task, nil
}

func (h *TaskHandler) CreatePersonalTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	task, err := req.toTask()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), task)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid task status")
		case errors.Is(err, services.ErrInvalidPriority):
			writeError(w, http.StatusBadRequest, "Invalid task priority")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create task")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    created,
	})
}

func (h *TaskHandler) CreateGroupTask(w http.ResponseWriter, r *http.Request) {
	pathUserID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	task, err := req.toTask()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	created, err := h.TaskService.CreateGroupTask(r.Context(), pathUserID, task)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid task status")
		case errors.Is(err, services.ErrInvalidPriority):
			writeError(w, http.StatusBadRequest, "Invalid task priority")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create task")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"task":    created,
	})
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	tasks, err := h.TaskService.GetUserTasks(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   tasks,
	})
}

func (h *TaskHandler) GetSpecificTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	filter, err := taskFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date filter")
		return
	}

	tasks, err := h.TaskService.FilterTasks(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, services.ErrAssignedByUnknown) {
			writeError(w, http.StatusNotFound, "Assigned user not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   tasks,
	})
}

type ChangeStatusRequest struct {
	NewStatus models.TaskStatus `json:"newStatus"`
	UserID    string            `json:"userId"`
}

func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathObjectID(r, "taskId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	requesterID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "A requester user ID is required")
		return
	}

	task, err := h.TaskService.ChangeStatus(r.Context(), taskID, requesterID, req.NewStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid task status")
		case errors.Is(err, services.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, services.ErrStatusNotAllowed):
			writeError(w, http.StatusForbidden, "You are not allowed to change the status of this task")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to change task status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	requesterID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	taskID, err := pathObjectID(r, "taskId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), taskID, requesterID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found or you're not authorized to delete this task")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func (h *TaskHandler) TaskCount(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	counts, err := h.TaskService.GetTaskCounts(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate task counts")
		return
	}

	writeJSON(w, http.StatusOK, counts)
}
