package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/karanagg166/TaskFlow/services"
)

type GroupHandler struct {
	GroupService  *services.GroupService
	TaskService   *services.TaskService
	ReportService *services.ReportService
}

func NewGroupHandler(groupService *services.GroupService, taskService *services.TaskService, reportService *services.ReportService) *GroupHandler {
	return &GroupHandler{
		GroupService:  groupService,
		TaskService:   taskService,
		ReportService: reportService,
	}
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   *bool  `json:"isPrivate"`
	Password    string `json:"password"`
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	creatorID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if req.Name == "" || req.IsPrivate == nil || (*req.IsPrivate && req.Password == "") {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	group, err := h.GroupService.CreateGroup(r.Context(), creatorID, req.Name, req.Description, *req.IsPrivate, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"group":   group,
	})
}

func (h *GroupHandler) GetUserGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	groups, err := h.GroupService.GetUserGroups(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch groups")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"groups":  groups,
	})
}

func (h *GroupHandler) GetAllGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.GroupService.GetAllGroups(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoGroups) {
			writeError(w, http.StatusNotFound, "No groups found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch groups")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"groups":  groups,
	})
}

func (h *GroupHandler) GroupInfo(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	info, err := h.GroupService.GetGroupInfo(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "Group not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch group info")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"group":   info,
	})
}

func (h *GroupHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}
	requesterID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	members, admins, err := h.GroupService.GetGroupMembers(r.Context(), groupID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "Group not found")
		case errors.Is(err, services.ErrNotInGroup):
			writeError(w, http.StatusForbidden, "You are not a member or admin of this group")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to fetch members")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"members": members,
		"admins":  admins,
	})
}

type JoinGroupRequest struct {
	Password string `json:"password"`
}

func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}
	userID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.GroupService.JoinGroup(r.Context(), groupID, userID, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "Group not found")
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrWrongGroupPassword):
			writeError(w, http.StatusUnauthorized, "Incorrect password for this group")
		case errors.Is(err, services.ErrAlreadyInGroup):
			writeError(w, http.StatusConflict, "User is already in the group")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to join group")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User added to group successfully",
	})
}

func (h *GroupHandler) GroupTasks(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}
	requesterID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	tasks, err := h.TaskService.GetGroupTasks(r.Context(), groupID, requesterID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "Group not found")
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

func (h *GroupHandler) Report(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}
	requesterID, err := pathObjectID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	filter, err := taskFilterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date filter")
		return
	}

	filePath, err := h.ReportService.GenerateReport(r.Context(), groupID, requesterID, filter)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			writeError(w, http.StatusNotFound, "Group not found")
		case errors.Is(err, services.ErrNotGroupAdmin):
			writeError(w, http.StatusForbidden, "You are not authorized")
		case errors.Is(err, services.ErrNoTasksFound):
			writeError(w, http.StatusNotFound, "No tasks found.")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to generate report")
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tasks_report.csv"`)
	http.ServeFile(w, r, filePath)
}
