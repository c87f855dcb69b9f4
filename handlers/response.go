package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/karanagg166/TaskFlow/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func pathObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}

// parseDateParam accepts the date formats the frontend sends: plain dates and
// full timestamps. An empty value means the filter is not set.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func taskFilterFromQuery(query url.Values) (services.TaskFilter, error) {
	dueDate, err := parseDateParam(query.Get("dueDate"))
	if err != nil {
		return services.TaskFilter{}, err
	}
	createdDate, err := parseDateParam(query.Get("createTaskDate"))
	if err != nil {
		return services.TaskFilter{}, err
	}

	return services.TaskFilter{
		DueDate:        dueDate,
		CreatedDate:    createdDate,
		AssignedByName: query.Get("assignedBy"),
		GroupName:      query.Get("groupName"),
		Status:         query.Get("status"),
		Priority:       query.Get("priority"),
	}, nil
}
