package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karanagg166/TaskFlow/logging"
	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTaskNotFound      = errors.New("task not found or you're not authorized")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrStatusNotAllowed  = errors.New("you are not allowed to change the status of this task")
	ErrAssignedByUnknown = errors.New("assigned user not found")
)

type TaskService struct {
	TasksCollection  *mongo.Collection
	GroupsCollection *mongo.Collection
	UsersCollection  *mongo.Collection
}

func NewTaskService(tasksCollection, groupsCollection, usersCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:  tasksCollection,
		GroupsCollection: groupsCollection,
		UsersCollection:  usersCollection,
	}
}

// CreateTask inserts a task from caller-supplied fields. Status and priority
// fall back to their defaults when omitted; referenced ids are trusted.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Status.IsValid() {
		return models.Task{}, ErrInvalidStatus
	}
	if !task.Priority.IsValid() {
		return models.Task{}, ErrInvalidPriority
	}

	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task '%s' created by %s", task.Title, task.CreatedBy.Hex())
	return task, nil
}

// CreateGroupTask inserts a group task. The creator defaults to the path id
// when the body does not carry one.
func (s *TaskService) CreateGroupTask(ctx context.Context, pathUserID primitive.ObjectID, task models.Task) (models.Task, error) {
	if task.CreatedBy.IsZero() {
		task.CreatedBy = pathUserID
	}
	return s.CreateTask(ctx, task)
}

// GetUserTasks returns all tasks assigned to the user, newest first.
func (s *TaskService) GetUserTasks(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"assignedUser": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

// GetGroupTasks returns the tasks a requester may see in a group: admins see
// every task, other users only the tasks assigned to them.
func (s *TaskService) GetGroupTasks(ctx context.Context, groupID, requesterID primitive.ObjectID) ([]models.Task, error) {
	var group models.Group
	if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group); err != nil {
		return nil, ErrGroupNotFound
	}

	filter := bson.M{"group": groupID}
	if group.RoleOf(requesterID) != models.RoleAdmin {
		filter["assignedUser"] = requesterID
	}

	cursor, err := s.TasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

// FilterTasks resolves the name filters to ids and runs the combined query
// against the user's tasks. An unknown assignedBy name is an error, an unknown
// group name is silently ignored.
func (s *TaskService) FilterTasks(ctx context.Context, userID primitive.ObjectID, filter TaskFilter) ([]models.Task, error) {
	if filter.AssignedByName != "" {
		var creator models.User
		err := s.UsersCollection.FindOne(ctx, bson.M{
			"name": bson.M{"$regex": filter.AssignedByName, "$options": "i"},
		}).Decode(&creator)
		if err != nil {
			return nil, ErrAssignedByUnknown
		}
		filter.ResolvedCreator = &creator.ID
	}

	if filter.GroupName != "" {
		var group models.Group
		err := s.GroupsCollection.FindOne(ctx, bson.M{
			"name": bson.M{"$regex": filter.GroupName, "$options": "i"},
		}).Decode(&group)
		if err == nil {
			filter.ResolvedGroup = &group.ID
		}
	}

	cursor, err := s.TasksCollection.Find(ctx, filter.Query(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

// ChangeStatus sets a new status on a task. The requester must be the task's
// assignee, its creator, or an admin of the task's group.
func (s *TaskService) ChangeStatus(ctx context.Context, taskID, requesterID primitive.ObjectID, newStatus models.TaskStatus) (models.Task, error) {
	if !newStatus.IsValid() {
		return models.Task{}, ErrInvalidStatus
	}

	var task models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	allowed := task.AssignedUser == requesterID || task.CreatedBy == requesterID
	if !allowed && !task.IsPersonal() {
		var group models.Group
		if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": *task.Group}).Decode(&group); err == nil {
			allowed = group.RoleOf(requesterID) == models.RoleAdmin
		}
	}
	if !allowed {
		return models.Task{}, ErrStatusNotAllowed
	}

	update := bson.M{"$set": bson.M{"status": newStatus, "updatedAt": time.Now()}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update); err != nil {
		return models.Task{}, fmt.Errorf("failed to update task status: %v", err)
	}

	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		return models.Task{}, fmt.Errorf("failed to retrieve updated task: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_STATUS_CHANGED, Description: Task %s set to %s by %s", taskID.Hex(), newStatus, requesterID.Hex())
	return task, nil
}

// DeleteTask removes a task, but only for its creator. Anything else reports
// the combined not-found/not-authorized error.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, requesterID primitive.ObjectID) error {
	result, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID, "createdBy": requesterID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by %s", taskID.Hex(), requesterID.Hex())
	return nil
}

// StatusPriorityCount is one aggregation row: the number of tasks carrying a
// given status and priority.
type StatusPriorityCount struct {
	Status   models.TaskStatus   `bson:"status"`
	Priority models.TaskPriority `bson:"priority"`
	Count    int                 `bson:"count"`
}

// GetTaskCounts aggregates the user's tasks into the fixed status x priority
// matrix.
func (s *TaskService) GetTaskCounts(ctx context.Context, userID primitive.ObjectID) (models.TaskCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"assignedUser": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"status": "$status", "priority": "$priority"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"status":   "$_id.status",
			"priority": "$_id.priority",
			"count":    1,
		}}},
	}

	cursor, err := s.TasksCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.TaskCounts{}, fmt.Errorf("failed to aggregate task counts: %v", err)
	}
	defer cursor.Close(ctx)

	var rows []StatusPriorityCount
	if err := cursor.All(ctx, &rows); err != nil {
		return models.TaskCounts{}, fmt.Errorf("failed to decode task counts: %v", err)
	}

	return BuildTaskCounts(rows), nil
}

// BuildTaskCounts shapes aggregation rows into the fixed 3x4 matrix.
func BuildTaskCounts(rows []StatusPriorityCount) models.TaskCounts {
	var counts models.TaskCounts

	bucket := func(status models.TaskStatus) *models.PriorityCounts {
		switch status {
		case models.StatusPending:
			return &counts.Pending
		case models.StatusInProgress:
			return &counts.InProgress
		case models.StatusCompleted:
			return &counts.Completed
		}
		return nil
	}

	for _, row := range rows {
		b := bucket(row.Status)
		if b == nil {
			continue
		}
		b.Total += row.Count
		switch row.Priority {
		case models.PriorityLow:
			b.Low += row.Count
		case models.PriorityMedium:
			b.Medium += row.Count
		case models.PriorityHigh:
			b.High += row.Count
		}
	}

	return counts
}
