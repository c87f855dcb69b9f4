package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/karanagg166/TaskFlow/logging"
	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotGroupAdmin = errors.New("you are not authorized")
	ErrNoTasksFound  = errors.New("no tasks found")
)

// ReportHeader is the column layout of the exported CSV.
var ReportHeader = []string{"ID", "Title", "Due Date", "Status", "Priority", "Assigned User", "Created By", "Group"}

type ReportService struct {
	GroupsCollection *mongo.Collection
	TasksCollection  *mongo.Collection
	UsersCollection  *mongo.Collection
	FilePath         string
}

func NewReportService(groupsCollection, tasksCollection, usersCollection *mongo.Collection, filePath string) *ReportService {
	return &ReportService{
		GroupsCollection: groupsCollection,
		TasksCollection:  tasksCollection,
		UsersCollection:  usersCollection,
		FilePath:         filePath,
	}
}

// GenerateReport filters a group's tasks and writes them to the configured CSV
// file. Only group admins may generate reports. Returns the file path.
func (s *ReportService) GenerateReport(ctx context.Context, groupID, requesterID primitive.ObjectID, filter TaskFilter) (string, error) {
	var group models.Group
	if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group); err != nil {
		return "", ErrGroupNotFound
	}

	if group.RoleOf(requesterID) != models.RoleAdmin {
		return "", ErrNotGroupAdmin
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"group": groupID})
	if err != nil {
		return "", fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return "", fmt.Errorf("failed to decode tasks: %v", err)
	}

	names, err := s.resolveNames(ctx, tasks)
	if err != nil {
		return "", err
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Matches(task, names[task.CreatedBy]) {
			filtered = append(filtered, task)
		}
	}

	if len(filtered) == 0 {
		return "", ErrNoTasksFound
	}

	rows := BuildReportRows(filtered, names, group.Name)
	if err := s.writeCSV(rows); err != nil {
		return "", err
	}

	logging.Logger.Infof("Event ID: REPORT_GENERATED, Description: Report for group %s with %d tasks", groupID.Hex(), len(filtered))
	return s.FilePath, nil
}

// BuildReportRows turns the filtered tasks into CSV rows, resolving user ids to
// names and falling back to N/A for unknown references.
func BuildReportRows(tasks []models.Task, names map[primitive.ObjectID]string, groupName string) [][]string {
	nameOrNA := func(id primitive.ObjectID) string {
		if name, ok := names[id]; ok && name != "" {
			return name
		}
		return "N/A"
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		dueDate := ""
		if !task.DueDate.IsZero() {
			dueDate = task.DueDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			task.ID.Hex(),
			task.Title,
			dueDate,
			string(task.Status),
			string(task.Priority),
			nameOrNA(task.AssignedUser),
			nameOrNA(task.CreatedBy),
			groupName,
		})
	}
	return rows
}

func (s *ReportService) writeCSV(rows [][]string) error {
	file, err := os.Create(s.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ReportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %v", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report rows: %v", err)
	}
	writer.Flush()
	return writer.Error()
}

// resolveNames collects every user referenced by the tasks and resolves their
// display names in a single query.
func (s *ReportService) resolveNames(ctx context.Context, tasks []models.Task) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(tasks)*2)
	for _, task := range tasks {
		for _, id := range []primitive.ObjectID{task.CreatedBy, task.AssignedUser} {
			if !id.IsZero() && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	opts := optionsFindProjection(bson.M{"_id": 1, "name": 1})
	cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.PublicUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}
