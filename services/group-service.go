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
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrNoGroups           = errors.New("no groups found")
	ErrWrongGroupPassword = errors.New("incorrect password for this group")
	ErrAlreadyInGroup     = errors.New("user is already in the group")
	ErrNotInGroup         = errors.New("you are not a member or admin of this group")
)

type GroupService struct {
	Client           *mongo.Client
	GroupsCollection *mongo.Collection
	UsersCollection  *mongo.Collection
}

func NewGroupService(client *mongo.Client, groupsCollection, usersCollection *mongo.Collection) *GroupService {
	return &GroupService{
		Client:           client,
		GroupsCollection: groupsCollection,
		UsersCollection:  usersCollection,
	}
}

// CreateGroup creates a group with the creator as sole admin and pushes the new
// group id onto the creator's group list. Both writes run in one transaction so
// a failure between them cannot leave the collections inconsistent.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID primitive.ObjectID, name, description string, isPrivate bool, password string) (models.Group, error) {
	group := models.Group{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Description:  description,
		CreatedBy:    creatorID,
		Members:      []primitive.ObjectID{},
		Admins:       []primitive.ObjectID{creatorID},
		IsPrivate:    isPrivate,
		JoinRequests: []primitive.ObjectID{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if isPrivate {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.Group{}, fmt.Errorf("failed to hash group password: %v", err)
		}
		group.Password = string(hashedPassword)
	}

	session, err := s.Client.StartSession()
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.GroupsCollection.InsertOne(sc, group); err != nil {
			return nil, err
		}

		update := bson.M{"$push": bson.M{"groups": group.ID}}
		if _, err := s.UsersCollection.UpdateOne(sc, bson.M{"_id": creatorID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to create group: %v", err)
	}

	logging.Logger.Infof("Event ID: GROUP_CREATED, Description: Group '%s' created by %s", group.Name, creatorID.Hex())
	return group, nil
}

// GetUserGroups returns the groups on the user's membership list with the
// creator name resolved for each.
func (s *GroupService) GetUserGroups(ctx context.Context, userID primitive.ObjectID) ([]models.GroupWithCreator, error) {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, ErrUserNotFound
	}

	if len(user.Groups) == 0 {
		return []models.GroupWithCreator{}, nil
	}

	cursor, err := s.GroupsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": user.Groups}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %v", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %v", err)
	}

	creatorIDs := make([]primitive.ObjectID, 0, len(groups))
	for _, group := range groups {
		creatorIDs = append(creatorIDs, group.CreatedBy)
	}
	names, err := s.resolveUserNames(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.GroupWithCreator, 0, len(groups))
	for _, group := range groups {
		group.Password = ""
		result = append(result, models.GroupWithCreator{
			Group:         group,
			CreatedByUser: names[group.CreatedBy],
		})
	}

	return result, nil
}

// GetAllGroups returns the id+name projection of every group.
func (s *GroupService) GetAllGroups(ctx context.Context) ([]models.GroupSummary, error) {
	opts := optionsFindProjection(bson.M{"_id": 1, "name": 1})
	cursor, err := s.GroupsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %v", err)
	}
	defer cursor.Close(ctx)

	var groups []models.GroupSummary
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %v", err)
	}

	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	return groups, nil
}

// GroupInfo is the public description of a group.
type GroupInfo struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	CreatedByName string             `json:"createdByName"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func (s *GroupService) GetGroupInfo(ctx context.Context, groupID primitive.ObjectID) (GroupInfo, error) {
	var group models.Group
	if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group); err != nil {
		return GroupInfo{}, ErrGroupNotFound
	}

	names, err := s.resolveUserNames(ctx, []primitive.ObjectID{group.CreatedBy})
	if err != nil {
		return GroupInfo{}, err
	}

	return GroupInfo{
		ID:            group.ID,
		Name:          group.Name,
		Description:   group.Description,
		CreatedByName: names[group.CreatedBy],
		CreatedAt:     group.CreatedAt,
	}, nil
}

// GetGroupMembers returns the member and admin projections of a group. The
// requester must be in one of the two lists.
func (s *GroupService) GetGroupMembers(ctx context.Context, groupID, requesterID primitive.ObjectID) ([]models.PublicUser, []models.PublicUser, error) {
	var group models.Group
	if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group); err != nil {
		return nil, nil, ErrGroupNotFound
	}

	if group.RoleOf(requesterID) == models.RoleNone {
		return nil, nil, ErrNotInGroup
	}

	members, err := s.fetchPublicUsers(ctx, group.Members)
	if err != nil {
		return nil, nil, err
	}
	admins, err := s.fetchPublicUsers(ctx, group.Admins)
	if err != nil {
		return nil, nil, err
	}

	return members, admins, nil
}

// JoinGroup adds the user to the group members and the group to the user's
// list, inside one transaction. Private groups require the correct password.
func (s *GroupService) JoinGroup(ctx context.Context, groupID, userID primitive.ObjectID, password string) error {
	var group models.Group
	if err := s.GroupsCollection.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group); err != nil {
		return ErrGroupNotFound
	}

	if group.IsPrivate {
		if err := bcrypt.CompareHashAndPassword([]byte(group.Password), []byte(password)); err != nil {
			return ErrWrongGroupPassword
		}
	}

	if group.RoleOf(userID) != models.RoleNone {
		return ErrAlreadyInGroup
	}

	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return ErrUserNotFound
	}

	session, err := s.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		groupUpdate := bson.M{
			"$addToSet": bson.M{"members": userID},
			"$set":      bson.M{"updatedAt": time.Now()},
		}
		if _, err := s.GroupsCollection.UpdateOne(sc, bson.M{"_id": groupID}, groupUpdate); err != nil {
			return nil, err
		}

		userUpdate := bson.M{"$addToSet": bson.M{"groups": groupID}}
		if _, err := s.UsersCollection.UpdateOne(sc, bson.M{"_id": userID}, userUpdate); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to join group: %v", err)
	}

	logging.Logger.Infof("Event ID: GROUP_JOINED, Description: User %s joined group %s", userID.Hex(), groupID.Hex())
	return nil
}

func (s *GroupService) fetchPublicUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	if len(ids) == 0 {
		return []models.PublicUser{}, nil
	}

	opts := optionsFindProjection(bson.M{"_id": 1, "name": 1, "email": 1, "username": 1})
	cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.PublicUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}

func (s *GroupService) resolveUserNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	users, err := s.fetchPublicUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}
