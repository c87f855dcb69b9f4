package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a user within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleNone   Role = "none"
)

type Group struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Admins      []primitive.ObjectID `bson:"admins" json:"admins"`
	IsPrivate   bool                 `bson:"isPrivate" json:"isPrivate"`
	Password    string               `bson:"password,omitempty" json:"-"`
	// JoinRequests is carried on the document for request-based access, but no
	// handler operates on it yet.
	JoinRequests []primitive.ObjectID `bson:"joinRequests" json:"joinRequests"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// RoleIndex maps every user that belongs to the group to their role. Admins win
// when a user somehow appears in both lists.
func (g *Group) RoleIndex() map[primitive.ObjectID]Role {
	index := make(map[primitive.ObjectID]Role, len(g.Members)+len(g.Admins))
	for _, memberID := range g.Members {
		index[memberID] = RoleMember
	}
	for _, adminID := range g.Admins {
		index[adminID] = RoleAdmin
	}
	return index
}

// RoleOf returns the role of the given user in the group.
func (g *Group) RoleOf(userID primitive.ObjectID) Role {
	if role, ok := g.RoleIndex()[userID]; ok {
		return role
	}
	return RoleNone
}

// GroupSummary is the id+name projection used by the join-by-search flow.
type GroupSummary struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// GroupWithCreator is a group enriched with the resolved creator name.
type GroupWithCreator struct {
	Group         `bson:",inline"`
	CreatedByUser string `bson:"-" json:"createdByName"`
}
