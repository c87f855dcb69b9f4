package models_test

import (
	"testing"

	"github.com/karanagg166/TaskFlow/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupRoleOf(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	group := models.Group{
		Name:    "study-group",
		Members: []primitive.ObjectID{member},
		Admins:  []primitive.ObjectID{admin},
	}

	if got := group.RoleOf(admin); got != models.RoleAdmin {
		t.Errorf("RoleOf(admin) = %s, want %s", got, models.RoleAdmin)
	}
	if got := group.RoleOf(member); got != models.RoleMember {
		t.Errorf("RoleOf(member) = %s, want %s", got, models.RoleMember)
	}
	if got := group.RoleOf(outsider); got != models.RoleNone {
		t.Errorf("RoleOf(outsider) = %s, want %s", got, models.RoleNone)
	}
}

func TestGroupRoleOfAdminWinsOverMember(t *testing.T) {
	both := primitive.NewObjectID()

	group := models.Group{
		Members: []primitive.ObjectID{both},
		Admins:  []primitive.ObjectID{both},
	}

	if got := group.RoleOf(both); got != models.RoleAdmin {
		t.Errorf("RoleOf(user in both lists) = %s, want %s", got, models.RoleAdmin)
	}
}

func TestGroupRoleIndexSize(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	group := models.Group{
		Members: ids[:1],
		Admins:  ids[1:],
	}

	index := group.RoleIndex()
	if len(index) != 2 {
		t.Errorf("RoleIndex has %d entries, want 2", len(index))
	}
}
