package handler

import (
	"testing"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserCheckPass(t *testing.T) {
	reset(t)
	seedRoles(t)
	addUser(t, "bob", []string{RoleUser}, nil)

	user, code, err := User.CheckPass("bob", "pass123")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "bob", user.Username)

	user, code, err = User.CheckPass("nobody", "pass123")
	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Nil(t, user)

	user, code, err = User.CheckPass("bob", "wrong")
	assert.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Nil(t, user)
}

func TestUserNewConflict(t *testing.T) {
	reset(t)
	seedRoles(t)
	addUser(t, "bob", nil, nil)
	_, err := User.New("bob", "other", nil, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserNewUnknownRole(t *testing.T) {
	reset(t)
	_, err := User.New("bob", "pass123", []string{"missing"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// transaction rolled back, no half-created account
	user, err := User.GetByName("bob")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserUpdate(t *testing.T) {
	reset(t)
	seedRoles(t)
	group := addGroup(t, "ops")
	user := addUser(t, "bob", []string{RoleUser}, nil)

	assert.NoError(t, User.Update(user.ID, "newpass", []string{RoleAdmin}, []uuid.UUID{group.ID}))

	got, code, err := User.CheckPass("bob", "newpass")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	roles, err := Role.GetUserAllRole(got.ID)
	assert.NoError(t, err)
	assert.Len(t, roles, 1)
	assert.Equal(t, RoleAdmin, roles[0].Name)
	groups, err := Group.GetUserAllGroup(got.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)

	// empty password keeps the old one
	assert.NoError(t, User.Update(user.ID, "", nil, nil))
	_, code, err = User.CheckPass("bob", "newpass")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestUserAdminUntouchable(t *testing.T) {
	reset(t)
	seedRoles(t)
	admin := addUser(t, AdminUsername, []string{RoleAdmin}, nil)

	assert.ErrorIs(t, User.Update(admin.ID, "x", nil, nil), ErrUnauthorized)
	_, err := User.Delete(admin.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserReset(t *testing.T) {
	reset(t)
	seedRoles(t)
	user := addUser(t, "bob", []string{RoleUser}, nil)

	pass, err := User.Reset(user.ID)
	assert.NoError(t, err)
	assert.Len(t, pass, 8)
	_, code, err := User.CheckPass("bob", pass)
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	_, code, err = User.CheckPass("bob", "pass123")
	assert.NoError(t, err)
	assert.Equal(t, 2, code)
}

func TestUserDeleteCascade(t *testing.T) {
	reset(t)
	seedRoles(t)
	group := addGroup(t, "ops")
	user := addUser(t, "bob", []string{RoleUser}, []uuid.UUID{group.ID})

	ok, err := User.Delete(user.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	var roles, groups int64
	assert.NoError(t, db.DB.Model(&db.UserRole{}).Where("uid = ?", user.ID).Count(&roles).Error)
	assert.NoError(t, db.DB.Model(&db.UserGroup{}).Where("uid = ?", user.ID).Count(&groups).Error)
	assert.Equal(t, int64(0), roles)
	assert.Equal(t, int64(0), groups)
}

func TestGroupDeleteCascade(t *testing.T) {
	reset(t)
	seedRoles(t)
	group := addGroup(t, "ops")
	page := addPage(t, "Ops")
	user := addUser(t, "bob", []string{RoleUser}, []uuid.UUID{group.ID})
	assert.NoError(t, Page.SetGroups(page.ID, []uuid.UUID{group.ID}))

	ok, err := Group.Delete(group.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	groups, err := Group.GetUserAllGroup(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, groups)
	pageGroups, err := Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Empty(t, pageGroups)
}

func TestGroupConflict(t *testing.T) {
	reset(t)
	addGroup(t, "ops")
	_, err := Group.New("ops")
	assert.ErrorIs(t, err, ErrConflict)
}
