package handler

import (
	"os"
	"testing"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setup() {
	conn, err := db.New(&db.Config{Driver: "sqlite", File: "file::memory:?cache=shared"})
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(conn); err != nil {
		panic(err)
	}
	db.DB = conn
	Init()
}

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

// reset wipes every table, children first.
func reset(t *testing.T) {
	for _, table := range []string{
		"links", "sections", "page_groups", "pages",
		"user_roles", "user_groups", "users", "roles", "groups",
	} {
		assert.NoError(t, db.DB.Exec("DELETE FROM "+table).Error)
	}
}

func addPage(t *testing.T, title string) *db.Page {
	page, err := Page.New(title)
	assert.NoError(t, err)
	return page
}

func addSection(t *testing.T, pid uuid.UUID, name string) *db.Section {
	section, err := Section.New(pid, name, "")
	assert.NoError(t, err)
	return section
}

func addLink(t *testing.T, sid uuid.UUID, name string) *db.Link {
	link, err := Link.New(sid, &LinkFields{Name: name, URL: "http://" + name})
	assert.NoError(t, err)
	return link
}

func addUser(t *testing.T, name string, roles []string, groups []uuid.UUID) *db.User {
	user, err := User.New(name, "pass123", roles, groups)
	assert.NoError(t, err)
	return user
}

func addGroup(t *testing.T, name string) *db.Group {
	group, err := Group.New(name)
	assert.NoError(t, err)
	return group
}

func seedRoles(t *testing.T) {
	for _, name := range []string{RoleAdmin, RoleUser} {
		_, err := Role.Ensure(name)
		assert.NoError(t, err)
	}
}
