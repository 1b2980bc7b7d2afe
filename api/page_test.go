package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	conn, err := db.New(&db.Config{Driver: "sqlite", File: "file:apitest?mode=memory&cache=shared"})
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(conn); err != nil {
		panic(err)
	}
	db.DB = conn
	handler.Init()
	os.Exit(m.Run())
}

func reset(t *testing.T) {
	for _, table := range []string{
		"links", "sections", "page_groups", "pages",
		"user_roles", "user_groups", "users", "roles", "groups",
	} {
		assert.NoError(t, db.DB.Exec("DELETE FROM "+table).Error)
	}
}

// jsonRequest builds a bound request for handlers taking an :id path param.
func jsonRequest(method string, id uuid.UUID, body string) *Request {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	return &Request{Context: c}
}

func TestUpdatePageRenameKeepsGroups(t *testing.T) {
	reset(t)
	page, err := handler.Page.New("Ops")
	assert.NoError(t, err)
	group, err := handler.Group.New("ops")
	assert.NoError(t, err)
	assert.NoError(t, handler.Page.SetGroups(page.ID, []uuid.UUID{group.ID}))

	// rename only: the group set must survive untouched
	rsp, err := APIUpdatePage(jsonRequest(http.MethodPut, page.ID, `{"title":"Renamed"}`))
	assert.NoError(t, err)
	assert.Equal(t, ResponseOK, rsp)

	got, err := handler.Page.Get(page.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	groups, err := handler.Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, group.ID, groups[0].ID)
}

func TestUpdatePageGroups(t *testing.T) {
	reset(t)
	page, err := handler.Page.New("Ops")
	assert.NoError(t, err)
	g1, err := handler.Group.New("dev")
	assert.NoError(t, err)
	g2, err := handler.Group.New("ops")
	assert.NoError(t, err)
	assert.NoError(t, handler.Page.SetGroups(page.ID, []uuid.UUID{g1.ID}))

	// sent groups replace the set, title stays
	rsp, err := APIUpdatePage(jsonRequest(http.MethodPut, page.ID,
		`{"groups":["`+g2.ID.String()+`"]}`))
	assert.NoError(t, err)
	assert.Equal(t, ResponseOK, rsp)
	groups, err := handler.Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, g2.ID, groups[0].ID)
	got, err := handler.Page.Get(page.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ops", got.Title)

	// an explicit empty list clears the set
	rsp, err = APIUpdatePage(jsonRequest(http.MethodPut, page.ID, `{"groups":[]}`))
	assert.NoError(t, err)
	assert.Equal(t, ResponseOK, rsp)
	groups, err = handler.Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Empty(t, groups)
}
