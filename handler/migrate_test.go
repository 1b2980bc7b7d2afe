package handler

import (
	"testing"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func migrateDB(t *testing.T, name string) *gorm.DB {
	conn, err := db.New(&db.Config{
		Driver: "sqlite",
		File:   "file:" + name + "?mode=memory&cache=shared",
	})
	assert.NoError(t, err)
	assert.NoError(t, db.Migrate(conn))
	return conn
}

func TestMigrateStore(t *testing.T) {
	src := migrateDB(t, "migsrc1")
	dst := migrateDB(t, "migdst1")

	page := &db.Page{Title: "Main"}
	assert.NoError(t, src.Create(page).Error)
	assert.NoError(t, src.Create(&db.Section{PageID: page.ID, Name: "Tools"}).Error)
	assert.NoError(t, src.Create(&db.User{Username: "bob", Password: "x"}).Error)

	reports, err := MigrateStore(src, dst)
	assert.NoError(t, err)
	assert.Len(t, reports, len(db.Tables))
	byTable := make(map[string]*MigrateReport, len(reports))
	for _, v := range reports {
		byTable[v.Table] = v
	}
	assert.Equal(t, &MigrateReport{Table: "pages", Inserted: 1, Total: 1}, byTable["pages"])
	assert.Equal(t, &MigrateReport{Table: "sections", Inserted: 1, Total: 1}, byTable["sections"])
	assert.Equal(t, &MigrateReport{Table: "users", Inserted: 1, Total: 1}, byTable["users"])

	var got db.Page
	assert.NoError(t, dst.First(&got, "id = ?", page.ID).Error)
	assert.Equal(t, "Main", got.Title)
}

func TestMigrateStoreSkipsBadRows(t *testing.T) {
	src := migrateDB(t, "migsrc2")
	dst := migrateDB(t, "migdst2")

	good := &db.Page{Title: "Good"}
	dup := &db.Page{Title: "Taken"}
	assert.NoError(t, src.Create(good).Error)
	assert.NoError(t, src.Create(dup).Error)
	// same title already lives in dst, unique index rejects the copy
	assert.NoError(t, dst.Create(&db.Page{Title: "Taken"}).Error)

	reports, err := MigrateStore(src, dst)
	assert.NoError(t, err)
	byTable := make(map[string]*MigrateReport, len(reports))
	for _, v := range reports {
		byTable[v.Table] = v
	}
	assert.Equal(t, 2, byTable["pages"].Total)
	assert.Equal(t, 1, byTable["pages"].Inserted)

	var got db.Page
	assert.NoError(t, dst.First(&got, "id = ?", good.ID).Error)
}

func TestMigrateStoreOrphanChildren(t *testing.T) {
	src := migrateDB(t, "migsrc3")
	dst := migrateDB(t, "migdst3")

	// child row referencing a parent the source no longer has still copies,
	// FK enforcement is off for the run
	assert.NoError(t, src.Create(&db.Section{PageID: uuid.New(), Name: "Lost"}).Error)

	reports, err := MigrateStore(src, dst)
	assert.NoError(t, err)
	byTable := make(map[string]*MigrateReport, len(reports))
	for _, v := range reports {
		byTable[v.Table] = v
	}
	assert.Equal(t, 1, byTable["sections"].Inserted)
}
