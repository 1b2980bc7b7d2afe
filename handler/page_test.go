package handler

import (
	"testing"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPageAppendOrder(t *testing.T) {
	reset(t)
	a := addPage(t, "Alpha")
	b := addPage(t, "Beta")
	c := addPage(t, "Gamma")
	assert.Equal(t, int32(0), a.SortOrder)
	assert.Equal(t, int32(1), b.SortOrder)
	assert.Equal(t, int32(2), c.SortOrder)

	// positions are never reused after delete
	_, err := Page.Delete(c.ID)
	assert.NoError(t, err)
	d := addPage(t, "Delta")
	assert.Equal(t, int32(2), d.SortOrder)
}

func TestPageConflict(t *testing.T) {
	reset(t)
	addPage(t, "Main")
	_, err := Page.New("Main")
	assert.ErrorIs(t, err, ErrConflict)

	other := addPage(t, "Other")
	err = Page.Update(other.ID, "Main")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPageRenameKeepsOrder(t *testing.T) {
	reset(t)
	addPage(t, "First")
	page := addPage(t, "Second")
	assert.NoError(t, Page.Update(page.ID, "Renamed"))

	got, err := Page.Get(page.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, int32(1), got.SortOrder)
}

func TestPageCascadeDelete(t *testing.T) {
	reset(t)
	page := addPage(t, "Main")
	s1 := addSection(t, page.ID, "Dev")
	s2 := addSection(t, page.ID, "Ops")
	addLink(t, s1.ID, "repo")
	addLink(t, s1.ID, "ci")
	addLink(t, s2.ID, "dash")

	keep := addPage(t, "Keep")
	ks := addSection(t, keep.ID, "Stay")
	addLink(t, ks.ID, "stay")

	ok, err := Page.Delete(page.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	var sections, links int64
	assert.NoError(t, db.DB.Model(&db.Section{}).Where("page_id = ?", page.ID).Count(&sections).Error)
	assert.NoError(t, db.DB.Model(&db.Link{}).
		Where("section_id IN ?", []uuid.UUID{s1.ID, s2.ID}).Count(&links).Error)
	assert.Zero(t, sections)
	assert.Zero(t, links)

	// unrelated page untouched
	stay, err := Link.GetAll(ks.ID)
	assert.NoError(t, err)
	assert.Len(t, stay, 1)
}

func TestSectionCascadeDelete(t *testing.T) {
	reset(t)
	page := addPage(t, "Main")
	section := addSection(t, page.ID, "Dev")
	addLink(t, section.ID, "repo")
	addLink(t, section.ID, "ci")

	ok, err := Section.Delete(section.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	links, err := Link.GetAll(section.ID)
	assert.NoError(t, err)
	assert.Empty(t, links)
}

func TestSectionOrphanParent(t *testing.T) {
	reset(t)
	page := addPage(t, "Main")
	_, err := Page.Delete(page.ID)
	assert.NoError(t, err)

	_, err = Section.New(page.ID, "Dev", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPageDefault(t *testing.T) {
	reset(t)
	none, err := Page.Default()
	assert.NoError(t, err)
	assert.Nil(t, none)

	addPage(t, "Zeta")
	addPage(t, "Beta")
	// same sort_order, title breaks the tie
	assert.NoError(t, db.DB.Model(&db.Page{}).Where("1 = 1").Update("sort_order", 0).Error)

	def, err := Page.Default()
	assert.NoError(t, err)
	assert.Equal(t, "Beta", def.Title)
}

func TestPageSetGroups(t *testing.T) {
	reset(t)
	page := addPage(t, "Main")
	g1 := addGroup(t, "dev")
	g2 := addGroup(t, "ops")

	assert.NoError(t, Page.SetGroups(page.ID, nil))
	groups, err := Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Empty(t, groups)

	assert.NoError(t, Page.SetGroups(page.ID, []uuid.UUID{g1.ID, g2.ID}))
	groups, err = Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 2)

	// replacement, not accumulation
	assert.NoError(t, Page.SetGroups(page.ID, []uuid.UUID{g2.ID}))
	groups, err = Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, g2.ID, groups[0].ID)

	// unknown group rejects the whole call
	err = Page.SetGroups(page.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
	groups, err = Page.GetGroups(page.ID)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
}
