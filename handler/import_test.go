package handler

import (
	"errors"
	"testing"

	"github.com/linkboard/linkboard/db"

	"github.com/stretchr/testify/assert"
)

func TestImportBatch(t *testing.T) {
	reset(t)
	batch := []*Record{
		{Page: "Main", Section: "Tools", Name: "wiki", URL: "http://wiki"},
		{Page: "Main", Section: "Tools", Name: "ci", URL: "http://ci"},
		{Page: "Main", Section: "Docs", Name: "api", URL: "http://api"},
		{Page: "Ops", Section: "Dash", Name: "grafana", URL: "http://grafana"},
	}
	ret, err := Import.Batch(batch)
	assert.NoError(t, err)
	assert.Equal(t, &ImportResult{Pages: 2, Sections: 3, Links: 4}, ret)

	page, err := Page.GetByTitle("Main")
	assert.NoError(t, err)
	assert.NotNil(t, page)
	sections, err := Section.GetAll(page.ID)
	assert.NoError(t, err)
	assert.Len(t, sections, 2)
	assert.Equal(t, "Tools", sections[0].Name)
	links, err := Link.GetAll(sections[0].ID)
	assert.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestImportIdempotentContainers(t *testing.T) {
	reset(t)
	batch := []*Record{
		{Page: "Main", Section: "Tools", Name: "wiki", URL: "http://wiki"},
	}
	for i := 0; i < 2; i++ {
		_, err := Import.Batch(batch)
		assert.NoError(t, err)
	}

	// containers are found by natural key, links always append
	var pages, sections, links int64
	assert.NoError(t, db.DB.Model(&db.Page{}).Count(&pages).Error)
	assert.NoError(t, db.DB.Model(&db.Section{}).Count(&sections).Error)
	assert.NoError(t, db.DB.Model(&db.Link{}).Count(&links).Error)
	assert.Equal(t, int64(1), pages)
	assert.Equal(t, int64(1), sections)
	assert.Equal(t, int64(2), links)
}

func TestImportInvalidRecordAborts(t *testing.T) {
	reset(t)
	batch := []*Record{
		{Page: "Main", Section: "Tools", Name: "wiki", URL: "http://wiki"},
		{Page: "Main", Section: "Tools", Name: "bad", URL: "   "},
	}
	_, err := Import.Batch(batch)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 2, verr.Record)
	assert.Equal(t, "url", verr.Field)

	// whole batch rolled back, first record included
	var pages int64
	assert.NoError(t, db.DB.Model(&db.Page{}).Count(&pages).Error)
	assert.Equal(t, int64(0), pages)
}

func TestImportTrimsFields(t *testing.T) {
	reset(t)
	batch := []*Record{
		{Page: "  Main ", Section: " Tools ", Name: " wiki ", URL: " http://wiki "},
	}
	_, err := Import.Batch(batch)
	assert.NoError(t, err)

	page, err := Page.GetByTitle("Main")
	assert.NoError(t, err)
	assert.NotNil(t, page)
	section, err := Section.GetByName(page.ID, "Tools")
	assert.NoError(t, err)
	assert.NotNil(t, section)
	links, err := Link.GetAll(section.ID)
	assert.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Equal(t, "wiki", links[0].Name)
	assert.Equal(t, "http://wiki", links[0].URL)
}
