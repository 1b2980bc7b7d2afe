package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"

	"github.com/jinzhu/copier"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// Record is one flat import row. Page and Section resolve existing entities
// by title/name, the remaining fields describe the link to create.
type Record struct {
	Page        string `json:"page"`
	Section     string `json:"section"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Logo        string `json:"logo"`
	Background  string `json:"background"`
	Color       string `json:"color"`
}

func (r *Record) trim() {
	r.Page = strings.TrimSpace(r.Page)
	r.Section = strings.TrimSpace(r.Section)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.URL = strings.TrimSpace(r.URL)
	r.Logo = strings.TrimSpace(r.Logo)
	r.Background = strings.TrimSpace(r.Background)
	r.Color = strings.TrimSpace(r.Color)
}

// ImportResult counts entities created by one batch.
type ImportResult struct {
	Pages    int
	Sections int
	Links    int
}

type ImportImpl struct {
	tx *gorm.DB
}

var Import = &ImportImpl{}

func (m *ImportImpl) WithTx(tx *gorm.DB) *ImportImpl {
	if tx == nil {
		tx = db.DB
	}
	return &ImportImpl{tx: tx}
}

// Batch imports records in input order inside one transaction.
//
// Pages and sections are found by natural key and created on first need with
// append ordering, links are always created: re-importing the same batch
// duplicates links but never pages or sections. Any invalid record aborts
// the whole batch.
func (m *ImportImpl) Batch(records []*Record) (*ImportResult, error) {
	ret := new(ImportResult)
	err := m.tx.Transaction(func(tx *gorm.DB) error {
		for i, rec := range records {
			if err := m.one(tx, i+1, rec, ret); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (m *ImportImpl) one(tx *gorm.DB, n int, rec *Record, ret *ImportResult) error {
	rec.trim()
	for field, v := range map[string]string{
		"page":    rec.Page,
		"section": rec.Section,
		"name":    rec.Name,
		"url":     rec.URL,
	} {
		if v == "" {
			return tracerr.Wrap(&ValidationError{Record: n, Field: field})
		}
	}

	page, err := Page.WithTx(tx).GetByTitle(rec.Page)
	if err != nil {
		return err
	}
	if page == nil {
		if page, err = Page.WithTx(tx).New(rec.Page); err != nil {
			return err
		}
		ret.Pages++
	}

	section, err := Section.WithTx(tx).GetByName(page.ID, rec.Section)
	if err != nil {
		return err
	}
	if section == nil {
		if section, err = Section.WithTx(tx).New(page.ID, rec.Section, ""); err != nil {
			return err
		}
		ret.Sections++
	}

	var fields LinkFields
	if err := copier.Copy(&fields, rec); err != nil {
		return tracerr.Wrap(err)
	}
	if _, err := Link.WithTx(tx).New(section.ID, &fields); err != nil {
		return err
	}
	ret.Links++
	return nil
}
