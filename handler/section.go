package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

type SectionImpl struct {
	tx      *gorm.DB
	section *db.ORM[db.Section]
}

var Section = &SectionImpl{}

func (s *SectionImpl) WithTx(tx *gorm.DB) *SectionImpl {
	if tx == nil {
		tx = db.DB
	}
	return &SectionImpl{
		tx:      tx,
		section: db.NewORM[db.Section](tx),
	}
}

// New create new section at the end of page pid.
func (s *SectionImpl) New(pid uuid.UUID, name string, description string) (*db.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, tracerr.Wrap(&ValidationError{Field: "name"})
	}
	section := &db.Section{
		PageID:      pid,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		page, err := Page.WithTx(tx).Get(pid)
		if err != nil {
			return err
		}
		if page == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		section.SortOrder, err = nextSortOrder[db.Section](tx, "page_id = ?", pid)
		if err != nil {
			return err
		}
		return db.NewORM[db.Section](tx).Create(section)
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// Get get section by id.
func (s *SectionImpl) Get(id uuid.UUID) (*db.Section, error) {
	return s.section.Take(id)
}

// GetByName get section by owning page and name.
func (s *SectionImpl) GetByName(pid uuid.UUID, name string) (*db.Section, error) {
	return s.section.Where("page_id = ? AND name = ?", pid, name).Take()
}

// GetAll get all sections of page pid in display order.
func (s *SectionImpl) GetAll(pid uuid.UUID) ([]*db.Section, error) {
	return s.section.Where("page_id = ?", pid).
		Cond(&db.Condition{Order: []any{"sort_order", "name"}}).Find()
}

// Update rename section id, sort_order is not touched.
func (s *SectionImpl) Update(id uuid.UUID, name string, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return tracerr.Wrap(&ValidationError{Field: "name"})
	}
	return s.tx.Transaction(func(tx *gorm.DB) error {
		ts := s.WithTx(tx)
		section, err := ts.Get(id)
		if err != nil {
			return err
		}
		if section == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		return ts.section.ID(id).Updates([]string{"name", "description"}, &db.Section{
			Name:        name,
			Description: strings.TrimSpace(description),
		})
	})
}

// Delete delete section id and cascade its links.
func (s *SectionImpl) Delete(id uuid.UUID) (ok bool, err error) {
	err = s.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := db.NewORM[db.Link](tx).Where("section_id = ?", id).Delete(); err != nil {
			return err
		}
		ok, err = db.NewORM[db.Section](tx).DeleteID(id)
		return err
	})
	return
}

// Reorder rewrites the order of page pid sections to ids.
func (s *SectionImpl) Reorder(pid uuid.UUID, ids []uuid.UUID) error {
	return reorder[db.Section](s.tx, "section", ids, "page_id = ?", pid)
}
