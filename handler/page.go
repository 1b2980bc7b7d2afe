package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

type PageImpl struct {
	tx    *gorm.DB
	page  *db.ORM[db.Page]
	group *db.ORM[db.PageGroup]
}

var Page = &PageImpl{}

func (p *PageImpl) WithTx(tx *gorm.DB) *PageImpl {
	if tx == nil {
		tx = db.DB
	}
	return &PageImpl{
		tx:    tx,
		page:  db.NewORM[db.Page](tx),
		group: db.NewORM[db.PageGroup](tx),
	}
}

// New create new page at the end of the page order.
func (p *PageImpl) New(title string) (*db.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, tracerr.Wrap(&ValidationError{Field: "title"})
	}
	page := &db.Page{Title: title}
	err := p.tx.Transaction(func(tx *gorm.DB) error {
		tp := p.WithTx(tx)
		exist, err := tp.GetByTitle(title)
		if err != nil {
			return err
		}
		if exist != nil {
			return tracerr.Wrap(ErrConflict)
		}
		page.SortOrder, err = nextSortOrder[db.Page](tx, "")
		if err != nil {
			return err
		}
		return tp.page.Create(page)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Get get page by id.
func (p *PageImpl) Get(id uuid.UUID) (*db.Page, error) {
	return p.page.Take(id)
}

// GetByTitle get page by exact title, case-sensitive.
func (p *PageImpl) GetByTitle(title string) (*db.Page, error) {
	return p.page.Where("title = ?", title).Take()
}

// GetAll get all pages by condition, ordered by sort_order then title.
func (p *PageImpl) GetAll(cond *db.Condition) ([]*db.Page, error) {
	return p.page.Cond(cond).Cond(&db.Condition{Order: []any{"sort_order", "title"}}).Find()
}

// Default returns the home page: lowest sort_order, ties broken by title.
// Return nil,nil when no page exists.
func (p *PageImpl) Default() (*db.Page, error) {
	pages, err := p.page.Cond(&db.Condition{
		Order: []any{"sort_order", "title"},
		Limit: 1,
	}).Find()
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return pages[0], nil
}

// Count count pages by condition.
func (p *PageImpl) Count(cond *db.Condition) (int64, error) {
	return p.page.Count(cond)
}

// Update rename page id, sort_order is not touched.
func (p *PageImpl) Update(id uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return tracerr.Wrap(&ValidationError{Field: "title"})
	}
	return p.tx.Transaction(func(tx *gorm.DB) error {
		tp := p.WithTx(tx)
		page, err := tp.Get(id)
		if err != nil {
			return err
		}
		if page == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		exist, err := tp.GetByTitle(title)
		if err != nil {
			return err
		}
		if exist != nil && exist.ID != id {
			return tracerr.Wrap(ErrConflict)
		}
		return tp.page.ID(id).Updates([]string{"title"}, &db.Page{Title: title})
	})
}

// Delete delete page id and cascade all sections and their links.
func (p *PageImpl) Delete(id uuid.UUID) (ok bool, err error) {
	err = p.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := db.NewORM[db.Link](tx).
			Where("section_id IN (?)", tx.Model(&db.Section{}).Select("id").Where("page_id = ?", id)).
			Delete(); err != nil {
			return err
		}
		if _, err := db.NewORM[db.Section](tx).Where("page_id = ?", id).Delete(); err != nil {
			return err
		}
		if _, err := db.NewORM[db.PageGroup](tx).Where("pid = ?", id).Delete(); err != nil {
			return err
		}
		ok, err = db.NewORM[db.Page](tx).DeleteID(id)
		return err
	})
	return
}

// Reorder rewrites the order of all pages to ids.
func (p *PageImpl) Reorder(ids []uuid.UUID) error {
	return reorder[db.Page](p.tx, "page", ids, "")
}

// GetGroups get all groups attached to page id.
// A page with no group is public.
func (p *PageImpl) GetGroups(id uuid.UUID) ([]*db.Group, error) {
	link, err := p.group.Where("page_groups.pid = ?", id).Joins("Group").Find()
	if err != nil {
		return nil, err
	}
	var ret []*db.Group
	for _, v := range link {
		ret = append(ret, v.Group)
	}
	return ret, nil
}

// SetGroups replaces page id groups with gids in one transaction.
func (p *PageImpl) SetGroups(id uuid.UUID, gids []uuid.UUID) error {
	return p.tx.Transaction(func(tx *gorm.DB) error {
		tp := p.WithTx(tx)
		page, err := tp.Get(id)
		if err != nil {
			return err
		}
		if page == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		if _, err := tp.group.Where("pid = ?", id).Delete(); err != nil {
			return err
		}
		for _, gid := range gids {
			group, err := Group.WithTx(tx).Get(gid)
			if err != nil {
				return err
			}
			if group == nil {
				return tracerr.Wrap(ErrNotFound)
			}
			if err := tp.group.CreateIgnore(&db.PageGroup{PID: id, GID: gid}); err != nil {
				return err
			}
		}
		return nil
	})
}

// SectionData is one section of a page with its links, both in display order.
type SectionData struct {
	*db.Section
	Links []*db.Link `json:"links"`
}

// GetData returns page id sections and links ordered by sort_order then name.
func (p *PageImpl) GetData(id uuid.UUID) ([]*SectionData, error) {
	sections, err := db.NewORM[db.Section](p.tx).
		Where("page_id = ?", id).
		Cond(&db.Condition{Order: []any{"sort_order", "name"}}).Find()
	if err != nil {
		return nil, err
	}
	ret := make([]*SectionData, 0, len(sections))
	for _, s := range sections {
		links, err := db.NewORM[db.Link](p.tx).
			Where("section_id = ?", s.ID).
			Cond(&db.Condition{Order: []any{"sort_order", "name"}}).Find()
		if err != nil {
			return nil, err
		}
		ret = append(ret, &SectionData{Section: s, Links: links})
	}
	return ret, nil
}
