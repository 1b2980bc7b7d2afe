package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

// LinkFields are the caller editable columns of a link.
type LinkFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Logo        string `json:"logo"`
	Background  string `json:"background"`
	Color       string `json:"color"`
}

func (f *LinkFields) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.URL = strings.TrimSpace(f.URL)
	f.Logo = strings.TrimSpace(f.Logo)
	f.Background = strings.TrimSpace(f.Background)
	f.Color = strings.TrimSpace(f.Color)
}

func (f *LinkFields) validate() error {
	if f.Name == "" {
		return tracerr.Wrap(&ValidationError{Field: "name"})
	}
	if f.URL == "" {
		return tracerr.Wrap(&ValidationError{Field: "url"})
	}
	return nil
}

type LinkImpl struct {
	tx   *gorm.DB
	link *db.ORM[db.Link]
}

var Link = &LinkImpl{}

func (l *LinkImpl) WithTx(tx *gorm.DB) *LinkImpl {
	if tx == nil {
		tx = db.DB
	}
	return &LinkImpl{
		tx:   tx,
		link: db.NewORM[db.Link](tx),
	}
}

// New create new link at the end of section sid.
func (l *LinkImpl) New(sid uuid.UUID, fields *LinkFields) (*db.Link, error) {
	fields.trim()
	if err := fields.validate(); err != nil {
		return nil, err
	}
	link := &db.Link{
		SectionID:   sid,
		Name:        fields.Name,
		Description: fields.Description,
		URL:         fields.URL,
		Logo:        fields.Logo,
		Background:  fields.Background,
		Color:       fields.Color,
	}
	err := l.tx.Transaction(func(tx *gorm.DB) error {
		section, err := Section.WithTx(tx).Get(sid)
		if err != nil {
			return err
		}
		if section == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		link.SortOrder, err = nextSortOrder[db.Link](tx, "section_id = ?", sid)
		if err != nil {
			return err
		}
		return db.NewORM[db.Link](tx).Create(link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Get get link by id.
func (l *LinkImpl) Get(id uuid.UUID) (*db.Link, error) {
	return l.link.Take(id)
}

// GetAll get all links of section sid in display order.
func (l *LinkImpl) GetAll(sid uuid.UUID) ([]*db.Link, error) {
	return l.link.Where("section_id = ?", sid).
		Cond(&db.Condition{Order: []any{"sort_order", "name"}}).Find()
}

// Update rewrites link id editable fields, sort_order is not touched.
func (l *LinkImpl) Update(id uuid.UUID, fields *LinkFields) error {
	fields.trim()
	if err := fields.validate(); err != nil {
		return err
	}
	return l.tx.Transaction(func(tx *gorm.DB) error {
		tl := l.WithTx(tx)
		link, err := tl.Get(id)
		if err != nil {
			return err
		}
		if link == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		return tl.link.ID(id).Updates(
			[]string{"name", "description", "url", "logo", "background", "color"},
			&db.Link{
				Name:        fields.Name,
				Description: fields.Description,
				URL:         fields.URL,
				Logo:        fields.Logo,
				Background:  fields.Background,
				Color:       fields.Color,
			})
	})
}

// Delete delete link id.
func (l *LinkImpl) Delete(id uuid.UUID) (bool, error) {
	return l.link.DeleteID(id)
}

// Reorder rewrites the order of section sid links to ids.
func (l *LinkImpl) Reorder(sid uuid.UUID, ids []uuid.UUID) error {
	return reorder[db.Link](l.tx, "link", ids, "section_id = ?", sid)
}
