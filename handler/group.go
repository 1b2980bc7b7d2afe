package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

type GroupImpl struct {
	tx    *gorm.DB
	group *db.ORM[db.Group]
	link  *db.ORM[db.UserGroup]
}

var Group = &GroupImpl{}

func (g *GroupImpl) WithTx(tx *gorm.DB) *GroupImpl {
	if tx == nil {
		tx = db.DB
	}
	return &GroupImpl{
		tx:    tx,
		group: db.NewORM[db.Group](tx),
		link:  db.NewORM[db.UserGroup](tx),
	}
}

// New create new group.
func (g *GroupImpl) New(name string) (*db.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, tracerr.Wrap(&ValidationError{Field: "name"})
	}
	exist, err := g.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, tracerr.Wrap(ErrConflict)
	}
	group := &db.Group{Name: name}
	if err := g.group.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// Get get group by id.
func (g *GroupImpl) Get(id uuid.UUID) (*db.Group, error) {
	return g.group.Take(id)
}

// GetByName get group by name.
func (g *GroupImpl) GetByName(name string) (*db.Group, error) {
	return g.group.Where("name = ?", name).Take()
}

// GetAll get all groups ordered by name.
func (g *GroupImpl) GetAll() ([]*db.Group, error) {
	return g.group.Cond(&db.Condition{Order: []any{"name"}}).Find()
}

// GetUserAllGroup get user id all groups.
func (g *GroupImpl) GetUserAllGroup(id uuid.UUID) ([]*db.Group, error) {
	link, err := g.link.Where("user_groups.uid = ?", id).Joins("Group").Find()
	if err != nil {
		return nil, err
	}
	var ret []*db.Group
	for _, v := range link {
		ret = append(ret, v.Group)
	}
	return ret, nil
}

// GetGroupAllUser get group id all users.
func (g *GroupImpl) GetGroupAllUser(id uuid.UUID) ([]*db.User, error) {
	link, err := g.link.Where("user_groups.gid = ?", id).Joins("User").Find()
	if err != nil {
		return nil, err
	}
	var ret []*db.User
	for _, v := range link {
		ret = append(ret, v.User)
	}
	return ret, nil
}

// Link attach group gid to user uid, existing link is kept.
func (g *GroupImpl) Link(uid uuid.UUID, gid uuid.UUID) error {
	return g.link.CreateIgnore(&db.UserGroup{UID: uid, GID: gid})
}

// Unlink remove all groups of user uid.
func (g *GroupImpl) Unlink(uid uuid.UUID) (int64, error) {
	return g.link.Where("uid = ?", uid).Delete()
}

// Delete delete group id with its user and page attachments.
func (g *GroupImpl) Delete(id uuid.UUID) (ok bool, err error) {
	err = g.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := db.NewORM[db.UserGroup](tx).Where("gid = ?", id).Delete(); err != nil {
			return err
		}
		if _, err := db.NewORM[db.PageGroup](tx).Where("gid = ?", id).Delete(); err != nil {
			return err
		}
		ok, err = db.NewORM[db.Group](tx).DeleteID(id)
		return err
	})
	return
}
