package handler

import (
	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names seeded by setup. Roles are data, not an enum: admins may add
// more, the evaluator only gives RoleAdmin special meaning.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type RoleImpl struct {
	tx   *gorm.DB
	role *db.ORM[db.Role]
	link *db.ORM[db.UserRole]
}

var Role = &RoleImpl{}

func (r *RoleImpl) WithTx(tx *gorm.DB) *RoleImpl {
	if tx == nil {
		tx = db.DB
	}
	return &RoleImpl{
		tx:   tx,
		role: db.NewORM[db.Role](tx),
		link: db.NewORM[db.UserRole](tx),
	}
}

// Ensure creates role name when missing and returns it either way.
func (r *RoleImpl) Ensure(name string) (*db.Role, error) {
	if err := r.role.CreateIgnore(&db.Role{Name: name}); err != nil {
		return nil, err
	}
	return r.GetByName(name)
}

// GetByName get role by name.
func (r *RoleImpl) GetByName(name string) (*db.Role, error) {
	return r.role.Where("name = ?", name).Take()
}

// GetAll get all roles ordered by name.
func (r *RoleImpl) GetAll() ([]*db.Role, error) {
	return r.role.Cond(&db.Condition{Order: []any{"name"}}).Find()
}

// GetUserAllRole get user id all roles.
func (r *RoleImpl) GetUserAllRole(id uuid.UUID) ([]*db.Role, error) {
	link, err := r.link.Where("user_roles.uid = ?", id).Joins("Role").Find()
	if err != nil {
		return nil, err
	}
	var ret []*db.Role
	for _, v := range link {
		ret = append(ret, v.Role)
	}
	return ret, nil
}

// Link attach role rid to user uid, existing link is kept.
func (r *RoleImpl) Link(uid uuid.UUID, rid uuid.UUID) error {
	return r.link.CreateIgnore(&db.UserRole{UID: uid, RID: rid})
}

// Unlink remove all roles of user uid.
func (r *RoleImpl) Unlink(uid uuid.UUID) (int64, error) {
	return r.link.Where("uid = ?", uid).Delete()
}
