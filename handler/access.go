package handler

import (
	"github.com/linkboard/linkboard/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessImpl decides page visibility and manage authority for a principal.
// The principal is an explicit *db.User, nil means guest. Roles and groups
// are resolved from the store on every call, there is no cached session
// state.
type AccessImpl struct {
	tx *gorm.DB
}

var Access = &AccessImpl{}

func (a *AccessImpl) WithTx(tx *gorm.DB) *AccessImpl {
	if tx == nil {
		tx = db.DB
	}
	return &AccessImpl{tx: tx}
}

// IsAdmin reports whether user holds the admin role.
func (a *AccessImpl) IsAdmin(user *db.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	roles, err := Role.WithTx(a.tx).GetUserAllRole(user.ID)
	if err != nil {
		return false, err
	}
	for _, v := range roles {
		if v.Name == RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// CanView reports whether user (nil for guest) may view page pid.
//
// Admins always may. Pages without groups are public, guests included.
// Otherwise the user must share at least one group with the page.
func (a *AccessImpl) CanView(user *db.User, pid uuid.UUID) (bool, error) {
	admin, err := a.IsAdmin(user)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}
	pageGroups, err := Page.WithTx(a.tx).GetGroups(pid)
	if err != nil {
		return false, err
	}
	if len(pageGroups) == 0 {
		return true, nil
	}
	if user == nil {
		return false, nil
	}
	return a.overlaps(user.ID, pageGroups)
}

// CanManage reports whether user may mutate page pid content (sections,
// links, reorder).
//
// Admins always may. A non-admin may manage only a page that has at least
// one group the user belongs to: public pages are admin-only to manage.
func (a *AccessImpl) CanManage(user *db.User, pid uuid.UUID) (bool, error) {
	admin, err := a.IsAdmin(user)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}
	if user == nil {
		return false, nil
	}
	pageGroups, err := Page.WithTx(a.tx).GetGroups(pid)
	if err != nil {
		return false, err
	}
	if len(pageGroups) == 0 {
		return false, nil
	}
	return a.overlaps(user.ID, pageGroups)
}

func (a *AccessImpl) overlaps(uid uuid.UUID, pageGroups []*db.Group) (bool, error) {
	userGroups, err := Group.WithTx(a.tx).GetUserAllGroup(uid)
	if err != nil {
		return false, err
	}
	mine := make(map[uuid.UUID]bool, len(userGroups))
	for _, v := range userGroups {
		mine[v.ID] = true
	}
	for _, v := range pageGroups {
		if mine[v.ID] {
			return true, nil
		}
	}
	return false, nil
}
