package handler

import (
	"strings"

	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/utils"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUsername is the builtin account created by setup, it can never be
// edited or deleted.
const AdminUsername = "admin"

type UserImpl struct {
	tx   *gorm.DB
	user *db.ORM[db.User]
}

var User = &UserImpl{}

func (u *UserImpl) WithTx(tx *gorm.DB) *UserImpl {
	if tx == nil {
		tx = db.DB
	}
	return &UserImpl{
		tx:   tx,
		user: db.NewORM[db.User](tx),
	}
}

func hashPass(pass string) (string, error) {
	buf, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	return string(buf), tracerr.Wrap(err)
}

// New create new user with roles and groups attached in one transaction.
func (u *UserImpl) New(username string, password string, roles []string, groups []uuid.UUID) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, tracerr.Wrap(&ValidationError{Field: "username"})
	}
	if password == "" {
		return nil, tracerr.Wrap(&ValidationError{Field: "password"})
	}
	hash, err := hashPass(password)
	if err != nil {
		return nil, err
	}
	user := &db.User{Username: username, Password: hash}
	err = u.tx.Transaction(func(tx *gorm.DB) error {
		tu := u.WithTx(tx)
		exist, err := tu.GetByName(username)
		if err != nil {
			return err
		}
		if exist != nil {
			return tracerr.Wrap(ErrConflict)
		}
		if err := tu.user.Create(user); err != nil {
			return err
		}
		return tu.setRolesGroups(tx, user.ID, roles, groups)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserImpl) setRolesGroups(tx *gorm.DB, uid uuid.UUID, roles []string, groups []uuid.UUID) error {
	for _, name := range roles {
		role, err := Role.WithTx(tx).GetByName(name)
		if err != nil {
			return err
		}
		if role == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		if err := Role.WithTx(tx).Link(uid, role.ID); err != nil {
			return err
		}
	}
	for _, gid := range groups {
		group, err := Group.WithTx(tx).Get(gid)
		if err != nil {
			return err
		}
		if group == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		if err := Group.WithTx(tx).Link(uid, gid); err != nil {
			return err
		}
	}
	return nil
}

// CheckPass check whether user and pass match.
//
// If error, return nil,-1,err.
// If user not found, return nil,1,nil.
// If pass not match, return nil,2,nil.
// Return user,0,nil if all match.
func (u *UserImpl) CheckPass(user string, pass string) (*db.User, int, error) {
	rec, err := u.GetByName(user)
	if err != nil {
		return nil, -1, err
	}
	if rec == nil {
		return nil, 1, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(pass)) != nil {
		return nil, 2, nil
	}
	return rec, 0, nil
}

// Get get user by id.
func (u *UserImpl) Get(id uuid.UUID) (*db.User, error) {
	return u.user.Take(id)
}

// GetByName get user by name.
func (u *UserImpl) GetByName(name string) (*db.User, error) {
	return u.user.Where("username = ?", name).Take()
}

// GetAll get all users by condition.
func (u *UserImpl) GetAll(cond *db.Condition) ([]*db.User, error) {
	return u.user.Cond(cond).Cond(&db.Condition{Order: []any{"username"}}).Find()
}

// Count count users by condition.
func (u *UserImpl) Count(cond *db.Condition) (int64, error) {
	return u.user.Count(cond)
}

// Update rewrites user id password (when non-empty) and replaces the role
// and group sets wholesale. The builtin admin account is untouchable.
func (u *UserImpl) Update(id uuid.UUID, password string, roles []string, groups []uuid.UUID) error {
	return u.tx.Transaction(func(tx *gorm.DB) error {
		tu := u.WithTx(tx)
		user, err := tu.Get(id)
		if err != nil {
			return err
		}
		if user == nil {
			return tracerr.Wrap(ErrNotFound)
		}
		if user.Username == AdminUsername {
			return tracerr.Wrap(ErrUnauthorized)
		}
		if password != "" {
			hash, err := hashPass(password)
			if err != nil {
				return err
			}
			if err := tu.user.ID(id).Updates([]string{"password"}, &db.User{Password: hash}); err != nil {
				return err
			}
		}
		if _, err := Role.WithTx(tx).Unlink(id); err != nil {
			return err
		}
		if _, err := Group.WithTx(tx).Unlink(id); err != nil {
			return err
		}
		return tu.setRolesGroups(tx, id, roles, groups)
	})
}

// Reset rewrites user id password to a fresh random one and returns it.
func (u *UserImpl) Reset(id uuid.UUID) (string, error) {
	newpass := utils.RandString(8)
	hash, err := hashPass(newpass)
	if err != nil {
		return "", err
	}
	if err := u.user.ID(id).Updates([]string{"password"}, &db.User{Password: hash}); err != nil {
		return "", err
	}
	return newpass, nil
}

// Delete delete user id with all role and group attachments.
// The builtin admin account is untouchable.
func (u *UserImpl) Delete(id uuid.UUID) (ok bool, err error) {
	err = u.tx.Transaction(func(tx *gorm.DB) error {
		user, err := u.WithTx(tx).Get(id)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}
		if user.Username == AdminUsername {
			return tracerr.Wrap(ErrUnauthorized)
		}
		if _, err := Role.WithTx(tx).Unlink(id); err != nil {
			return err
		}
		if _, err := Group.WithTx(tx).Unlink(id); err != nil {
			return err
		}
		ok, err = db.NewORM[db.User](tx).DeleteID(id)
		return err
	})
	return
}
