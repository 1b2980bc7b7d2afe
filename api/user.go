package api

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"

	"github.com/google/uuid"
)

func userWrapper(req *Request) (*db.User, *Response, error) {
	var uriParam IDURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	uid, err := uriParam.Parse()
	if err != nil {
		return nil, ResponseParamInvalid, nil
	}

	user, err := handler.User.Get(uid)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, ResponseNotFound, nil
	}
	return user, nil, nil
}

// APIGetUsers lists users with their roles and groups, paged.
func APIGetUsers(req *Request) (*Response, error) {
	type Param struct {
		Text   string `form:"text"`
		Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
		Offset int    `form:"offset" binding:"omitempty,min=0"`
	}
	type User struct {
		*db.User
		Roles  []*db.Role  `json:"roles"`
		Groups []*db.Group `json:"groups"`
	}
	type Rsp struct {
		Total int64   `json:"total"`
		Users []*User `json:"users"`
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(db.Condition)
	cond.AndLike("username LIKE ?", param.Text)
	total, err := handler.User.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.Limit = param.Limit
	cond.Offset = param.Offset
	users, err := handler.User.GetAll(cond)
	if err != nil {
		return nil, err
	}
	rsp := &Rsp{Total: total, Users: make([]*User, 0, len(users))}
	for _, u := range users {
		roles, err := handler.Role.GetUserAllRole(u.ID)
		if err != nil {
			return nil, err
		}
		groups, err := handler.Group.GetUserAllGroup(u.ID)
		if err != nil {
			return nil, err
		}
		rsp.Users = append(rsp.Users, &User{User: u, Roles: roles, Groups: groups})
	}
	return NewDataResponse(rsp), nil
}

// APIGetRoles lists all roles.
func APIGetRoles(req *Request) (*Response, error) {
	roles, err := handler.Role.GetAll()
	if err != nil {
		return nil, err
	}
	return NewDataResponse(roles), nil
}

func APIAddUser(req *Request) (*Response, error) {
	type Param struct {
		Username string      `json:"username" binding:"required"`
		Password string      `json:"password" binding:"required,min=6"`
		Roles    []string    `json:"roles" binding:"required,min=1"`
		Groups   []uuid.UUID `json:"groups"`
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	user, err := handler.User.New(param.Username, param.Password, param.Roles, param.Groups)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(user), nil
}

// APIUpdateUser replaces role and group sets, password only when provided.
func APIUpdateUser(req *Request) (*Response, error) {
	type Param struct {
		Password string      `json:"password" binding:"omitempty,min=6"`
		Roles    []string    `json:"roles" binding:"required,min=1"`
		Groups   []uuid.UUID `json:"groups"`
	}
	user, ret, err := userWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.User.Update(user.ID, param.Password, param.Roles, param.Groups); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIDeleteUser(req *Request) (*Response, error) {
	user, ret, err := userWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	if _, err := handler.User.Delete(user.ID); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}
