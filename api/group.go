package api

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"
)

// APIGetGroups lists groups with their members.
func APIGetGroups(req *Request) (*Response, error) {
	type Rsp struct {
		*db.Group
		Users []*db.User `json:"users"`
	}
	groups, err := handler.Group.GetAll()
	if err != nil {
		return nil, err
	}
	rsp := make([]*Rsp, 0, len(groups))
	for _, g := range groups {
		users, err := handler.Group.GetGroupAllUser(g.ID)
		if err != nil {
			return nil, err
		}
		rsp = append(rsp, &Rsp{Group: g, Users: users})
	}
	return NewDataResponse(rsp), nil
}

func APIAddGroup(req *Request) (*Response, error) {
	type Param struct {
		Name string `json:"name" binding:"required"`
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	group, err := handler.Group.New(param.Name)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(group), nil
}

func APIDeleteGroup(req *Request) (*Response, error) {
	var uriParam IDURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return ResponseParamInvalid, nil
	}
	gid, err := uriParam.Parse()
	if err != nil {
		return ResponseParamInvalid, nil
	}
	if _, err := handler.Group.Delete(gid); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

// APIImport runs one import batch from JSON records.
func APIImport(req *Request) (*Response, error) {
	type Param struct {
		Records []*handler.Record `json:"records" binding:"required,min=1"`
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	result, err := handler.Import.Batch(param.Records)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(result), nil
}
