package api

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"

	"github.com/ztrue/tracerr"
)

func sectionWrapper(req *Request) (*db.Section, *Response, error) {
	var uriParam IDURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	sid, err := uriParam.Parse()
	if err != nil {
		return nil, ResponseParamInvalid, nil
	}

	section, err := handler.Section.Get(sid)
	if err != nil {
		return nil, nil, err
	}
	if section == nil {
		return nil, ResponseNotFound, nil
	}
	return section, nil, nil
}

func APIAddSection(req *Request) (*Response, error) {
	type Param struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	page, ret, err := pageWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	ok, err := handler.Access.CanManage(req.User, page.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	section, err := handler.Section.New(page.ID, param.Name, param.Description)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(section), nil
}

func APIUpdateSection(req *Request) (*Response, error) {
	type Param struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	section, ret, err := sectionWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	ok, err := handler.Access.CanManage(req.User, section.PageID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.Section.Update(section.ID, param.Name, param.Description); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIDeleteSection(req *Request) (*Response, error) {
	section, ret, err := sectionWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	ok, err := handler.Access.CanManage(req.User, section.PageID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	if _, err := handler.Section.Delete(section.ID); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIReorderSections(req *Request) (*Response, error) {
	page, ret, err := pageWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	ok, err := handler.Access.CanManage(req.User, page.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	var param reorderParam
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.Section.Reorder(page.ID, param.Order); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}
