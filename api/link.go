package api

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"

	"github.com/ztrue/tracerr"
)

func linkWrapper(req *Request) (*db.Link, *Response, error) {
	var uriParam IDURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	lid, err := uriParam.Parse()
	if err != nil {
		return nil, ResponseParamInvalid, nil
	}

	link, err := handler.Link.Get(lid)
	if err != nil {
		return nil, nil, err
	}
	if link == nil {
		return nil, ResponseNotFound, nil
	}
	return link, nil, nil
}

// linkManage resolves the owning page of link and checks manage authority.
func linkManage(req *Request, link *db.Link) error {
	section, err := handler.Section.Get(link.SectionID)
	if err != nil {
		return err
	}
	if section == nil {
		return tracerr.Wrap(handler.ErrNotFound)
	}
	ok, err := handler.Access.CanManage(req.User, section.PageID)
	if err != nil {
		return err
	}
	if !ok {
		return tracerr.Wrap(handler.ErrUnauthorized)
	}
	return nil
}

func APIAddLink(req *Request) (*Response, error) {
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
	var param handler.LinkFields
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	link, err := handler.Link.New(section.ID, &param)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(link), nil
}

func APIUpdateLink(req *Request) (*Response, error) {
	link, ret, err := linkWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	if err := linkManage(req, link); err != nil {
		return nil, err
	}
	var param handler.LinkFields
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.Link.Update(link.ID, &param); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIDeleteLink(req *Request) (*Response, error) {
	link, ret, err := linkWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	if err := linkManage(req, link); err != nil {
		return nil, err
	}
	if _, err := handler.Link.Delete(link.ID); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIReorderLinks(req *Request) (*Response, error) {
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
	var param reorderParam
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.Link.Reorder(section.ID, param.Order); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}
