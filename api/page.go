package api

import (
	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"

	"github.com/google/uuid"
	"github.com/ztrue/tracerr"
)

func pageWrapper(req *Request) (*db.Page, *Response, error) {
	var uriParam IDURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	pid, err := uriParam.Parse()
	if err != nil {
		return nil, ResponseParamInvalid, nil
	}

	page, err := handler.Page.Get(pid)
	if err != nil {
		return nil, nil, err
	}
	if page == nil {
		return nil, ResponseNotFound, nil
	}
	return page, nil, nil
}

// APIGetPages lists pages the principal may view, with optional title search.
func APIGetPages(req *Request) (*Response, error) {
	type Param struct {
		Text string `form:"text"`
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(db.Condition)
	cond.AndLike("title LIKE ?", param.Text)
	pages, err := handler.Page.GetAll(cond)
	if err != nil {
		return nil, err
	}
	var visible []*db.Page
	for _, p := range pages {
		ok, err := handler.Access.CanView(req.User, p.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, p)
		}
	}
	return NewDataResponse(visible), nil
}

// APIGetDefaultPage returns the home page: lowest sort_order, title breaks
// the tie.
func APIGetDefaultPage(req *Request) (*Response, error) {
	page, err := handler.Page.Default()
	if err != nil {
		return nil, err
	}
	if page == nil {
		return ResponseNotFound, nil
	}
	ok, err := handler.Access.CanView(req.User, page.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	return NewDataResponse(page), nil
}

// APIGetPage returns one page with its sections and links.
func APIGetPage(req *Request) (*Response, error) {
	page, ret, err := pageWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	ok, err := handler.Access.CanView(req.User, page.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tracerr.Wrap(handler.ErrUnauthorized)
	}
	data, err := handler.Page.GetData(page.ID)
	if err != nil {
		return nil, err
	}
	groups, err := handler.Page.GetGroups(page.ID)
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		*db.Page
		Groups   []*db.Group            `json:"groups"`
		Sections []*handler.SectionData `json:"sections"`
	}
	return NewDataResponse(&Rsp{Page: page, Groups: groups, Sections: data}), nil
}

func APIAddPage(req *Request) (*Response, error) {
	type Param struct {
		Title string `json:"title" binding:"required"`
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	page, err := handler.Page.New(param.Title)
	if err != nil {
		return nil, err
	}
	return NewDataResponse(page), nil
}

// APIUpdatePage renames the page and replaces its group set. Both fields
// are optional, an absent field keeps the current value: clearing the group
// set needs an explicit empty list.
func APIUpdatePage(req *Request) (*Response, error) {
	type Param struct {
		Title  string       `json:"title"`
		Groups *[]uuid.UUID `json:"groups"`
	}
	page, ret, err := pageWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if param.Title != "" {
		if err := handler.Page.Update(page.ID, param.Title); err != nil {
			return nil, err
		}
	}
	if param.Groups != nil {
		if err := handler.Page.SetGroups(page.ID, *param.Groups); err != nil {
			return nil, err
		}
	}
	return ResponseOK, nil
}

func APIDeletePage(req *Request) (*Response, error) {
	page, ret, err := pageWrapper(req)
	if ret != nil || err != nil {
		return ret, err
	}
	if _, err := handler.Page.Delete(page.ID); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

type reorderParam struct {
	Order []uuid.UUID `json:"order" binding:"required"`
}

func APIReorderPages(req *Request) (*Response, error) {
	var param reorderParam
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	if err := handler.Page.Reorder(param.Order); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}
