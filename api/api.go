package api

import (
	"errors"
	"net/http"

	"github.com/linkboard/linkboard/db"
	"github.com/linkboard/linkboard/handler"
	"github.com/linkboard/linkboard/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Method int

const (
	APIGet Method = iota
	APIPost
	APIPut
	APIDelete
)

// Perm is the minimum principal level required before the handler runs.
// Page level checks happen inside the handlers via handler.Access.
type Perm int

const (
	PermGuest Perm = iota
	PermUser
	PermAdmin
)

// Request is the gin context plus the resolved principal, nil for guest.
type Request struct {
	*gin.Context
	User *db.User
}

type APIFunc func(req *Request) (*Response, error)

type APIItem struct {
	Path   string
	Method Method
	Perm   Perm
	Func   APIFunc
}

// Init registers every route on e under /api.
func Init(e *gin.Engine) {
	g := e.Group("/api")
	for _, v := range initAPI() {
		h := wrap(v)
		switch v.Method {
		case APIGet:
			g.GET(v.Path, h)
		case APIPost:
			g.POST(v.Path, h)
		case APIPut:
			g.PUT(v.Path, h)
		case APIDelete:
			g.DELETE(v.Path, h)
		}
	}
}

// principal resolves the acting user from HTTP basic auth.
// No credentials means guest, bad credentials are rejected.
func principal(c *gin.Context) (*db.User, bool, error) {
	name, pass, ok := c.Request.BasicAuth()
	if !ok {
		return nil, true, nil
	}
	user, code, err := handler.User.CheckPass(name, pass)
	if err != nil {
		return nil, false, err
	}
	return user, code == 0, nil
}

func wrap(item *APIItem) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok, err := principal(c)
		if err != nil {
			log.NewEntry(err).Error("Failed to resolve principal")
			c.AbortWithStatusJSON(http.StatusInternalServerError, ResponseError)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ResponseUnauthorized)
			return
		}
		if item.Perm > PermGuest && user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ResponseUnauthorized)
			return
		}
		if item.Perm == PermAdmin {
			admin, err := handler.Access.IsAdmin(user)
			if err != nil {
				log.NewEntry(err).Error("Failed to check admin")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ResponseError)
				return
			}
			if !admin {
				c.AbortWithStatusJSON(http.StatusForbidden, ResponseForbidden)
				return
			}
		}

		rsp, err := item.Func(&Request{Context: c, User: user})
		if err != nil {
			status, body := translate(err)
			if status == http.StatusInternalServerError {
				log.NewEntry(err).WithField("path", c.Request.URL.Path).Error("API error")
			}
			c.AbortWithStatusJSON(status, body)
			return
		}
		if rsp == nil {
			rsp = ResponseOK
		}
		c.JSON(http.StatusOK, rsp)
	}
}

// translate maps domain failures to HTTP status and response body.
func translate(err error) (int, *Response) {
	var ve *handler.ValidationError
	var se *handler.InvalidScopeError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, &Response{Code: CodeInvalidParam, Message: ve.Error()}
	case errors.As(err, &se):
		return http.StatusBadRequest, &Response{Code: CodeInvalidScope, Message: se.Error()}
	case errors.Is(err, handler.ErrNotFound):
		return http.StatusNotFound, ResponseNotFound
	case errors.Is(err, handler.ErrUnauthorized):
		return http.StatusForbidden, ResponseForbidden
	case errors.Is(err, handler.ErrConflict):
		return http.StatusConflict, ResponseConflict
	}
	return http.StatusInternalServerError, ResponseError
}

// IDURI binds the :id path parameter.
type IDURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func (u *IDURI) Parse() (uuid.UUID, error) {
	return uuid.Parse(u.ID)
}

func initAPI() []*APIItem {
	return []*APIItem{
		{Path: "/ping", Method: APIGet, Perm: PermGuest, Func: APIPing},

		{Path: "/default", Method: APIGet, Perm: PermGuest, Func: APIGetDefaultPage},

		{Path: "/pages", Method: APIGet, Perm: PermGuest, Func: APIGetPages},
		{Path: "/pages", Method: APIPost, Perm: PermAdmin, Func: APIAddPage},
		// collection level order rewrite, kept off /pages/:id to avoid a
		// wildcard route conflict
		{Path: "/pages", Method: APIPut, Perm: PermAdmin, Func: APIReorderPages},
		{Path: "/pages/:id", Method: APIGet, Perm: PermGuest, Func: APIGetPage},
		{Path: "/pages/:id", Method: APIPut, Perm: PermAdmin, Func: APIUpdatePage},
		{Path: "/pages/:id", Method: APIDelete, Perm: PermAdmin, Func: APIDeletePage},
		{Path: "/pages/:id/sections", Method: APIPost, Perm: PermUser, Func: APIAddSection},
		{Path: "/pages/:id/sections/reorder", Method: APIPost, Perm: PermUser, Func: APIReorderSections},

		{Path: "/sections/:id", Method: APIPut, Perm: PermUser, Func: APIUpdateSection},
		{Path: "/sections/:id", Method: APIDelete, Perm: PermUser, Func: APIDeleteSection},
		{Path: "/sections/:id/links", Method: APIPost, Perm: PermUser, Func: APIAddLink},
		{Path: "/sections/:id/links/reorder", Method: APIPost, Perm: PermUser, Func: APIReorderLinks},

		{Path: "/links/:id", Method: APIPut, Perm: PermUser, Func: APIUpdateLink},
		{Path: "/links/:id", Method: APIDelete, Perm: PermUser, Func: APIDeleteLink},

		{Path: "/roles", Method: APIGet, Perm: PermAdmin, Func: APIGetRoles},

		{Path: "/users", Method: APIGet, Perm: PermAdmin, Func: APIGetUsers},
		{Path: "/users", Method: APIPost, Perm: PermAdmin, Func: APIAddUser},
		{Path: "/users/:id", Method: APIPut, Perm: PermAdmin, Func: APIUpdateUser},
		{Path: "/users/:id", Method: APIDelete, Perm: PermAdmin, Func: APIDeleteUser},

		{Path: "/groups", Method: APIGet, Perm: PermAdmin, Func: APIGetGroups},
		{Path: "/groups", Method: APIPost, Perm: PermAdmin, Func: APIAddGroup},
		{Path: "/groups/:id", Method: APIDelete, Perm: PermAdmin, Func: APIDeleteGroup},

		{Path: "/import", Method: APIPost, Perm: PermAdmin, Func: APIImport},
	}
}

func APIPing(req *Request) (*Response, error) {
	return ResponseOK, nil
}
