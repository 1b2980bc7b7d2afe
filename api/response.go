package api

// Response is the JSON envelope of every API answer.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	CodeOK = iota
	CodeInvalidParam
	CodeUnauthorized
	CodeForbidden
	CodeNotFound
	CodeConflict
	CodeInvalidScope
	CodeError
)

var (
	ResponseOK           = &Response{Code: CodeOK, Message: "ok"}
	ResponseParamInvalid = &Response{Code: CodeInvalidParam, Message: "invalid parameter"}
	ResponseUnauthorized = &Response{Code: CodeUnauthorized, Message: "unauthorized"}
	ResponseForbidden    = &Response{Code: CodeForbidden, Message: "forbidden"}
	ResponseNotFound     = &Response{Code: CodeNotFound, Message: "not found"}
	ResponseConflict     = &Response{Code: CodeConflict, Message: "already exists"}
	ResponseError        = &Response{Code: CodeError, Message: "internal error"}
)

// NewDataResponse wraps data in a success envelope.
func NewDataResponse(data any) *Response {
	return &Response{Code: CodeOK, Message: "ok", Data: data}
}
