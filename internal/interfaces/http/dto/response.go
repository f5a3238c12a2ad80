package dto

import "github.com/garments-erp/backend/internal/domain/shared"

// Response is the envelope every JSON endpoint answers with. Exactly one of
// Data and Error is set; Meta accompanies paged listings.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta locates a page within the full result
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps one page; a non-positive pageSize reports zero pages
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	p := shared.NewPaginated[any](nil, total, page, pageSize)
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: p.Total, Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages},
	}
}

func NewErrorResponse(code, message string) Response {
	return failure(ErrorInfo{Code: code, Message: message})
}

// NewErrorResponseWithRequestID tags the error so clients can quote it in reports
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return failure(ErrorInfo{Code: code, Message: message, RequestID: requestID})
}

// NewValidationErrorResponse lists each rejected field under ErrCodeValidation
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return failure(ErrorInfo{Code: ErrCodeValidation, Message: message, RequestID: requestID, Details: details})
}

func failure(info ErrorInfo) Response {
	return Response{Error: &info}
}
