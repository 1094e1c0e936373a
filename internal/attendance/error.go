package attendance

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeWrongAction        Code = "WRONG_ACTION"
	CodeLateReasonRequired Code = "LATE_REASON_REQUIRED"
	CodeBindingRejected    Code = "BINDING_REJECTED"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrNotFound(msg string) *APIError    { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInvalid(msg string) *APIError     { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrWrongAction(msg string) *APIError { return &APIError{Code: CodeWrongAction, Message: msg} }
func ErrLateReasonRequired() *APIError {
	return &APIError{Code: CodeLateReasonRequired, Message: "late check-in requires a reason code"}
}
func ErrBindingRejected(msg string) *APIError {
	return &APIError{Code: CodeBindingRejected, Message: msg}
}
func ErrUnavailable(msg string) *APIError { return &APIError{Code: CodeUnavailable, Message: msg} }
func ErrInternal(msg string) *APIError    { return &APIError{Code: CodeInternal, Message: msg} }

// asDomainErr: ストア由来の想定外エラーは一時障害扱いにして呼び出し側へ返す。
// エンジン内での再試行はしない（二重書き込み防止）。
func asDomainErr(err error) *APIError {
	var api *APIError
	if errors.As(err, &api) {
		return api
	}
	return ErrUnavailable("storage unavailable")
}

func toHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeWrongAction:
		return http.StatusConflict
	case CodeLateReasonRequired:
		return http.StatusUnprocessableEntity
	case CodeBindingRejected:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
